package soa

// Record holds the values of one record keyed by field name.
//
// Fields missing from a Record take the container's default value. Numeric
// fields accept any Go integer or float that is exactly representable in the
// field's type; Bool and String fields require bool and string values.
type Record map[string]any

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
