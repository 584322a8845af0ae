package soa

// Field declares one column of a schema.
type Field struct {
	Name string
	Type Type
}

// Schema is the ordered list of fields of a container.
type Schema []Field

// Validate checks the preconditions every container constructor enforces:
// at least one field, unique names and known type tags.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return ErrEmptySchema
	}
	seen := make(map[string]struct{}, len(s))
	for _, f := range s {
		if _, dup := seen[f.Name]; dup {
			return &ErrDuplicateField{Field: f.Name}
		}
		seen[f.Name] = struct{}{}
		if !f.Type.Valid() {
			return &ErrUnknownType{Field: f.Name, Type: f.Type}
		}
	}
	return nil
}

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// DefaultValues returns the record that holds the zero value of every field.
func DefaultValues(s Schema) (Record, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	r := make(Record, len(s))
	for _, f := range s {
		r[f.Name], _ = f.Type.DefaultValue()
	}
	return r, nil
}

// layout is the resolved form of a schema shared by both containers.
type layout struct {
	schema   Schema
	fields   map[string]int
	defaults []any
}

func newLayout(schema Schema, overrides Record) (layout, error) {
	if err := schema.Validate(); err != nil {
		return layout{}, err
	}

	l := layout{
		schema:   append(Schema(nil), schema...),
		fields:   make(map[string]int, len(schema)),
		defaults: make([]any, len(schema)),
	}
	for i, f := range schema {
		l.fields[f.Name] = i
		l.defaults[i], _ = f.Type.DefaultValue()
	}

	for name, v := range overrides {
		i, ok := l.fields[name]
		if !ok {
			return layout{}, &ErrInvalidDefault{Field: name, cause: &ErrUnknownField{Field: name}}
		}
		info, _ := schema[i].Type.info()
		x, err := info.convert(v)
		if err != nil {
			return layout{}, &ErrInvalidDefault{Field: name, cause: err}
		}
		l.defaults[i] = x
	}
	return l, nil
}

func (l *layout) field(name string) (int, error) {
	i, ok := l.fields[name]
	if !ok {
		return 0, &ErrUnknownField{Field: name}
	}
	return i, nil
}

// unknownField returns the first key of r that is not a schema field.
func (l *layout) unknownField(r Record) error {
	for k := range r {
		if _, ok := l.fields[k]; !ok {
			return &ErrUnknownField{Field: k}
		}
	}
	return nil
}

func (l *layout) mismatch(i int, v any, cause error) error {
	f := l.schema[i]
	return &ErrTypeMismatch{Field: f.Name, Type: f.Type, Value: v, cause: cause}
}

func (l *layout) defaultRecord() Record {
	r := make(Record, len(l.schema))
	for i, f := range l.schema {
		r[f.Name] = l.defaults[i]
	}
	return r
}
