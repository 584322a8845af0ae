package soa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRegistry(t *testing.T) {
	tests := []struct {
		typ     Type
		name    string
		zero    any
		numeric bool
	}{
		{Int8, "int8", int8(0), true},
		{Uint8, "uint8", uint8(0), true},
		{Int16, "int16", int16(0), true},
		{Uint16, "uint16", uint16(0), true},
		{Int32, "int32", int32(0), true},
		{Uint32, "uint32", uint32(0), true},
		{Float32, "float32", float32(0), true},
		{Float64, "float64", float64(0), true},
		{Bool, "bool", false, false},
		{String, "string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.typ.Valid())
			assert.Equal(t, tt.name, tt.typ.String())
			assert.Equal(t, tt.numeric, tt.typ.IsNumeric())

			zero, ok := tt.typ.DefaultValue()
			require.True(t, ok)
			assert.Equal(t, tt.zero, zero)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		for _, typ := range []Type{Invalid, String + 1, Type(255)} {
			assert.False(t, typ.Valid())
			assert.False(t, typ.IsNumeric())
			_, ok := typ.DefaultValue()
			assert.False(t, ok)
		}
		assert.Equal(t, "Type(0)", Invalid.String())
	})
}

func TestTypeConvert(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		in      any
		want    any
		wantErr bool
	}{
		{"int to int8", Int8, 5, int8(5), false},
		{"int8 overflow", Int8, 128, nil, true},
		{"negative to uint8", Uint8, -1, nil, true},
		{"integral float to int16", Int16, 3.0, int16(3), false},
		{"fractional float to int32", Int32, 3.5, nil, true},
		{"uint32 max", Uint32, uint64(1<<32 - 1), uint32(1<<32 - 1), false},
		{"int to float64", Float64, 7, float64(7), false},
		{"float64 to float32", Float32, 0.5, float32(0.5), false},
		{"string to int8", Int8, "1", nil, true},
		{"bool", Bool, true, true, false},
		{"int to bool", Bool, 1, nil, true},
		{"string", String, "x", "x", false},
		{"bool to string", String, false, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := tt.typ.info()
			require.True(t, ok)

			got, err := info.convert(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchemaValidate(t *testing.T) {
	assert.ErrorIs(t, Schema{}.Validate(), ErrEmptySchema)
	assert.ErrorIs(t, Schema(nil).Validate(), ErrEmptySchema)

	err := Schema{{"a", Int8}, {"a", Bool}}.Validate()
	var dup *ErrDuplicateField
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Field)

	err = Schema{{"a", Int8}, {"b", Invalid}}.Validate()
	var unknown *ErrUnknownType
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "b", unknown.Field)

	assert.NoError(t, testSchema.Validate())
	assert.Equal(t, []string{"integer", "boolean", "string"}, testSchema.Names())
}

func TestDefaultValues(t *testing.T) {
	r, err := DefaultValues(testSchema)
	require.NoError(t, err)
	assert.Equal(t, Record{"integer": int8(0), "boolean": false, "string": ""}, r)

	_, err = DefaultValues(Schema{})
	assert.ErrorIs(t, err, ErrEmptySchema)
}

func TestNewLayoutDefaults(t *testing.T) {
	l, err := newLayout(testSchema, Record{"integer": 7, "string": "x"})
	require.NoError(t, err)
	assert.Equal(t, Record{"integer": int8(7), "boolean": false, "string": "x"}, l.defaultRecord())

	_, err = newLayout(testSchema, Record{"missing": 1})
	var invalid *ErrInvalidDefault
	require.ErrorAs(t, err, &invalid)
	var unknown *ErrUnknownField
	assert.ErrorAs(t, err, &unknown)

	_, err = newLayout(testSchema, Record{"integer": 1000})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "integer", invalid.Field)
}

func TestRecordClone(t *testing.T) {
	var nilRecord Record
	assert.Nil(t, nilRecord.Clone())

	r := Record{"a": 1}
	c := r.Clone()
	c["a"] = 2
	assert.Equal(t, 1, r["a"])
}
