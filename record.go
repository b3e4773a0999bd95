package tabrec

import (
	"fmt"
	"strings"

	"github.com/go-sif/tabrec/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields is an ordered mapping from field name to coerced value
type Fields = orderedmap.OrderedMap[string, interface{}]

// NewFields creates an empty Fields mapping
func NewFields() *Fields {
	return orderedmap.New[string, interface{}]()
}

// Record is a single schema-conformant record: an ordered mapping of field
// name to coerced value, bound to the Schema it was produced from. A Record
// always holds exactly the Schema's fields, in Schema order; null values are nil.
type Record struct {
	schema Schema
	values []interface{}
}

// CreateRecord builds a Record from values given in Schema order. Missing
// trailing values are null and extra values are ignored.
func CreateRecord(schema Schema, values []interface{}) *Record {
	vals := make([]interface{}, schema.NumColumns())
	copy(vals, values)
	return &Record{schema: schema, values: vals}
}

// CreateRecordFromFields builds a Record by looking up each Schema field in
// fields. Names absent from fields are null; names not in the Schema are dropped.
func CreateRecordFromFields(schema Schema, fields *Fields) *Record {
	vals := make([]interface{}, schema.NumColumns())
	if fields != nil {
		for i, name := range schema.ColumnNames() {
			if v, ok := fields.Get(name); ok {
				vals[i] = v
			}
		}
	}
	return &Record{schema: schema, values: vals}
}

// TypeName returns the record type name of this Record's Schema
func (r *Record) TypeName() string {
	return r.schema.TypeName()
}

// Schema returns the Schema this Record conforms to
func (r *Record) Schema() Schema {
	return r.schema
}

// Len returns the number of fields in this Record
func (r *Record) Len() int {
	return len(r.values)
}

// Get returns the value of a field. A null value produces a NilValueError.
func (r *Record) Get(name string) (interface{}, error) {
	col, err := r.schema.GetColumn(name)
	if err != nil {
		return nil, err
	}
	v := r.values[col.Index()]
	if v == nil {
		return nil, errors.NilValueError{Name: name}
	}
	return v, nil
}

// IsNil returns true iff the named field is null. Unknown names are reported as not nil.
func (r *Record) IsNil(name string) bool {
	col, err := r.schema.GetColumn(name)
	if err != nil {
		return false
	}
	return r.values[col.Index()] == nil
}

// Value returns the value at a field index, or nil
func (r *Record) Value(idx int) interface{} {
	if idx < 0 || idx >= len(r.values) {
		return nil
	}
	return r.values[idx]
}

// ValueOf returns the value of a named field, or nil if the field is null or
// not part of this Record's Schema
func (r *Record) ValueOf(name string) interface{} {
	col, err := r.schema.GetColumn(name)
	if err != nil {
		return nil
	}
	return r.values[col.Index()]
}

// Values returns a copy of the values of this Record in Schema order
func (r *Record) Values() []interface{} {
	vals := make([]interface{}, len(r.values))
	copy(vals, r.values)
	return vals
}

// Strings returns the textual form of each value, in Schema order
func (r *Record) Strings() []string {
	strs := make([]string, len(r.values))
	for i, v := range r.values {
		strs[i] = r.schema.Column(i).Type().ToString(v)
	}
	return strs
}

// Fields returns a fresh ordered mapping of this Record's fields
func (r *Record) Fields() *Fields {
	fields := NewFields()
	for i, name := range r.schema.ColumnNames() {
		fields.Set(name, r.values[i])
	}
	return fields
}

// ForEachField iterates over fields in Schema order
func (r *Record) ForEachField(fn func(name string, value interface{}) error) error {
	for i, name := range r.schema.ColumnNames() {
		if err := fn(name, r.values[i]); err != nil {
			return err
		}
	}
	return nil
}

// String returns a textual representation of this Record
func (r *Record) String() string {
	var res strings.Builder
	fmt.Fprintf(&res, "%s(", r.TypeName())
	for i, name := range r.schema.ColumnNames() {
		if i > 0 {
			res.WriteString(", ")
		}
		if r.values[i] == nil {
			fmt.Fprintf(&res, "%s=nil", name)
		} else {
			fmt.Fprintf(&res, "%s=%s", name, ValueToString(r.values[i]))
		}
	}
	res.WriteString(")")
	return res.String()
}
