package tabrec_test

import (
	"fmt"
	"testing"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/errors"
	"github.com/go-sif/tabrec/schema"
	"github.com/stretchr/testify/require"
)

func pointSchema(t *testing.T) tabrec.Schema {
	s, err := schema.CreateDelimitedSchema("Point", []schema.Field{
		{Name: "x", Type: &tabrec.IntegerColumnType{}, Start: schema.Undeclared, End: schema.Undeclared},
		{Name: "y", Type: &tabrec.FloatColumnType{}, Start: schema.Undeclared, End: schema.Undeclared},
		{Name: "label", Start: schema.Undeclared, End: schema.Undeclared},
	}, "")
	require.Nil(t, err)
	return s
}

func TestRecordAccess(t *testing.T) {
	r := tabrec.CreateRecord(pointSchema(t), []interface{}{int64(1), nil})
	require.Equal(t, "Point", r.TypeName())
	require.Equal(t, 3, r.Len())

	x, err := r.Get("x")
	require.Nil(t, err)
	require.Equal(t, int64(1), x)

	_, err = r.Get("y")
	require.Equal(t, errors.NilValueError{Name: "y"}, err)
	_, err = r.Get("z")
	require.Equal(t, errors.MissingColumnError{Name: "z"}, err)

	require.True(t, r.IsNil("label"))
	require.False(t, r.IsNil("z"))
	require.Nil(t, r.Value(7))
	require.Equal(t, int64(1), r.ValueOf("x"))
	require.Nil(t, r.ValueOf("y"))
	require.Nil(t, r.ValueOf("z"))
	require.Equal(t, []string{"1", "", ""}, r.Strings())
	require.Equal(t, "Point(x=1, y=nil, label=nil)", r.String())
}

func TestRecordFieldsAreOrderedCopies(t *testing.T) {
	s := pointSchema(t)
	r := tabrec.CreateRecord(s, []interface{}{int64(1), 2.5, "a", "extra"})
	fields := r.Fields()
	var names []string
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	require.Equal(t, []string{"x", "y", "label"}, names)

	fields.Set("label", "b")
	require.Equal(t, "a", r.Value(2))

	rebuilt := tabrec.CreateRecordFromFields(s, fields)
	require.Equal(t, []interface{}{int64(1), 2.5, "b"}, rebuilt.Values())
	require.Equal(t, []interface{}{nil, nil, nil}, tabrec.CreateRecordFromFields(s, nil).Values())
}

func TestRecordForEachField(t *testing.T) {
	r := tabrec.CreateRecord(pointSchema(t), []interface{}{int64(1), 2.5, "a"})
	var visited []string
	err := r.ForEachField(func(name string, value interface{}) error {
		visited = append(visited, fmt.Sprintf("%s=%v", name, value))
		if name == "y" {
			return fmt.Errorf("stop")
		}
		return nil
	})
	require.NotNil(t, err)
	require.Equal(t, []string{"x=1", "y=2.5"}, visited)
}
