package schema

import (
	"testing"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/errors"
	"github.com/stretchr/testify/require"
)

func xyzFields() []Field {
	return []Field{
		{Name: "x", Type: &tabrec.IntegerColumnType{}, Start: 0, End: 5, Justify: tabrec.JustifyLeft},
		{Name: "y", Type: &tabrec.IntegerColumnType{}, Start: 5, End: 10, Justify: tabrec.JustifyLeft},
		{Name: "z", Type: &tabrec.IntegerColumnType{}, Start: 10, End: 15, Justify: tabrec.JustifyRight},
	}
}

func TestMakeIntervals(t *testing.T) {
	require.Equal(t, []tabrec.Interval{{Start: 0, End: 5}, {Start: 5, End: 10}, {Start: 10, End: -1}}, MakeIntervals([]int{0, 5, 10}))
	require.Equal(t, []tabrec.Interval{{Start: 3, End: -1}}, MakeIntervals([]int{3}))
	require.Nil(t, MakeIntervals(nil))
}

func TestFixedWidthSchema(t *testing.T) {
	s, err := CreateFixedWidthSchema("Point", xyzFields(), "")
	require.Nil(t, err)
	require.Equal(t, tabrec.FixedWidthLayout, s.Layout())
	require.Equal(t, "Point", s.TypeName())
	require.Equal(t, []string{"x", "y", "z"}, s.ColumnNames())
	require.Equal(t, []tabrec.Interval{{Start: 0, End: 5}, {Start: 5, End: 10}, {Start: 10, End: -1}}, s.Intervals())
	require.True(t, s.CanFormatFixedWidth())
	require.Equal(t, DefaultDelimiter, s.Delimiter())

	col, err := s.GetColumn("z")
	require.Nil(t, err)
	require.Equal(t, 2, col.Index())
	require.Equal(t, tabrec.JustifyRight, col.Justify())
	end, ok := col.End()
	require.True(t, ok)
	require.Equal(t, 15, end)
}

func TestFixedWidthSchemaRequiresStarts(t *testing.T) {
	fields := xyzFields()
	fields[1].Start = Undeclared
	_, err := CreateFixedWidthSchema("Point", fields, "")
	require.NotNil(t, err)
}

func TestFixedWidthSchemaWithoutEndsCannotFormat(t *testing.T) {
	fields := xyzFields()
	for i := range fields {
		fields[i].End = Undeclared
	}
	s, err := CreateFixedWidthSchema("Point", fields, "\t")
	require.Nil(t, err)
	require.False(t, s.CanFormatFixedWidth())
	require.Equal(t, "\t", s.Delimiter())
}

func TestDelimitedSchema(t *testing.T) {
	s, err := CreateDelimitedSchema("", []Field{
		{Name: "a", Start: Undeclared, End: Undeclared},
		{Name: "b", Type: &tabrec.FloatColumnType{}, Start: Undeclared, End: Undeclared},
	}, "|")
	require.Nil(t, err)
	require.Equal(t, tabrec.DelimitedLayout, s.Layout())
	require.Equal(t, DefaultTypeName, s.TypeName())
	require.Equal(t, "|", s.Delimiter())
	require.Nil(t, s.Intervals())
	require.False(t, s.CanFormatFixedWidth())
	require.IsType(t, &tabrec.StringColumnType{}, s.Column(0).Type())
	require.IsType(t, &tabrec.FloatColumnType{}, s.Column(1).Type())
}

func TestSchemaRejectsDuplicateNames(t *testing.T) {
	_, err := CreateDelimitedSchema("T", []Field{{Name: "a"}, {Name: "a"}}, ",")
	require.NotNil(t, err)
	_, err = CreateDelimitedSchema("T", nil, ",")
	require.NotNil(t, err)
}

func TestGetMissingColumn(t *testing.T) {
	s, err := CreateDelimitedSchema("T", []Field{{Name: "a"}}, ",")
	require.Nil(t, err)
	_, err = s.GetColumn("b")
	require.Equal(t, errors.MissingColumnError{Name: "b"}, err)
	require.False(t, s.HasColumn("b"))
	require.True(t, s.HasColumn("a"))
}

func TestResolveDelimiter(t *testing.T) {
	require.Equal(t, ",", ResolveDelimiter("comma"))
	require.Equal(t, "\t", ResolveDelimiter("tab"))
	require.Equal(t, "    ", ResolveDelimiter("pipe"))
	require.Equal(t, " ", ResolveDelimiter(" "))
	require.Equal(t, "\t\t", ResolveDelimiter("\t\t"))
	require.Equal(t, "|", ResolveDelimiter("|"))
	require.Equal(t, ";", ResolveDelimiter(";"))
	require.Equal(t, "    ", ResolveDelimiter("||"))
	require.Equal(t, "    ", ResolveDelimiter(""))
}

func TestDescribe(t *testing.T) {
	s, err := CreateFixedWidthSchema("Point", xyzFields(), "")
	require.Nil(t, err)
	desc := Describe(s)
	require.Contains(t, desc, "Point (fixed-width)")
	require.Contains(t, desc, "2 z integer start=10 end=15 justify=right")
}
