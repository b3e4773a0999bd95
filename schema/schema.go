package schema

import (
	"fmt"
	"strings"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/errors"
)

// Undeclared marks a Field position which was not configured
const Undeclared = -1

// DefaultTypeName is the record type name used when none is configured
const DefaultTypeName = "Object"

// Field declares one Column of a Schema under construction
type Field struct {
	Name    string
	Type    tabrec.ColumnType // nil means a StringColumnType
	Start   int               // Undeclared for delimited layouts
	End     int               // Undeclared unless the Schema is written fixed-width
	Justify tabrec.Justification
}

// column describes one field of a Schema
type column struct {
	idx     int
	name    string
	colType tabrec.ColumnType
	start   int
	end     int
	justify tabrec.Justification
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// Name returns the field name of this Column
func (c *column) Name() string {
	return c.name
}

// Type returns the ColumnType of this Column
func (c *column) Type() tabrec.ColumnType {
	return c.colType
}

// Start returns the start offset of this Column, if declared
func (c *column) Start() (int, bool) {
	return c.start, c.start != Undeclared
}

// End returns the end offset of this Column, if declared
func (c *column) End() (int, bool) {
	return c.end, c.end != Undeclared
}

// Justify returns the padding direction of this Column
func (c *column) Justify() tabrec.Justification {
	return c.justify
}

// schema holds what both layouts share: ordered columns and a name index
type schema struct {
	typeName  string
	columns   []*column
	byName    map[string]*column
	delimiter string
}

func buildSchema(typeName string, fields []Field, delimiter string) (*schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("Schema %s must declare at least one field", typeName)
	}
	if strings.TrimSpace(typeName) == "" {
		typeName = DefaultTypeName
	}
	s := &schema{
		typeName:  typeName,
		columns:   make([]*column, 0, len(fields)),
		byName:    make(map[string]*column, len(fields)),
		delimiter: delimiter,
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("Field %d of schema %s has no name", i, typeName)
		}
		if _, exists := s.byName[f.Name]; exists {
			return nil, fmt.Errorf("Schema already contains column with name %s", f.Name)
		}
		colType := f.Type
		if colType == nil {
			colType = &tabrec.StringColumnType{}
		}
		col := &column{
			idx:     i,
			name:    f.Name,
			colType: colType,
			start:   normalizePosition(f.Start),
			end:     normalizePosition(f.End),
			justify: f.Justify,
		}
		s.columns = append(s.columns, col)
		s.byName[f.Name] = col
	}
	return s, nil
}

func normalizePosition(p int) int {
	if p < 0 {
		return Undeclared
	}
	return p
}

// TypeName returns the record type name
func (s *schema) TypeName() string {
	return s.typeName
}

// NumColumns returns the number of Columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.columns)
}

// Column returns the Column at an index
func (s *schema) Column(idx int) tabrec.Column {
	return s.columns[idx]
}

// GetColumn returns the Column with a name
func (s *schema) GetColumn(colName string) (tabrec.Column, error) {
	col, ok := s.byName[colName]
	if !ok {
		return nil, errors.MissingColumnError{Name: colName}
	}
	return col, nil
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.byName[colName]
	return ok
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.name
	}
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []tabrec.ColumnType {
	types := make([]tabrec.ColumnType, len(s.columns))
	for i, c := range s.columns {
		types[i] = c.colType
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema, in index order
func (s *schema) ForEachColumn(fn func(col tabrec.Column) error) error {
	for _, c := range s.columns {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

// Delimiter returns the delimiter of this Schema
func (s *schema) Delimiter() string {
	return s.delimiter
}

// CanFormatFixedWidth returns true iff every column declares a start and an end
func (s *schema) CanFormatFixedWidth() bool {
	for _, c := range s.columns {
		if c.start == Undeclared || c.end == Undeclared {
			return false
		}
	}
	return true
}

// fixedWidthSchema reads lines by slicing them at each column's start offset
type fixedWidthSchema struct {
	*schema
	intervals []tabrec.Interval
}

// CreateFixedWidthSchema is a factory for fixed-width Schemas. Every field must
// declare a Start. fallbackDelimiter is used when the Schema has to be written
// delimited because some field lacks an End; empty means DefaultDelimiter.
func CreateFixedWidthSchema(typeName string, fields []Field, fallbackDelimiter string) (tabrec.Schema, error) {
	if fallbackDelimiter == "" {
		fallbackDelimiter = DefaultDelimiter
	}
	s, err := buildSchema(typeName, fields, fallbackDelimiter)
	if err != nil {
		return nil, err
	}
	starts := make([]int, len(s.columns))
	for i, c := range s.columns {
		if c.start == Undeclared {
			return nil, fmt.Errorf("Fixed-width column %s has no start position", c.name)
		}
		starts[i] = c.start
	}
	return &fixedWidthSchema{schema: s, intervals: MakeIntervals(starts)}, nil
}

// Layout returns FixedWidthLayout
func (s *fixedWidthSchema) Layout() tabrec.Layout {
	return tabrec.FixedWidthLayout
}

// Intervals returns a copy of the read intervals
func (s *fixedWidthSchema) Intervals() []tabrec.Interval {
	res := make([]tabrec.Interval, len(s.intervals))
	copy(res, s.intervals)
	return res
}

// delimitedSchema reads lines by splitting them on a delimiter
type delimitedSchema struct {
	*schema
}

// CreateDelimitedSchema is a factory for delimited Schemas. Positions declared on
// fields are kept, but never used for reading. An empty delimiter means DefaultDelimiter.
func CreateDelimitedSchema(typeName string, fields []Field, delimiter string) (tabrec.Schema, error) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	s, err := buildSchema(typeName, fields, delimiter)
	if err != nil {
		return nil, err
	}
	return &delimitedSchema{schema: s}, nil
}

// Layout returns DelimitedLayout
func (s *delimitedSchema) Layout() tabrec.Layout {
	return tabrec.DelimitedLayout
}

// Intervals returns nil; delimited Schemas are not sliced
func (s *delimitedSchema) Intervals() []tabrec.Interval {
	return nil
}

// MakeIntervals pairs each start position with the next one. The final
// interval is unbounded: [(p0,p1), (p1,p2), ..., (pn,-1)].
func MakeIntervals(starts []int) []tabrec.Interval {
	if len(starts) == 0 {
		return nil
	}
	intervals := make([]tabrec.Interval, 0, len(starts))
	for i := 0; i < len(starts)-1; i++ {
		intervals = append(intervals, tabrec.Interval{Start: starts[i], End: starts[i+1]})
	}
	intervals = append(intervals, tabrec.Interval{Start: starts[len(starts)-1], End: -1})
	return intervals
}

// Describe produces a human-readable summary of a Schema
func Describe(s tabrec.Schema) string {
	var res strings.Builder
	fmt.Fprintf(&res, "%s (%s", s.TypeName(), s.Layout())
	if s.Layout() == tabrec.DelimitedLayout || !s.CanFormatFixedWidth() {
		fmt.Fprintf(&res, ", delimiter %q", s.Delimiter())
	}
	res.WriteString(")\n")
	s.ForEachColumn(func(col tabrec.Column) error {
		fmt.Fprintf(&res, "  %d %s %s", col.Index(), col.Name(), col.Type().Name())
		if start, ok := col.Start(); ok {
			fmt.Fprintf(&res, " start=%d", start)
		}
		if end, ok := col.End(); ok {
			fmt.Fprintf(&res, " end=%d justify=%s", end, col.Justify())
		}
		res.WriteString("\n")
		return nil
	})
	return res.String()
}
