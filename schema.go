package tabrec

// Layout identifies how a Schema maps records onto lines
type Layout int

const (
	// FixedWidthLayout addresses fields by byte offsets, without a delimiter
	FixedWidthLayout Layout = iota
	// DelimitedLayout separates fields with a delimiter
	DelimitedLayout
)

// String returns a textual representation of a Layout
func (l Layout) String() string {
	if l == FixedWidthLayout {
		return "fixed-width"
	}
	return "delimited"
}

// Interval is a half-open [Start, End) slice of a line. An End of -1 extends to the end of the line.
type Interval struct {
	Start int
	End   int
}

// Schema is an ordered, immutable set of Columns describing the shape of a
// record and its physical layout. The Layout of a Schema is decided once, when
// it is created, and never re-derived.
type Schema interface {
	TypeName() string                                 // TypeName returns the record type name
	Layout() Layout                                   // Layout returns the line layout of this Schema
	NumColumns() int                                  // NumColumns returns the number of Columns in this Schema
	Column(idx int) Column                            // Column returns the Column at an index
	GetColumn(colName string) (col Column, err error) // GetColumn returns the Column with a name
	HasColumn(colName string) bool                    // HasColumn returns true iff this Schema contains a Column with the given name
	ColumnNames() []string                            // ColumnNames returns the Column names in index order
	ColumnTypes() []ColumnType                        // ColumnTypes returns the Column types in index order
	ForEachColumn(fn func(col Column) error) error    // ForEachColumn iterates over Columns in index order
	Intervals() []Interval                            // Intervals returns the read intervals of a fixed-width Schema, or nil
	Delimiter() string                                // Delimiter returns the delimiter of a delimited Schema, or the write fallback delimiter of a fixed-width one
	CanFormatFixedWidth() bool                        // CanFormatFixedWidth returns true iff every Column declares both a start and an end
}
