package tabrec

import "strings"

// Justification controls how a value shorter than its column width is padded
// when a record is written in a fixed-width layout.
type Justification int

const (
	// JustifyLeft writes the value followed by spaces
	JustifyLeft Justification = iota
	// JustifyRight writes spaces followed by the value
	JustifyRight
)

// ParseJustification resolves a field_justify entry. Anything other than "right" is left.
func ParseJustification(s string) Justification {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r":
		return JustifyRight
	default:
		return JustifyLeft
	}
}

// String returns the configuration form of a Justification
func (j Justification) String() string {
	if j == JustifyRight {
		return "right"
	}
	return "left"
}

// Column describes a single field of a record: its name, type and,
// for fixed-width layouts, its byte offsets within a line.
type Column interface {
	Index() int             // Index returns the index of this Column within a Schema
	Name() string           // Name returns the field name of this Column
	Type() ColumnType       // Type returns the ColumnType of this Column
	Start() (int, bool)     // Start returns the start offset of this Column within a line, if declared
	End() (int, bool)       // End returns the end offset (exclusive) of this Column within a line, if declared
	Justify() Justification // Justify returns the padding direction used when writing this Column
}
