// Package formatter serializes Records into the lines of a records file,
// either at fixed byte offsets or separated by a delimiter.
package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/schema"
)

// Formatter serializes one Record into one newline-terminated line laid out
// by a write Schema. Fields are taken from the Record by name, so the Record's
// own Schema may differ from the write Schema.
type Formatter interface {
	Format(record *tabrec.Record, s tabrec.Schema) string
}

// CreateFormatter returns a fixed-width Formatter if every column of s
// declares both a start and an end position, and otherwise a delimited
// Formatter. The delimited Formatter uses delimiter, then the Schema's own
// delimiter, then schema.DefaultDelimiter.
func CreateFormatter(s tabrec.Schema, delimiter string) Formatter {
	if s.CanFormatFixedWidth() {
		return FixedWidthFormatter{}
	}
	if delimiter == "" {
		delimiter = s.Delimiter()
	}
	if delimiter == "" {
		delimiter = schema.DefaultDelimiter
	}
	return DelimitedFormatter{Delimiter: delimiter}
}

// FixedWidthFormatter writes each field at its declared byte offsets
type FixedWidthFormatter struct{}

// Format calls FormatFixedWidth
func (FixedWidthFormatter) Format(record *tabrec.Record, s tabrec.Schema) string {
	return FormatFixedWidth(record, s)
}

// DelimitedFormatter writes each field followed by Delimiter
type DelimitedFormatter struct {
	Delimiter string
}

// Format calls FormatDelimited
func (f DelimitedFormatter) Format(record *tabrec.Record, s tabrec.Schema) string {
	return FormatDelimited(record, s, f.Delimiter)
}

// FormatFixedWidth serializes a record at the positions of s, whose columns all
// declare start and end positions. Each column's value is looked up by name in
// the record; names the record lacks are written as nulls. The first field is written at the beginning of the line;
// each later field is preceded by the gap between its start and the previous
// field's end. A value longer than end-start bytes is truncated, and a shorter
// one is padded according to the column's justification. Columns missing a
// position are treated as zero-width.
func FormatFixedWidth(record *tabrec.Record, s tabrec.Schema) string {
	var sb strings.Builder
	prevEnd := 0
	for i := 0; i < s.NumColumns(); i++ {
		col := s.Column(i)
		start, _ := col.Start()
		end, ok := col.End()
		if !ok {
			end = start
		}
		if i > 0 && start > prevEnd {
			sb.WriteString(strings.Repeat(" ", start-prevEnd))
		}
		prevEnd = end
		width := end - start
		if width < 0 {
			width = 0
		}
		sb.WriteString(fit(col.Type().ToString(record.ValueOf(col.Name())), width, col.Justify()))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// FormatDelimited serializes the fields named by s, in the order of s, each
// followed by delimiter. Names the record lacks are written as nulls.
func FormatDelimited(record *tabrec.Record, s tabrec.Schema, delimiter string) string {
	var sb strings.Builder
	for i := 0; i < s.NumColumns(); i++ {
		col := s.Column(i)
		sb.WriteString(col.Type().ToString(record.ValueOf(col.Name())))
		sb.WriteString(delimiter)
	}
	sb.WriteByte('\n')
	return sb.String()
}

// fit truncates or pads value to exactly width bytes. Truncation never splits
// a UTF-8 sequence; the bytes it gives up are padded like a short value.
func fit(value string, width int, justify tabrec.Justification) string {
	if len(value) > width {
		cut := width
		for cut > 0 && !utf8.RuneStart(value[cut]) {
			cut--
		}
		value = value[:cut]
	}
	if len(value) == width {
		return value
	}
	pad := strings.Repeat(" ", width-len(value))
	if justify == tabrec.JustifyRight {
		return pad + value
	}
	return value + pad
}
