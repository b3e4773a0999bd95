package tabrec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ColumnType is an interface which is implemented to define a supported column type.
// Tabrec provides the five built-in types below; a ColumnType is referenced by the
// tag returned from Name() in schema configuration.
type ColumnType interface {
	Name() string                  // Name returns the configuration tag of this column type
	ToString(v interface{}) string // ToString produces the textual form of a value of this type, as written to a file
}

// Column type tags, as they appear in a field_types configuration entry
const (
	IntegerTag    = "integer"
	FloatTag      = "float"
	StringTag     = "string"
	StringListTag = "list"
	DecimalTag    = "decimal"
)

// ColumnTypeFromTag returns the ColumnType for a configuration tag
func ColumnTypeFromTag(tag string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case IntegerTag, "int":
		return &IntegerColumnType{}, nil
	case FloatTag:
		return &FloatColumnType{}, nil
	case StringTag, "":
		return &StringColumnType{}, nil
	case StringListTag, "stringlist":
		return &StringListColumnType{}, nil
	case DecimalTag:
		return &DecimalColumnType{}, nil
	default:
		return nil, fmt.Errorf("Unknown column type %q", tag)
	}
}

// IntegerColumnType is a column type which stores an int64 value
type IntegerColumnType struct{}

// Name returns the configuration tag of an IntegerColumnType
func (b *IntegerColumnType) Name() string {
	return IntegerTag
}

// ToString produces a string representation of an IntegerColumnType value.
// Integral floats, such as values set by a KeywordConverter, are written without a fraction.
func (b *IntegerColumnType) ToString(v interface{}) string {
	if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return strconv.FormatInt(int64(f), 10)
	}
	return ValueToString(v)
}

// FloatColumnType is a column type which stores a float64 value
type FloatColumnType struct{}

// Name returns the configuration tag of a FloatColumnType
func (b *FloatColumnType) Name() string {
	return FloatTag
}

// ToString produces a string representation of a FloatColumnType value.
// Integers are written in float form, so 3 is written as 3.0.
func (b *FloatColumnType) ToString(v interface{}) string {
	switch val := v.(type) {
	case int64:
		return formatFloat(float64(val))
	case int:
		return formatFloat(float64(val))
	}
	return ValueToString(v)
}

// StringColumnType is a column type which stores a string, unmodified
type StringColumnType struct{}

// Name returns the configuration tag of a StringColumnType
func (b *StringColumnType) Name() string {
	return StringTag
}

// ToString produces a string representation of a StringColumnType value
func (b *StringColumnType) ToString(v interface{}) string {
	return ValueToString(v)
}

// StringListColumnType is a column type which stores a []string
type StringListColumnType struct{}

// Name returns the configuration tag of a StringListColumnType
func (b *StringListColumnType) Name() string {
	return StringListTag
}

// ToString produces a string representation of a StringListColumnType value
func (b *StringListColumnType) ToString(v interface{}) string {
	return ValueToString(v)
}

// DecimalColumnType is a column type which stores a Decimal, which carries its own precision
type DecimalColumnType struct{}

// Name returns the configuration tag of a DecimalColumnType
func (b *DecimalColumnType) Name() string {
	return DecimalTag
}

// ToString produces a string representation of a DecimalColumnType value. A
// Decimal keeps its own precision; bare numbers are written at DefaultDecimalPrecision.
func (b *DecimalColumnType) ToString(v interface{}) string {
	switch val := v.(type) {
	case decimal.Decimal:
		return NewDecimal(val, DefaultDecimalPrecision).String()
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return ValueToString(val)
		}
		return NewDecimal(decimal.NewFromFloat(val), DefaultDecimalPrecision).String()
	case int64:
		return NewDecimal(decimal.NewFromInt(val), DefaultDecimalPrecision).String()
	case int:
		return NewDecimal(decimal.NewFromInt(int64(val)), DefaultDecimalPrecision).String()
	}
	return ValueToString(v)
}

// ValueToString renders any coerced value the way it is written to a record file.
// nil renders as the empty string.
func ValueToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case []string:
		return strings.Join(val, ",")
	case Decimal:
		return val.String()
	case *Decimal:
		if val == nil {
			return ""
		}
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// floats always keep a fractional part when finite and integral, so 3 is written as 3.0
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	var s string
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
