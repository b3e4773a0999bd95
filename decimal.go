package tabrec

import (
	"github.com/shopspring/decimal"
)

// DefaultDecimalPrecision is the number of fractional digits used for a decimal
// token which has no fractional part
const DefaultDecimalPrecision int32 = 4

// Decimal is the value produced for a DecimalColumnType. Precision is the number
// of fractional digits the value is represented with.
type Decimal struct {
	Value     decimal.Decimal
	Precision int32
}

// NewDecimal rounds value to precision fractional digits
func NewDecimal(value decimal.Decimal, precision int32) Decimal {
	if precision < 0 {
		precision = DefaultDecimalPrecision
	}
	return Decimal{Value: value.Round(precision), Precision: precision}
}

// String renders the decimal with exactly Precision fractional digits
func (d Decimal) String() string {
	return d.Value.StringFixed(d.Precision)
}

// Equal returns true iff both the value and the precision match
func (d Decimal) Equal(other Decimal) bool {
	return d.Precision == other.Precision && d.Value.Equal(other.Value)
}

// WithPrecision returns a copy of this Decimal at a new precision, padding
// with zeros or truncating extra digits
func (d Decimal) WithPrecision(precision int32) Decimal {
	if precision < 0 {
		return d
	}
	return Decimal{Value: d.Value.Truncate(precision), Precision: precision}
}

// MarshalJSON writes the decimal as a bare JSON number at its precision
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}
