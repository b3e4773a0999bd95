// Package coerce converts raw string tokens into typed field values.
package coerce

import (
	"strconv"
	"strings"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/errors"
	"github.com/shopspring/decimal"
)

// Coercer converts tokens to the value type of a ColumnType. A Coercer tracks
// the precision of the last decimal it parsed, so a single Coercer must not be
// shared between concurrently running parses; create one per pass instead.
type Coercer struct {
	precision int32
}

// CreateCoercer returns a Coercer whose decimal precision starts at tabrec.DefaultDecimalPrecision
func CreateCoercer() *Coercer {
	return &Coercer{precision: tabrec.DefaultDecimalPrecision}
}

// Precision returns the precision of the last successfully coerced decimal
func (c *Coercer) Precision() int32 {
	return c.precision
}

// Coerce converts token according to colType. On failure it returns a nil
// value and a *errors.CoercionError; callers decide whether to propagate it.
func (c *Coercer) Coerce(token string, colType tabrec.ColumnType) (interface{}, error) {
	switch colType.(type) {
	case *tabrec.StringColumnType:
		return token, nil
	case *tabrec.IntegerColumnType:
		ival, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
		if err != nil {
			return nil, unparsable(token, colType, err)
		}
		return ival, nil
	case *tabrec.FloatColumnType:
		fval, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
		if err != nil {
			return nil, unparsable(token, colType, err)
		}
		return fval, nil
	case *tabrec.StringListColumnType:
		return []string{token}, nil
	case *tabrec.DecimalColumnType:
		return c.coerceDecimal(token, colType)
	default:
		return nil, &errors.CoercionError{Kind: errors.UnsupportedType, Type: typeName(colType), Token: token}
	}
}

// CoerceValue is Coerce for values which may already be typed, such as the
// list-valued entries of a configuration mapping. A []string is accepted as-is
// by a StringListColumnType and strings are coerced normally.
func (c *Coercer) CoerceValue(raw interface{}, colType tabrec.ColumnType) (interface{}, error) {
	switch v := raw.(type) {
	case nil:
		return nil, &errors.CoercionError{Kind: errors.MissingToken, Type: typeName(colType)}
	case string:
		return c.Coerce(v, colType)
	case []string:
		if _, ok := colType.(*tabrec.StringListColumnType); ok {
			res := make([]string, len(v))
			copy(res, v)
			return res, nil
		}
		return c.Coerce(strings.Join(v, ","), colType)
	default:
		return c.Coerce(tabrec.ValueToString(v), colType)
	}
}

// coerceDecimal takes the precision from the number of digits after the first
// '.', or tabrec.DefaultDecimalPrecision if there are none. The Coercer's
// precision only changes when the token parses.
func (c *Coercer) coerceDecimal(token string, colType tabrec.ColumnType) (interface{}, error) {
	trimmed := strings.TrimSpace(token)
	precision := tabrec.DefaultDecimalPrecision
	if parts := strings.Split(trimmed, "."); len(parts) > 1 && len(parts[1]) > 0 {
		precision = int32(len(parts[1]))
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil, unparsable(token, colType, err)
	}
	c.precision = precision
	return tabrec.NewDecimal(d, precision), nil
}

func unparsable(token string, colType tabrec.ColumnType, err error) error {
	return &errors.CoercionError{Kind: errors.UnparsableToken, Type: typeName(colType), Token: token, Err: err}
}

func typeName(colType tabrec.ColumnType) string {
	if colType == nil {
		return "<nil>"
	}
	return colType.Name()
}
