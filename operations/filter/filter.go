// Package filter provides operations which select Records from an ordered batch.
// Every operation preserves the relative order of the Records it keeps.
package filter

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/internal/util"
	"github.com/shopspring/decimal"
)

// Operation transforms an ordered batch of Records
type Operation func(records []*tabrec.Record) ([]*tabrec.Record, error)

// Predicate decides whether a Record is kept
type Predicate = util.Predicate

// Comparison names how a ValueFilter compares a field with its operand
type Comparison string

const (
	// Equal keeps records whose field renders exactly as the operand
	Equal Comparison = "eq"
	// NotEqual keeps records whose field does not render as the operand
	NotEqual Comparison = "neq"
	// Contains keeps records whose rendered field contains the operand
	Contains Comparison = "contains"
	// GreaterThan keeps records whose field is greater than the operand
	GreaterThan Comparison = "gt"
	// LessThan keeps records whose field is less than the operand
	LessThan Comparison = "lt"
)

// ParseComparison accepts the short names and their long forms
func ParseComparison(s string) (Comparison, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eq", "equal", "=", "==":
		return Equal, nil
	case "neq", "not_equal", "!=":
		return NotEqual, nil
	case "contains":
		return Contains, nil
	case "gt", "greater", ">":
		return GreaterThan, nil
	case "lt", "less", "<":
		return LessThan, nil
	default:
		return "", fmt.Errorf("Unknown comparison %q", s)
	}
}

// Apply runs ops in order, each on the result of the previous one
func Apply(records []*tabrec.Record, ops ...Operation) ([]*tabrec.Record, error) {
	var err error
	for _, op := range ops {
		if records, err = op(records); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Where keeps the Records for which pred is true
func Where(pred Predicate) Operation {
	safe := util.SafePredicate(pred)
	return func(records []*tabrec.Record) ([]*tabrec.Record, error) {
		res := make([]*tabrec.Record, 0, len(records))
		for _, r := range records {
			keep, err := safe(r)
			if err != nil {
				return nil, err
			}
			if keep {
				res = append(res, r)
			}
		}
		return res, nil
	}
}

// All is true when every predicate is true
func All(preds ...Predicate) Predicate {
	return func(r *tabrec.Record) (bool, error) {
		for _, p := range preds {
			if ok, err := p(r); err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// Any is true when at least one predicate is true
func Any(preds ...Predicate) Predicate {
	return func(r *tabrec.Record) (bool, error) {
		for _, p := range preds {
			if ok, err := p(r); err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
}

// Value compares the named field of each Record with operand. Fields are
// compared in their written form, except that gt and lt compare numerically
// when the field is numeric and the operand parses as a number. A null field
// renders as "" and is never greater or less than anything.
func Value(name string, cmp Comparison, operand string) Predicate {
	return func(r *tabrec.Record) (bool, error) {
		col, err := r.Schema().GetColumn(name)
		if err != nil {
			return false, err
		}
		v := r.Value(col.Index())
		text := col.Type().ToString(v)
		switch cmp {
		case Equal:
			return text == operand, nil
		case NotEqual:
			return text != operand, nil
		case Contains:
			return strings.Contains(text, operand), nil
		case GreaterThan, LessThan:
			if v == nil {
				return false, nil
			}
			c := compare(v, text, operand)
			if cmp == GreaterThan {
				return c > 0, nil
			}
			return c < 0, nil
		default:
			return false, fmt.Errorf("Unknown comparison %q", cmp)
		}
	}
}

func compare(v interface{}, text string, operand string) int {
	var field decimal.Decimal
	switch val := v.(type) {
	case int64:
		field = decimal.NewFromInt(val)
	case float64:
		field = decimal.NewFromFloat(val)
	case tabrec.Decimal:
		field = val.Value
	default:
		return strings.Compare(text, operand)
	}
	op, err := decimal.NewFromString(strings.TrimSpace(operand))
	if err != nil {
		return strings.Compare(text, operand)
	}
	return field.Cmp(op)
}

// Random keeps at most n Records chosen uniformly at random using seed
func Random(n int, seed int64) Operation {
	return func(records []*tabrec.Record) ([]*tabrec.Record, error) {
		if n < 0 {
			return nil, fmt.Errorf("Random sample size must be non-negative, was %d", n)
		}
		if n >= len(records) {
			return records, nil
		}
		idx := rand.New(rand.NewSource(seed)).Perm(len(records))[:n]
		sort.Ints(idx)
		res := make([]*tabrec.Record, n)
		for i, j := range idx {
			res[i] = records[j]
		}
		return res, nil
	}
}

// Dedupe keeps the first Record for each distinct combination of the named
// fields, or of all fields if none are named
func Dedupe(names ...string) Operation {
	return func(records []*tabrec.Record) ([]*tabrec.Record, error) {
		seen := make(map[uint64][]string)
		res := make([]*tabrec.Record, 0, len(records))
		for _, r := range records {
			key, err := dedupeKey(r, names)
			if err != nil {
				return nil, err
			}
			h := xxhash.Sum64String(key)
			if contains(seen[h], key) {
				continue
			}
			seen[h] = append(seen[h], key)
			res = append(res, r)
		}
		return res, nil
	}
}

func dedupeKey(r *tabrec.Record, names []string) (string, error) {
	var sb strings.Builder
	if len(names) == 0 {
		for _, s := range r.Strings() {
			sb.WriteString(strconv.Quote(s))
		}
		return sb.String(), nil
	}
	for _, name := range names {
		col, err := r.Schema().GetColumn(name)
		if err != nil {
			return "", err
		}
		sb.WriteString(strconv.Quote(col.Type().ToString(r.Value(col.Index()))))
	}
	return sb.String(), nil
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
