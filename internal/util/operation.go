package util

import (
	"fmt"

	"github.com/go-sif/tabrec"
)

// Predicate decides whether a Record is kept
type Predicate func(record *tabrec.Record) (bool, error)

// SafePredicate wraps a Predicate such that panics are recovered and nice error messages are constructed
func SafePredicate(pred Predicate) Predicate {
	return func(record *tabrec.Record) (keep bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Filter Panic: %w\nRecord: %s\n%s", anErr, record, GetTrace())
				} else {
					err = fmt.Errorf("Filter Panic: %v\nRecord: %s\n%s", r, record, GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Filter Error: %w\nRecord: %s", err, record)
			}
		}()
		keep, err = pred(record)
		return
	}
}

// SafeKeywordConverter wraps a KeywordConverter such that panics are recovered and returned as errors
func SafeKeywordConverter(fn tabrec.KeywordConverter) func(fields *tabrec.Fields) (*tabrec.Fields, error) {
	return func(fields *tabrec.Fields) (result *tabrec.Fields, err error) {
		defer func() {
			if r := recover(); r != nil {
				result = nil
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("KeywordConverter Panic: %w\n%s", anErr, GetTrace())
				} else {
					err = fmt.Errorf("KeywordConverter Panic: %v\n%s", r, GetTrace())
				}
			}
		}()
		return fn(fields), nil
	}
}
