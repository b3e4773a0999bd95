package errors

import (
	"fmt"
)

// NilValueError occurs when a field value in a Record is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for field %s is nil", e.Name)
}

// MissingColumnError occurs when a Schema or Record has no field with a given name
type MissingColumnError struct{ Name string }

// Error returns a textual representation of this MissingColumnError
func (e MissingColumnError) Error() string {
	return fmt.Sprintf("Schema does not contain column with name %s", e.Name)
}

// CoercionKind classifies why a token could not be coerced
type CoercionKind int

const (
	// MissingToken means the line had no token for the field
	MissingToken CoercionKind = iota
	// UnparsableToken means the token is not a valid literal of the field type
	UnparsableToken
	// UnsupportedType means the column type is not known to the coercer
	UnsupportedType
)

// String returns a textual representation of a CoercionKind
func (k CoercionKind) String() string {
	switch k {
	case MissingToken:
		return "missing token"
	case UnparsableToken:
		return "unparsable token"
	default:
		return "unsupported type"
	}
}

// CoercionError occurs when a raw token cannot be converted to its declared type.
// Readers absorb these into null field values unless configured otherwise.
type CoercionError struct {
	Kind  CoercionKind
	Field string
	Type  string
	Token string
	Err   error
}

// Error returns a textual representation of this CoercionError
func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Cannot coerce %q to %s for field %s (%s): %s", e.Token, e.Type, e.Field, e.Kind, e.Err)
	}
	return fmt.Sprintf("Cannot coerce %q to %s for field %s (%s)", e.Token, e.Type, e.Field, e.Kind)
}

// Unwrap returns the underlying parse error, if any
func (e *CoercionError) Unwrap() error {
	return e.Err
}

// UnreadableSourceError occurs when a records file or directory cannot be opened or read.
// It is fatal to a batch read.
type UnreadableSourceError struct {
	Path string
	Err  error
}

// Error returns a textual representation of this UnreadableSourceError
func (e *UnreadableSourceError) Error() string {
	return fmt.Sprintf("Cannot read records source %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error
func (e *UnreadableSourceError) Unwrap() error {
	return e.Err
}

// UnwritableDestinationError occurs when an output file cannot be opened or written.
// It is fatal to a batch write.
type UnwritableDestinationError struct {
	Path string
	Err  error
}

// Error returns a textual representation of this UnwritableDestinationError
func (e *UnwritableDestinationError) Error() string {
	return fmt.Sprintf("Cannot write records to %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error
func (e *UnwritableDestinationError) Unwrap() error {
	return e.Err
}
