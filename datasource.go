package tabrec

import (
	"context"
	"io"
)

// Parser turns the lines of one input into Records conforming to a Schema.
// Implementations keep any coercion state (such as decimal precision) private
// to a single call of Parse.
type Parser interface {
	Parse(r io.Reader, schema Schema) ([]*Record, error)
}

// DataSource is a set of records files which can be read as a single ordered batch
type DataSource interface {
	Analyze() ([]string, error)                  // Analyze resolves the ordered list of files this DataSource reads
	Read(ctx context.Context) ([]*Record, error) // Read parses every file, in file order and then line order
}

// DataSink is a destination to which an ordered batch of Records can be appended
type DataSink interface {
	Path() string                                              // Path returns the destination file
	Write(ctx context.Context, records []*Record) (int, error) // Write appends records in order, returning the number written
}
