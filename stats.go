package tabrec

import "time"

// BatchStatistics facilitates the retrieval of statistics about a batch read or write
type BatchStatistics interface {
	// GetStartTime returns the start time of the batch
	GetStartTime() time.Time
	// GetRuntime returns the running time of the batch, or the time elapsed so far
	GetRuntime() time.Duration
	// GetNumFiles returns the number of files which have been opened
	GetNumFiles() int64
	// GetNumLines returns the number of lines which have been read or written
	GetNumLines() int64
	// GetNumRecords returns the number of Records which have been produced or consumed
	GetNumRecords() int64
	// GetNumCoercionFailures returns the number of field values absorbed as null
	GetNumCoercionFailures() int64
}
