package stats

import (
	"sync"
	"sync/atomic"
	"time"
)

// BatchStatistics contains statistics about a running batch read or write.
// Counters may be updated from concurrent file readers.
type BatchStatistics struct {
	startTime        time.Time
	totalRuntime     int64
	files            int64
	lines            int64
	records          int64
	coercionFailures int64
	finished         int32
	finishOnce       sync.Once
}

// CreateBatchStatistics starts tracking a batch
func CreateBatchStatistics() *BatchStatistics {
	return &BatchStatistics{startTime: time.Now()}
}

// Finish completes statistics tracking
func (bs *BatchStatistics) Finish() {
	bs.finishOnce.Do(func() {
		atomic.StoreInt64(&bs.totalRuntime, time.Since(bs.startTime).Nanoseconds())
		atomic.StoreInt32(&bs.finished, 1)
	})
}

// AddFile counts an opened file
func (bs *BatchStatistics) AddFile() {
	atomic.AddInt64(&bs.files, 1)
}

// AddLines counts lines read or written
func (bs *BatchStatistics) AddLines(n int64) {
	atomic.AddInt64(&bs.lines, n)
}

// AddRecords counts Records produced or consumed
func (bs *BatchStatistics) AddRecords(n int64) {
	atomic.AddInt64(&bs.records, n)
}

// AddCoercionFailures counts field values which were absorbed as null
func (bs *BatchStatistics) AddCoercionFailures(n int64) {
	atomic.AddInt64(&bs.coercionFailures, n)
}

// GetStartTime returns the start time of the batch
func (bs *BatchStatistics) GetStartTime() time.Time {
	return bs.startTime
}

// GetRuntime returns the running time of the batch
func (bs *BatchStatistics) GetRuntime() time.Duration {
	if atomic.LoadInt32(&bs.finished) == 1 {
		return time.Duration(atomic.LoadInt64(&bs.totalRuntime))
	}
	return time.Since(bs.startTime)
}

// GetNumFiles returns the number of files which have been opened
func (bs *BatchStatistics) GetNumFiles() int64 {
	return atomic.LoadInt64(&bs.files)
}

// GetNumLines returns the number of lines which have been read or written
func (bs *BatchStatistics) GetNumLines() int64 {
	return atomic.LoadInt64(&bs.lines)
}

// GetNumRecords returns the number of Records which have been produced or consumed
func (bs *BatchStatistics) GetNumRecords() int64 {
	return atomic.LoadInt64(&bs.records)
}

// GetNumCoercionFailures returns the number of field values absorbed as null
func (bs *BatchStatistics) GetNumCoercionFailures() int64 {
	return atomic.LoadInt64(&bs.coercionFailures)
}
