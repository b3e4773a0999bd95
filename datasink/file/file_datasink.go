package file

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/docker/pkg/locker"
	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/errors"
	"github.com/go-sif/tabrec/formatter"
	"github.com/go-sif/tabrec/internal/compress"
	"github.com/go-sif/tabrec/internal/stats"
	"github.com/go-sif/tabrec/logging"
	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// OutputTimeFormat is the timestamp layout of a default output file name
const OutputTimeFormat = "2006-01-02.15:04:05.000000"

// appends to one destination never interleave within a process
var destinations = locker.New()

// DataSinkConf configures a DataSink
type DataSinkConf struct {
	Fs        afero.Fs // The filesystem to write to. Defaults to the OS filesystem.
	Delimiter string   // Used when the Schema cannot be written fixed-width. Defaults to the Schema's delimiter.
}

// DataSink appends the records of each Write to a single destination file
type DataSink struct {
	path   string
	schema tabrec.Schema
	conf   *DataSinkConf
	stats  *stats.BatchStatistics
}

// DefaultOutputName returns <typeName without spaces>_<timestamp>
func DefaultOutputName(typeName string, t time.Time) string {
	return strings.ReplaceAll(typeName, " ", "") + "_" + t.Format(OutputTimeFormat)
}

// CreateDataSink is a factory for DataSinks. An empty path selects
// DefaultOutputName for the Schema's type name in the working directory.
func CreateDataSink(path string, schema tabrec.Schema, conf *DataSinkConf) *DataSink {
	if conf == nil {
		conf = &DataSinkConf{}
	}
	if conf.Fs == nil {
		conf.Fs = afero.NewOsFs()
	}
	if path == "" {
		path = DefaultOutputName(schema.TypeName(), time.Now())
	}
	return &DataSink{path: path, schema: schema, conf: conf, stats: stats.CreateBatchStatistics()}
}

// WriteRecords appends records to path in a single call
func WriteRecords(ctx context.Context, records []*tabrec.Record, schema tabrec.Schema, path string, conf *DataSinkConf) (int, error) {
	return CreateDataSink(path, schema, conf).Write(ctx, records)
}

// Path returns the destination file of this DataSink
func (ds *DataSink) Path() string {
	return ds.path
}

// Stats returns the statistics of the most recent Write
func (ds *DataSink) Stats() tabrec.BatchStatistics {
	return ds.stats
}

// Write opens the destination for appending, creating it if absent, and
// writes one line per record in order. It returns the number of records
// written. Only an unopenable or unwritable destination is an error.
func (ds *DataSink) Write(ctx context.Context, records []*tabrec.Record) (n int, err error) {
	ds.stats = stats.CreateBatchStatistics()
	defer ds.stats.Finish()

	runID, err := uuid.NewV4()
	if err != nil {
		return 0, err
	}
	logger := logging.FromContext(ctx).With("run", runID.String(), "type", ds.schema.TypeName())

	key := ds.path
	if abs, aerr := filepath.Abs(ds.path); aerr == nil {
		key = abs
	}
	destinations.Lock(key)
	defer destinations.Unlock(key)

	f, err := ds.conf.Fs.OpenFile(ds.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, &errors.UnwritableDestinationError{Path: ds.path, Err: err}
	}
	ds.stats.AddFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierror.Append(err, &errors.UnwritableDestinationError{Path: ds.path, Err: cerr}).ErrorOrNil()
		}
	}()

	cw, err := compress.NewWriter(ds.path, f)
	if err != nil {
		return 0, &errors.UnwritableDestinationError{Path: ds.path, Err: err}
	}
	format := formatter.CreateFormatter(ds.schema, ds.conf.Delimiter)
	w := bufio.NewWriter(cw)
	for _, record := range records {
		if _, err := w.WriteString(format.Format(record, ds.schema)); err != nil {
			return n, &errors.UnwritableDestinationError{Path: ds.path, Err: err}
		}
		n++
	}
	if err := w.Flush(); err != nil {
		return n, &errors.UnwritableDestinationError{Path: ds.path, Err: err}
	}
	if err := cw.Close(); err != nil {
		return n, &errors.UnwritableDestinationError{Path: ds.path, Err: err}
	}
	ds.stats.AddLines(int64(n))
	ds.stats.AddRecords(int64(n))
	logger.Info("wrote records", "file", ds.path, "records", n, "elapsed", time.Since(ds.stats.GetStartTime()))
	return n, nil
}
