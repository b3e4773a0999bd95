package file

import (
	"context"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/errors"
	"github.com/go-sif/tabrec/internal/compress"
	"github.com/go-sif/tabrec/logging"
	"github.com/hashicorp/go-multierror"
)

// fileLoader loads the records of one file
type fileLoader struct {
	path   string
	source *DataSource
}

// Load opens the file, decompressing it if needed, and parses it with a fresh Parser
func (fl *fileLoader) Load(ctx context.Context) ([]*tabrec.Record, error) {
	logger := logging.FromContext(ctx)
	f, err := fl.source.conf.Fs.Open(fl.path)
	if err != nil {
		return nil, &errors.UnreadableSourceError{Path: fl.path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("couldn't close file", "file", fl.path, "error", err)
		}
	}()
	fl.source.stats.AddFile()

	r, closeFn, err := compress.NewReader(fl.path, f)
	if err != nil {
		return nil, &errors.UnreadableSourceError{Path: fl.path, Err: err}
	}
	defer closeFn()

	logger.Debug("parsing file", "file", fl.path)
	records, err := fl.source.conf.NewParser().ParseContext(ctx, r, fl.source.schema, fl.source.stats)
	if err != nil {
		if _, ok := err.(*multierror.Error); ok {
			// only returned for StrictCoercion
			return nil, err
		}
		return nil, &errors.UnreadableSourceError{Path: fl.path, Err: err}
	}
	return records, nil
}
