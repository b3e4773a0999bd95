package file

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/datasource/parser"
	"github.com/go-sif/tabrec/errors"
	"github.com/go-sif/tabrec/internal/fsutil"
	"github.com/go-sif/tabrec/internal/stats"
	"github.com/go-sif/tabrec/logging"
	"github.com/gofrs/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Source selects the files a DataSource reads: a single File, or every file
// beneath Directory whose name matches all of the non-empty name conditions.
// Extension is a required suffix. Directory takes precedence.
type Source struct {
	File        string
	Directory   string
	Extension   string
	StartsWith  string
	Contains    string
	NotContains string
}

// String returns a textual representation of a Source
func (s Source) String() string {
	if s.Directory == "" {
		return s.File
	}
	res := fmt.Sprintf("%s/%s*%s", s.Directory, s.StartsWith, s.Extension)
	if s.Contains != "" {
		res += fmt.Sprintf(" containing %q", s.Contains)
	}
	if s.NotContains != "" {
		res += fmt.Sprintf(" not containing %q", s.NotContains)
	}
	return res
}

func (s Source) pattern() fsutil.Pattern {
	return fsutil.Pattern{
		StartsWith:  s.StartsWith,
		EndsWith:    s.Extension,
		Contains:    s.Contains,
		NotContains: s.NotContains,
	}
}

// DataSourceConf configures a DataSource
type DataSourceConf struct {
	Fs          afero.Fs           // The filesystem to read from. Defaults to the OS filesystem.
	Parser      *parser.ParserConf // Passed to the Parser of every file. Defaults to an empty ParserConf.
	Parallelism int64              // The maximum number of files parsed at once. Defaults to 1.
	// NewParser creates the Parser for each file. Defaults to a fixed-width or
	// delimited Parser configured by Parser.
	NewParser func() parser.ContextParser
}

// DataSource is a set of records files which will be read as one ordered batch
type DataSource struct {
	source Source
	schema tabrec.Schema
	conf   *DataSourceConf
	stats  *stats.BatchStatistics
}

// CreateDataSource is a factory for DataSources
func CreateDataSource(source Source, schema tabrec.Schema, conf *DataSourceConf) *DataSource {
	if conf == nil {
		conf = &DataSourceConf{}
	}
	if conf.Fs == nil {
		conf.Fs = afero.NewOsFs()
	}
	if conf.Parser == nil {
		conf.Parser = &parser.ParserConf{}
	}
	if conf.NewParser == nil {
		pconf := conf.Parser
		conf.NewParser = func() parser.ContextParser { return parser.CreateParser(pconf) }
	}
	if conf.Parallelism < 1 {
		conf.Parallelism = 1
	}
	return &DataSource{source: source, schema: schema, conf: conf, stats: stats.CreateBatchStatistics()}
}

// ReadRecords reads every record from source in a single call
func ReadRecords(ctx context.Context, schema tabrec.Schema, source Source, conf *DataSourceConf) ([]*tabrec.Record, error) {
	return CreateDataSource(source, schema, conf).Read(ctx)
}

// Analyze resolves the ordered list of files this DataSource will read
func (fs *DataSource) Analyze() ([]string, error) {
	if fs.source.Directory != "" {
		var files []string
		var err error
		if pattern := fs.source.pattern(); pattern == (fsutil.Pattern{}) {
			files, err = fsutil.FindFilesByExtension(fs.conf.Fs, fs.source.Directory, "")
		} else {
			files, err = fsutil.FindMatchingFiles(fs.conf.Fs, fs.source.Directory, pattern)
		}
		if err != nil {
			return nil, &errors.UnreadableSourceError{Path: fs.source.Directory, Err: err}
		}
		return files, nil
	}
	if fs.source.File == "" {
		return nil, &errors.UnreadableSourceError{Path: "", Err: fmt.Errorf("no records file or directory configured")}
	}
	return []string{fs.source.File}, nil
}

// Stats returns the statistics of the most recent Read
func (fs *DataSource) Stats() tabrec.BatchStatistics {
	return fs.stats
}

// Read parses every file returned by Analyze. Records follow file order and
// then line order. Any unreadable file fails the whole batch.
func (fs *DataSource) Read(ctx context.Context) ([]*tabrec.Record, error) {
	fs.stats = stats.CreateBatchStatistics()
	defer fs.stats.Finish()

	runID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx).With("run", runID.String(), "type", fs.schema.TypeName())
	ctx = logging.WithLogger(ctx, logger)

	files, err := fs.Analyze()
	if err != nil {
		return nil, err
	}
	logger.Info("reading records", "source", fs.source.String(), "files", len(files), "layout", fs.schema.Layout().String())

	results := make([][]*tabrec.Record, len(files))
	if fs.conf.Parallelism == 1 || len(files) < 2 {
		for i, path := range files {
			loader := &fileLoader{path: path, source: fs}
			if results[i], err = loader.Load(ctx); err != nil {
				return nil, err
			}
		}
	} else {
		limit := semaphore.NewWeighted(fs.conf.Parallelism)
		g, gctx := errgroup.WithContext(ctx)
		var acquireErr error
		for i, path := range files {
			i, loader := i, &fileLoader{path: path, source: fs}
			if acquireErr = limit.Acquire(gctx, 1); acquireErr != nil {
				break
			}
			g.Go(func() error {
				defer limit.Release(1)
				records, err := loader.Load(gctx)
				results[i] = records
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if acquireErr != nil {
			return nil, acquireErr
		}
	}

	total := 0
	for _, part := range results {
		total += len(part)
	}
	records := make([]*tabrec.Record, 0, total)
	for _, part := range results {
		records = append(records, part...)
	}
	logger.Info("read records", "records", len(records), "nulls", fs.stats.GetNumCoercionFailures(), "elapsed", time.Since(fs.stats.GetStartTime()))
	return records, nil
}
