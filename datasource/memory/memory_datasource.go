// Package memory provides a DataSource which reads records from in-memory buffers.
package memory

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/datasource/parser"
	"github.com/go-sif/tabrec/internal/stats"
)

// DataSourceConf configures a DataSource
type DataSourceConf struct {
	Parser *parser.ParserConf // Passed to the Parser of every buffer. Defaults to an empty ParserConf.
	// NewParser creates the Parser for each buffer. Defaults to a fixed-width
	// or delimited Parser configured by Parser.
	NewParser func() parser.ContextParser
}

// DataSource is a set of buffers, each holding the content of one records file
type DataSource struct {
	data   [][]byte
	schema tabrec.Schema
	conf   *DataSourceConf
	stats  *stats.BatchStatistics
}

// CreateDataSource is a factory for DataSources. conf may be nil.
func CreateDataSource(data [][]byte, schema tabrec.Schema, conf *DataSourceConf) *DataSource {
	if conf == nil {
		conf = &DataSourceConf{}
	}
	if conf.NewParser == nil {
		pconf := conf.Parser
		conf.NewParser = func() parser.ContextParser { return parser.CreateParser(pconf) }
	}
	return &DataSource{data: data, schema: schema, conf: conf, stats: stats.CreateBatchStatistics()}
}

// Analyze names each buffer by its index
func (ms *DataSource) Analyze() ([]string, error) {
	names := make([]string, len(ms.data))
	for i := range ms.data {
		names[i] = fmt.Sprintf("memory[%d]", i)
	}
	return names, nil
}

// Stats returns the statistics of the most recent Read
func (ms *DataSource) Stats() tabrec.BatchStatistics {
	return ms.stats
}

// Read parses every buffer in order, each with a fresh Parser
func (ms *DataSource) Read(ctx context.Context) ([]*tabrec.Record, error) {
	ms.stats = stats.CreateBatchStatistics()
	defer ms.stats.Finish()
	records := []*tabrec.Record{}
	for _, buf := range ms.data {
		ms.stats.AddFile()
		part, err := ms.conf.NewParser().ParseContext(ctx, bytes.NewReader(buf), ms.schema, ms.stats)
		if err != nil {
			return nil, err
		}
		records = append(records, part...)
	}
	return records, nil
}
