package parser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/logging"
	"github.com/hashicorp/go-multierror"
)

// ParserConf configures a Parser
type ParserConf struct {
	HeaderLines      int                     // The number of lines to ignore from the beginning of each file. Defaults to 0.
	Comment          string                  // Lines beginning with the comment prefix are ignored. Defaults to no comment prefix.
	KeywordConverter tabrec.KeywordConverter // Applied once to every assembled record. Defaults to none.
	StrictCoercion   bool                    // Return coercion failures as errors instead of only absorbing them as null values. Defaults to false.
	MaxLineSize      int                     // The longest line which can be read, in bytes. Defaults to 0, which is unlimited.
}

// Counter receives counts while a Parser runs
type Counter interface {
	AddLines(n int64)
	AddRecords(n int64)
	AddCoercionFailures(n int64)
}

// Parser produces Records from line-oriented data, in either Layout
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new Parser
func CreateParser(conf *ParserConf) *Parser {
	c := ParserConf{}
	if conf != nil {
		c = *conf
	}
	return &Parser{conf: &c}
}

// Parse reads every line of r and assembles one Record per line
func (p *Parser) Parse(r io.Reader, schema tabrec.Schema) ([]*tabrec.Record, error) {
	return p.ParseContext(context.Background(), r, schema, nil)
}

// ParseContext is Parse with a context carrying a logger and an optional Counter.
// Coercion failures never stop parsing; with StrictCoercion they are returned,
// alongside the Records, as a *multierror.Error. Read errors are returned immediately.
func (p *Parser) ParseContext(ctx context.Context, r io.Reader, schema tabrec.Schema, counter Counter) ([]*tabrec.Record, error) {
	logger := logging.FromContext(ctx)
	segmenter := CreateSegmenter(schema)
	assembler := CreateAssembler(schema, p.conf.KeywordConverter)

	lines := NewLineReader(r, p.conf.MaxLineSize)

	records := []*tabrec.Record{}
	var multierr *multierror.Error
	var lineNum, failures int64
	for lines.Scan() {
		lineNum++
		if lineNum <= int64(p.conf.HeaderLines) {
			continue
		}
		line := lines.Text()
		if p.conf.Comment != "" && strings.HasPrefix(line, p.conf.Comment) {
			continue
		}
		record, err := assembler.Assemble(segmenter.Segment(line))
		if err != nil {
			if merr, ok := err.(*multierror.Error); ok {
				failures += int64(merr.Len())
			} else {
				failures++
			}
			logger.Debug("absorbed coercion failure", "line", lineNum, "error", err)
			if p.conf.StrictCoercion {
				multierr = multierror.Append(multierr, fmt.Errorf("line %d: %w", lineNum, err))
			}
		}
		records = append(records, record)
	}
	if counter != nil {
		counter.AddLines(lineNum)
		counter.AddRecords(int64(len(records)))
		counter.AddCoercionFailures(failures)
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	return records, multierr.ErrorOrNil()
}

// ContextParser parses the content of one records file
type ContextParser interface {
	ParseContext(ctx context.Context, r io.Reader, schema tabrec.Schema, counter Counter) ([]*tabrec.Record, error)
}
