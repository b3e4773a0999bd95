package jsonl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/datasource/parser"
	"github.com/go-sif/tabrec/logging"
	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	HeaderLines      int                     // The number of lines to ignore from the beginning of each file. Defaults to 0.
	KeywordConverter tabrec.KeywordConverter // Applied once to every record. Defaults to none.
	StrictCoercion   bool                    // Return coercion failures as errors. Defaults to false.
	MaxLineSize      int                     // The longest line which can be read, in bytes. Defaults to 0, which is unlimited.
}

// Parser produces Records from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Each column is looked up in every
// line by its name, which is a gjson path. Values within the JSON which do not
// correspond to a Schema column are ignored, and columns absent from the JSON are null.
func CreateParser(conf *ParserConf) *Parser {
	c := ParserConf{}
	if conf != nil {
		c = *conf
	}
	return &Parser{conf: &c}
}

// Parse parses JSONL data to produce Records
func (p *Parser) Parse(r io.Reader, schema tabrec.Schema) ([]*tabrec.Record, error) {
	return p.ParseContext(context.Background(), r, schema, nil)
}

// ParseContext is Parse with a context carrying a logger and an optional Counter.
// Blank lines are skipped. A line which is not valid JSON is an error.
func (p *Parser) ParseContext(ctx context.Context, r io.Reader, schema tabrec.Schema, counter parser.Counter) ([]*tabrec.Record, error) {
	logger := logging.FromContext(ctx)
	names := schema.ColumnNames()
	assembler := parser.CreateAssembler(schema, p.conf.KeywordConverter)
	lines := parser.NewLineReader(r, p.conf.MaxLineSize)

	records := []*tabrec.Record{}
	var multierr *multierror.Error
	var lineNum, failures int64
	for lines.Scan() {
		lineNum++
		if lineNum <= int64(p.conf.HeaderLines) {
			continue
		}
		line := strings.TrimSpace(lines.Text())
		if line == "" {
			continue
		}
		if !gjson.Valid(line) {
			return nil, fmt.Errorf("line %d: invalid JSON", lineNum)
		}
		values := make([]interface{}, len(names))
		for i, name := range names {
			values[i] = resultValue(gjson.Get(line, name))
		}
		record, err := assembler.AssembleValues(values)
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

// resultValue converts a gjson result into a value the Coercer accepts. Numbers
// keep their raw text so that decimal precision survives.
func resultValue(res gjson.Result) interface{} {
	switch {
	case !res.Exists() || res.Type == gjson.Null:
		return nil
	case res.IsArray():
		elems := res.Array()
		list := make([]string, len(elems))
		for i, e := range elems {
			list[i] = e.String()
		}
		return list
	case res.Type == gjson.Number:
		return res.Raw
	default:
		return res.String()
	}
}
