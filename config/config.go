package config

import (
	"fmt"
	"strings"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/datasource/file"
	"github.com/go-sif/tabrec/datasource/parser"
	"github.com/go-sif/tabrec/logging"
	"github.com/go-sif/tabrec/schema"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
)

// SchemaConfig is a decoded configuration Mapping
type SchemaConfig struct {
	TypeName            string   `mapstructure:"type_name"`
	FieldNames          []string `mapstructure:"field_names"`
	FieldTypes          []string `mapstructure:"field_types"`
	FieldStartPositions []int    `mapstructure:"field_start_positions"`
	FieldEndPositions   []int    `mapstructure:"field_end_positions"`
	FieldJustify        []string `mapstructure:"field_justify"`
	FieldSeparator      string   `mapstructure:"field_separator"`
	RecordsFile         string   `mapstructure:"records_file"`
	RecordsDirectory    string   `mapstructure:"records_directory"`
	RecordsExtension    string   `mapstructure:"records_extension"`
	RecordsStartsWith   string   `mapstructure:"records_starts_with"`
	RecordsContains     string   `mapstructure:"records_contains"`
	RecordsNotContains  string   `mapstructure:"records_not_contains"`
	KeywordConverter    string   `mapstructure:"keyword_converter"`
	Output              string   `mapstructure:"output_file"`
	HeaderLines         int      `mapstructure:"header_lines"`
	CommentPrefix       string   `mapstructure:"comment_prefix"`
	LogLevel            string   `mapstructure:"log_level"`
}

// single-valued keys are decoded from the first entry of their list
var scalarKeys = map[string]bool{
	"type_name":            true,
	"field_separator":      true,
	"records_file":         true,
	"records_directory":    true,
	"records_extension":    true,
	"records_starts_with":  true,
	"records_contains":     true,
	"records_not_contains": true,
	"keyword_converter":    true,
	"output_file":          true,
	"header_lines":         true,
	"comment_prefix":       true,
	"log_level":            true,
}

// Decode converts a Mapping into a SchemaConfig. Numeric keys accept their
// textual form. Unrecognized keys are ignored.
func Decode(m Mapping) (*SchemaConfig, error) {
	input := make(map[string]interface{}, len(m))
	for k, v := range m {
		if scalarKeys[k] {
			input[k] = m.First(k)
		} else {
			input[k] = v
		}
	}
	cfg := &SchemaConfig{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(input); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Schema builds the record Schema this configuration describes. Start
// positions select the fixed-width layout, keeping any separator as the
// fallback delimiter for writing; otherwise the Schema is delimited. Every
// problem is reported at once.
func (c *SchemaConfig) Schema() (tabrec.Schema, error) {
	var multierr *multierror.Error
	n := len(c.FieldNames)
	if n == 0 {
		return nil, fmt.Errorf("field_names must list at least one field")
	}
	checkLen := func(key string, l int) {
		if l != 0 && l != n {
			multierr = multierror.Append(multierr, fmt.Errorf("%s has %d entries, but field_names has %d", key, l, n))
		}
	}
	checkLen("field_types", len(c.FieldTypes))
	checkLen("field_start_positions", len(c.FieldStartPositions))
	checkLen("field_end_positions", len(c.FieldEndPositions))
	checkLen("field_justify", len(c.FieldJustify))
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}

	fields := make([]schema.Field, n)
	for i, name := range c.FieldNames {
		f := schema.Field{Name: name, Start: schema.Undeclared, End: schema.Undeclared}
		if len(c.FieldTypes) > 0 {
			colType, err := tabrec.ColumnTypeFromTag(c.FieldTypes[i])
			if err != nil {
				multierr = multierror.Append(multierr, fmt.Errorf("field %s: %w", name, err))
			}
			f.Type = colType
		}
		if len(c.FieldStartPositions) > 0 {
			f.Start = c.FieldStartPositions[i]
		}
		if len(c.FieldEndPositions) > 0 {
			f.End = c.FieldEndPositions[i]
		}
		if len(c.FieldJustify) > 0 {
			f.Justify = tabrec.ParseJustification(c.FieldJustify[i])
		}
		fields[i] = f
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}

	if len(c.FieldStartPositions) > 0 {
		return schema.CreateFixedWidthSchema(c.TypeName, fields, c.Delimiter())
	}
	return schema.CreateDelimitedSchema(c.TypeName, fields, c.Delimiter())
}

// Delimiter resolves field_separator, or returns "" if none is configured
func (c *SchemaConfig) Delimiter() string {
	if c.FieldSeparator == "" {
		return ""
	}
	return schema.ResolveDelimiter(c.FieldSeparator)
}

// Source returns the records to read: the files beneath records_directory
// matching records_extension, records_starts_with, records_contains and
// records_not_contains if a directory is configured, otherwise records_file
func (c *SchemaConfig) Source() (file.Source, error) {
	if c.RecordsDirectory == "" && c.RecordsFile == "" {
		return file.Source{}, fmt.Errorf("neither records_file nor records_directory is configured")
	}
	return file.Source{
		File:        c.RecordsFile,
		Directory:   c.RecordsDirectory,
		Extension:   c.RecordsExtension,
		StartsWith:  c.RecordsStartsWith,
		Contains:    c.RecordsContains,
		NotContains: c.RecordsNotContains,
	}, nil
}

// OutputFile returns output_file. An empty result lets the writer generate a name.
func (c *SchemaConfig) OutputFile() string {
	return strings.TrimSpace(c.Output)
}

// Converter looks up keyword_converter in the KeywordConverter registry.
// It returns nil when none is configured.
func (c *SchemaConfig) Converter() (tabrec.KeywordConverter, error) {
	if c.KeywordConverter == "" {
		return nil, nil
	}
	return tabrec.GetKeywordConverter(c.KeywordConverter)
}

// ParserConf returns reader options for this configuration
func (c *SchemaConfig) ParserConf() (*parser.ParserConf, error) {
	converter, err := c.Converter()
	if err != nil {
		return nil, err
	}
	return &parser.ParserConf{
		HeaderLines:      c.HeaderLines,
		Comment:          c.CommentPrefix,
		KeywordConverter: converter,
	}, nil
}

// Level returns the configured log level, defaulting to logging.InfoLevel
func (c *SchemaConfig) Level() int {
	if c.LogLevel == "" {
		return logging.InfoLevel
	}
	return logging.ParseLevel(c.LogLevel)
}
