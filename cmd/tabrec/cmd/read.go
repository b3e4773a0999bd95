package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/config"
	"github.com/go-sif/tabrec/datasource/file"
	"github.com/go-sif/tabrec/datasource/memory"
	"github.com/go-sif/tabrec/datasource/parser"
	"github.com/go-sif/tabrec/datasource/parser/jsonl"
	"github.com/go-sif/tabrec/encoding/jsonrec"
	"github.com/go-sif/tabrec/formatter"
	"github.com/go-sif/tabrec/operations/filter"
	"github.com/spf13/cobra"
)

// readOpts are the flags shared by read and convert
type readOpts struct {
	format      string
	stdin       bool
	strict      bool
	parallelism int64
	where       []string
	sample      int
	seed        int64
	dedupe      []string
}

func (o *readOpts) register(c *cobra.Command) {
	c.Flags().StringVar(&o.format, "format", "text", "Input format: text (fixed-width or delimited) or jsonl")
	c.Flags().BoolVar(&o.stdin, "stdin", false, "Read records from standard input instead of the configured source")
	c.Flags().BoolVar(&o.strict, "strict", false, "Fail when a token cannot be coerced instead of storing null")
	c.Flags().Int64Var(&o.parallelism, "parallelism", 1, "Number of files parsed at once")
	c.Flags().StringArrayVar(&o.where, "where", nil, `Keep records matching "field op value" (op: eq, neq, contains, gt, lt); repeatable`)
	c.Flags().IntVar(&o.sample, "sample", -1, "Keep a random sample of at most n records")
	c.Flags().Int64Var(&o.seed, "seed", 1, "Random seed for --sample")
	c.Flags().StringSliceVar(&o.dedupe, "dedupe", nil, "Drop records repeating these fields (use \"*\" for all fields)")
}

// operations translates the filter flags into filter Operations
func (o *readOpts) operations() ([]filter.Operation, error) {
	var ops []filter.Operation
	if len(o.where) > 0 {
		preds := make([]filter.Predicate, 0, len(o.where))
		for _, w := range o.where {
			parts := strings.SplitN(strings.TrimSpace(w), " ", 3)
			if len(parts) < 2 {
				return nil, fmt.Errorf("invalid --where %q, expected \"field op value\"", w)
			}
			cmp, err := filter.ParseComparison(parts[1])
			if err != nil {
				return nil, err
			}
			operand := ""
			if len(parts) == 3 {
				operand = parts[2]
			}
			preds = append(preds, filter.Value(parts[0], cmp, operand))
		}
		ops = append(ops, filter.Where(filter.All(preds...)))
	}
	if len(o.dedupe) == 1 && o.dedupe[0] == "*" {
		ops = append(ops, filter.Dedupe())
	} else if len(o.dedupe) > 0 {
		ops = append(ops, filter.Dedupe(o.dedupe...))
	}
	if o.sample >= 0 {
		ops = append(ops, filter.Random(o.sample, o.seed))
	}
	return ops, nil
}

// readRecords reads and filters the records a configuration describes
func (e *env) readRecords(ctx context.Context, cfg *config.SchemaConfig, s tabrec.Schema, o *readOpts) ([]*tabrec.Record, error) {
	pconf, err := cfg.ParserConf()
	if err != nil {
		return nil, err
	}
	pconf.StrictCoercion = o.strict
	var newParser func() parser.ContextParser
	switch o.format {
	case "text":
		newParser = func() parser.ContextParser { return parser.CreateParser(pconf) }
	case "jsonl":
		jconf := &jsonl.ParserConf{HeaderLines: pconf.HeaderLines, KeywordConverter: pconf.KeywordConverter, StrictCoercion: o.strict}
		newParser = func() parser.ContextParser { return jsonl.CreateParser(jconf) }
	default:
		return nil, fmt.Errorf("unknown --format %q", o.format)
	}

	var records []*tabrec.Record
	if o.stdin {
		data, err := io.ReadAll(e.in)
		if err != nil {
			return nil, err
		}
		records, err = memory.CreateDataSource([][]byte{data}, s, &memory.DataSourceConf{Parser: pconf, NewParser: newParser}).Read(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		src, err := cfg.Source()
		if err != nil {
			return nil, err
		}
		records, err = file.ReadRecords(ctx, s, src, &file.DataSourceConf{
			Fs:          e.fs,
			Parser:      pconf,
			Parallelism: o.parallelism,
			NewParser:   newParser,
		})
		if err != nil {
			return nil, err
		}
	}
	ops, err := o.operations()
	if err != nil {
		return nil, err
	}
	return filter.Apply(records, ops...)
}

func newReadCmd(e *env) *cobra.Command {
	o := &readOpts{}
	var output string
	c := &cobra.Command{
		Use:   "read <config>",
		Short: "Read the records a configuration describes and print them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := e.loadConfig(args[0])
			if err != nil {
				return err
			}
			ctx := e.withLogger(cmd.Context(), cfg)
			records, err := e.readRecords(ctx, cfg, s, o)
			if err != nil {
				return err
			}
			switch output {
			case "jsonl":
				_, err = jsonrec.WriteLines(cmd.OutOrStdout(), records)
				return err
			case "text":
				f := formatter.CreateFormatter(s, cfg.Delimiter())
				for _, r := range records {
					if _, err := io.WriteString(cmd.OutOrStdout(), f.Format(r, s)); err != nil {
						return err
					}
				}
				return nil
			default:
				return fmt.Errorf("unknown --output %q", output)
			}
		},
	}
	o.register(c)
	c.Flags().StringVarP(&output, "output", "o", "jsonl", "Output format: jsonl or text")
	return c
}
