// Package cmd implements the tabrec command line: reading, converting and
// describing records files from a schema configuration.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/config"
	"github.com/go-sif/tabrec/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// env carries what every command shares
type env struct {
	fs       afero.Fs
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	logLevel string
}

// Execute runs the tabrec command against the OS filesystem and standard streams
func Execute() error {
	root := NewRootCmd(afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr)
	return root.ExecuteContext(context.Background())
}

// NewRootCmd builds the tabrec command tree
func NewRootCmd(fs afero.Fs, in io.Reader, out io.Writer, errOut io.Writer) *cobra.Command {
	e := &env{fs: fs, in: in, out: out, errOut: errOut}
	root := &cobra.Command{
		Use:   "tabrec",
		Short: "tabrec - fixed-width and delimited records files",
		Long: `tabrec reads and writes line-oriented records files described by a schema
configuration (.properties, .json or .yaml).`,
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); overrides log_level")
	root.AddCommand(newReadCmd(e), newConvertCmd(e), newDescribeCmd(e))
	return root
}

// loadConfig loads and decodes a schema configuration file
func (e *env) loadConfig(path string) (*config.SchemaConfig, tabrec.Schema, error) {
	m, err := config.LoadFile(e.fs, path)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Decode(m)
	if err != nil {
		return nil, nil, err
	}
	s, err := cfg.Schema()
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}

// withLogger attaches a logger writing to errOut at the flag's level, or the configuration's
func (e *env) withLogger(ctx context.Context, cfg *config.SchemaConfig) context.Context {
	level := cfg.Level()
	if e.logLevel != "" {
		level = logging.ParseLevel(e.logLevel)
	}
	return logging.WithLogger(ctx, logging.CreateLogger(e.errOut, level))
}
