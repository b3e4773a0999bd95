package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/config"
	"github.com/go-sif/tabrec/schema"
	"github.com/spf13/cobra"
)

func newDescribeCmd(e *env) *cobra.Command {
	var dump, properties bool
	c := &cobra.Command{
		Use:   "describe <config>",
		Short: "Print the schema a configuration describes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if properties {
				m, err := config.LoadFile(e.fs, args[0])
				if err != nil {
					return err
				}
				return config.WriteProperties(out, m)
			}
			cfg, s, err := e.loadConfig(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(out, schema.Describe(s))
			if src, err := cfg.Source(); err == nil {
				fmt.Fprintf(out, "source: %s\n", src)
			}
			if cfg.KeywordConverter != "" {
				fmt.Fprintf(out, "keyword converter: %s (registered: %v)\n", cfg.KeywordConverter, tabrec.KeywordConverterNames())
			}
			if dump {
				spew.Fdump(out, cfg)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&dump, "dump", false, "Also dump the decoded configuration")
	c.Flags().BoolVar(&properties, "properties", false, "Print the configuration in properties form instead")
	return c
}
