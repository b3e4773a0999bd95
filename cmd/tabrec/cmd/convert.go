package cmd

import (
	"fmt"

	"github.com/go-sif/tabrec"
	"github.com/go-sif/tabrec/datasink/file"
	"github.com/go-sif/tabrec/logging"
	"github.com/spf13/cobra"
)

func newConvertCmd(e *env) *cobra.Command {
	o := &readOpts{}
	c := &cobra.Command{
		Use:   "convert <input-config> <output-config>",
		Short: "Read records with one configuration and append them in the layout of another",
		Long: `convert reads the records described by input-config, matches their fields by
name to the schema of output-config, and appends them to its output_file (or a
generated <TypeName>_<timestamp> file). Fields missing from the input are written empty.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inCfg, inSchema, err := e.loadConfig(args[0])
			if err != nil {
				return err
			}
			outCfg, outSchema, err := e.loadConfig(args[1])
			if err != nil {
				return err
			}
			ctx := e.withLogger(cmd.Context(), inCfg)
			records, err := e.readRecords(ctx, inCfg, inSchema, o)
			if err != nil {
				return err
			}
			converted := make([]*tabrec.Record, len(records))
			for i, r := range records {
				converted[i] = tabrec.CreateRecordFromFields(outSchema, r.Fields())
			}
			sink := file.CreateDataSink(outCfg.OutputFile(), outSchema, &file.DataSinkConf{
				Fs:        e.fs,
				Delimiter: outCfg.Delimiter(),
			})
			n, err := sink.Write(ctx, converted)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Debug("convert finished", "read", len(records), "written", n)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", n, sink.Path())
			return nil
		},
	}
	o.register(c)
	return c
}
