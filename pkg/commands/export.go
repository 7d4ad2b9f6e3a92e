package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/commands/options"
	"tableflip.dev/innervoice/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	dir := "."
	stdout := false

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries of a range as CSV",
		Example: `
innervoice export --range 90d
innervoice export --stdout > feelings.csv
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, svc, err := loadService()
			if err != nil {
				return err
			}
			r, err := ro.Resolve(cfg.DefaultRange())
			if err != nil {
				return err
			}
			e := export.Export{
				Service: svc,
				Range:   r,
				Dir:     dir,
				Stdout:  stdout,
			}
			return e.Do(cmd.Context())
		},
	}

	options.AddRangeArg(cmd, ro)
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory the CSV file is written to.")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Write the CSV to stdout instead of a file.")

	topLevel.AddCommand(cmd)
}
