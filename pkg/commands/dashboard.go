package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/commands/options"
	"tableflip.dev/innervoice/pkg/runner/dashboard"
)

func addDashboard(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	dir := "."

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the live emotion dashboard",
		Example: `
innervoice dashboard
`,
		ValidArgs: []string{},
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
			return dashboard.Run(cmd.Context(), svc, r, dir)
		},
	}

	options.AddRangeArg(cmd, ro)
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory exports are written to.")

	topLevel.AddCommand(cmd)
}
