package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/commands/options"
	"tableflip.dev/innervoice/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	notify := false

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint the summary whenever the journal changes",
		Example: `
innervoice watch --range 7d --notify
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
			w := watch.Watch{
				Service: svc,
				Range:   r,
				Notify:  notify,
			}
			return w.Do(cmd.Context())
		},
	}

	options.AddRangeArg(cmd, ro)
	cmd.Flags().BoolVar(&notify, "notify", false, "Raise a desktop notification when the most common emotion changes.")

	topLevel.AddCommand(cmd)
}
