package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/commands/options"
	"tableflip.dev/innervoice/pkg/prompt"
	"tableflip.dev/innervoice/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	oo := &options.OutputOptions{}
	io := &options.InteractiveOptions{}
	calendar := false

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"report"},
		Short:   "Show the emotion summary, distribution and trend",
		Example: `
innervoice stats
innervoice stats --range 7d --calendar
innervoice stats -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			r, err := ro.Resolve(cfg.DefaultRange())
			if err != nil {
				return oo.HandleError(err)
			}
			if io.Interactive && isatty.IsTerminal(os.Stdin.Fd()) {
				if r, err = prompt.Range(prompt.IO{}, r); err != nil {
					return err
				}
			}
			s := stats.Stats{
				Service:  svc,
				Range:    r,
				JSON:     oo.JSON,
				Calendar: calendar,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddRangeArg(cmd, ro)
	options.AddOutputArg(cmd, oo)
	options.InteractiveArgs(cmd, io)
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Also draw a month calendar shaded by the dominant emotion of each day.")

	topLevel.AddCommand(cmd)
}
