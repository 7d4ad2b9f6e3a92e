package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/commands/options"
	"tableflip.dev/innervoice/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	lo := &options.LastOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List journal entries, newest first",
		Example: `
innervoice list
innervoice list --range 7d --show-id
innervoice list --last 2d --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			r, err := ro.Resolve(cfg.DefaultRange())
			if err != nil {
				return output.HandleError(err)
			}
			last, label, err := lo.Window()
			if err != nil {
				return output.HandleError(err)
			}
			l := list.List{
				Service: svc,
				Range:   r,
				Last:    last,
				Label:   label,
				ShowID:  ido.ShowID,
				JSON:    output.JSON,
			}
			err = l.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddRangeArg(cmd, ro)
	options.AddLastArg(cmd, lo)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
