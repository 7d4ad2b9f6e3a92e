package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete journal entries",
		Example: `
innervoice delete 5b1c...
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errNoID
			}
			return nil
		},
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadService()
			if err != nil {
				return err
			}
			r := remove.Remove{
				Service: svc,
				IDs:     args,
			}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
