package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/innervoice/pkg/runner/reclassify"
)

func addReclassify(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reclassify <id>...",
		Short: "Run the classifier again on stored entries",
		Long: base.Wrap80(`Reclassify replaces the emotion of each entry with a fresh classification.
Earlier feedback is dropped since it rated the old result.`),
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
			r := reclassify.Reclassify{
				Service: svc,
				IDs:     args,
			}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
