package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/runner/importer"
)

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON array of entries",
		Example: `
innervoice import entries.json
cat entries.json | innervoice import -
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a file, or - for stdin")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, svc, err := loadService()
			if err != nil {
				return err
			}
			i := importer.Import{
				Service: svc,
				Path:    args[0],
			}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
