package commands

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/commands/options"
	"tableflip.dev/innervoice/pkg/prompt"
	"tableflip.dev/innervoice/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Write a journal entry and detect its emotion",
		Example: `
innervoice add had a lovely walk in the sun
innervoice add   # prompts for the entry
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			content := strings.Join(args, " ")
			if strings.TrimSpace(content) == "" {
				if !isatty.IsTerminal(os.Stdin.Fd()) {
					return oo.HandleError(errEmptyEntry)
				}
				var err error
				content, err = prompt.Entry(prompt.IO{})
				if err != nil {
					return err
				}
			}

			_, svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			a := add.Add{
				Service: svc,
				Content: content,
				JSON:    oo.JSON,
			}
			err = a.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
