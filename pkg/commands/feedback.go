package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/prompt"
	"tableflip.dev/innervoice/pkg/runner/feedback"
)

func addFeedback(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "feedback <id> [accurate|inaccurate|clear]",
		Short: "Rate whether the detected emotion was accurate",
		Example: `
innervoice feedback 5b1c... accurate
innervoice feedback 5b1c...   # asks
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("requires an entry id and an optional rating")
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

			value := ""
			if len(args) == 2 {
				value = args[1]
			} else {
				if !isatty.IsTerminal(os.Stdin.Fd()) {
					return errors.New("requires a rating: accurate, inaccurate or clear")
				}
				e, err := svc.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				label := "the emotion"
				if e.Classified() {
					label = e.Emotion.Label.String()
				}
				if value, err = prompt.Feedback(prompt.IO{}, label); err != nil {
					return err
				}
			}

			f := feedback.Feedback{
				Service: svc,
				ID:      args[0],
				Value:   value,
			}
			return f.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
