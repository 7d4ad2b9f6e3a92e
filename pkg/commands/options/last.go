package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/timeutil"
)

// LastOptions narrows a listing to a lookback window such as 3d or 2w.
type LastOptions struct {
	Last string
}

func AddLastArg(cmd *cobra.Command, o *LastOptions) {
	cmd.Flags().StringVar(&o.Last, "last", "",
		"Only entries from this window, e.g. 12h, 3d, 2w or 1mo.")
}

// Window returns the parsed window and its label. A zero duration means no
// window was requested.
func (o *LastOptions) Window() (time.Duration, string, error) {
	if o.Last == "" {
		return 0, "", nil
	}
	return timeutil.ParseWindow(o.Last)
}
