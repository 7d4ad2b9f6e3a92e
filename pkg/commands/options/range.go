package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/analytics"
)

// RangeOptions selects the analytics time range.
type RangeOptions struct {
	Key string
}

func AddRangeArg(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVarP(&o.Key, "range", "r", "",
		"Time range: 7d, 30d, 90d or all. Defaults to the configured range.")
	_ = cmd.RegisterFlagCompletionFunc("range", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return analytics.RangeKeys(), cobra.ShellCompDirectiveNoFileComp
	})
}

// Resolve parses the flag, falling back to fallback and then to the 30 day
// default.
func (o *RangeOptions) Resolve(fallback string) (analytics.Range, error) {
	key := o.Key
	if key == "" {
		key = fallback
	}
	if key == "" {
		return analytics.DefaultRange, nil
	}
	return analytics.ParseRange(key)
}
