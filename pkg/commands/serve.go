package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/commands/options"
	"tableflip.dev/innervoice/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	addr := "127.0.0.1:8000"
	origins := ""
	quiet := false

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analytics HTTP API",
		Example: `
innervoice serve --addr :8000
curl -s localhost:8000/api/v1/analytics?range=7d
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
			s := serve.Serve{
				Service: svc,
				Config: serve.Config{
					Addr:         addr,
					DefaultRange: r,
					AllowOrigins: origins,
					Quiet:        quiet,
				},
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddRangeArg(cmd, ro)
	cmd.Flags().StringVar(&addr, "addr", addr, "Address to listen on.")
	cmd.Flags().StringVar(&origins, "origins", "", "Comma separated CORS origins. Empty allows any origin.")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Disable the access log.")

	topLevel.AddCommand(cmd)
}
