package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/innervoice/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	r := mcp.Runner{Name: "innervoice"}
	transport := string(mcp.TransportHTTP)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes emotion analytics, CSV export, entries and
feedback through the Model Context Protocol.`,
		Example: `
innervoice mcp --transport stdio
innervoice mcp --addr 127.0.0.1:0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, svc, err := loadService()
			if err != nil {
				return err
			}
			r.Service = svc
			r.Version = version
			r.DefaultRange = cfg.DefaultRange()
			r.Transport = mcp.Transport(transport)
			r.Out = cmd.OutOrStdout()
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", transport, "transport to use: http or stdio")
	cmd.Flags().StringVar(&r.Addr, "addr", "127.0.0.1:8080", "listen address for the HTTP transport (port 0 picks one)")
	cmd.Flags().StringVar(&r.Path, "path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&r.TLSCert, "tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&r.TLSKey, "tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}
