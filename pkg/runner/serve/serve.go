package serve

import (
	"context"

	"tableflip.dev/innervoice/pkg/app"
)

// Serve runs the HTTP API until ctx is cancelled.
type Serve struct {
	Service *app.Service
	Config  Config
}

func (n *Serve) Do(ctx context.Context) error {
	return NewServer(n.Config, n.Service).Run(ctx)
}
