package remove

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/app"
)

type Remove struct {
	Service *app.Service
	IDs     []string
}

func (n *Remove) Do(ctx context.Context) error {
	for _, id := range n.IDs {
		if err := n.Service.Delete(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		_, _ = fmt.Fprintf(color.Output, "deleted %s\n", id)
	}
	return nil
}
