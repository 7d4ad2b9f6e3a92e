package reclassify

import (
	"context"

	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/printers"
)

type Reclassify struct {
	Service *app.Service
	IDs     []string
}

func (n *Reclassify) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Location: n.Service.Location}
	for _, id := range n.IDs {
		e, err := n.Service.Reclassify(ctx, id)
		if err != nil {
			return err
		}
		pp.Entry(e)
	}
	return nil
}
