package add

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/printers"
)

type Add struct {
	Service *app.Service
	Content string
	JSON    bool
}

func (n *Add) Do(ctx context.Context) error {
	e, err := n.Service.Add(ctx, n.Content)
	if err != nil {
		return err
	}

	if n.JSON {
		b, err := json.Marshal(e)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}

	pp := printers.PrettyPrint{Location: n.Service.Location}
	if !e.Classified() {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(color.Output, "stored without an emotion, no classifier is configured")
	}
	pp.Entry(e)
	return nil
}
