package importer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/app"
)

// Import loads a JSON array of entries from Path, or stdin when Path is "-".
type Import struct {
	Service *app.Service
	Path    string
}

func (n *Import) Do(ctx context.Context) error {
	var r io.Reader = os.Stdin
	if n.Path != "" && n.Path != "-" {
		f, err := os.Open(n.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	entries, err := app.DecodeEntries(r)
	if err != nil {
		return err
	}
	count, err := n.Service.Import(ctx, entries)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "imported %d of %d entries\n", count, len(entries))
	return nil
}
