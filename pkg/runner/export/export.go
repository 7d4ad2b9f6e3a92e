package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/app"
)

// Export writes the CSV export of a range to Dir, or to stdout.
type Export struct {
	Service *app.Service
	Range   analytics.Range
	Dir     string
	Stdout  bool
	Now     time.Time
}

func (n *Export) Do(ctx context.Context) error {
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	name, csv, err := n.Service.Export(ctx, n.Range, now)
	if err != nil {
		return err
	}

	if n.Stdout {
		_, err := fmt.Fprintln(os.Stdout, csv)
		return err
	}

	dir := n.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, _ = fmt.Fprintf(color.Output, "wrote %s\n", path)
	return nil
}
