package list

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/entry"
	"tableflip.dev/innervoice/pkg/printers"
)

// List prints entries newest first. Last, when set, narrows the range to
// entries written within that window.
type List struct {
	Service *app.Service
	Range   analytics.Range
	Last    time.Duration
	Label   string
	ShowID  bool
	JSON    bool
	Now     time.Time
}

func (n *List) Do(ctx context.Context) error {
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	all, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}
	entries := analytics.Filter(all, n.Range, now)
	title := n.Range.Label()
	if n.Last > 0 {
		entries = Since(entries, now.Add(-n.Last))
		title = "Last " + n.Label
	}

	if n.JSON {
		b, err := json.Marshal(entries)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Location: n.Service.Location}
	pp.TitleWithCount(title, len(entries))
	pp.Entries(entries...)
	return nil
}

// Since keeps entries dated at or after since.
func Since(entries []*entry.Entry, since time.Time) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e == nil || !e.Date.Valid() || e.Date.Before(since) {
			continue
		}
		out = append(out, e)
	}
	return out
}
