package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/printers"
)

// Stats prints the analytics report for a range.
type Stats struct {
	Service  *app.Service
	Range    analytics.Range
	JSON     bool
	Calendar bool
	Now      time.Time
}

func (n *Stats) Do(ctx context.Context) error {
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	report, err := n.Service.Analyze(ctx, n.Range, now)
	if err != nil {
		return err
	}

	if n.JSON {
		b, err := json.Marshal(report)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}

	pp := printers.PrettyPrint{Location: n.Service.Location}
	pp.Report(report)
	if n.Calendar && !report.Empty() {
		pp.Calendar(now, report.Trend)
	}
	return nil
}
