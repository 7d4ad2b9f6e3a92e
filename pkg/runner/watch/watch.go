package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gen2brain/beeep"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/printers"
)

// Watch reprints the summary of a range whenever the store changes. With
// Notify set, a desktop notification is raised when the most common emotion
// changes.
type Watch struct {
	Service *app.Service
	Range   analytics.Range
	Notify  bool
	// Notifier defaults to a beeep alert.
	Notifier func(title, message string) error
	Now      func() time.Time
}

func (n *Watch) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func (n *Watch) notifier() func(title, message string) error {
	if n.Notifier != nil {
		return n.Notifier
	}
	beeep.AppName = "InnerVoice"
	return func(title, message string) error {
		return beeep.Alert(title, message, "")
	}
}

func (n *Watch) Do(ctx context.Context) error {
	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Location: n.Service.Location}
	var last emotion.Label
	last, err = n.refresh(ctx, &pp, last)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if last, err = n.refresh(ctx, &pp, last); err != nil {
				return err
			}
		}
	}
}

func (n *Watch) refresh(ctx context.Context, pp *printers.PrettyPrint, last emotion.Label) (emotion.Label, error) {
	report, err := n.Service.Analyze(ctx, n.Range, n.now())
	if err != nil {
		return last, err
	}
	f := color.New(color.Faint)
	loc := pp.Location
	if loc == nil {
		loc = time.UTC
	}
	_, _ = f.Fprintf(color.Output, "%s\n", n.now().In(loc).Format("15:04:05"))
	if report.Summary == nil {
		pp.Report(report)
		return "", nil
	}
	pp.Summary(report.Summary)

	current := report.Summary.MostCommon.Label
	if n.Notify && Changed(last, current) {
		msg := fmt.Sprintf("Most common emotion over the %s is now %s.", report.RangeLabel, current.Title())
		if err := n.notifier()("InnerVoice", msg); err != nil {
			_, _ = fmt.Fprintf(color.Output, "notify: %v\n", err)
		}
	}
	return current, nil
}

// Changed reports whether the most common label moved from a known value.
// The first summary after startup is not a change.
func Changed(last, current emotion.Label) bool {
	return last != "" && last != current
}
