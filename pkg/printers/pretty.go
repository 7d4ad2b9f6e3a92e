package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/innervoice/pkg/entry"
)

const defaultWidth = 60

type PrettyPrint struct {
	ShowID bool
	// Location is used to render entry dates. Defaults to UTC.
	Location *time.Location
	// Width bounds the content column. Defaults to 60.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) location() *time.Location {
	if pp.Location == nil {
		return time.UTC
	}
	return pp.Location
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return defaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Entries prints one row per entry in the given order.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		if e == nil {
			continue
		}
		when, _, content := e.Row(pp.location())
		content = truncate.StringWithTail(strings.Join(strings.Fields(content), " "), uint(pp.width()), "…")

		label, confidence, feedback := f.Sprint("-"), "", ""
		if e.Emotion != nil {
			label = Swatch(e.Emotion.Label) + " " + e.Emotion.Label.String()
			confidence = fmt.Sprintf("%3.0f%%", e.Emotion.Clamp().Confidence*100)
			feedback = feedbackMark(e.Emotion.Feedback)
		}

		row := []interface{}{f.Sprint(when), label, confidence, feedback, content}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Entry prints a single entry with its content wrapped.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	if e == nil {
		pp.none()
		return
	}
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	when, _, _ := e.Row(pp.location())
	_, _ = f.Fprintf(pp.out(), "%s  %s\n", e.ID, when)
	if e.Emotion != nil {
		_, _ = b.Fprintf(pp.out(), "%s %s", Swatch(e.Emotion.Label), e.Emotion.Label.Title())
		_, _ = f.Fprintf(pp.out(), " %.1f%% %s\n", e.Emotion.Clamp().Confidence*100, e.Emotion.FeedbackString())
	}
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(e.Content, pp.width()))
	_, _ = fmt.Fprintln(pp.out(), "")
}

func feedbackMark(fb *bool) string {
	switch {
	case fb == nil:
		return ""
	case *fb:
		return color.GreenString("✓")
	default:
		return color.RedString("✗")
	}
}
