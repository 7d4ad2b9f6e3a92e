package analytics

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/innervoice/pkg/entry"
)

const (
	csvHeader     = "Date,Content,Emotion,Confidence,Feedback"
	csvDateLayout = "2006-01-02 15:04:05"
	notAvailable  = "N/A"
)

// ExportCSV renders entries as CSV text, one row per entry in the given order.
// Entries whose date did not parse are skipped. Content is always quoted; the
// remaining columns never contain a delimiter.
func ExportCSV(entries []*entry.Entry, opts ...Option) string {
	cfg := applyOptions(opts)

	var b strings.Builder
	b.WriteString(csvHeader)
	for _, e := range entries {
		if e == nil || !e.Date.Valid() {
			continue
		}
		b.WriteByte('\n')
		writeRow(&b, e, cfg.Location)
	}
	return b.String()
}

func writeRow(b *strings.Builder, e *entry.Entry, loc *time.Location) {
	date := e.Date.In(loc).Format(csvDateLayout)

	label, confidence, feedback := notAvailable, notAvailable, notAvailable
	if e.Emotion != nil {
		label = e.Emotion.Label.String()
		confidence = fmt.Sprintf("%.1f%%", e.Emotion.Clamp().Confidence*100)
		feedback = e.Emotion.FeedbackString()
	}

	b.WriteString(date)
	b.WriteByte(',')
	b.WriteString(QuoteField(e.Content))
	b.WriteByte(',')
	b.WriteString(label)
	b.WriteByte(',')
	b.WriteString(confidence)
	b.WriteByte(',')
	b.WriteString(feedback)
}

// QuoteField wraps s in double quotes, doubling any quote inside it.
func QuoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportFilename names an export taken at now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("innervoice-export-%s.csv", now.Format(dayLayout))
}
