package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/entry"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestEntriesTruncatesContent(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 12, ShowID: true}
	e := &entry.Entry{
		ID:      "abc",
		Content: "a very long line of journal text",
		Date:    entry.NewTimestamp(time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)),
		Emotion: &emotion.Result{Label: emotion.Happy, Confidence: 0.9},
	}
	pp.Entries(e)
	out := buf.String()
	for _, want := range []string{"abc", "2025-03-01 09:30", "happy", "90%", "…"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "journal text") {
		t.Fatalf("expected content truncated:\n%s", out)
	}
}

func TestReportEmpty(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Report(analytics.Analyze(nil, analytics.Last7Days, time.Now()))
	if !strings.Contains(buf.String(), "No emotion data available") {
		t.Fatalf("expected empty message:\n%s", buf.String())
	}
}

func TestReportPrintsSections(t *testing.T) {
	noColor(t)
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	entries := []*entry.Entry{
		{ID: "1", Content: "a", Date: entry.NewTimestamp(now.Add(-time.Hour)), Emotion: &emotion.Result{Label: emotion.Calm, Confidence: 0.8, Feedback: emotion.Bool(true)}},
		{ID: "2", Content: "b", Date: entry.NewTimestamp(now.Add(-26 * time.Hour)), Emotion: &emotion.Result{Label: emotion.Sad, Confidence: 0.4}},
	}
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Report(analytics.Analyze(entries, analytics.Last7Days, now))
	out := buf.String()
	for _, want := range []string{"Last 7 days", "Most common", "Accuracy", "100.0%", "2025-03-14", "2025-03-15", "0.80"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestBarAscii(t *testing.T) {
	noColor(t)
	if got := Bar(emotion.Happy, 0.5, 10); got != "#####....." {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := Bar(emotion.Happy, 2, 4); got != "####" {
		t.Fatalf("expected full bar, got %q", got)
	}
}

func TestFaded(t *testing.T) {
	if got := Faded(emotion.Happy, 1); got != "#22c55e" {
		t.Fatalf("full strength should be the palette colour, got %s", got)
	}
	if got := Faded(emotion.Happy, 0); got != background {
		t.Fatalf("zero strength should be the background, got %s", got)
	}
}

func TestDominant(t *testing.T) {
	l, v := Dominant(analytics.DayBucket{Sad: 0.4, Calm: 0.4, Happy: 0.1})
	if l != emotion.Sad || v != 0.4 {
		t.Fatalf("expected sad tie-break, got %s %v", l, v)
	}
}

func TestCalendar(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Calendar(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), []analytics.DayBucket{{Date: "2025-02-03", Happy: 1, Count: 1}})
	out := buf.String()
	if !strings.Contains(out, "February 2025") || !strings.Contains(out, "28") {
		t.Fatalf("unexpected calendar:\n%s", out)
	}
}
