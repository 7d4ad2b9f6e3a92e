package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/entry"
	"tableflip.dev/innervoice/pkg/store"
)

type listStore []*entry.Entry

func (s listStore) ListAll(context.Context) []*entry.Entry            { return s }
func (s listStore) Get(context.Context, string) (*entry.Entry, error) { return nil, store.ErrNotFound }
func (s listStore) Store(*entry.Entry) error                          { return nil }
func (s listStore) Delete(*entry.Entry) error                         { return nil }
func (s listStore) Watch(context.Context) (<-chan store.Event, error) { return nil, nil }

var now = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	t.Cleanup(func() { color.Output = prev })
	return &buf
}

func classified(l emotion.Label, c float64, feedback *bool) *entry.Entry {
	e := entry.New("text", now.Add(-time.Hour))
	e.Emotion = &emotion.Result{Label: l, Confidence: c, Feedback: feedback}
	return e
}

func TestStatsJSON(t *testing.T) {
	buf := capture(t)
	n := Stats{
		Service: &app.Service{Persistence: listStore{
			classified(emotion.Sad, 0.4, emotion.Bool(true)),
			classified(emotion.Sad, 0.6, emotion.Bool(false)),
			classified(emotion.Calm, 0.9, nil),
		}},
		Range: analytics.Last7Days,
		JSON:  true,
		Now:   now,
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	var got struct {
		Range   string `json:"range"`
		Summary struct {
			MostCommon struct {
				Label string `json:"label"`
				Count int    `json:"count"`
			} `json:"mostCommonEmotion"`
			Total        int     `json:"totalClassifiedEntries"`
			AccuracyRate float64 `json:"accuracyRate"`
		} `json:"summary"`
		Trend []map[string]any `json:"trend"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got.Range != "7d" || got.Summary.MostCommon.Label != "sad" || got.Summary.MostCommon.Count != 2 {
		t.Fatalf("unexpected report %+v", got)
	}
	if got.Summary.Total != 3 || got.Summary.AccuracyRate != 50 {
		t.Fatalf("unexpected summary %+v", got.Summary)
	}
	if len(got.Trend) != 1 || got.Trend[0]["date"] != "2025-03-15" {
		t.Fatalf("unexpected trend %+v", got.Trend)
	}
}

func TestStatsEmptyRange(t *testing.T) {
	buf := capture(t)
	n := Stats{
		Service:  &app.Service{Persistence: listStore{entry.New("unclassified", now)}},
		Range:    analytics.Last7Days,
		Calendar: true,
		Now:      now,
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "No emotion data available for this time range.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
