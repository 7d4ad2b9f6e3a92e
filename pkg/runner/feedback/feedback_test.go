package feedback

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/entry"
	"tableflip.dev/innervoice/pkg/store"
)

type mapStore map[string]*entry.Entry

func (s mapStore) ListAll(context.Context) []*entry.Entry { return nil }
func (s mapStore) Get(_ context.Context, id string) (*entry.Entry, error) {
	e, ok := s[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return e.Clone(), nil
}
func (s mapStore) Store(e *entry.Entry) error {
	s[e.ID] = e.Clone()
	return nil
}
func (s mapStore) Delete(e *entry.Entry) error {
	delete(s, e.ID)
	return nil
}
func (s mapStore) Watch(context.Context) (<-chan store.Event, error) { return nil, nil }

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	t.Cleanup(func() { color.Output = prev })
	return &buf
}

func newService(entries ...*entry.Entry) (*app.Service, mapStore) {
	ms := mapStore{}
	for _, e := range entries {
		ms[e.ID] = e
	}
	return &app.Service{Persistence: ms, Location: time.UTC}, ms
}

func TestFeedbackMarksEntry(t *testing.T) {
	buf := capture(t)
	e := &entry.Entry{ID: "a1", Content: "sunny", Date: entry.NewTimestamp(time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)),
		Emotion: &emotion.Result{Label: emotion.Happy, Confidence: 0.8}}
	svc, ms := newService(e)

	n := Feedback{Service: svc, ID: "a1", Value: "inaccurate"}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if fb := ms["a1"].Emotion.Feedback; fb == nil || *fb {
		t.Fatalf("expected inaccurate feedback, got %v", fb)
	}
	if !strings.Contains(buf.String(), "a1 marked inaccurate") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestFeedbackClear(t *testing.T) {
	buf := capture(t)
	e := &entry.Entry{ID: "a1", Content: "sunny", Date: entry.NewTimestamp(time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)),
		Emotion: &emotion.Result{Label: emotion.Happy, Confidence: 0.8, Feedback: emotion.Bool(true)}}
	svc, ms := newService(e)

	n := Feedback{Service: svc, ID: "a1", Value: "clear"}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if ms["a1"].Emotion.Feedback != nil {
		t.Fatal("expected feedback to be cleared")
	}
	if !strings.Contains(buf.String(), "a1 feedback cleared") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestFeedbackErrors(t *testing.T) {
	capture(t)
	unclassified := &entry.Entry{ID: "u1", Content: "meh", Date: entry.NewTimestamp(time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC))}
	svc, _ := newService(unclassified)

	if err := (&Feedback{Service: svc, ID: "u1", Value: "maybe"}).Do(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
	if err := (&Feedback{Service: svc, ID: "u1", Value: "accurate"}).Do(context.Background()); !errors.Is(err, app.ErrUnclassified) {
		t.Fatalf("expected ErrUnclassified, got %v", err)
	}
	if err := (&Feedback{Service: svc, ID: "missing", Value: "accurate"}).Do(context.Background()); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
