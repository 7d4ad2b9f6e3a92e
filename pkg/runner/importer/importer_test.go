package importer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/entry"
	"tableflip.dev/innervoice/pkg/store"
)

type sliceStore struct {
	entries []*entry.Entry
}

func (s *sliceStore) ListAll(context.Context) []*entry.Entry { return s.entries }
func (s *sliceStore) Get(context.Context, string) (*entry.Entry, error) {
	return nil, store.ErrNotFound
}
func (s *sliceStore) Store(e *entry.Entry) error {
	s.entries = append(s.entries, e.Clone())
	return nil
}
func (s *sliceStore) Delete(*entry.Entry) error                         { return nil }
func (s *sliceStore) Watch(context.Context) (<-chan store.Event, error) { return nil, nil }

func TestImportFromFile(t *testing.T) {
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	defer func() { color.Output = prev }()

	body := `[
  {"id": "keep-me", "content": "sunny walk", "date": "2025-03-14T09:00:00Z", "emotion": {"label": "happy", "confidence": 0.9}},
  {"content": "no id yet", "date": "2025-03-15T09:00:00Z"},
  {"id": "blank", "content": "   ", "date": "2025-03-15T10:00:00Z"}
]`
	path := filepath.Join(t.TempDir(), "entries.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	ss := &sliceStore{}
	n := Import{Service: &app.Service{Persistence: ss}, Path: path}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	if len(ss.entries) != 2 {
		t.Fatalf("expected 2 stored entries, got %d", len(ss.entries))
	}
	if ss.entries[0].ID != "keep-me" {
		t.Fatalf("expected id to be kept, got %q", ss.entries[0].ID)
	}
	if ss.entries[1].ID == "" {
		t.Fatal("expected a generated id")
	}
	if !strings.Contains(buf.String(), "imported 2 of 3 entries") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestImportMissingFile(t *testing.T) {
	n := Import{Service: &app.Service{Persistence: &sliceStore{}}, Path: filepath.Join(t.TempDir(), "nope.json")}
	if err := n.Do(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
