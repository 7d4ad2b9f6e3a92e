package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
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

func TestExportWritesDatedFile(t *testing.T) {
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	defer func() { color.Output = prev }()

	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	e := entry.New(`said "hi"`, now.Add(-time.Hour))
	e.Emotion = &emotion.Result{Label: emotion.Happy, Confidence: 0.5, Feedback: emotion.Bool(false)}

	dir := filepath.Join(t.TempDir(), "exports")
	n := Export{
		Service: &app.Service{Persistence: listStore{e}, Location: time.UTC},
		Range:   analytics.Last7Days,
		Dir:     dir,
		Now:     now,
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	path := filepath.Join(dir, "innervoice-export-2025-03-15.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "Date,Content,Emotion,Confidence,Feedback\n2025-03-15 11:00:00,\"said \"\"hi\"\"\",happy,50.0%,Inaccurate"
	if string(data) != want {
		t.Fatalf("csv = %q\nwant %q", data, want)
	}
	if !strings.Contains(buf.String(), "wrote "+path) {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
