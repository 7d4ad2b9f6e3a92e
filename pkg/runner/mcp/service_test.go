package mcp

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"
	"testing"
	"time"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/entry"
	"tableflip.dev/innervoice/pkg/store"
)

type memoryStore struct {
	entries map[string]*entry.Entry
}

func newMemoryStore(entries ...*entry.Entry) *memoryStore {
	m := &memoryStore{entries: make(map[string]*entry.Entry)}
	for _, e := range entries {
		m.entries[e.ID] = e
	}
	return m
}

func (m *memoryStore) ListAll(context.Context) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date.Time) })
	return out
}

func (m *memoryStore) Get(_ context.Context, id string) (*entry.Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return e.Clone(), nil
}

func (m *memoryStore) Store(e *entry.Entry) error {
	m.entries[e.ID] = e.Clone()
	return nil
}

func (m *memoryStore) Delete(e *entry.Entry) error {
	delete(m.entries, e.ID)
	return nil
}

func (m *memoryStore) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

var now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(entries ...*entry.Entry) (*Service, *memoryStore) {
	ms := newMemoryStore(entries...)
	svc := NewService(&app.Service{Persistence: ms, Now: func() time.Time { return now }})
	svc.Now = func() time.Time { return now }
	return svc, ms
}

func classified(id string, at time.Time, label emotion.Label, conf float64) *entry.Entry {
	return &entry.Entry{
		ID:      id,
		Content: "entry " + id,
		Date:    entry.NewTimestamp(at),
		Emotion: &emotion.Result{Label: label, Confidence: conf},
	}
}

func TestReportDefaultsToThirtyDays(t *testing.T) {
	svc, _ := newTestService(
		classified("1", now.AddDate(0, 0, -1), emotion.Happy, 0.9),
		classified("2", now.AddDate(0, 0, -45), emotion.Sad, 0.7),
	)
	report, err := svc.Report(context.Background(), "")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Range != analytics.Last30Days {
		t.Fatalf("expected 30d, got %s", report.Range)
	}
	if report.Summary == nil || report.Summary.TotalClassified != 1 {
		t.Fatalf("unexpected summary %+v", report.Summary)
	}

	all, err := svc.Report(context.Background(), "all")
	if err != nil {
		t.Fatal(err)
	}
	if all.Summary.TotalClassified != 2 {
		t.Fatalf("expected 2 classified for all, got %d", all.Summary.TotalClassified)
	}
}

func TestReportRejectsUnknownRange(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Report(context.Background(), "1y"); err == nil {
		t.Fatal("expected error for unknown range")
	}
}

func TestExportCSV(t *testing.T) {
	svc, _ := newTestService(classified("1", now.Add(-time.Hour), emotion.Calm, 0.5))
	name, csv, err := svc.ExportCSV(context.Background(), "7d")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "innervoice-export-2025-03-15.csv" {
		t.Fatalf("unexpected filename %q", name)
	}
	if !strings.HasPrefix(csv, "Date,Content,Emotion,Confidence,Feedback\n") {
		t.Fatalf("unexpected csv header:\n%s", csv)
	}
	if !strings.Contains(csv, `"entry 1",calm,50.0%,N/A`) {
		t.Fatalf("unexpected csv:\n%s", csv)
	}
}

func TestListEntriesLimit(t *testing.T) {
	svc, _ := newTestService(
		classified("1", now.Add(-1*time.Hour), emotion.Calm, 0.5),
		classified("2", now.Add(-2*time.Hour), emotion.Sad, 0.5),
		classified("3", now.Add(-3*time.Hour), emotion.Angry, 0.5),
	)
	got, err := svc.ListEntries(context.Background(), "7d", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("unexpected entries %+v", got)
	}
	if got[0].Color != "#8b5cf6" || got[0].Feedback != "N/A" {
		t.Fatalf("unexpected dto %+v", got[0])
	}
}

func TestAddEntryAndFeedback(t *testing.T) {
	svc, ms := newTestService()
	ctx := context.Background()

	dto, err := svc.AddEntry(ctx, "evening tea")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if dto.Emotion != "" {
		t.Fatalf("expected unclassified entry without a classifier, got %q", dto.Emotion)
	}
	if _, err := svc.SetFeedback(ctx, dto.ID, "accurate"); !errors.Is(err, app.ErrUnclassified) {
		t.Fatalf("expected ErrUnclassified, got %v", err)
	}

	ms.entries["x"] = classified("x", now, emotion.Anxious, 0.6)
	rated, err := svc.SetFeedback(ctx, "x", "inaccurate")
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if rated.Feedback != "Inaccurate" {
		t.Fatalf("unexpected feedback %q", rated.Feedback)
	}
	if _, err := svc.SetFeedback(ctx, "x", "maybe"); err == nil {
		t.Fatal("expected error for unknown feedback")
	}
}

func TestTemplateArg(t *testing.T) {
	if templateArg("7d") != "7d" || templateArg([]string{"90d"}) != "90d" || templateArg([]any{"all"}) != "all" || templateArg(nil) != "" {
		t.Fatal("unexpected template argument decoding")
	}
}

func TestRunnerNewServer(t *testing.T) {
	if _, err := (Runner{}).NewServer(); err == nil {
		t.Fatal("expected error without a service")
	}
	svc := &app.Service{Persistence: newMemoryStore()}
	if _, err := (Runner{Service: svc, DefaultRange: "1y"}).NewServer(); err == nil {
		t.Fatal("expected error for unknown default range")
	}
	if _, err := (Runner{Service: svc, DefaultRange: "7d"}).NewServer(); err != nil {
		t.Fatalf("NewServer: %v", err)
	}
}

func TestRunnerEndpointPath(t *testing.T) {
	cases := map[string]string{"": "/mcp", "rpc": "/rpc", "/x": "/x"}
	for in, want := range cases {
		if got := (Runner{Path: in}).EndpointPath(); got != want {
			t.Errorf("EndpointPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunnerTLSPair(t *testing.T) {
	if _, err := (Runner{TLSCert: "cert.pem"}).tls(); err == nil {
		t.Fatal("expected error for a cert without key")
	}
	if ok, err := (Runner{TLSCert: "c", TLSKey: "k"}).tls(); err != nil || !ok {
		t.Fatalf("tls() = %v, %v", ok, err)
	}
}

func TestListenURL(t *testing.T) {
	cases := []struct {
		addr   net.Addr
		useTLS bool
		want   string
	}{
		{&net.TCPAddr{IP: net.IPv4zero, Port: 8080}, false, "http://127.0.0.1:8080/mcp"},
		{&net.TCPAddr{IP: net.ParseIP("10.0.0.2"), Port: 9000}, true, "https://10.0.0.2:9000/mcp"},
		{&net.TCPAddr{IP: net.ParseIP("::1"), Port: 80}, false, "http://[::1]:80/mcp"},
	}
	for _, tc := range cases {
		if got := ListenURL(tc.addr, tc.useTLS, "/mcp"); got != tc.want {
			t.Errorf("ListenURL(%v) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}
