package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/classify"
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/entry"
	"tableflip.dev/innervoice/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	entries map[string]*entry.Entry
}

func newMemoryPersistence(entries ...*entry.Entry) *memoryPersistence {
	mp := &memoryPersistence{entries: make(map[string]*entry.Entry)}
	for _, e := range entries {
		if e == nil {
			continue
		}
		mp.entries[e.ID] = e.Clone()
	}
	return mp
}

func (m *memoryPersistence) ListAll(_ context.Context) []*entry.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date.Time) })
	return out
}

func (m *memoryPersistence) Get(_ context.Context, id string) (*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return e.Clone(), nil
}

func (m *memoryPersistence) Store(e *entry.Entry) error {
	if e == nil {
		return errors.New("nil entry")
	}
	if e.ID == "" {
		return errors.New("missing id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e.Clone()
	return nil
}

func (m *memoryPersistence) Delete(e *entry.Entry) error {
	if e == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, e.ID)
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClassifier(label emotion.Label, confidence float64) classify.Classifier {
	return classify.Func(func(context.Context, string) (emotion.Result, error) {
		return emotion.Result{Label: label, Confidence: confidence}, nil
	})
}

func dated(id, content string, at time.Time, res *emotion.Result) *entry.Entry {
	return &entry.Entry{ID: id, Content: content, Date: entry.NewTimestamp(at), Emotion: res}
}

func TestAddClassifiesAndStores(t *testing.T) {
	mp := newMemoryPersistence()
	svc := &Service{Persistence: mp, Classifier: fixedClassifier(emotion.Calm, 1.4), Now: func() time.Time { return fixedNow }}

	e, err := svc.Add(context.Background(), "  a quiet walk  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Content != "a quiet walk" {
		t.Fatalf("expected trimmed content, got %q", e.Content)
	}
	if !e.Date.Equal(fixedNow) {
		t.Fatalf("unexpected date %v", e.Date)
	}
	if e.Emotion == nil || e.Emotion.Label != emotion.Calm || e.Emotion.Confidence != 1 {
		t.Fatalf("unexpected emotion %+v", e.Emotion)
	}
	if got := mp.ListAll(context.Background()); len(got) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(got))
	}
}

func TestAddWithoutClassifierStoresUnclassified(t *testing.T) {
	mp := newMemoryPersistence()
	svc := &Service{Persistence: mp}
	e, err := svc.Add(context.Background(), "note")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Classified() {
		t.Fatal("expected unclassified entry")
	}
}

func TestAddRejectsBlankContent(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence()}
	if _, err := svc.Add(context.Background(), " \t\n"); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

func TestAddClassifierFailureStoresNothing(t *testing.T) {
	mp := newMemoryPersistence()
	boom := errors.New("upstream down")
	svc := &Service{Persistence: mp, Classifier: classify.Func(func(context.Context, string) (emotion.Result, error) {
		return emotion.Result{}, boom
	})}
	if _, err := svc.Add(context.Background(), "hello"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped classifier error, got %v", err)
	}
	if got := mp.ListAll(context.Background()); len(got) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(got))
	}
}

func TestSetFeedback(t *testing.T) {
	mp := newMemoryPersistence(
		dated("a", "classified", fixedNow, &emotion.Result{Label: emotion.Sad, Confidence: 0.6}),
		dated("b", "plain", fixedNow, nil),
	)
	svc := &Service{Persistence: mp}
	ctx := context.Background()

	e, err := svc.SetFeedback(ctx, "a", emotion.Bool(false))
	if err != nil {
		t.Fatalf("set feedback: %v", err)
	}
	if !e.Emotion.Rated() || e.Emotion.Accurate() {
		t.Fatalf("expected inaccurate rating, got %+v", e.Emotion)
	}
	stored, _ := mp.Get(ctx, "a")
	if stored.Emotion.FeedbackString() != "Inaccurate" {
		t.Fatalf("feedback not persisted: %s", stored.Emotion.FeedbackString())
	}

	if _, err := svc.SetFeedback(ctx, "a", nil); err != nil {
		t.Fatalf("clear feedback: %v", err)
	}
	stored, _ = mp.Get(ctx, "a")
	if stored.Emotion.Rated() {
		t.Fatal("expected feedback cleared")
	}

	if _, err := svc.SetFeedback(ctx, "b", emotion.Bool(true)); !errors.Is(err, ErrUnclassified) {
		t.Fatalf("expected ErrUnclassified, got %v", err)
	}
	if _, err := svc.SetFeedback(ctx, "missing", emotion.Bool(true)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReclassifyDropsFeedback(t *testing.T) {
	mp := newMemoryPersistence(dated("a", "x", fixedNow, &emotion.Result{Label: emotion.Sad, Confidence: 0.6, Feedback: emotion.Bool(true)}))
	svc := &Service{Persistence: mp, Classifier: fixedClassifier(emotion.Happy, 0.9)}

	e, err := svc.Reclassify(context.Background(), "a")
	if err != nil {
		t.Fatalf("reclassify: %v", err)
	}
	if e.Emotion.Label != emotion.Happy || e.Emotion.Rated() {
		t.Fatalf("unexpected emotion %+v", e.Emotion)
	}

	svc.Classifier = nil
	if _, err := svc.Reclassify(context.Background(), "a"); !errors.Is(err, ErrNoClassifier) {
		t.Fatalf("expected ErrNoClassifier, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	mp := newMemoryPersistence(dated("a", "x", fixedNow, nil))
	svc := &Service{Persistence: mp}
	ctx := context.Background()
	if err := svc.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestImport(t *testing.T) {
	raw := `[
		{"id":"1700000000000","content":"old joy","date":"2025-03-10T08:00:00.000Z","emotion":{"label":"happy","confidence":0.8,"feedback":true}},
		{"content":"no id","date":"2025-03-11T08:00:00Z"},
		{"id":"bad_id","content":"underscore","date":"2025-03-12T08:00:00Z"},
		{"id":"blank","content":"   ","date":"2025-03-12T08:00:00Z"}
	]`
	entries, err := DecodeEntries(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	mp := newMemoryPersistence()
	svc := &Service{Persistence: mp}
	n, err := svc.Import(context.Background(), entries)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 imported, got %d", n)
	}
	kept, err := mp.Get(context.Background(), "1700000000000")
	if err != nil {
		t.Fatalf("expected original id kept: %v", err)
	}
	if !kept.Emotion.Accurate() {
		t.Fatal("expected feedback kept")
	}
	for _, e := range mp.ListAll(context.Background()) {
		if e.ID == "" || strings.Contains(e.ID, "_") {
			t.Fatalf("unusable id stored: %q", e.ID)
		}
	}
	if entries[1].ID != "" {
		t.Fatal("import must not modify its input")
	}
}

func TestDecodeEntriesRejectsGarbage(t *testing.T) {
	if _, err := DecodeEntries(strings.NewReader(`{"not":"an array"}`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestAnalyzeAndExport(t *testing.T) {
	mp := newMemoryPersistence(
		dated("a", "sunny", fixedNow.Add(-2*time.Hour), &emotion.Result{Label: emotion.Happy, Confidence: 0.9, Feedback: emotion.Bool(true)}),
		dated("b", "rain", fixedNow.AddDate(0, 0, -3), &emotion.Result{Label: emotion.Sad, Confidence: 0.5}),
		dated("c", "ancient", fixedNow.AddDate(0, 0, -60), &emotion.Result{Label: emotion.Sad, Confidence: 0.5}),
	)
	svc := &Service{Persistence: mp}
	ctx := context.Background()

	report, err := svc.Analyze(ctx, analytics.Last7Days, fixedNow)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Summary == nil || report.Summary.TotalClassified != 2 {
		t.Fatalf("unexpected summary %+v", report.Summary)
	}
	if len(report.Trend) != 2 {
		t.Fatalf("expected 2 trend days, got %d", len(report.Trend))
	}

	name, csv, err := svc.Export(ctx, analytics.Last7Days, fixedNow)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "innervoice-export-2025-03-15.csv" {
		t.Fatalf("unexpected filename %q", name)
	}
	lines := strings.Split(csv, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d:\n%s", len(lines), csv)
	}
	if lines[1] != `2025-03-15 10:00:00,"sunny",happy,90.0%,Accurate` {
		t.Fatalf("unexpected first row %q", lines[1])
	}
}

func TestAnalyzeUsesServiceLocation(t *testing.T) {
	tokyo := time.FixedZone("tokyo", 9*3600)
	late := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC) // 2025-03-15 05:00 in tokyo
	mp := newMemoryPersistence(dated("a", "x", late, &emotion.Result{Label: emotion.Calm, Confidence: 1}))
	svc := &Service{Persistence: mp, Location: tokyo}

	report, err := svc.Analyze(context.Background(), analytics.AllTime, fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Trend) != 1 || report.Trend[0].Date != "2025-03-15" {
		t.Fatalf("expected tokyo day key, got %+v", report.Trend)
	}
}

func TestNoPersistence(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Entries(context.Background()); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
	if _, err := svc.Analyze(context.Background(), analytics.AllTime, fixedNow); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}

func TestNewWithoutAPIKeyLeavesClassifierNil(t *testing.T) {
	svc, err := New(stubConfig{}, newMemoryPersistence())
	if err != nil {
		t.Fatal(err)
	}
	if svc.Classifier != nil {
		t.Fatal("expected nil classifier interface")
	}
}

type stubConfig struct{}

func (stubConfig) BasePath() string                   { return "" }
func (stubConfig) Location() *time.Location           { return time.UTC }
func (stubConfig) DefaultRange() string               { return "30d" }
func (stubConfig) Classifier() store.ClassifierConfig { return store.ClassifierConfig{} }
