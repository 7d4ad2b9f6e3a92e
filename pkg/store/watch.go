package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventBucketChanged indicates entries inside one month bucket were
	// added, edited, or removed.
	EventBucketChanged EventType = iota

	// EventInvalidated signals a change that could not be attributed to a
	// bucket (a new bucket directory, a watcher error) and callers should
	// reload everything.
	EventInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	// Bucket is the month bucket ("2025-03" or "undated") that changed.
	Bucket string
}

const watchSettle = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Events are coalesced per
// burst of writes and dropped when the consumer falls behind. The channel is
// closed once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	w := &bucketWatcher{
		p:       p,
		fsw:     fsw,
		watched: map[string]struct{}{},
		out:     make(chan Event, 64),
		errOut:  os.Stderr,
	}
	if err := w.addTree(); err != nil {
		w.close()
		return nil, err
	}
	w.batch = newEventBatch(watchSettle, w.offer)

	go w.run(ctx)
	return w.out, nil
}

// bucketWatcher maps fsnotify activity under the store onto bucket events.
type bucketWatcher struct {
	p       *persistence
	fsw     *fsnotify.Watcher
	watched map[string]struct{}
	batch   *eventBatch
	out     chan Event
	errOut  io.Writer

	closeOnce sync.Once
}

func (w *bucketWatcher) addTree() error {
	dirs, err := collectDirs(w.p.basePath)
	if err != nil {
		return fmt.Errorf("store: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("store: watch %s: %w", dir, err)
		}
		w.watched[dir] = struct{}{}
	}
	return nil
}

func (w *bucketWatcher) close() {
	w.closeOnce.Do(func() {
		if err := w.fsw.Close(); err != nil {
			fmt.Fprintf(w.errOut, "store: watcher close: %v\n", err)
		}
	})
}

func (w *bucketWatcher) run(ctx context.Context) {
	defer close(w.out)
	defer w.close()
	defer w.batch.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.handleError(err)
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(evt)
		}
	}
}

// handleError reports err and asks consumers for a full reload since the
// lost change cannot be attributed.
func (w *bucketWatcher) handleError(err error) {
	fmt.Fprintf(w.errOut, "store: watcher: %v\n", err)
	w.batch.Add(Event{Type: EventInvalidated})
}

func (w *bucketWatcher) handle(evt fsnotify.Event) {
	if evt.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
			w.watchDir(filepath.Clean(evt.Name))
			w.batch.Add(Event{Type: EventInvalidated})
			return
		}
	}
	if bucket := w.p.bucketForPath(evt.Name); bucket != "" {
		w.batch.Add(Event{Type: EventBucketChanged, Bucket: bucket})
		return
	}
	w.batch.Add(Event{Type: EventInvalidated})
}

// watchDir follows a bucket directory created after Watch started.
func (w *bucketWatcher) watchDir(dir string) {
	if _, ok := w.watched[dir]; ok {
		return
	}
	if err := w.fsw.Add(dir); err != nil {
		fmt.Fprintf(w.errOut, "store: watch %s: %v\n", dir, err)
		return
	}
	w.watched[dir] = struct{}{}
}

// offer hands ev to the consumer without blocking. A dropped event is fine:
// the next one triggers a reload that covers it.
func (w *bucketWatcher) offer(ev Event) {
	select {
	case w.out <- ev:
	default:
	}
}

// collectDirs returns base and every directory below it.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil
		case err != nil:
			return err
		case d.IsDir() && path != base:
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// bucketForPath returns the month bucket of a file inside the store, or "" for
// anything that is not an entry file.
func (p *persistence) bucketForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	bucket, rest, ok := strings.Cut(rel, string(os.PathSeparator))
	if !ok || rest == "" {
		return ""
	}
	return bucket
}

// eventBatch collects events for delay after the first one arrives, then
// emits each distinct event once. A pending invalidation swallows the bucket
// events of the same batch. emit runs under the batch lock and must not block.
type eventBatch struct {
	delay time.Duration
	emit  func(Event)

	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	stopped bool
}

func newEventBatch(delay time.Duration, emit func(Event)) *eventBatch {
	return &eventBatch{delay: delay, emit: emit, pending: map[Event]struct{}{}}
}

func (b *eventBatch) Add(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	b.pending[ev] = struct{}{}
	if b.timer == nil {
		b.timer = time.AfterFunc(b.delay, b.flush)
	}
}

func (b *eventBatch) flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	pending := b.pending
	b.pending = map[Event]struct{}{}
	b.timer = nil
	if b.stopped {
		return
	}

	if _, ok := pending[Event{Type: EventInvalidated}]; ok {
		b.emit(Event{Type: EventInvalidated})
		return
	}
	for ev := range pending {
		b.emit(ev)
	}
}

// Stop drops pending events. Nothing is emitted once Stop returns.
func (b *eventBatch) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
