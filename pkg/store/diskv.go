package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/innervoice/pkg/entry"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("store: entry not found")

// Persistence defines the persistence contract for journal entries.
type Persistence interface {
	// ListAll returns a freshly decoded snapshot of every entry, newest first.
	ListAll(ctx context.Context) []*entry.Entry
	Get(ctx context.Context, id string) (*entry.Entry, error)
	Store(e *entry.Entry) error
	Delete(e *entry.Entry) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	if e.ID == "" {
		e.ID = keyToPathTransform(key).FileName
	}
	return e, nil
}

func (p *persistence) ListAll(ctx context.Context) []*entry.Entry {
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	sortEntries(all)
	return all
}

func (p *persistence) Get(ctx context.Context, id string) (*entry.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	// Cancelling stops the key walk when we return early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for key := range p.d.Keys(ctx.Done()) {
		if keyToPathTransform(key).FileName != id {
			continue
		}
		return p.read(key)
	}
	return nil, ErrNotFound
}

func (p *persistence) Store(e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("store: entry id required")
	}
	if strings.ContainsAny(e.ID, "/\\"+keySeparator) {
		return fmt.Errorf("store: invalid entry id %q", e.ID)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	// The bucket follows the date, so a rewritten entry always lands on the
	// same key.
	if err := p.d.Write(toKey(e), data); err != nil {
		return fmt.Errorf("store: write %s: %w", e.ID, err)
	}
	return nil
}

func (p *persistence) Delete(e *entry.Entry) error {
	if e == nil {
		return nil
	}
	return p.d.Erase(toKey(e))
}

const (
	keySeparator = "_"
	bucketLayout = "2006-01"
	// undatedBucket holds entries whose date did not parse.
	undatedBucket = "undated"
)

// sortEntries orders newest first; undated entries go last, ties by id.
func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left := entries[i]
		right := entries[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt := left.Date
		rt := right.Date
		switch {
		case !lt.Valid() && !rt.Valid():
			return left.ID < right.ID
		case !lt.Valid():
			return false
		case !rt.Valid():
			return true
		default:
			if lt.Equal(rt.Time) {
				return left.ID < right.ID
			}
			return lt.After(rt.Time)
		}
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, keySeparator, 2)
	if len(parts) != 2 {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{parts[0]},
		FileName: parts[1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s%s%s", strings.Join(pathKey.Path, keySeparator), keySeparator, pathKey.FileName)
}

// Bucket names the directory e is stored under: the UTC month, e.g. "2025-03",
// or "undated".
func Bucket(e *entry.Entry) string {
	if e.Date.Valid() {
		return e.Date.UTC().Format(bucketLayout)
	}
	return undatedBucket
}

// toKey makes `bucket_id`.
func toKey(e *entry.Entry) string {
	return fmt.Sprintf("%s%s%s", Bucket(e), keySeparator, e.ID)
}
