package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/classify"
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/entry"
	"tableflip.dev/innervoice/pkg/store"
)

// Service provides high-level operations for journal entries and their
// analytics. It wraps persistence and classification so the CLI, the HTTP API,
// the MCP server and the dashboard share logic.
type Service struct {
	Persistence store.Persistence
	// Classifier is optional. Without one, entries are stored unclassified.
	Classifier classify.Classifier
	// Location is the calendar used for day keys and exported dates.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

var (
	ErrNoPersistence = errors.New("app: no persistence configured")
	ErrNoClassifier  = errors.New("app: no classifier configured")
	ErrNotFound      = errors.New("app: entry not found")
	ErrEmptyContent  = errors.New("app: entry content is required")
	ErrUnclassified  = errors.New("app: entry has no emotion")
)

// New wires a Service from a resolved config.
func New(cfg store.Config, p store.Persistence) (*Service, error) {
	svc := &Service{Persistence: p}
	if cfg == nil {
		return svc, nil
	}
	svc.Location = cfg.Location()
	c, err := classify.New(cfg.Classifier())
	if err != nil {
		return nil, err
	}
	// A nil *OpenAI must not become a non-nil interface.
	if c != nil {
		svc.Classifier = c
	}
	return svc, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// AnalyticsOptions returns the engine options matching the service calendar.
func (s *Service) AnalyticsOptions() []analytics.Option {
	return []analytics.Option{analytics.WithLocation(s.location())}
}

// Entries returns a snapshot of every entry, newest first.
func (s *Service) Entries(ctx context.Context) ([]*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.ListAll(ctx), nil
}

// Get returns the entry with the given id.
func (s *Service) Get(ctx context.Context, id string) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	e, err := s.Persistence.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return e, err
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Add creates and stores a new entry. When a classifier is configured the
// entry is classified first; a classification failure stores nothing.
func (s *Service) Add(ctx context.Context, content string) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	e := entry.New(content, s.now())
	if s.Classifier != nil {
		res, err := s.Classifier.Classify(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("app: classify: %w", err)
		}
		res = res.Clamp()
		res.Feedback = nil
		e.Emotion = &res
	}
	if err := s.Persistence.Store(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Classify runs the configured classifier without storing anything.
func (s *Service) Classify(ctx context.Context, text string) (emotion.Result, error) {
	if s.Classifier == nil {
		return emotion.Result{}, ErrNoClassifier
	}
	res, err := s.Classifier.Classify(ctx, text)
	if err != nil {
		return emotion.Result{}, err
	}
	return res.Clamp(), nil
}

// SetFeedback records whether the emotion on the entry was accurate. A nil
// feedback clears an earlier rating.
func (s *Service) SetFeedback(ctx context.Context, id string, feedback *bool) (*entry.Entry, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Emotion == nil {
		return nil, ErrUnclassified
	}
	if feedback == nil {
		e.Emotion.Feedback = nil
	} else {
		e.Emotion.Feedback = emotion.Bool(*feedback)
	}
	if err := s.Persistence.Store(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Reclassify replaces the emotion on the entry with a fresh result. Any
// earlier feedback referred to the old result and is dropped.
func (s *Service) Reclassify(ctx context.Context, id string) (*entry.Entry, error) {
	if s.Classifier == nil {
		return nil, ErrNoClassifier
	}
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.Classifier.Classify(ctx, e.Content)
	if err != nil {
		return nil, fmt.Errorf("app: classify: %w", err)
	}
	res = res.Clamp()
	res.Feedback = nil
	e.Emotion = &res
	if err := s.Persistence.Store(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an entry permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.Persistence.Delete(e)
}
