// Package mcp provides the Model Context Protocol server integration for
// innervoice.
package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/entry"
)

// Service adapts app.Service to the shapes returned by MCP tools and resources.
type Service struct {
	App *app.Service
	// DefaultRange is used when a request names no range.
	DefaultRange analytics.Range
	Now          func() time.Time
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID         string  `json:"id"`
	Content    string  `json:"content"`
	Date       string  `json:"date"`
	Emotion    string  `json:"emotion,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Color      string  `json:"color,omitempty"`
	Feedback   string  `json:"feedback"`
}

// NewService builds a service wrapper around svc.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc, DefaultRange: analytics.DefaultRange}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ParseRange resolves a range key, falling back to the default when empty.
func (s *Service) ParseRange(key string) (analytics.Range, error) {
	if strings.TrimSpace(key) == "" {
		return s.DefaultRange, nil
	}
	return analytics.ParseRange(key)
}

// Report analyzes the range named by key.
func (s *Service) Report(ctx context.Context, key string) (analytics.Report, error) {
	if s.App == nil {
		return analytics.Report{}, errors.New("service is not configured")
	}
	r, err := s.ParseRange(key)
	if err != nil {
		return analytics.Report{}, err
	}
	return s.App.Analyze(ctx, r, s.now())
}

// ExportCSV renders the range named by key as CSV.
func (s *Service) ExportCSV(ctx context.Context, key string) (string, string, error) {
	if s.App == nil {
		return "", "", errors.New("service is not configured")
	}
	r, err := s.ParseRange(key)
	if err != nil {
		return "", "", err
	}
	return s.App.Export(ctx, r, s.now())
}

// ListEntries returns up to limit entries of the range, newest first.
func (s *Service) ListEntries(ctx context.Context, key string, limit int) ([]EntryDTO, error) {
	report, err := s.Report(ctx, key)
	if err != nil {
		return nil, err
	}
	out := make([]EntryDTO, 0, len(report.Entries))
	for _, e := range report.Entries {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, toDTO(e))
	}
	return out, nil
}

// AddEntry stores a new entry, classifying it when a classifier is configured.
func (s *Service) AddEntry(ctx context.Context, content string) (EntryDTO, error) {
	if s.App == nil {
		return EntryDTO{}, errors.New("service is not configured")
	}
	e, err := s.App.Add(ctx, content)
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(e), nil
}

// SetFeedback records "accurate", "inaccurate" or "clear" for the entry id.
func (s *Service) SetFeedback(ctx context.Context, id, value string) (EntryDTO, error) {
	if s.App == nil {
		return EntryDTO{}, errors.New("service is not configured")
	}
	fb, err := emotion.ParseFeedback(value)
	if err != nil {
		return EntryDTO{}, err
	}
	e, err := s.App.SetFeedback(ctx, id, fb)
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(e), nil
}

func toDTO(e *entry.Entry) EntryDTO {
	dto := EntryDTO{
		ID:       e.ID,
		Content:  e.Content,
		Date:     e.Date.String(),
		Feedback: "N/A",
	}
	if e.Date.Valid() {
		dto.Date = entry.FormatTime(e.Date.Time)
	}
	if e.Emotion != nil {
		em := e.Emotion.Clamp()
		dto.Emotion = em.Label.String()
		dto.Confidence = em.Confidence
		dto.Color = em.Label.Color()
		dto.Feedback = em.FeedbackString()
	}
	return dto
}
