package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/innervoice/pkg/entry"
)

// DecodeEntries reads a JSON array of entries, the shape the browser journal
// keeps in local storage.
func DecodeEntries(r io.Reader) ([]*entry.Entry, error) {
	var entries []*entry.Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("app: decode entries: %w", err)
	}
	return entries, nil
}

// Import stores entries as given, keeping their ids and dates. Entries without
// a usable id get a fresh one, blank entries are skipped. It returns the number
// of entries stored.
func (s *Service) Import(ctx context.Context, entries []*entry.Entry) (int, error) {
	if s.Persistence == nil {
		return 0, ErrNoPersistence
	}
	n := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if e == nil || strings.TrimSpace(e.Content) == "" {
			continue
		}
		e = e.Clone()
		if !usableID(e.ID) {
			e.ID = uuid.NewString()
		}
		if err := s.Persistence.Store(e); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func usableID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && !strings.ContainsAny(id, `/\_`)
}
