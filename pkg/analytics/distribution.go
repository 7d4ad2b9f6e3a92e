package analytics

import (
	"sort"

	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/entry"
)

// Slice is the number of classified entries carrying one label.
type Slice struct {
	Label emotion.Label `json:"label"`
	Count int           `json:"count"`
}

// Distribution counts classified entries per label. Only labels that occur are
// returned, palette labels first in palette order, then any others by name.
func Distribution(entries []*entry.Entry) []Slice {
	counts := make(map[emotion.Label]int)
	for _, e := range entries {
		if !e.Classified() {
			continue
		}
		counts[e.Emotion.Label]++
	}
	if len(counts) == 0 {
		return []Slice{}
	}

	out := make([]Slice, 0, len(counts))
	for _, l := range emotion.Labels() {
		if n, ok := counts[l]; ok {
			out = append(out, Slice{Label: l, Count: n})
			delete(counts, l)
		}
	}

	others := make([]emotion.Label, 0, len(counts))
	for l := range counts {
		others = append(others, l)
	}
	sort.Slice(others, func(i, j int) bool { return others[i] < others[j] })
	for _, l := range others {
		out = append(out, Slice{Label: l, Count: counts[l]})
	}
	return out
}
