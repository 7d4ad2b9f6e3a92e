package analytics

import (
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/entry"
)

// MostCommon is the label seen most often and how many entries carried it.
type MostCommon struct {
	Label emotion.Label `json:"label"`
	Count int           `json:"count"`
}

// Summary describes the classified entries of a window.
type Summary struct {
	MostCommon      MostCommon `json:"mostCommonEmotion"`
	TotalClassified int        `json:"totalClassifiedEntries"`
	Accurate        int        `json:"accurate"`
	Inaccurate      int        `json:"inaccurate"`
	// AccuracyRate is the percentage (0-100) of rated entries marked accurate.
	AccuracyRate float64 `json:"accuracyRate"`
}

// Share returns the percentage of classified entries carrying the most common label.
func (s Summary) Share() float64 {
	if s.TotalClassified == 0 {
		return 0
	}
	return float64(s.MostCommon.Count) / float64(s.TotalClassified) * 100
}

// Rated returns the number of entries with feedback.
func (s Summary) Rated() int {
	return s.Accurate + s.Inaccurate
}

// Summarize computes the summary of entries. ok is false when no entry is
// classified, so callers can tell "no data" apart from an empty-looking summary.
//
// Ties for the most common label go to the label that sorts first by name.
func Summarize(entries []*entry.Entry) (Summary, bool) {
	var s Summary
	for _, e := range entries {
		if !e.Classified() {
			continue
		}
		s.TotalClassified++
		switch {
		case !e.Emotion.Rated():
		case e.Emotion.Accurate():
			s.Accurate++
		default:
			s.Inaccurate++
		}
	}
	if s.TotalClassified == 0 {
		return Summary{}, false
	}

	for _, slice := range Distribution(entries) {
		best := s.MostCommon
		if slice.Count > best.Count || (slice.Count == best.Count && slice.Label < best.Label) {
			s.MostCommon = MostCommon{Label: slice.Label, Count: slice.Count}
		}
	}

	if rated := s.Rated(); rated > 0 {
		s.AccuracyRate = float64(s.Accurate) / float64(rated) * 100
	}
	return s, true
}
