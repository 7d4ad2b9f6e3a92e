// Package analytics turns a snapshot of journal entries into a day-by-day
// emotion trend, a label distribution, a summary and a CSV export.
//
// Every function is a pure transform: nothing is cached, the input is never
// modified and no function performs I/O. Callers pass a snapshot and own its
// isolation from concurrent writers.
package analytics

import (
	"time"

	"tableflip.dev/innervoice/pkg/entry"
)

// Report bundles everything computed for one range.
type Report struct {
	Range        Range          `json:"range"`
	RangeLabel   string         `json:"rangeLabel"`
	Now          time.Time      `json:"now"`
	Entries      []*entry.Entry `json:"-"`
	Trend        []DayBucket    `json:"trend"`
	Distribution []Slice        `json:"distribution"`
	// Summary is nil when the range holds no classified entries.
	Summary *Summary `json:"summary"`
}

// Empty reports whether the range holds no classified entries.
func (r Report) Empty() bool {
	return r.Summary == nil
}

// Analyze filters entries to r and computes the trend, distribution and summary.
func Analyze(entries []*entry.Entry, r Range, now time.Time, opts ...Option) Report {
	filtered := Filter(entries, r, now)
	report := Report{
		Range:        r,
		RangeLabel:   r.Label(),
		Now:          now,
		Entries:      filtered,
		Trend:        Trend(filtered, opts...),
		Distribution: Distribution(filtered),
	}
	if s, ok := Summarize(filtered); ok {
		report.Summary = &s
	}
	return report
}

// CSV renders the report's entries with ExportCSV.
func (r Report) CSV(opts ...Option) string {
	return ExportCSV(r.Entries, opts...)
}
