package analytics

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/innervoice/pkg/entry"
)

// Range is the lookback window analytics are computed over.
type Range int

const (
	Last7Days Range = iota
	Last30Days
	Last90Days
	AllTime
)

// DefaultRange is the window selected when none is given.
const DefaultRange = Last30Days

var ranges = []struct {
	r     Range
	key   string
	label string
	days  int
}{
	{Last7Days, "7d", "Last 7 days", 7},
	{Last30Days, "30d", "Last 30 days", 30},
	{Last90Days, "90d", "Last 90 days", 90},
	{AllTime, "all", "All time", 0},
}

// Ranges returns every range in selection order.
func Ranges() []Range {
	out := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, r.r)
	}
	return out
}

// RangeKeys returns the short keys accepted by ParseRange.
func RangeKeys() []string {
	out := make([]string, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, r.key)
	}
	return out
}

// ParseRange resolves "7d", "30d", "90d" or "all".
func ParseRange(key string) (Range, error) {
	want := strings.ToLower(strings.TrimSpace(key))
	for _, r := range ranges {
		if r.key == want {
			return r.r, nil
		}
	}
	return 0, fmt.Errorf("analytics: unknown range %q (expected one of %s)", key, strings.Join(RangeKeys(), ", "))
}

// Key returns the short form, e.g. "30d".
func (r Range) Key() string {
	for _, d := range ranges {
		if d.r == r {
			return d.key
		}
	}
	return ""
}

// Label returns the display label, e.g. "Last 30 days".
func (r Range) Label() string {
	for _, d := range ranges {
		if d.r == r {
			return d.label
		}
	}
	return fmt.Sprintf("Range(%d)", int(r))
}

// Days returns the lookback in days; 0 for AllTime.
func (r Range) Days() int {
	for _, d := range ranges {
		if d.r == r {
			return d.days
		}
	}
	return 0
}

// Next cycles through the ranges in selection order.
func (r Range) Next() Range {
	all := Ranges()
	for i, c := range all {
		if c == r {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultRange
}

func (r Range) String() string {
	return r.Key()
}

func (r Range) MarshalText() ([]byte, error) {
	return []byte(r.Key()), nil
}

func (r *Range) UnmarshalText(b []byte) error {
	parsed, err := ParseRange(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Start returns the inclusive lower bound of r relative to now. ok is false for
// AllTime, which has no lower bound.
func (r Range) Start(now time.Time) (time.Time, bool) {
	days := r.Days()
	if days == 0 {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -days), true
}

// Filter returns the entries whose date lies in [now - r.Days(), now], both
// ends inclusive, keeping their order. AllTime returns a copy of the whole
// input, entries with an unparsable date included; every bounded range drops
// them.
func Filter(entries []*entry.Entry, r Range, now time.Time) []*entry.Entry {
	start, bounded := r.Start(now)
	if !bounded {
		return append(make([]*entry.Entry, 0, len(entries)), entries...)
	}
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e == nil || !e.Date.Valid() {
			continue
		}
		if e.Date.Before(start) || e.Date.After(now) {
			continue
		}
		out = append(out, e)
	}
	return out
}
