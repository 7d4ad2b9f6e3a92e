package entry

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

// ParseTime accepts RFC3339 timestamps with or without fractional seconds, and
// bare dates (yyyy-mm-dd) which are taken as UTC midnight.
func ParseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	t, err := time.Parse(time.RFC3339Nano, v)
	if err == nil {
		return t, nil
	}
	if d, derr := time.Parse(dateOnly, v); derr == nil {
		return d, nil
	}
	return time.Time{}, err
}

// Timestamp is an entry date. A value that does not parse is kept in Raw so it
// is written back unchanged; such a timestamp reports Valid() == false.
type Timestamp struct {
	time.Time
	Raw string

	rawJSON bool
	// parsed marks a decoded value, so the zero instant still counts as a date.
	parsed bool
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Valid reports whether the timestamp carries a real instant. An unset
// Timestamp is not valid.
func (t Timestamp) Valid() bool {
	return t.parsed || !t.Time.IsZero()
}

func (t Timestamp) SameDay(then time.Time, loc *time.Location) bool {
	a := t.In(loc)
	b := then.In(loc)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		if t.rawJSON {
			return []byte(t.Raw), nil
		}
		return json.Marshal(t.Raw)
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		// Numbers, objects and the like are kept verbatim and treated as invalid.
		t.Time = time.Time{}
		t.Raw = string(b)
		t.rawJSON = json.Valid(b)
		t.parsed = false
		return nil
	}
	parsed, err := ParseTime(raw)
	if err != nil {
		t.Time = time.Time{}
		t.Raw = raw
		t.rawJSON = false
		t.parsed = false
		return nil
	}
	t.Time = parsed
	t.Raw = ""
	t.rawJSON = false
	t.parsed = true
	return nil
}

func (t Timestamp) String() string {
	if !t.Valid() {
		return t.Raw
	}
	return t.UTC().Format(time.RFC3339)
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
