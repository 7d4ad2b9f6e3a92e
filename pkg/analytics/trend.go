package analytics

import (
	"sort"

	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/entry"
)

const dayLayout = "2006-01-02"

// DayBucket holds one calendar day of the trend. Every label has a value; a
// label with no entries that day is 0.
type DayBucket struct {
	Date    string  `json:"date"`
	Happy   float64 `json:"happy"`
	Sad     float64 `json:"sad"`
	Angry   float64 `json:"angry"`
	Anxious float64 `json:"anxious"`
	Calm    float64 `json:"calm"`
	Neutral float64 `json:"neutral"`
	Count   int     `json:"count"`
}

// Mean returns the bucket value for l.
func (b DayBucket) Mean(l emotion.Label) float64 {
	if f := b.field(l); f != nil {
		return *f
	}
	return 0
}

func (b *DayBucket) field(l emotion.Label) *float64 {
	switch l {
	case emotion.Happy:
		return &b.Happy
	case emotion.Sad:
		return &b.Sad
	case emotion.Angry:
		return &b.Angry
	case emotion.Anxious:
		return &b.Anxious
	case emotion.Calm:
		return &b.Calm
	case emotion.Neutral:
		return &b.Neutral
	}
	return nil
}

// Trend groups classified entries by calendar day and returns one bucket per
// day, oldest first. Each label value is the sum of that label's confidences
// divided by the number of classified entries on the day, not by the number
// of entries carrying that label.
func Trend(entries []*entry.Entry, opts ...Option) []DayBucket {
	cfg := applyOptions(opts)

	buckets := make(map[string]*DayBucket)
	for _, e := range entries {
		if !e.Classified() || !e.Date.Valid() {
			continue
		}
		key := e.Date.In(cfg.Location).Format(dayLayout)
		b, ok := buckets[key]
		if !ok {
			b = &DayBucket{Date: key}
			buckets[key] = b
		}
		em := e.Emotion.Clamp()
		if f := b.field(em.Label); f != nil {
			*f += em.Confidence
		}
		b.Count++
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]DayBucket, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		n := float64(b.Count)
		for _, l := range emotion.Labels() {
			f := b.field(l)
			*f /= n
		}
		out = append(out, *b)
	}
	return out
}
