package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/innervoice/pkg/emotion"
)

// New creates an unclassified entry dated now.
func New(content string, now time.Time) *Entry {
	return &Entry{
		ID:      uuid.NewString(),
		Content: content,
		Date:    NewTimestamp(now),
	}
}

// Entry is a single journal entry.
type Entry struct {
	ID      string          `json:"id"`
	Content string          `json:"content"`
	Date    Timestamp       `json:"date"`
	Emotion *emotion.Result `json:"emotion,omitempty"`
}

// Classified reports whether the entry carries an emotion.
func (e *Entry) Classified() bool {
	return e != nil && e.Emotion != nil
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Emotion != nil {
		em := *e.Emotion
		if e.Emotion.Feedback != nil {
			em.Feedback = emotion.Bool(*e.Emotion.Feedback)
		}
		cp.Emotion = &em
	}
	return &cp
}

// Row returns the date, emotion and content columns used by table printers.
func (e *Entry) Row(loc *time.Location) (string, string, string) {
	when := e.Date.Raw
	if e.Date.Valid() {
		when = e.Date.In(loc).Format("2006-01-02 15:04")
	}
	return when, e.EmotionString(), e.Content
}

// EmotionString renders the emotion as "happy (90%)", or an empty string.
func (e *Entry) EmotionString() string {
	if e.Emotion == nil {
		return ""
	}
	return fmt.Sprintf("%s (%.0f%%)", e.Emotion.Label, e.Emotion.Confidence*100)
}

func (e *Entry) String() string {
	parts := []string{e.Date.String()}
	if s := e.EmotionString(); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, e.Content)
	return strings.Join(parts, "  ")
}
