// Package emotion defines the fixed emotion palette and classification results
// attached to journal entries.
package emotion

import (
	"fmt"
	"strings"
)

// Label is one of the six fixed emotion categories.
type Label string

const (
	Happy   Label = "happy"
	Sad     Label = "sad"
	Angry   Label = "angry"
	Anxious Label = "anxious"
	Calm    Label = "calm"
	Neutral Label = "neutral"
)

// Glyph describes how a label is presented.
type Glyph struct {
	Label   Label
	Symbol  string
	Color   string
	Aliases []string
}

// DefaultGlyphs returns the palette in display order.
func DefaultGlyphs() []Glyph {
	return []Glyph{
		{Label: Happy, Symbol: "☺", Color: "#22c55e", Aliases: []string{"joy", "love", "happiness"}},
		{Label: Sad, Symbol: "☹", Color: "#3b82f6", Aliases: []string{"sadness"}},
		{Label: Angry, Symbol: "✹", Color: "#ef4444", Aliases: []string{"anger"}},
		{Label: Anxious, Symbol: "≈", Color: "#f59e0b", Aliases: []string{"fear", "anxiety"}},
		{Label: Calm, Symbol: "○", Color: "#8b5cf6", Aliases: []string{"calmness"}},
		{Label: Neutral, Symbol: "·", Color: "#6b7280", Aliases: []string{"surprise"}},
	}
}

// Labels returns the six labels in palette order.
func Labels() []Label {
	glyphs := DefaultGlyphs()
	labels := make([]Label, 0, len(glyphs))
	for _, g := range glyphs {
		labels = append(labels, g.Label)
	}
	return labels
}

// ParseLabel resolves a label or one of its aliases, ignoring case.
func ParseLabel(raw string) (Label, error) {
	want := strings.ToLower(strings.TrimSpace(raw))
	if want == "" {
		return "", fmt.Errorf("emotion: empty label")
	}
	for _, g := range DefaultGlyphs() {
		if string(g.Label) == want {
			return g.Label, nil
		}
		for _, alias := range g.Aliases {
			if alias == want {
				return g.Label, nil
			}
		}
	}
	return "", fmt.Errorf("emotion: unknown label %q", raw)
}

// Known reports whether l belongs to the palette.
func (l Label) Known() bool {
	_, ok := l.glyph()
	return ok
}

// Glyph returns the palette entry for l. Labels outside the palette render
// with the neutral colour and no symbol.
func (l Label) Glyph() Glyph {
	if g, ok := l.glyph(); ok {
		return g
	}
	return Glyph{Label: l, Color: "#6b7280"}
}

// Color returns the hex colour used to draw l.
func (l Label) Color() string {
	return l.Glyph().Color
}

// Title returns the label with its first letter upper-cased.
func (l Label) Title() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

func (l Label) String() string {
	return string(l)
}

func (l Label) glyph() (Glyph, bool) {
	for _, g := range DefaultGlyphs() {
		if g.Label == l {
			return g, true
		}
	}
	return Glyph{}, false
}
