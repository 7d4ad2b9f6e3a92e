package printers

import (
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"tableflip.dev/innervoice/pkg/emotion"
)

const (
	block = "█"
	shade = "░"
	// background is the colour a faint swatch fades towards.
	background = "#1f2937"
)

func profile() termenv.Profile {
	if color.NoColor {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func paint(s, hex string) string {
	p := profile()
	if p == termenv.Ascii {
		return s
	}
	return termenv.String(s).Foreground(p.Color(hex)).String()
}

// Swatch renders a coloured block for l.
func Swatch(l emotion.Label) string {
	return paint(block, l.Color())
}

// Faded blends the colour of l towards the background; strength 1 is the full
// palette colour, 0 is the background.
func Faded(l emotion.Label, strength float64) string {
	switch {
	case strength <= 0:
		return background
	case strength >= 1:
		return l.Color()
	}
	from, err := colorful.Hex(background)
	if err != nil {
		return l.Color()
	}
	to, err := colorful.Hex(l.Color())
	if err != nil {
		return l.Color()
	}
	return from.BlendLab(to, strength).Clamped().Hex()
}

// Bar draws a horizontal bar filled to share (0..1) of width cells.
func Bar(l emotion.Label, share float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(share*float64(width) + 0.5)
	switch {
	case filled < 0:
		filled = 0
	case filled > width:
		filled = width
	}
	if profile() == termenv.Ascii {
		return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
	}
	return paint(strings.Repeat(block, filled), l.Color()) + paint(strings.Repeat(shade, width-filled), background)
}
