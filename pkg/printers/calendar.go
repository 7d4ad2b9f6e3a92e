package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/emotion"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the month containing then, colouring every day with its
// dominant emotion. Stronger means are drawn brighter.
func (pp *PrettyPrint) Calendar(then time.Time, buckets []analytics.DayBucket) {
	then = then.In(pp.location())
	byDay := make(map[string]analytics.DayBucket, len(buckets))
	for _, b := range buckets {
		byDay[b.Date] = b
	}

	days := DaysIn(then)
	cells := make([]string, days)
	l1 := color.New(color.Faint, color.FgWhite)
	for i := 0; i < days; i++ {
		key := time.Date(then.Year(), then.Month(), i+1, 0, 0, 0, 0, pp.location()).Format("2006-01-02")
		b, ok := byDay[key]
		if !ok {
			cells[i] = l1.Sprintf("%2d", i+1)
			continue
		}
		label, mean := Dominant(b)
		cells[i] = paint(fmt.Sprintf("%2d", i+1), Faded(label, 0.35+0.65*mean))
	}
	pp.printMonth(then, cells)
}

// Dominant returns the label with the highest mean in b. Ties go to the
// earlier label in palette order.
func Dominant(b analytics.DayBucket) (emotion.Label, float64) {
	best, mean := emotion.Neutral, 0.0
	for _, l := range emotion.Labels() {
		if v := b.Mean(l); v > mean {
			best, mean = l, v
		}
	}
	return best, mean
}

func (pp *PrettyPrint) printMonth(then time.Time, cells []string) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month().String(), then.Year())
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	for _, c := range cells {
		_, _ = fmt.Fprintf(pp.out(), "%s ", c)
		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
