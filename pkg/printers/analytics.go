package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/emotion"
)

const barWidth = 30

// Report prints the summary, the distribution and the day trend of r.
func (pp *PrettyPrint) Report(r analytics.Report) {
	pp.TitleWithCount(r.RangeLabel, len(r.Entries))
	pp.NewLine()
	if r.Empty() {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), "No emotion data available for this time range.")
		pp.NewLine()
		return
	}
	pp.Summary(r.Summary)
	pp.Distribution(r.Distribution)
	pp.Trend(r.Trend)
}

// Summary prints the most common emotion and the feedback accuracy.
func (pp *PrettyPrint) Summary(s *analytics.Summary) {
	if s == nil {
		pp.none()
		return
	}
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("Most common"), fmt.Sprintf("%s %s %s",
		Swatch(s.MostCommon.Label), s.MostCommon.Label.Title(),
		f.Sprintf("(%d of %d, %.0f%%)", s.MostCommon.Count, s.TotalClassified, s.Share())))
	tbl.AddRow(b.Sprint("Classified"), s.TotalClassified)
	if s.Rated() == 0 {
		tbl.AddRow(b.Sprint("Accuracy"), f.Sprint("no feedback yet"))
	} else {
		tbl.AddRow(b.Sprint("Accuracy"), fmt.Sprintf("%.1f%% %s", s.AccuracyRate,
			f.Sprintf("(%d accurate, %d inaccurate)", s.Accurate, s.Inaccurate)))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Distribution prints one bar per label.
func (pp *PrettyPrint) Distribution(slices []analytics.Slice) {
	if len(slices) == 0 {
		pp.none()
		return
	}
	total := 0
	for _, s := range slices {
		total += s.Count
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, s := range slices {
		share := 0.0
		if total > 0 {
			share = float64(s.Count) / float64(total)
		}
		tbl.AddRow(s.Label.Title(), Bar(s.Label, share, barWidth), fmt.Sprintf("%d", s.Count), fmt.Sprintf("%.0f%%", share*100))
	}
	tbl.RightAlign(0)
	tbl.RightAlign(2)
	tbl.RightAlign(3)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Trend prints one row per day with the mean confidence of every label.
func (pp *PrettyPrint) Trend(buckets []analytics.DayBucket) {
	if len(buckets) == 0 {
		pp.none()
		return
	}
	b := color.New(color.Bold)
	labels := emotion.Labels()

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{b.Sprint("Date")}
	for _, l := range labels {
		header = append(header, b.Sprint(l.Title()))
	}
	header = append(header, b.Sprint("Entries"))
	tbl.AddRow(header...)

	for _, day := range buckets {
		row := []interface{}{day.Date}
		for _, l := range labels {
			row = append(row, cell(l, day.Mean(l)))
		}
		row = append(row, day.Count)
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func cell(l emotion.Label, v float64) string {
	if v == 0 {
		return color.New(color.Faint).Sprint("   -")
	}
	return paint(fmt.Sprintf("%4.2f", v), Faded(l, 0.35+0.65*v))
}
