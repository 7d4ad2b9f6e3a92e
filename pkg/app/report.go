package app

import (
	"context"
	"time"

	"tableflip.dev/innervoice/pkg/analytics"
)

// Analyze computes the trend, distribution and summary for the range ending
// at now over a fresh snapshot of the store.
func (s *Service) Analyze(ctx context.Context, r analytics.Range, now time.Time) (analytics.Report, error) {
	all, err := s.Entries(ctx)
	if err != nil {
		return analytics.Report{}, err
	}
	return analytics.Analyze(all, r, now, s.AnalyticsOptions()...), nil
}

// Export renders the range ending at now as CSV and names the file it should
// be saved under.
func (s *Service) Export(ctx context.Context, r analytics.Range, now time.Time) (string, string, error) {
	report, err := s.Analyze(ctx, r, now)
	if err != nil {
		return "", "", err
	}
	return analytics.ExportFilename(now.In(s.location())), report.CSV(s.AnalyticsOptions()...), nil
}
