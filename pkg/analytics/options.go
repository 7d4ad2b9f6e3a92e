package analytics

import "time"

// Option configures the calendar used by Trend, ExportCSV and Analyze.
type Option func(*config)

type config struct {
	Location *time.Location
}

// WithLocation sets the calendar location day keys and export dates are
// computed in. The default is UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.Location = loc
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		Location: time.UTC,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
