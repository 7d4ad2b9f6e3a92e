package emotion

import (
	"fmt"
	"strings"
)

// Result is a classification attached to an entry, plus the user's verdict on it.
type Result struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	// Feedback is nil until the user rates the classification.
	Feedback *bool `json:"feedback,omitempty"`
}

// Clamp pins Confidence into [0,1].
func (r Result) Clamp() Result {
	switch {
	case r.Confidence < 0 || r.Confidence != r.Confidence:
		r.Confidence = 0
	case r.Confidence > 1:
		r.Confidence = 1
	}
	return r
}

// Rated reports whether the user left feedback.
func (r Result) Rated() bool {
	return r.Feedback != nil
}

// Accurate reports whether the user marked the classification accurate.
func (r Result) Accurate() bool {
	return r.Feedback != nil && *r.Feedback
}

// FeedbackString renders the feedback ternary as Accurate, Inaccurate or N/A.
func (r Result) FeedbackString() string {
	switch {
	case r.Feedback == nil:
		return "N/A"
	case *r.Feedback:
		return "Accurate"
	default:
		return "Inaccurate"
	}
}

// Bool returns a pointer to v, for building feedback values.
func Bool(v bool) *bool {
	return &v
}

// ParseFeedback maps accurate/inaccurate/clear and their yes/no forms to a
// feedback value. Clear returns nil.
func ParseFeedback(value string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "accurate", "yes", "y", "true", "correct":
		return Bool(true), nil
	case "inaccurate", "no", "n", "false", "wrong":
		return Bool(false), nil
	case "clear", "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("emotion: unknown feedback %q (expected accurate, inaccurate or clear)", value)
	}
}
