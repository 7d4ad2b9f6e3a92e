package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/printers"
)

type Feedback struct {
	Service *app.Service
	ID      string
	// Value is accurate, inaccurate or clear.
	Value string
}

func (n *Feedback) Do(ctx context.Context) error {
	fb, err := emotion.ParseFeedback(n.Value)
	if err != nil {
		return err
	}
	e, err := n.Service.SetFeedback(ctx, n.ID, fb)
	if err != nil {
		return err
	}
	if fb == nil {
		_, _ = fmt.Fprintf(color.Output, "%s feedback cleared\n", e.ID)
	} else {
		_, _ = fmt.Fprintf(color.Output, "%s marked %s\n", e.ID, strings.ToLower(e.Emotion.FeedbackString()))
	}
	pp := printers.PrettyPrint{Location: n.Service.Location}
	pp.Entry(e)
	return nil
}
