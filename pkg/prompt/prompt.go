// Package prompt asks for journal input interactively.
package prompt

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/innervoice/pkg/analytics"
)

// IO holds the streams prompts read from and write to. Nil streams fall back
// to the terminal.
type IO struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// NopWriteCloser wraps w so prompts can be given a writer that is never closed.
func NopWriteCloser(w io.Writer) io.WriteCloser {
	return nopWriteCloser{w}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Entry asks for the text of a journal entry.
func Entry(s IO) (string, error) {
	validate := func(input string) error {
		if strings.TrimSpace(input) == "" {
			return errors.New("empty")
		}
		return nil
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} ",
		Valid:   "{{ . | green }} ",
		Invalid: "{{ . | red }} ",
		Success: "{{ . | bold }} ",
	}

	p := promptui.Prompt{
		Label:     "How are you feeling today?",
		Templates: templates,
		Validate:  validate,
		Stdin:     s.In,
		Stdout:    s.Out,
	}
	result, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

type choice struct {
	Name  string
	Short string
}

var feedbackChoices = []choice{
	{Name: "accurate", Short: "The detected emotion was right"},
	{Name: "inaccurate", Short: "The detected emotion was wrong"},
	{Name: "clear", Short: "Remove an earlier rating"},
}

// Feedback asks whether the detected emotion was accurate and returns
// "accurate", "inaccurate" or "clear".
func Feedback(s IO, label string) (string, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }} {{ .Short | green }}",
		Inactive: "   {{ .Name }} {{ .Short | cyan }}",
		Selected: "{{ .Name | bold }}",
	}

	p := promptui.Select{
		HideHelp:  true,
		Label:     "Was " + label + " accurate",
		Items:     feedbackChoices,
		Templates: templates,
		Stdin:     s.In,
		Stdout:    s.Out,
	}
	i, _, err := p.Run()
	if err != nil {
		return "", err
	}
	return feedbackChoices[i].Name, nil
}

// Range asks for one of the analytics ranges, starting at current.
func Range(s IO, current analytics.Range) (analytics.Range, error) {
	ranges := analytics.Ranges()
	items := make([]choice, 0, len(ranges))
	cursor := 0
	for i, r := range ranges {
		items = append(items, choice{Name: r.Key(), Short: r.Label()})
		if r == current {
			cursor = i
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }} {{ .Short | green }}",
		Inactive: "   {{ .Name }} {{ .Short | cyan }}",
		Selected: "{{ .Short | bold }}",
	}

	searcher := func(input string, index int) bool {
		item := items[index]
		name := strings.Replace(strings.ToLower(item.Name+item.Short), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}

	p := promptui.Select{
		HideHelp:  true,
		Label:     "Range",
		Items:     items,
		Templates: templates,
		CursorPos: cursor,
		Searcher:  searcher,
		Stdin:     s.In,
		Stdout:    s.Out,
	}
	i, _, err := p.Run()
	if err != nil {
		return current, err
	}
	return ranges[i], nil
}
