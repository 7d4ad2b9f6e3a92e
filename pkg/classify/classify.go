// Package classify asks a chat-completion model which emotion a journal entry
// expresses.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/store"
)

// ErrEmptyText is returned when there is nothing to classify.
var ErrEmptyText = errors.New("classify: text is required")

const maxRetries = 2

// Classifier labels a piece of text with an emotion.
type Classifier interface {
	Classify(ctx context.Context, text string) (emotion.Result, error)
}

// New builds an OpenAI classifier from cfg. It returns nil, nil when no API key
// is configured so callers can store entries unclassified.
func New(cfg store.ClassifierConfig) (*OpenAI, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = store.DefaultClassifierURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = store.DefaultClassifierModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = store.DefaultTimeout
	}

	httpClient, err := newHTTPClient(cfg.Proxy, timeout)
	if err != nil {
		return nil, err
	}

	client := openaigo.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(maxRetries),
		option.WithRequestTimeout(timeout),
	)
	return &OpenAI{client: client, model: model}, nil
}

// OpenAI classifies text with an OpenAI compatible chat endpoint.
type OpenAI struct {
	client openaigo.Client
	model  string
}

var _ Classifier = (*OpenAI)(nil)

func (o *OpenAI) Classify(ctx context.Context, text string) (emotion.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return emotion.Result{}, ErrEmptyText
	}

	resp, err := o.client.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(o.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.SystemMessage(systemPrompt()),
			openaigo.UserMessage(text),
		},
	})
	if err != nil {
		return emotion.Result{}, fmt.Errorf("classify: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return emotion.Result{}, errors.New("classify: model returned no choices")
	}
	return ParseResponse(resp.Choices[0].Message.Content)
}

func systemPrompt() string {
	labels := make([]string, 0, 6)
	for _, l := range emotion.Labels() {
		labels = append(labels, string(l))
	}
	return "You classify the dominant emotion of a journal entry.\n" +
		"Pick exactly one label from: " + strings.Join(labels, ", ") + ".\n" +
		"Return ONLY a JSON object like:\n" +
		`{"label": "calm", "confidence": 0.82}` + "\n" +
		"confidence is your certainty between 0 and 1."
}

type response struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ParseResponse reads the model's JSON answer. Labels outside the palette
// become neutral and the confidence is clamped to [0,1].
func ParseResponse(content string) (emotion.Result, error) {
	raw := extractJSON(content)
	var parsed response
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return emotion.Result{}, fmt.Errorf("classify: invalid json: %w (raw=%s)", err, raw)
	}
	label, err := emotion.ParseLabel(parsed.Label)
	if err != nil {
		label = emotion.Neutral
	}
	return emotion.Result{Label: label, Confidence: parsed.Confidence}.Clamp(), nil
}

// extractJSON strips markdown fences and any prose around the first object.
func extractJSON(s string) string {
	raw := strings.TrimSpace(s)
	if strings.HasPrefix(raw, "```") {
		rest := strings.TrimSpace(strings.TrimPrefix(raw, "```"))
		if i := strings.Index(rest, "\n"); i >= 0 {
			rest = rest[i+1:]
		}
		if j := strings.LastIndex(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		raw = strings.TrimSpace(rest)
	}
	if !strings.HasPrefix(raw, "{") {
		if i := strings.Index(raw, "{"); i >= 0 {
			if j := strings.LastIndex(raw, "}"); j > i {
				return raw[i : j+1]
			}
		}
	}
	return raw
}

// Func adapts a plain function to Classifier.
type Func func(ctx context.Context, text string) (emotion.Result, error)

func (f Func) Classify(ctx context.Context, text string) (emotion.Result, error) {
	return f(ctx, text)
}
