package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"genai-summarizer/internal/config"
	"genai-summarizer/internal/resilience/retry"
)

// Claude implements Backend using Anthropic's Messages API.
type Claude struct {
	guard
	client   anthropic.Client
	model    string
	settings ChatSettings
}

// NewClaude returns a Claude backend. Extra options are passed to the SDK
// client, for example option.WithBaseURL in tests.
func NewClaude(cfg config.ClaudeConfig, settings ChatSettings, opts ...option.RequestOption) *Claude {
	// SDK の自動リトライは無効化し、retry パッケージに一本化する
	opts = append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &Claude{
		guard:    newGuard(config.ProviderClaude, settings.MaxAttempts, settings.Timeout),
		client:   anthropic.NewClient(opts...),
		model:    cfg.Model,
		settings: settings,
	}
}

// Complete implements Backend.
func (c *Claude) Complete(ctx context.Context, prompt Prompt) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(c.model),
			MaxTokens:   int64(c.settings.MaxTokens),
			Temperature: anthropic.Float(c.settings.Temperature),
			System:      []anthropic.TextBlockParam{{Text: prompt.System}},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
			},
		})
		if err != nil {
			var apiErr *anthropic.Error
			if errors.As(err, &apiErr) {
				return "", &retry.HTTPError{StatusCode: apiErr.StatusCode, Message: "claude api error", Err: err}
			}
			return "", fmt.Errorf("claude api error: %w", err)
		}

		var b strings.Builder
		for _, block := range message.Content {
			if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
				b.WriteString(tb.Text)
			}
		}
		if b.Len() == 0 {
			return "", errEmptyResponse
		}
		return b.String(), nil
	})
}
