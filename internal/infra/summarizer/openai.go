package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"genai-summarizer/internal/config"
	"genai-summarizer/internal/resilience/retry"
)

// ChatSettings holds the generation parameters shared by chat backends.
type ChatSettings struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	MaxAttempts int
}

func chatSettings(cfg config.SummarizerConfig) ChatSettings {
	return ChatSettings{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
		MaxAttempts: cfg.MaxAttempts,
	}
}

// OpenAI implements Backend with the chat completions API. It serves both
// Azure OpenAI deployments and the public OpenAI endpoint.
type OpenAI struct {
	guard
	client   *openai.Client
	model    string
	settings ChatSettings
}

// NewAzureOpenAI returns a backend for an Azure OpenAI deployment.
// Requests always target cfg.Deployment regardless of the model name.
func NewAzureOpenAI(cfg config.AzureConfig, settings ChatSettings) *OpenAI {
	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	deployment := cfg.Deployment
	clientCfg.AzureModelMapperFunc = func(string) string { return deployment }

	return &OpenAI{
		guard:    newGuard(config.ProviderAzure, settings.MaxAttempts, settings.Timeout),
		client:   openai.NewClientWithConfig(clientCfg),
		model:    deployment,
		settings: settings,
	}
}

// NewOpenAI returns a backend for the OpenAI API or a compatible server at cfg.BaseURL.
func NewOpenAI(cfg config.OpenAIConfig, settings ChatSettings) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{
		guard:    newGuard(config.ProviderOpenAI, settings.MaxAttempts, settings.Timeout),
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		settings: settings,
	}
}

// Complete implements Backend.
func (o *OpenAI) Complete(ctx context.Context, prompt Prompt) (string, error) {
	return o.run(ctx, func(ctx context.Context) (string, error) {
		resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
				{Role: openai.ChatMessageRoleUser, Content: prompt.User},
			},
			Temperature: float32(o.settings.Temperature),
			MaxTokens:   o.settings.MaxTokens,
		})
		if err != nil {
			return "", classifyOpenAIError(err)
		}
		if len(resp.Choices) == 0 {
			return "", errEmptyResponse
		}
		return resp.Choices[0].Message.Content, nil
	})
}

// classifyOpenAIError exposes the HTTP status of API failures to the retry policy.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: reqErr.HTTPStatusCode, Message: http.StatusText(reqErr.HTTPStatusCode), Err: err}
	}
	return fmt.Errorf("openai api error: %w", err)
}
