package summarizer

import (
	"context"
	"fmt"
	"log/slog"

	"genai-summarizer/internal/config"
)

// New builds an Engine for the configured provider.
// Missing credentials are not an error: the engine is returned without a
// backend and reports "not configured" on every call.
func New(ctx context.Context, cfg config.SummarizerConfig) (*Engine, error) {
	provider := cfg.ResolvedProvider()
	settings := chatSettings(cfg)
	targets := TargetsFromConfig(cfg.Targets)
	opts := []Option{
		WithMetrics(NewPrometheusMetrics()),
		WithNotConfiguredMessage(notConfiguredMessage(provider)),
	}

	var backend Backend
	switch provider {
	case config.ProviderAzure:
		if cfg.Azure.APIKey != "" && cfg.Azure.Endpoint != "" {
			backend = NewAzureOpenAI(cfg.Azure, settings)
		}
	case config.ProviderOpenAI:
		if cfg.OpenAI.APIKey != "" {
			backend = NewOpenAI(cfg.OpenAI, settings)
		}
	case config.ProviderClaude:
		if cfg.Claude.APIKey != "" {
			backend = NewClaude(cfg.Claude, settings)
		}
	case config.ProviderVertex:
		if cfg.Vertex.ProjectID != "" {
			v, err := NewVertex(ctx, cfg.Vertex, settings)
			if err != nil {
				return nil, fmt.Errorf("init vertex summarizer: %w", err)
			}
			backend = v
		}
	case config.ProviderNone:
	default:
		return nil, fmt.Errorf("unsupported summarizer provider %q", provider)
	}

	if backend == nil {
		slog.Warn("summarizer credentials not configured", slog.String("provider", provider))
		return NewEngine(nil, targets, opts...), nil
	}
	slog.Info("initialized summarizer", slog.String("provider", provider))
	return NewEngine(backend, targets, opts...), nil
}

func notConfiguredMessage(provider string) string {
	switch provider {
	case config.ProviderOpenAI:
		return "OpenAI is not configured. Please set OPENAI_API_KEY."
	case config.ProviderClaude:
		return "Claude is not configured. Please set ANTHROPIC_API_KEY."
	case config.ProviderVertex:
		return "Vertex AI is not configured. Please set VERTEX_PROJECT_ID."
	default:
		return "Azure OpenAI is not configured. Please set AZURE_OPENAI_API_KEY and AZURE_OPENAI_ENDPOINT."
	}
}
