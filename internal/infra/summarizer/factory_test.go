package summarizer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-summarizer/internal/config"
	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/infra/summarizer"
)

func TestNew_Providers(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(*config.SummarizerConfig)
		wantConfigured bool
		wantProvider   string
		wantMessage    string
	}{
		{
			name:         "no credentials",
			mutate:       func(*config.SummarizerConfig) {},
			wantProvider: "none",
			wantMessage:  "Azure OpenAI is not configured. Please set AZURE_OPENAI_API_KEY and AZURE_OPENAI_ENDPOINT.",
		},
		{
			name: "azure key without endpoint",
			mutate: func(c *config.SummarizerConfig) {
				c.Provider = config.ProviderAzure
				c.Azure.APIKey = "k"
			},
			wantProvider: "none",
			wantMessage:  "Azure OpenAI is not configured. Please set AZURE_OPENAI_API_KEY and AZURE_OPENAI_ENDPOINT.",
		},
		{
			name: "azure detected",
			mutate: func(c *config.SummarizerConfig) {
				c.Azure.APIKey = "k"
				c.Azure.Endpoint = "https://example.openai.azure.com"
				c.Azure.Deployment = "gpt"
			},
			wantConfigured: true,
			wantProvider:   "azure",
		},
		{
			name: "openai selected",
			mutate: func(c *config.SummarizerConfig) {
				c.Provider = config.ProviderOpenAI
				c.OpenAI.APIKey = "k"
			},
			wantConfigured: true,
			wantProvider:   "openai",
		},
		{
			name: "claude selected without key",
			mutate: func(c *config.SummarizerConfig) {
				c.Provider = config.ProviderClaude
			},
			wantProvider: "none",
			wantMessage:  "Claude is not configured. Please set ANTHROPIC_API_KEY.",
		},
		{
			name: "claude selected",
			mutate: func(c *config.SummarizerConfig) {
				c.Provider = config.ProviderClaude
				c.Claude.APIKey = "k"
			},
			wantConfigured: true,
			wantProvider:   "claude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Summarizer
			tt.mutate(&cfg)

			engine, err := summarizer.New(context.Background(), cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = engine.Close() })

			assert.Equal(t, tt.wantConfigured, engine.Configured())
			assert.Equal(t, tt.wantProvider, engine.Provider())
			if !tt.wantConfigured {
				_, err := engine.Summarize(context.Background(), "text", entity.TierShort)
				assert.ErrorIs(t, err, entity.ErrSummarization)
				assert.Equal(t, tt.wantMessage, entity.PublicMessage(err))
			}
		})
	}
}

func TestNew_UnsupportedProvider(t *testing.T) {
	cfg := config.Default().Summarizer
	cfg.Provider = "bard"

	_, err := summarizer.New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNew_UsesConfiguredTargets(t *testing.T) {
	cfg := config.Default().Summarizer
	cfg.Targets = config.TierTargets{Short: 10, Medium: 20, Long: 30}

	engine, err := summarizer.New(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 10, engine.Targets().WordCount(entity.TierShort))
	assert.Equal(t, 30, engine.Targets().WordCount(entity.TierLong))
}
