package summarizer

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"genai-summarizer/internal/config"
)

// Vertex implements Backend with a Gemini model on Vertex AI.
// Credentials come from Application Default Credentials.
type Vertex struct {
	guard
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewVertex connects to Vertex AI. The returned backend must be closed.
func NewVertex(ctx context.Context, cfg config.VertexConfig, settings ChatSettings) (*Vertex, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemInstruction)},
	}
	model.SetTemperature(float32(settings.Temperature))
	// #nosec G115 -- MaxTokens is validated positive and small
	model.SetMaxOutputTokens(int32(settings.MaxTokens))

	return &Vertex{
		guard:  newGuard(config.ProviderVertex, settings.MaxAttempts, settings.Timeout),
		client: client,
		model:  model,
	}, nil
}

// Complete implements Backend. The model's system instruction is fixed at
// construction, so prompt.System is ignored.
func (v *Vertex) Complete(ctx context.Context, prompt Prompt) (string, error) {
	return v.run(ctx, func(ctx context.Context) (string, error) {
		resp, err := v.model.GenerateContent(ctx, genai.Text(prompt.User))
		if err != nil {
			return "", fmt.Errorf("vertex generate content: %w", err)
		}
		return vertexText(resp)
	})
}

// Close releases the underlying gRPC connection.
func (v *Vertex) Close() error {
	return v.client.Close()
}

func vertexText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", errEmptyResponse
	}
	return b.String(), nil
}
