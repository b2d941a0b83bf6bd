package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiGenerator backs the extractor with Gemini text generation.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

func newGeminiGenerator(ctx context.Context, apiKey, modelName string) (*geminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &geminiGenerator{
		client: client,
		model:  modelName,
	}, nil
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	contents := genai.Text(prompt)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty completion")
	}
	return text, nil
}
