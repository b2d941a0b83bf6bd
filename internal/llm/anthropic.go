package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// anthropicGenerator backs the extractor with the Anthropic messages API.
type anthropicGenerator struct {
	client    *http.Client
	apiKey    string
	model     string
	endpoint  string
	maxTokens int
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func newAnthropicGenerator(apiKey, model string, maxTokens int) *anthropicGenerator {
	if maxTokens <= 0 {
		maxTokens = 16000
	}
	// max_tokens bounds the completion, not the context window.
	if maxTokens > 64000 {
		maxTokens = 64000
	}
	return &anthropicGenerator{
		client: &http.Client{
			Timeout: 180 * time.Second,
		},
		apiKey:    apiKey,
		model:     model,
		endpoint:  "https://api.anthropic.com/v1/messages",
		maxTokens: maxTokens,
	}
}

func (g *anthropicGenerator) generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return "", fmt.Errorf("anthropic api key is required")
	}

	reqBody := anthropicRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("anthropic request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	for _, block := range parsed.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic returned an empty completion")
}
