package llm

import (
	"context"
	"fmt"
	"strings"
)

// NewExtractor builds the provider-appropriate Extractor for a resolved
// model configuration.
func NewExtractor(ctx context.Context, cfg ModelConfig) (Extractor, error) {
	model := bareModelName(cfg.Model)
	switch cfg.Provider {
	case ProviderGemini:
		gen, err := newGeminiGenerator(ctx, cfg.APIKey, model)
		if err != nil {
			return nil, err
		}
		return newTextExtractor(gen), nil
	case ProviderOpenAI:
		return newTextExtractor(newOpenAIGenerator(cfg.APIKey, model, "")), nil
	case ProviderAnthropic:
		return newTextExtractor(newAnthropicGenerator(cfg.APIKey, model, cfg.MaxTokens)), nil
	default:
		return nil, fmt.Errorf("unsupported extraction provider: %s", cfg.Provider)
	}
}

// bareModelName strips the "provider/" prefix a catalog name carries.
func bareModelName(model string) string {
	if idx := strings.Index(model, "/"); idx >= 0 {
		return model[idx+1:]
	}
	return model
}
