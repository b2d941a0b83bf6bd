package llm

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// ModelInfo describes one catalog entry.
type ModelInfo struct {
	Provider  string
	Tier      string // "primary" or "mini"
	MaxTokens int
}

// ModelCatalog maps "provider/model" names to their metadata. Only cataloged
// models are accepted, which keeps token limits and key resolution honest.
var ModelCatalog = map[string]ModelInfo{
	// Gemini
	"gemini/gemini-3.1-pro":      {Provider: ProviderGemini, Tier: "primary", MaxTokens: 2000000},
	"gemini/gemini-3.1-flash":    {Provider: ProviderGemini, Tier: "mini", MaxTokens: 1000000},
	"gemini/gemini-3-deep-think": {Provider: ProviderGemini, Tier: "primary", MaxTokens: 1000000},
	"gemini/gemini-2.5-pro":      {Provider: ProviderGemini, Tier: "primary", MaxTokens: 1000000},
	"gemini/gemini-2.5-flash":    {Provider: ProviderGemini, Tier: "mini", MaxTokens: 25000},
	// Anthropic
	"anthropic/claude-opus-4.6":         {Provider: ProviderAnthropic, Tier: "primary", MaxTokens: 1000000},
	"anthropic/claude-sonnet-4.6":       {Provider: ProviderAnthropic, Tier: "primary", MaxTokens: 1000000},
	"anthropic/claude-sonnet-5":         {Provider: ProviderAnthropic, Tier: "primary", MaxTokens: 1000000},
	"anthropic/claude-haiku-3-20250519": {Provider: ProviderAnthropic, Tier: "mini", MaxTokens: 16000},
	// OpenAI
	"openai/gpt-5.2":               {Provider: ProviderOpenAI, Tier: "primary", MaxTokens: 128000},
	"openai/gpt-5.2-instant":       {Provider: ProviderOpenAI, Tier: "mini", MaxTokens: 128000},
	"openai/gpt-5.3-codex":         {Provider: ProviderOpenAI, Tier: "primary", MaxTokens: 128000},
	"openai/o4-mini-deep-research": {Provider: ProviderOpenAI, Tier: "mini", MaxTokens: 128000},
}

// DefaultModels maps a bare provider name to its default model.
var DefaultModels = map[string]string{
	ProviderGemini:    "gemini/gemini-3.1-pro",
	ProviderAnthropic: "anthropic/claude-sonnet-4.6",
	ProviderOpenAI:    "openai/gpt-5.2",
}

// apiKeyEnvVars lists the environment variables probed, in order, for each
// provider's API key.
var apiKeyEnvVars = map[string][]string{
	ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	ProviderAnthropic: {"ANTHROPIC_API_KEY"},
	ProviderOpenAI:    {"OPENAI_API_KEY"},
}

// ModelConfig is a fully resolved model selection.
type ModelConfig struct {
	Provider  string
	Model     string
	APIKey    string
	MaxTokens int
}

// ResolveModelConfig turns a CLI/config model argument into a ModelConfig.
// Accepted forms: "" (gemini default), a bare provider name, or an exact
// "provider/model" catalog entry. apiKeyOverride takes precedence over the
// provider's environment variables.
func ResolveModelConfig(modelArg, apiKeyOverride string) (ModelConfig, error) {
	modelArg = strings.TrimSpace(modelArg)
	if modelArg == "" {
		modelArg = ProviderGemini
	}

	modelName, ok := DefaultModels[modelArg]
	if !ok {
		if _, exact := ModelCatalog[modelArg]; !exact {
			return ModelConfig{}, fmt.Errorf("unknown model %q, run 'agentsmd models' for the supported list", modelArg)
		}
		modelName = modelArg
	}

	info := ModelCatalog[modelName]
	apiKey := strings.TrimSpace(apiKeyOverride)
	if apiKey == "" {
		apiKey = resolveAPIKey(info.Provider)
	}
	if apiKey == "" {
		return ModelConfig{}, fmt.Errorf("%s environment variable not set", strings.Join(apiKeyEnvVars[info.Provider], " or "))
	}

	return ModelConfig{
		Provider:  info.Provider,
		Model:     modelName,
		APIKey:    apiKey,
		MaxTokens: info.MaxTokens,
	}, nil
}

func resolveAPIKey(provider string) string {
	for _, envVar := range apiKeyEnvVars[provider] {
		if key := os.Getenv(envVar); key != "" {
			return key
		}
	}
	return ""
}

// ListSupportedModels renders a human-readable catalog table for the
// `models` command.
func ListSupportedModels() string {
	names := make([]string, 0, len(ModelCatalog))
	for name := range ModelCatalog {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := []string{"Supported models:", ""}
	currentProvider := ""
	for _, name := range names {
		info := ModelCatalog[name]
		if info.Provider != currentProvider {
			currentProvider = info.Provider
			lines = append(lines, "  "+strings.ToUpper(currentProvider))
		}
		tag := ""
		if name == DefaultModels[info.Provider] {
			tag = "  (default)"
		}
		lines = append(lines, "    "+name+tag)
	}
	return strings.Join(lines, "\n")
}
