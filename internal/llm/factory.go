package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/logging"
)

const (
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	OllamaBaseURL = "http://localhost:11434/v1"
)

// baseURLFor returns the endpoint for provider. A configured URL wins;
// otherwise groq and ollama get their public defaults and the rest use
// their SDK default ("").
func baseURLFor(provider, configured string) string {
	switch provider {
	case "groq":
		if configured == "" {
			return GroqBaseURL
		}
	case "ollama":
		if configured == "" {
			return OllamaBaseURL
		}
		if !strings.HasSuffix(configured, "/v1") {
			return strings.TrimRight(configured, "/") + "/v1"
		}
	}
	return configured
}

// NewClient builds the configured provider and wraps it in a Completer.
func NewClient(ctx context.Context, cfg config.LLMConfig) (*Completer, error) {
	provider := strings.ToLower(cfg.Provider)

	baseURL := baseURLFor(provider, cfg.BaseURL)

	var p Provider
	switch provider {
	case "groq", "openai":
		p = NewOpenAIClient(provider, cfg.APIKey, baseURL)

	case "ollama":
		// Ollama ignores the key but the client requires one.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		p = NewOpenAIClient(provider, apiKey, baseURL)

	case "claude", "anthropic":
		p = NewClaudeClient(cfg.APIKey, cfg.Model, baseURL)

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		p = c

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}

	if cfg.APIKey == "" && provider != "ollama" {
		logging.Warn().Str("provider", provider).Msg("no LLM API key configured, completions will fail and fall back")
	}

	return NewCompleter(p, cfg.Model, cfg.PreferredModels, cfg.Timeout.Duration), nil
}
