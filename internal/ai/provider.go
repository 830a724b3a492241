package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ProviderConfig selects and configures a completion backend.
type ProviderConfig struct {
	Name    string // "gemini" or "openai"
	APIKey  string
	Model   string
	BaseURL string // optional endpoint override
	// HTTPClient carries retries and transport settings; nil means http.DefaultClient.
	HTTPClient *http.Client
}

// NewProvider builds the backend named by cfg.Name.
func NewProvider(ctx context.Context, cfg ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s provider: API key is not configured", cfg.Name)
	}
	switch strings.ToLower(cfg.Name) {
	case ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Name)
	}
}
