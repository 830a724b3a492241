package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned when the selected provider has no credential configured.
var ErrMissingAPIKey = errors.New("missing AI provider API key")

// Config holds all configuration for the application.
// Mapstructure tags map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"
	AppEnv        string `mapstructure:"APP_ENV"`        // "production" switches gin to release mode and logs to JSON
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	// AI Configuration
	AIProvider    string `mapstructure:"AI_PROVIDER"` // "gemini" or "openai"
	GoogleAPIKey  string `mapstructure:"GOOGLE_API_KEY"`
	GeminiModel   string `mapstructure:"GEMINI_MODEL"`
	OpenAIKey     string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel   string `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`

	// Generation Configuration
	ExtractionPolicy string        `mapstructure:"EXTRACTION_POLICY"` // "tolerant" or "strict"
	ProviderTimeout  time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	ProviderRetryMax int           `mapstructure:"PROVIDER_RETRY_MAX"`

	// Preview Configuration
	PreviewCacheSize int `mapstructure:"PREVIEW_CACHE_SIZE"` // number of recent results kept for /preview
}

var defaults = map[string]any{
	"SERVER_ADDRESS":     ":8080",
	"APP_ENV":            "development",
	"LOG_LEVEL":          "info",
	"AI_PROVIDER":        "gemini",
	"GOOGLE_API_KEY":     "",
	"GEMINI_MODEL":       "gemini-1.5-flash",
	"OPENAI_API_KEY":     "",
	"OPENAI_MODEL":       "gpt-4o",
	"OPENAI_BASE_URL":    "",
	"EXTRACTION_POLICY":  "tolerant",
	"PROVIDER_TIMEOUT":   "60s",
	"PROVIDER_RETRY_MAX": 2,
	"PREVIEW_CACHE_SIZE": 64,
}

// LoadConfig reads configuration from an optional config.yaml in path and from
// environment variables, which take precedence.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Every key needs a default so AutomaticEnv values reach Unmarshal.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Debug().Str("path", path).Msg("config.yaml not found, relying on environment variables")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Using configuration file")
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate fails fast on settings that would otherwise surface as opaque provider errors.
func (c Config) Validate() error {
	switch strings.ToLower(c.AIProvider) {
	case "gemini":
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("%w: set GOOGLE_API_KEY for the gemini provider", ErrMissingAPIKey)
		}
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("%w: set OPENAI_API_KEY for the openai provider", ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("AI_PROVIDER must be gemini or openai, got %q", c.AIProvider)
	}

	switch strings.ToLower(c.ExtractionPolicy) {
	case "tolerant", "strict":
	default:
		return fmt.Errorf("EXTRACTION_POLICY must be tolerant or strict, got %q", c.ExtractionPolicy)
	}

	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive, got %s", c.ProviderTimeout)
	}
	if c.ProviderRetryMax < 0 {
		return fmt.Errorf("PROVIDER_RETRY_MAX must not be negative, got %d", c.ProviderRetryMax)
	}
	if c.PreviewCacheSize <= 0 {
		return fmt.Errorf("PREVIEW_CACHE_SIZE must be positive, got %d", c.PreviewCacheSize)
	}
	return nil
}

// ProviderAPIKey returns the credential of the selected provider.
func (c Config) ProviderAPIKey() string {
	if strings.EqualFold(c.AIProvider, "openai") {
		return c.OpenAIKey
	}
	return c.GoogleAPIKey
}

// ProviderModel returns the model of the selected provider.
func (c Config) ProviderModel() string {
	if strings.EqualFold(c.AIProvider, "openai") {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

// ProviderBaseURL returns the endpoint override of the selected provider, if any.
func (c Config) ProviderBaseURL() string {
	if strings.EqualFold(c.AIProvider, "openai") {
		return c.OpenAIBaseURL
	}
	return ""
}
