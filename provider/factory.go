package provider

import (
	"fmt"
	"os"

	"bitebook/config"
)

// NewProvider creates a provider from configuration.
//
// Returns an error if the provider type is unknown or the backend
// constructor fails (missing API key, invalid URL).
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Type {
	case ProviderTypeOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model)
	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case ProviderTypeAnthropic:
		return NewAnthropicProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// FromAppConfig builds a provider Config from the application config,
// picking the right model and credentials for the configured backend.
// Cloud API keys come from the standard environment variables.
func FromAppConfig(appCfg *config.Config, model string) Config {
	switch appCfg.Provider {
	case "openai":
		m := appCfg.OpenAIModel
		if model != "" {
			m = model
		}
		return Config{
			Type:    ProviderTypeOpenAI,
			BaseURL: appCfg.OpenAIBaseURL,
			Model:   m,
			APIKey:  os.Getenv("OPENAI_API_KEY"),
		}
	case "anthropic":
		m := appCfg.AnthropicModel
		if model != "" {
			m = model
		}
		return Config{
			Type:   ProviderTypeAnthropic,
			Model:  m,
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
		}
	default:
		m := appCfg.DefaultModel
		if model != "" {
			m = model
		}
		return Config{
			Type:    ProviderTypeOllama,
			BaseURL: appCfg.OllamaHost,
			Model:   m,
		}
	}
}
