package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type OllamaConfig struct {
	Host         string `toml:"host"`
	DefaultModel string `toml:"default_model"`
}

type OpenAIConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model,omitempty"`
}

type AnthropicConfig struct {
	Model string `toml:"model,omitempty"`
}

type UserConfig struct {
	Provider  string          `toml:"provider"`
	Ollama    OllamaConfig    `toml:"ollama"`
	OpenAI    OpenAIConfig    `toml:"openai"`
	Anthropic AnthropicConfig `toml:"anthropic"`

	// IncludeToolCallsInContext replays persisted tool_call rows to the model
	// on later turns. Off by default; the records are audit data, not context.
	IncludeToolCallsInContext bool `toml:"include_tool_calls_in_context"`

	// SearchEnabled gates the searchWeb tool. When off the tool is not
	// offered to the model at all.
	SearchEnabled bool `toml:"search_enabled"`
}

type Config struct {
	DataDirectory             string
	Provider                  string
	OllamaHost                string
	DefaultModel              string
	OpenAIBaseURL             string
	OpenAIModel               string
	AnthropicModel            string
	IncludeToolCallsInContext bool
	SearchEnabled             bool
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) OllamaURL() string {
	return c.OllamaHost
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("BITEBOOK_OLLAMA_HOST"); host != "" {
		c.OllamaHost = host
	}
	if model := os.Getenv("BITEBOOK_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if dataDir := os.Getenv("BITEBOOK_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if provider := os.Getenv("BITEBOOK_PROVIDER"); provider != "" {
		c.Provider = provider
	}
}

func CheckDebug() bool {
	debug := os.Getenv("BITEBOOK_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (BITEBOOK_DEBUG=%s) ===", os.Getenv("BITEBOOK_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: "~/.local/share/bitebook",
		Provider:      "ollama",
		OllamaHost:    "http://localhost:11434",
		DefaultModel:  "llama3.2:3b",
		SearchEnabled: true,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory

	dataDir := cfg.DataDir()
	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.Provider = userCfg.Provider
	cfg.OllamaHost = userCfg.Ollama.Host
	cfg.DefaultModel = userCfg.Ollama.DefaultModel
	cfg.OpenAIBaseURL = userCfg.OpenAI.BaseURL
	cfg.OpenAIModel = userCfg.OpenAI.Model
	cfg.AnthropicModel = userCfg.Anthropic.Model
	cfg.IncludeToolCallsInContext = userCfg.IncludeToolCallsInContext
	cfg.SearchEnabled = userCfg.SearchEnabled

	cfg.applyEnvOverrides()

	dataDir = cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	return cfg, nil
}
