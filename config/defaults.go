package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/bitebook",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Provider: "ollama",
		Ollama: OllamaConfig{
			Host:         "http://localhost:11434",
			DefaultModel: "llama3.2:3b",
		},
		SearchEnabled: true,
	}
}

func GenerateSystemConfigTemplate() string {
	return `# BiteBook System Configuration
# Location: ~/.config/bitebook/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the database and user config are stored
data_directory = "~/.local/share/bitebook"
`
}

func GenerateUserConfigTemplate() string {
	return `# BiteBook User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Chat backend: "ollama", "openai" or "anthropic".
# Cloud providers read their API keys from the standard environment
# variables (OPENAI_API_KEY, ANTHROPIC_API_KEY).
provider = "ollama"

# Replay tool call records to the model on later turns
include_tool_calls_in_context = false

# Allow the assistant to search the web for nutrition facts
search_enabled = true

[ollama]
# Ollama server URL
host = "http://localhost:11434"

# Model to use when none has been picked in the app yet
default_model = "llama3.2:3b"

[openai]
# Optional OpenAI-compatible endpoint and model
# base_url = "https://api.openai.com/v1"
# model = "gpt-4o-mini"

[anthropic]
# model = "claude-sonnet-4-5"
`
}
