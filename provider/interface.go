// Package provider abstracts the chat backends BiteBook can talk to.
//
// The assistant core is provider-agnostic: it works with provider.Message
// and provider.ToolCall and streams responses through a StreamCallback.
// Three backends implement the interface: a local Ollama server, the
// OpenAI API (or any OpenAI-compatible endpoint via base_url), and the
// Anthropic API. Tool schemas are declared once as MCP tool definitions
// and converted to each backend's native format in conversions.go.
package provider

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"bitebook/ollama"
)

// Message is a provider-agnostic chat message.
type Message struct {
	Role    string
	Content string
}

// ToolCall is a tool invocation requested by the model. Arguments may be
// empty when the model supplied none or they failed to parse.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// StreamCallback is called for each chunk of streamed response. A chunk may
// carry text, tool calls, or both.
type StreamCallback func(chunk string, toolCalls []ToolCall) error

// Provider is the contract every chat backend implements.
type Provider interface {
	// Chat sends messages and streams responses back via callback.
	Chat(ctx context.Context, messages []Message, callback StreamCallback) error

	// ChatWithTools sends messages with available tools and streams responses.
	ChatWithTools(ctx context.Context, messages []Message, tools []mcptypes.Tool, callback StreamCallback) error

	// ListModels returns available models for this provider.
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)

	// GetModel returns the currently selected model name.
	GetModel() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOllama    ProviderType = "ollama"
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeAnthropic ProviderType = "anthropic"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama
}
