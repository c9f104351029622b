package provider

import (
	"context"
	"fmt"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"

	"bitebook/ollama"
)

// OllamaProvider wraps ollama.Client to implement the Provider interface.
// It converts between provider-agnostic types and Ollama API types on the
// way in and out.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates an Ollama provider. Empty baseURL and model fall
// back to the client defaults.
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{
		client: client,
	}, nil
}

func (p *OllamaProvider) Chat(ctx context.Context, messages []Message, callback StreamCallback) error {
	return p.ChatWithTools(ctx, messages, nil, callback)
}

// ChatWithTools streams a chat request. Tool schemas are only sent when the
// active model supports native tool calling; other models get the textual
// protocol described in the system prompt instead.
func (p *OllamaProvider) ChatWithTools(ctx context.Context, messages []Message, tools []mcptypes.Tool, callback StreamCallback) error {
	ollamaMessages := ConvertToOllamaMessages(messages)

	var ollamaTools []api.Tool
	if len(tools) > 0 && p.client.SupportsToolCalling() {
		ollamaTools = ConvertToolsToOllama(tools)
	}

	ollamaCallback := func(chunk string, ollamaCalls []api.ToolCall) error {
		if callback == nil {
			return nil
		}
		return callback(chunk, ConvertToProviderToolCalls(ollamaCalls))
	}

	return p.client.ChatWithTools(ctx, ollamaMessages, ollamaTools, ollamaCallback)
}

func (p *OllamaProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return p.client.ListModels(ctx)
}

func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

func (p *OllamaProvider) SetModel(model string) {
	p.client.SetModel(model)
}

func (p *OllamaProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}
