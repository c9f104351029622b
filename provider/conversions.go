package provider

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// ConvertToOllamaMessages maps provider messages onto Ollama api.Message.
// Both types share Role and Content, so this is a plain field copy.
func ConvertToOllamaMessages(messages []Message) []api.Message {
	result := make([]api.Message, len(messages))
	for i, msg := range messages {
		result[i] = api.Message{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return result
}

// ConvertToOpenAIMessages maps provider messages onto the OpenAI union type.
// Unknown roles become user messages.
func ConvertToOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case "system":
			result[i] = openai.SystemMessage(msg.Content)
		case "user":
			result[i] = openai.UserMessage(msg.Content)
		case "assistant":
			result[i] = openai.AssistantMessage(msg.Content)
		case "tool":
			// Tool results ride as user messages; a real tool message would
			// need a tool_call_id tied to a structured assistant turn.
			result[i] = openai.UserMessage(msg.Content)
		default:
			result[i] = openai.UserMessage(msg.Content)
		}
	}

	return result
}

// ParseToolArguments parses a JSON arguments string into a map. A string
// that fails to parse yields an empty map, never nil.
func ParseToolArguments(argsJSON string) map[string]any {
	var args map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return make(map[string]any)
	}
	return args
}

// ConvertToProviderToolCalls converts Ollama api.ToolCall to the
// provider-agnostic form. Returns nil for empty input.
func ConvertToProviderToolCalls(ollamaCalls []api.ToolCall) []ToolCall {
	if len(ollamaCalls) == 0 {
		return nil
	}

	result := make([]ToolCall, len(ollamaCalls))
	for i, call := range ollamaCalls {
		result[i] = ToolCall{
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		}
	}
	return result
}

// ConvertFromProviderToolCalls converts provider tool calls back to Ollama
// format. Mostly useful in tests.
func ConvertFromProviderToolCalls(providerCalls []ToolCall) []api.ToolCall {
	if len(providerCalls) == 0 {
		return nil
	}

	result := make([]api.ToolCall, len(providerCalls))
	for i, call := range providerCalls {
		result[i] = api.ToolCall{
			Function: api.ToolCallFunction{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		}
	}
	return result
}

// ConvertToolsToOllama converts MCP tool definitions to Ollama API format.
func ConvertToolsToOllama(tools []mcptypes.Tool) []api.Tool {
	ollamaTools := make([]api.Tool, 0, len(tools))

	for _, tool := range tools {
		ollamaTools = append(ollamaTools, api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  convertInputSchemaToParameters(tool.InputSchema),
			},
		})
	}

	return ollamaTools
}

func convertInputSchemaToParameters(inputSchema mcptypes.ToolInputSchema) api.ToolFunctionParameters {
	params := api.ToolFunctionParameters{
		Type:       inputSchema.Type,
		Required:   inputSchema.Required,
		Properties: make(map[string]api.ToolProperty),
	}

	for propName, propValue := range inputSchema.Properties {
		params.Properties[propName] = convertPropertyValue(propValue)
	}

	return params
}

func convertPropertyValue(propValue any) api.ToolProperty {
	toolProp := api.ToolProperty{}

	propMap, ok := propValue.(map[string]any)
	if !ok {
		return toolProp
	}

	if typeVal, ok := propMap["type"].(string); ok {
		toolProp.Type = api.PropertyType{typeVal}
	}

	if desc, ok := propMap["description"].(string); ok {
		toolProp.Description = desc
	}

	if enumVal, ok := propMap["enum"].([]any); ok {
		toolProp.Enum = enumVal
	}

	return toolProp
}

// ConvertToolsToOpenAI converts MCP tool definitions to OpenAI function
// tools. Both sides speak JSON Schema, so the schema maps across directly.
func ConvertToolsToOpenAI(tools []mcptypes.Tool) []openai.ChatCompletionToolUnionParam {
	if len(tools) == 0 {
		return nil
	}

	result := make([]openai.ChatCompletionToolUnionParam, len(tools))

	for i, tool := range tools {
		params := openai.FunctionParameters{
			"type":       tool.InputSchema.Type,
			"properties": tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			params["required"] = tool.InputSchema.Required
		}

		result[i] = openai.ChatCompletionFunctionTool(
			openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  params,
			},
		)
	}

	return result
}

// ConvertToolsToAnthropic converts MCP tool definitions to Anthropic's
// tool-use format.
func ConvertToolsToAnthropic(tools []mcptypes.Tool) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}

	result := make([]anthropic.ToolUnionParam, len(tools))

	for i, tool := range tools {
		inputSchema := anthropic.ToolInputSchemaParam{
			// Type defaults to "object" when omitted
			Properties: tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			inputSchema.Required = tool.InputSchema.Required
		}

		result[i] = anthropic.ToolUnionParamOfTool(inputSchema, tool.Name)
		if tool.Description != "" {
			result[i].OfTool.Description = anthropic.String(tool.Description)
		}
	}

	return result
}
