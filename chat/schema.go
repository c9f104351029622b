package chat

import (
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// ToolName enumerates the assistant's tools. Dispatch in the executor is an
// exhaustive switch over these values.
type ToolName string

const (
	ToolLogFood           ToolName = "logFood"
	ToolSearchWeb         ToolName = "searchWeb"
	ToolWriteNote         ToolName = "writeNote"
	ToolGetCalories       ToolName = "getCalories"
	ToolGetTargetCalories ToolName = "getTargetCalories"
)

// ToolCatalog returns the tool definitions offered to the model. The
// searchWeb tool is omitted entirely when search is disabled.
func ToolCatalog(searchEnabled bool) []mcptypes.Tool {
	tools := []mcptypes.Tool{
		{
			Name:        string(ToolLogFood),
			Description: "Log a food item to the calorie tracking database",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"name":     map[string]any{"type": "string", "description": "Name of the food item"},
					"calories": map[string]any{"type": "number", "description": "Calorie count for the food item"},
					"quantity": map[string]any{"type": "number", "description": "Quantity of the food item (default 1.0)"},
				},
				Required: []string{"name", "calories"},
			},
		},
	}

	if searchEnabled {
		tools = append(tools, mcptypes.Tool{
			Name:        string(ToolSearchWeb),
			Description: "Search the web for calorie and nutrition information about a food item",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"query": map[string]any{"type": "string", "description": "Search query for nutrition information"},
				},
				Required: []string{"query"},
			},
		})
	}

	tools = append(tools,
		mcptypes.Tool{
			Name:        string(ToolWriteNote),
			Description: "Write an observation or insight note about the user's eating habits",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"content": map[string]any{"type": "string", "description": "Content of the note"},
					"type":    map[string]any{"type": "string", "description": "Type of note: insight, observation, or reminder"},
				},
				Required: []string{"content"},
			},
		},
		mcptypes.Tool{
			Name:        string(ToolGetCalories),
			Description: "Get calorie data for a time period",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"period": map[string]any{"type": "string", "description": "Time period: today, this_week, or last_week"},
				},
				Required: []string{"period"},
			},
		},
		mcptypes.Tool{
			Name:        string(ToolGetTargetCalories),
			Description: "Get the user's daily calorie target",
			InputSchema: mcptypes.ToolInputSchema{
				Type:       "object",
				Properties: map[string]any{},
			},
		},
	)

	return tools
}
