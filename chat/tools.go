package chat

import (
	"context"
	"fmt"

	"bitebook/config"
	"bitebook/store"
)

// Searcher performs a nutrition web search. Implementations return a
// model-readable results string; transient failures should be folded into
// the string rather than surfaced as errors.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// ToolResult is the outcome of one tool invocation. Data is what the model
// sees on the next turn; Error is set when Success is false.
type ToolResult struct {
	Tool    string `json:"tool"`
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

func toolError(tool ToolName, msg string) ToolResult {
	return ToolResult{Tool: string(tool), Success: false, Error: msg}
}

// Executor runs tool calls against the store and search layer.
type Executor struct {
	store    *store.Store
	searcher Searcher

	// conversationID tags logged food entries with their source
	// conversation. Set per turn by the manager.
	conversationID *int64
}

func NewExecutor(st *store.Store, searcher Searcher) *Executor {
	return &Executor{store: st, searcher: searcher}
}

// SetConversation sets the conversation new food entries are attributed to.
func (e *Executor) SetConversation(id int64) {
	e.conversationID = &id
}

// Execute dispatches a tool call to its handler. Unknown tools and handler
// panics become error results, never a crashed turn.
func (e *Executor) Execute(ctx context.Context, tool string, params map[string]any) (result ToolResult) {
	if params == nil {
		params = map[string]any{}
	}

	defer func() {
		if r := recover(); r != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("tool %s panicked: %v", tool, r)
			}
			result = toolError(ToolName(tool), "Tool execution failed")
		}
	}()

	switch ToolName(tool) {
	case ToolLogFood:
		return e.logFood(params)
	case ToolSearchWeb:
		return e.searchWeb(ctx, params)
	case ToolWriteNote:
		return e.writeNote(params)
	case ToolGetCalories:
		return e.getCalories(params)
	case ToolGetTargetCalories:
		return e.getTargetCalories()
	default:
		return toolError(ToolName(tool), fmt.Sprintf("Unknown tool: %s", tool))
	}
}

func (e *Executor) logFood(params map[string]any) ToolResult {
	name, _ := params["name"].(string)
	calories, caloriesOK := asNumber(params["calories"])
	quantity, quantityOK := asNumber(params["quantity"])
	if !quantityOK {
		quantity = 1.0
	}

	if name == "" || !caloriesOK {
		return toolError(ToolLogFood, "Missing required parameters: name and calories")
	}

	if _, err := e.store.LogFood(name, int(calories), quantity, e.conversationID); err != nil {
		return toolError(ToolLogFood, err.Error())
	}

	todayTotal, err := e.store.TodayCalories()
	if err != nil {
		return toolError(ToolLogFood, err.Error())
	}

	return ToolResult{
		Tool:    string(ToolLogFood),
		Success: true,
		Data: map[string]any{
			"logged": map[string]any{
				"name":     name,
				"calories": int(calories),
				"quantity": quantity,
			},
			"todayTotal": todayTotal,
		},
	}
}

func (e *Executor) searchWeb(ctx context.Context, params map[string]any) ToolResult {
	query, _ := params["query"].(string)
	if query == "" {
		return toolError(ToolSearchWeb, "Missing required parameter: query")
	}

	if e.searcher == nil {
		return toolError(ToolSearchWeb, "Web search is disabled")
	}

	results, err := e.searcher.Search(ctx, query)
	if err != nil {
		return toolError(ToolSearchWeb, err.Error())
	}

	return ToolResult{Tool: string(ToolSearchWeb), Success: true, Data: results}
}

func (e *Executor) writeNote(params map[string]any) ToolResult {
	content, _ := params["content"].(string)
	if content == "" {
		return toolError(ToolWriteNote, "Missing required parameter: content")
	}

	noteType, _ := params["type"].(string)

	note, err := e.store.CreateNote(content, noteType)
	if err != nil {
		return toolError(ToolWriteNote, err.Error())
	}

	return ToolResult{
		Tool:    string(ToolWriteNote),
		Success: true,
		Data:    map[string]any{"noteId": note.ID},
	}
}

func (e *Executor) getCalories(params map[string]any) ToolResult {
	period, _ := params["period"].(string)

	var total int
	var err error
	switch period {
	case "this_week":
		total, err = e.store.WeekCalories()
	case "last_week":
		total, err = e.store.LastWeekCalories()
	case "today":
		total, err = e.store.TodayCalories()
	default:
		// Unknown period falls back to today, matching the prompt's examples.
		period = "today"
		total, err = e.store.TodayCalories()
	}
	if err != nil {
		return toolError(ToolGetCalories, err.Error())
	}

	entries := []map[string]any{}
	if period == "today" {
		todayEntries, err := e.store.TodayEntries()
		if err != nil {
			return toolError(ToolGetCalories, err.Error())
		}
		for _, entry := range todayEntries {
			entries = append(entries, map[string]any{
				"name":     entry.Name,
				"calories": entry.Calories,
				"quantity": entry.Quantity,
			})
		}
	}

	return ToolResult{
		Tool:    string(ToolGetCalories),
		Success: true,
		Data: map[string]any{
			"period":        period,
			"totalCalories": total,
			"entries":       entries,
		},
	}
}

func (e *Executor) getTargetCalories() ToolResult {
	target, err := e.store.CalorieTarget()
	if err != nil {
		return toolError(ToolGetTargetCalories, err.Error())
	}

	return ToolResult{
		Tool:    string(ToolGetTargetCalories),
		Success: true,
		Data:    map[string]any{"targetCalories": target},
	}
}

// asNumber accepts the numeric shapes JSON decoding produces.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
