package chat

import (
	"reflect"
	"testing"
)

func TestParseToolCalls(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []TextToolCall
	}{
		{
			name: "single call",
			text: `<tool_call>{"tool": "logFood", "params": {"name": "bread", "calories": 100}}</tool_call>`,
			want: []TextToolCall{
				{Tool: "logFood", Params: map[string]any{"name": "bread", "calories": float64(100)}},
			},
		},
		{
			name: "multiple calls",
			text: `<tool_call>{"tool": "searchWeb", "params": {"query": "calories in a banana"}}</tool_call>
<tool_call>{"tool": "getTargetCalories", "params": {}}</tool_call>`,
			want: []TextToolCall{
				{Tool: "searchWeb", Params: map[string]any{"query": "calories in a banana"}},
				{Tool: "getTargetCalories", Params: map[string]any{}},
			},
		},
		{
			name: "single quotes repaired",
			text: `<tool_call>{'tool': 'getCalories', 'params': {'period': 'today'}}</tool_call>`,
			want: []TextToolCall{
				{Tool: "getCalories", Params: map[string]any{"period": "today"}},
			},
		},
		{
			name: "trailing comma repaired",
			text: `<tool_call>{"tool": "logFood", "params": {"name": "rice", "calories": 200,},}</tool_call>`,
			want: []TextToolCall{
				{Tool: "logFood", Params: map[string]any{"name": "rice", "calories": float64(200)}},
			},
		},
		{
			name: "missing params defaults to empty map",
			text: `<tool_call>{"tool": "getTargetCalories"}</tool_call>`,
			want: []TextToolCall{
				{Tool: "getTargetCalories", Params: map[string]any{}},
			},
		},
		{
			name: "malformed json skipped",
			text: `<tool_call>{"tool": "logFood", "params": {broken</tool_call>
<tool_call>{"tool": "getTargetCalories", "params": {}}</tool_call>`,
			want: []TextToolCall{
				{Tool: "getTargetCalories", Params: map[string]any{}},
			},
		},
		{
			name: "missing tool field discarded",
			text: `<tool_call>{"params": {"name": "bread"}}</tool_call>`,
			want: nil,
		},
		{
			name: "non-string tool discarded",
			text: `<tool_call>{"tool": 42, "params": {}}</tool_call>`,
			want: nil,
		},
		{
			name: "plain text yields nothing",
			text: "You have 235 calories so far today.",
			want: nil,
		},
		{
			name: "surrounding prose preserved for stripping, calls still parsed",
			text: `Let me look that up.
<tool_call>{"tool": "searchWeb", "params": {"query": "calories in oatmeal"}}</tool_call>`,
			want: []TextToolCall{
				{Tool: "searchWeb", Params: map[string]any{"query": "calories in oatmeal"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseToolCalls(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseToolCalls() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestStripToolCalls(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "call only",
			text: `<tool_call>{"tool": "getCalories", "params": {"period": "today"}}</tool_call>`,
			want: "",
		},
		{
			name: "prose around call",
			text: "Let me check.\n<tool_call>{\"tool\": \"getCalories\", \"params\": {}}</tool_call>\nOne moment.",
			want: "Let me check.\n\nOne moment.",
		},
		{
			name: "malformed block still stripped",
			text: `<tool_call>{not json at all</tool_call> done`,
			want: "done",
		},
		{
			name: "no calls",
			text: "  plain answer  ",
			want: "plain answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripToolCalls(tt.text); got != tt.want {
				t.Errorf("StripToolCalls(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestVisibleText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "complete block removed",
			text: "Logging it.\n<tool_call>{\"tool\": \"logFood\", \"params\": {}}</tool_call>",
			want: "Logging it.",
		},
		{
			name: "unclosed block held back",
			text: `Logging it.` + "\n" + `<tool_call>{"tool": "logFood", "para`,
			want: "Logging it.",
		},
		{
			name: "bare opening tag held back",
			text: "One sec.\n<tool_call>",
			want: "One sec.",
		},
		{
			name: "plain text unchanged",
			text: "You have 235 calories left.",
			want: "You have 235 calories left.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisibleText(tt.text); got != tt.want {
				t.Errorf("VisibleText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestHasToolCalls(t *testing.T) {
	if !HasToolCalls(`<tool_call>{"tool": "logFood"}</tool_call>`) {
		t.Error("expected true for well-formed block")
	}
	if HasToolCalls("no calls here") {
		t.Error("expected false for plain text")
	}
}
