package chat

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Models without native function calling are instructed to emit tool calls
// as <tool_call>{json}</tool_call> blocks in their text output. This file
// parses that protocol.

var (
	toolCallRegex  = regexp.MustCompile(`(?s)<tool_call>\s*(\{.*?\})\s*</tool_call>`)
	toolCallStrip  = regexp.MustCompile(`(?s)<tool_call>.*?</tool_call>`)
	trailingCommas = regexp.MustCompile(`,\s*([}\]])`)
)

// TextToolCall is a tool invocation parsed from model text.
type TextToolCall struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
}

// ParseToolCalls extracts tool calls from text. Malformed blocks are
// skipped; small models produce near-JSON often enough that common damage
// (single quotes, trailing commas) is repaired before parsing. A block
// whose "tool" field is missing or not a string is discarded.
func ParseToolCalls(text string) []TextToolCall {
	var calls []TextToolCall

	for _, match := range toolCallRegex.FindAllStringSubmatch(text, -1) {
		jsonStr := repairJSON(strings.TrimSpace(match[1]))

		var raw struct {
			Tool   any            `json:"tool"`
			Params map[string]any `json:"params"`
		}
		if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
			continue
		}

		tool, ok := raw.Tool.(string)
		if !ok || tool == "" {
			continue
		}

		params := raw.Params
		if params == nil {
			params = map[string]any{}
		}

		calls = append(calls, TextToolCall{Tool: tool, Params: params})
	}

	return calls
}

// StripToolCalls removes tool_call blocks from text, leaving only the prose
// a user should see.
func StripToolCalls(text string) string {
	return strings.TrimSpace(toolCallStrip.ReplaceAllString(text, ""))
}

// HasToolCalls reports whether text contains at least one well-formed block.
func HasToolCalls(text string) bool {
	return toolCallRegex.MatchString(text)
}

// VisibleText is the display form of an in-flight response: complete blocks
// removed, and anything after a still-unclosed opening tag held back until
// the block finishes streaming.
func VisibleText(raw string) string {
	visible := toolCallStrip.ReplaceAllString(raw, "")
	if i := strings.Index(visible, "<tool_call>"); i >= 0 {
		visible = visible[:i]
	}
	return strings.TrimSpace(visible)
}

// repairJSON fixes the two JSON mistakes small models make constantly:
// single-quoted strings and trailing commas.
func repairJSON(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	s = trailingCommas.ReplaceAllString(s, "$1")
	return s
}
