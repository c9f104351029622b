package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dimColor     = lipgloss.Color("7")
	accentColor  = lipgloss.Color("12")
	successColor = lipgloss.Color("10")
	warningColor = lipgloss.Color("11")
	dangerColor  = lipgloss.Color("9")

	// User message style
	UserStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	// Assistant message style
	AssistantStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// System/timestamp style
	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	// Status bar style
	StatusStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	// Tool call indicator styles
	ToolRunningStyle = lipgloss.NewStyle().
				Foreground(warningColor)

	ToolDoneStyle = lipgloss.NewStyle().
			Foreground(successColor)

	ToolErrorStyle = lipgloss.NewStyle().
			Foreground(dangerColor)

	// Calorie progress styles
	OverTargetStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	UnderTargetStyle = lipgloss.NewStyle().
				Foreground(successColor)
)

// FormatFooter formats a footer string with alternating keys and
// descriptions. Usage: FormatFooter("enter", "Send", "ctrl+l", "Conversations")
func FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	var result []string
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
		}
	}
	return strings.Join(result, "  ")
}
