package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"bitebook/chat"
	"bitebook/ollama"
)

// chatEventMsg wraps one event from the chat manager.
type chatEventMsg struct {
	event chat.Event
}

// turnFinishedMsg is sent when HandleUserMessage returns.
type turnFinishedMsg struct{}

// modelsLoadedMsg carries the provider's model list.
type modelsLoadedMsg struct {
	models []ollama.ModelInfo
	err    error
}

// copiedMsg confirms a clipboard copy.
type copiedMsg struct {
	err error
}

// waitForChatEvent blocks for the next manager event. The app re-issues
// this command after handling each event, keeping exactly one reader on the
// channel.
func waitForChatEvent(events <-chan chat.Event) tea.Cmd {
	return func() tea.Msg {
		return chatEventMsg{event: <-events}
	}
}
