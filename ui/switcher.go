package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

func (a *App) openSwitcher() (tea.Model, tea.Cmd) {
	conversations, err := a.store.ListConversations()
	if err != nil {
		a.status = fmt.Sprintf("Could not list conversations: %v", err)
		return a, nil
	}

	a.conversations = conversations
	a.filterInput.Reset()
	a.filterInput.Focus()
	a.cursor = 0
	a.applyFilter()
	a.screen = screenSwitcher
	return a, nil
}

// applyFilter narrows the conversation list with fuzzy matching on titles.
func (a *App) applyFilter() {
	filterValue := strings.TrimSpace(a.filterInput.Value())
	if filterValue == "" {
		a.filtered = make([]int, len(a.conversations))
		for i := range a.conversations {
			a.filtered[i] = i
		}
		return
	}

	targets := make([]string, len(a.conversations))
	for i, conv := range a.conversations {
		targets[i] = conv.Title
	}

	matches := fuzzy.Find(filterValue, targets)
	a.filtered = make([]int, len(matches))
	for i, m := range matches {
		a.filtered[i] = m.Index
	}
	if a.cursor >= len(a.filtered) {
		a.cursor = 0
	}
}

func (a *App) updateSwitcher(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.screen = screenChat
		a.filterInput.Blur()
		return a, nil

	case "up", "ctrl+k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "down", "ctrl+j":
		if a.cursor < len(a.filtered)-1 {
			a.cursor++
		}
		return a, nil

	case "enter":
		if len(a.filtered) == 0 {
			return a, nil
		}
		conv := a.conversations[a.filtered[a.cursor]]
		a.conversationID = conv.ID
		a.screen = screenChat
		a.filterInput.Blur()
		a.streamingText = ""
		return a, a.loadMessages()

	case "ctrl+x":
		if len(a.filtered) == 0 {
			return a, nil
		}
		conv := a.conversations[a.filtered[a.cursor]]
		if conv.ID == a.conversationID {
			a.status = "Cannot delete the open conversation"
			a.screen = screenChat
			return a, nil
		}
		if err := a.store.DeleteConversation(conv.ID); err != nil {
			a.status = fmt.Sprintf("Delete failed: %v", err)
			a.screen = screenChat
			return a, nil
		}
		return a.openSwitcher()
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.applyFilter()
	return a, cmd
}

func (a *App) viewSwitcher() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Conversations"))
	b.WriteString("\n\n")
	b.WriteString(a.filterInput.View())
	b.WriteString("\n\n")

	if len(a.filtered) == 0 {
		b.WriteString(DimStyle.Render("No conversations"))
		b.WriteString("\n")
	}

	visible := a.height - 8
	if visible < 1 {
		visible = 1
	}
	for i, idx := range a.filtered {
		if i >= visible {
			break
		}
		conv := a.conversations[idx]
		title := conv.Title
		if title == "" {
			title = "New Conversation"
		}
		line := fmt.Sprintf("%s  %s", title, DimStyle.Render(conv.UpdatedAt))
		if i == a.cursor {
			line = SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FormatFooter("enter", "Open", "^x", "Delete", "esc", "Back"))
	return b.String()
}
