package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mattn/go-runewidth"

	markdown "github.com/MichaelMure/go-term-markdown"

	"bitebook/chat"
	"bitebook/store"
)

func (a *App) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "enter":
		text := strings.TrimSpace(a.textarea.Value())
		if text == "" || a.processing {
			return a, nil
		}
		a.textarea.Reset()
		a.status = ""
		return a, a.sendMessage(text)

	case "ctrl+n":
		conv, err := a.store.CreateConversation("")
		if err != nil {
			a.status = fmt.Sprintf("Could not create conversation: %v", err)
			return a, nil
		}
		a.conversationID = conv.ID
		a.streamingText = ""
		return a, a.loadMessages()

	case "ctrl+l":
		return a.openSwitcher()

	case "ctrl+d":
		return a.openDashboard()

	case "ctrl+o":
		a.screen = screenModels
		a.models = nil
		return a, a.loadModels()

	case "ctrl+y":
		return a, a.copyLastReply()

	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a *App) viewChat() string {
	title := TitleStyle.Render("BiteBook") + DimStyle.Render("  "+a.provider.GetModel())

	footer := FormatFooter(
		"enter", "Send",
		"^n", "New",
		"^l", "Conversations",
		"^d", "Dashboard",
		"^o", "Models",
		"^y", "Copy",
	)
	if a.status != "" {
		footer = StatusStyle.Render(a.status)
	}

	input := a.textarea.View()
	if a.processing {
		input = a.spinner.View() + " thinking..."
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", title, a.viewport.View(), input, footer)
}

// refreshTranscript rebuilds the viewport content from persisted messages,
// in-flight tool calls and streaming text.
func (a *App) refreshTranscript() {
	if !a.ready {
		return
	}

	var b strings.Builder
	for _, msg := range a.messages {
		b.WriteString(a.renderMessage(msg))
		b.WriteString("\n")
	}

	for _, record := range a.runningCalls {
		b.WriteString(a.renderToolCall(record))
		b.WriteString("\n")
	}

	if a.streamingText != "" {
		b.WriteString(AssistantStyle.Render("BiteBook: "))
		b.WriteString(a.streamingText)
		b.WriteString("\n")
	}

	a.viewport.SetContent(b.String())
	a.viewport.GotoBottom()
}

func (a *App) renderMessage(msg store.Message) string {
	switch msg.Role {
	case store.RoleUser:
		return UserStyle.Render("You: ") + msg.Content + "\n"

	case store.RoleToolCall:
		var record chat.ToolCallRecord
		if err := json.Unmarshal([]byte(msg.Content), &record); err != nil {
			return DimStyle.Render("[tool call]") + "\n"
		}
		return a.renderToolCall(record) + "\n"

	default:
		return AssistantStyle.Render("BiteBook: ") + a.renderMarkdown(msg.Content) + "\n"
	}
}

// renderToolCall renders a one-line tool call indicator.
func (a *App) renderToolCall(record chat.ToolCallRecord) string {
	params, _ := json.Marshal(record.Params)
	line := fmt.Sprintf("%s %s", record.ToolName, params)
	if a.width > 8 {
		line = runewidth.Truncate(line, a.width-8, "...")
	}

	switch record.Status {
	case "running":
		return ToolRunningStyle.Render("⚙ " + line)
	case "error":
		return ToolErrorStyle.Render("✗ " + line)
	default:
		return ToolDoneStyle.Render("✓ " + line)
	}
}

// renderMarkdown renders assistant prose for the terminal.
func (a *App) renderMarkdown(content string) string {
	width := a.width - 4
	if width < 20 {
		return content
	}

	defaultExt := markdown.Extensions()
	customExt := defaultExt &^ parser.Autolink
	p := parser.NewWithExtensions(customExt)
	r := markdown.NewRenderer(width, 0)
	doc := p.Parse([]byte(content))
	rendered := gomarkdown.Render(doc, r)

	return strings.TrimRight(string(rendered), "\n")
}

// copyLastReply copies the newest assistant message to the clipboard.
func (a *App) copyLastReply() tea.Cmd {
	var last string
	for i := len(a.messages) - 1; i >= 0; i-- {
		if a.messages[i].Role == store.RoleAssistant {
			last = a.messages[i].Content
			break
		}
	}
	if last == "" {
		return nil
	}
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(last)}
	}
}
