// Package ui implements the terminal interface: the chat view, the
// conversation switcher, the calorie dashboard and the model picker.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bitebook/chat"
	"bitebook/config"
	"bitebook/ollama"
	"bitebook/provider"
	"bitebook/store"
)

type screen int

const (
	screenChat screen = iota
	screenSwitcher
	screenDashboard
	screenModels
)

// App is the root bubbletea model.
type App struct {
	cfg      *config.Config
	store    *store.Store
	manager  *chat.Manager
	provider provider.Provider

	screen screen
	width  int
	height int
	ready  bool

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	conversationID int64
	messages       []store.Message
	streamingText  string
	runningCalls   []chat.ToolCallRecord
	processing     bool

	// conversation switcher
	conversations []store.Conversation
	filterInput   textinput.Model
	filtered      []int
	cursor        int

	// dashboard
	dashboard dashboardData

	// model picker
	models      []ollama.ModelInfo
	modelCursor int

	status string
}

func NewApp(cfg *config.Config, st *store.Store, manager *chat.Manager, p provider.Provider, conversationID int64) *App {
	ta := textarea.New()
	ta.Placeholder = "Tell me what you ate..."
	ta.Prompt = "> "
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.Focus()

	fi := textinput.New()
	fi.Placeholder = "Filter conversations"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return &App{
		cfg:            cfg,
		store:          st,
		manager:        manager,
		provider:       p,
		textarea:       ta,
		filterInput:    fi,
		spinner:        sp,
		conversationID: conversationID,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadMessages(),
		waitForChatEvent(a.manager.Events()),
		a.spinner.Tick,
		textarea.Blink,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.textarea.SetWidth(msg.Width - 2)
		if !a.ready {
			a.viewport = viewport.New(msg.Width, msg.Height-4)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = msg.Height - 4
		}
		a.refreshTranscript()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case chatEventMsg:
		cmd := a.handleChatEvent(msg.event)
		return a, tea.Batch(cmd, waitForChatEvent(a.manager.Events()))

	case turnFinishedMsg:
		a.processing = false
		return a, nil

	case modelsLoadedMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("Could not list models: %v", msg.err)
			a.screen = screenChat
			return a, nil
		}
		a.models = msg.models
		a.modelCursor = 0
		return a, nil

	case copiedMsg:
		if msg.err != nil {
			a.status = "Copy failed"
		} else {
			a.status = "Copied last reply"
		}
		return a, nil

	case tea.KeyMsg:
		switch a.screen {
		case screenSwitcher:
			return a.updateSwitcher(msg)
		case screenDashboard:
			return a.updateDashboard(msg)
		case screenModels:
			return a.updateModels(msg)
		default:
			return a.updateChat(msg)
		}
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if !a.ready {
		return "Starting BiteBook..."
	}

	switch a.screen {
	case screenSwitcher:
		return a.viewSwitcher()
	case screenDashboard:
		return a.viewDashboard()
	case screenModels:
		return a.viewModels()
	default:
		return a.viewChat()
	}
}

// handleChatEvent folds a manager event into UI state.
func (a *App) handleChatEvent(ev chat.Event) tea.Cmd {
	switch ev := ev.(type) {
	case chat.StreamingEvent:
		a.streamingText = ev.Text
		a.refreshTranscript()

	case chat.MessageEvent:
		if ev.Message.ConversationID == a.conversationID {
			a.messages = append(a.messages, ev.Message)
			a.streamingText = ""
			a.refreshTranscript()
		}

	case chat.ToolCallStartedEvent:
		a.runningCalls = append(a.runningCalls, ev.Record)
		a.refreshTranscript()

	case chat.ToolCallFinishedEvent:
		// The terminal record arrives right after as a persisted tool_call
		// row, so the transient entry is dropped rather than updated.
		for i := range a.runningCalls {
			if a.runningCalls[i].ID == ev.Record.ID {
				a.runningCalls = append(a.runningCalls[:i], a.runningCalls[i+1:]...)
				break
			}
		}
		a.refreshTranscript()

	case chat.TurnDoneEvent:
		a.streamingText = ""
		a.refreshTranscript()
	}

	return nil
}

// sendMessage starts a turn in the background; events stream in while it runs.
func (a *App) sendMessage(text string) tea.Cmd {
	a.processing = true
	a.runningCalls = nil
	conversationID := a.conversationID
	return func() tea.Msg {
		a.manager.HandleUserMessage(context.Background(), conversationID, text)
		return turnFinishedMsg{}
	}
}

func (a *App) loadMessages() tea.Cmd {
	messages, err := a.store.Messages(a.conversationID, 0)
	if err != nil {
		a.status = fmt.Sprintf("Could not load messages: %v", err)
		return nil
	}
	a.messages = messages
	a.runningCalls = nil
	a.refreshTranscript()
	return nil
}

func (a *App) loadModels() tea.Cmd {
	p := a.provider
	return func() tea.Msg {
		models, err := p.ListModels(context.Background())
		return modelsLoadedMsg{models: models, err: err}
	}
}
