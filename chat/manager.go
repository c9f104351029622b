// Package chat implements the conversation orchestrator. A user message
// starts a turn: the model streams a response, any tool calls in it are
// executed and their results fed back, and the loop repeats until the model
// answers in plain text or the iteration cap is hit.
package chat

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"bitebook/config"
	"bitebook/provider"
	"bitebook/store"
)

const (
	// maxIterations caps the tool-call loop within a single turn.
	maxIterations = 5

	// maxContextMessages is the history window sent to the model.
	maxContextMessages = 20
)

const (
	noticeNoModel  = "No model is loaded. Please pick a model first."
	noticeLLMError = "Sorry, I encountered an error generating a response. Please try again."
)

// ToolCallRecord is the persisted form of one completed tool call. It is
// stored as the content of a tool_call message row.
type ToolCallRecord struct {
	ID       string         `json:"id"`
	ToolName string         `json:"toolName"`
	Params   map[string]any `json:"params"`
	Status   string         `json:"status"` // "running" while in flight, then "done" or "error"
	Result   any            `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Manager drives chat turns. All dependencies are explicit; construct one
// per application.
type Manager struct {
	provider provider.Provider
	store    *store.Store
	executor *Executor
	cfg      *config.Config

	events chan Event

	// turnMu serializes turns. A second HandleUserMessage blocks until the
	// first finishes.
	turnMu sync.Mutex
}

func NewManager(p provider.Provider, st *store.Store, executor *Executor, cfg *config.Config) *Manager {
	return &Manager{
		provider: p,
		store:    st,
		executor: executor,
		cfg:      cfg,
		events:   make(chan Event, 64),
	}
}

// Events returns the event stream. Single consumer.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// SetProvider swaps the chat backend, e.g. after the user changes settings.
// Takes effect on the next turn.
func (m *Manager) SetProvider(p provider.Provider) {
	m.turnMu.Lock()
	defer m.turnMu.Unlock()
	m.provider = p
}

func (m *Manager) emit(ev Event) {
	m.events <- ev
}

// HandleUserMessage runs one full turn: persist the user message, stream
// model output, execute tool calls, and persist the final reply. Every
// outcome reaches the user through persisted messages and events; failures
// are logged, never returned.
func (m *Manager) HandleUserMessage(ctx context.Context, conversationID int64, text string) {
	if err := m.runTurn(ctx, conversationID, text); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("chat: turn failed: %v", err)
	}
}

func (m *Manager) runTurn(ctx context.Context, conversationID int64, text string) error {
	m.turnMu.Lock()
	defer m.turnMu.Unlock()
	defer m.emit(TurnDoneEvent{})

	userMsg, err := m.store.AppendMessage(conversationID, store.RoleUser, text)
	if err != nil {
		return err
	}
	m.emit(MessageEvent{Message: *userMsg})

	if err := m.store.EnsureTitle(conversationID, text); err != nil {
		return err
	}
	if err := m.store.TouchConversation(conversationID); err != nil {
		return err
	}

	if m.provider == nil || m.provider.GetModel() == "" {
		return m.persistNotice(conversationID, noticeNoModel)
	}

	m.executor.SetConversation(conversationID)

	messages, err := m.buildContext(conversationID)
	if err != nil {
		return err
	}

	tools := ToolCatalog(m.cfg == nil || m.cfg.SearchEnabled)

	for iteration := 0; iteration < maxIterations; iteration++ {
		raw, nativeCalls, err := m.streamOnce(ctx, messages, tools)
		if err != nil {
			if persistErr := m.persistNotice(conversationID, noticeLLMError); persistErr != nil {
				return persistErr
			}
			return err
		}

		// Native tool calls win; the textual protocol is only a fallback.
		calls := nativeCalls
		if len(calls) == 0 {
			for _, tc := range ParseToolCalls(raw) {
				calls = append(calls, provider.ToolCall{Name: tc.Tool, Arguments: tc.Params})
			}
		}

		if len(calls) == 0 {
			// Final response. Tool call markup never reaches the user.
			if reply := StripToolCalls(raw); reply != "" {
				if err := m.persistAssistant(conversationID, reply); err != nil {
					return err
				}
			}
			return nil
		}

		// The raw assistant output, tool markup included, goes back into
		// the model context so it can see what it asked for.
		messages = append(messages, provider.Message{Role: "assistant", Content: raw})

		// Prose alongside the calls is shown to the user before execution.
		if preText := StripToolCalls(raw); preText != "" {
			if err := m.persistAssistant(conversationID, preText); err != nil {
				return err
			}
		}

		for _, call := range calls {
			resultMsg, err := m.runToolCall(ctx, conversationID, call)
			if err != nil {
				return err
			}
			messages = append(messages, resultMsg)
		}
	}

	// Iteration cap reached with the model still asking for tools. The tool
	// results are persisted; there is just no closing prose.
	return nil
}

// streamOnce performs one model completion, accumulating raw text and any
// native tool calls while streaming the stripped text to the UI.
func (m *Manager) streamOnce(ctx context.Context, messages []provider.Message, tools []mcptypes.Tool) (string, []provider.ToolCall, error) {
	var raw string
	var nativeCalls []provider.ToolCall

	m.emit(StreamingEvent{Text: ""})

	err := m.provider.ChatWithTools(ctx, messages, tools, func(chunk string, toolCalls []provider.ToolCall) error {
		if len(toolCalls) > 0 {
			nativeCalls = append(nativeCalls, toolCalls...)
		}
		if chunk != "" {
			raw += chunk
			m.emit(StreamingEvent{Text: VisibleText(raw)})
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	return raw, nativeCalls, nil
}

// runToolCall executes one call through its full lifecycle: announce it as
// running, execute, persist the terminal record as a tool_call row, and
// return the tool-role message for the model context.
func (m *Manager) runToolCall(ctx context.Context, conversationID int64, call provider.ToolCall) (provider.Message, error) {
	record := ToolCallRecord{
		ID:       "tc_" + uuid.NewString(),
		ToolName: call.Name,
		Params:   call.Arguments,
		Status:   "running",
	}
	m.emit(ToolCallStartedEvent{Record: record})

	result := m.executor.Execute(ctx, call.Name, call.Arguments)

	record.Status = "done"
	if !result.Success {
		record.Status = "error"
		record.Error = result.Error
	}
	record.Result = result.Data

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return provider.Message{}, err
	}
	msg, err := m.store.AppendMessage(conversationID, store.RoleToolCall, string(recordJSON))
	if err != nil {
		return provider.Message{}, err
	}
	m.emit(ToolCallFinishedEvent{Record: record})
	m.emit(MessageEvent{Message: *msg})

	contextPayload := result.Data
	if contextPayload == nil {
		contextPayload = map[string]any{"error": result.Error}
	}
	payloadJSON, err := json.Marshal(contextPayload)
	if err != nil {
		return provider.Message{}, err
	}

	return provider.Message{Role: "tool", Content: string(payloadJSON)}, nil
}

// buildContext assembles the model context: system prompt plus the recent
// history window. Tool call rows are excluded unless configured in.
func (m *Manager) buildContext(conversationID int64) ([]provider.Message, error) {
	target, err := m.store.CalorieTarget()
	if err != nil {
		return nil, err
	}

	recent, err := m.store.RecentMessages(conversationID, maxContextMessages)
	if err != nil {
		return nil, err
	}

	includeToolCalls := m.cfg != nil && m.cfg.IncludeToolCallsInContext

	messages := []provider.Message{
		{Role: "system", Content: BuildSystemPrompt(target)},
	}
	for _, msg := range recent {
		if msg.Role == store.RoleToolCall {
			if includeToolCalls {
				messages = append(messages, provider.Message{Role: "assistant", Content: msg.Content})
			}
			continue
		}
		messages = append(messages, provider.Message{Role: msg.Role, Content: msg.Content})
	}

	return messages, nil
}

func (m *Manager) persistAssistant(conversationID int64, text string) error {
	msg, err := m.store.AppendMessage(conversationID, store.RoleAssistant, text)
	if err != nil {
		return err
	}
	m.emit(MessageEvent{Message: *msg})
	return nil
}

// persistNotice stores a fixed assistant-visible notice. Notices are plain
// assistant messages so they survive reloads like any other reply.
func (m *Manager) persistNotice(conversationID int64, notice string) error {
	return m.persistAssistant(conversationID, notice)
}
