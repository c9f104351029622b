package chat

import "bitebook/store"

// Events describe turn progress for the UI. The manager publishes them on a
// buffered channel; the UI is the single consumer and turns them into
// bubbletea messages.

// Event is implemented by all chat events.
type Event interface {
	chatEvent()
}

// StreamingEvent carries the visible portion of the in-flight response.
// Text is the full stripped accumulation so far, not a delta.
type StreamingEvent struct {
	Text string
}

// MessageEvent is emitted when a message has been persisted. It covers both
// assistant replies and notices.
type MessageEvent struct {
	Message store.Message
}

// ToolCallStartedEvent is emitted when a tool begins executing.
type ToolCallStartedEvent struct {
	Record ToolCallRecord
}

// ToolCallFinishedEvent is emitted when a tool finishes and its record has
// been persisted.
type ToolCallFinishedEvent struct {
	Record ToolCallRecord
}

// TurnDoneEvent is emitted when a turn ends, whatever the outcome.
type TurnDoneEvent struct{}

func (StreamingEvent) chatEvent()        {}
func (MessageEvent) chatEvent()          {}
func (ToolCallStartedEvent) chatEvent()  {}
func (ToolCallFinishedEvent) chatEvent() {}
func (TurnDoneEvent) chatEvent()         {}
