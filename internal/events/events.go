// Package events carries the stream of progress events the agent emits
// while working, so front-ends can render reasoning, dispatches, and
// answers as they happen.
package events

import (
	"time"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// EventType identifies what happened.
type EventType string

const (
	EventThinking   EventType = "agent.thinking"
	EventToolCall   EventType = "agent.tool_call"
	EventToolResult EventType = "agent.tool_result"
	EventAnswer     EventType = "agent.answer"
	EventError      EventType = "agent.error"
)

// Event is a single progress notification.
type Event struct {
	ID        types.MessageID `json:"id"`
	Type      EventType       `json:"type"`
	Message   string          `json:"message"`
	Tool      string          `json:"tool,omitempty"`
	Target    string          `json:"target,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Sink receives events. Implementations must not block; slow consumers
// drop events rather than stall the agent loop.
type Sink interface {
	Emit(Event)
}

// Func adapts a function to the Sink interface.
type Func func(Event)

func (f Func) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = Func(func(Event) {})

// New creates an event stamped with a fresh identifier and the current time.
func New(t EventType, message string) Event {
	return Event{ID: types.NewMessageID(), Type: t, Message: message, Timestamp: time.Now()}
}

// NewToolEvent creates an event tied to a tool dispatch.
func NewToolEvent(t EventType, tool, target, message string) Event {
	return Event{ID: types.NewMessageID(), Type: t, Tool: tool, Target: target, Message: message, Timestamp: time.Now()}
}

// Channel is a buffered fan-in sink backed by a channel. Events beyond
// the buffer are dropped.
type Channel struct {
	ch chan Event
}

// NewChannel creates a channel sink with the given buffer size.
func NewChannel(buffer int) *Channel {
	if buffer <= 0 {
		buffer = 64
	}
	return &Channel{ch: make(chan Event, buffer)}
}

func (c *Channel) Emit(e Event) {
	select {
	case c.ch <- e:
	default:
	}
}

// Events returns the receive side of the sink.
func (c *Channel) Events() <-chan Event {
	return c.ch
}

// Close closes the stream. Emit must not be called after Close.
func (c *Channel) Close() {
	close(c.ch)
}
