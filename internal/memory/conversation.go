// Package memory provides the bounded conversation history shared by the
// agent roles within a session.
package memory

import (
	"strings"
	"sync"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// Conversation is a bounded, insertion-ordered message history. When the
// capacity is exceeded the oldest message is evicted. A single instance is
// shared by reference across the agent roles so every role sees the same
// history. Safe for concurrent use.
type Conversation struct {
	mu       sync.RWMutex
	session  types.SessionID
	messages []llm.Message
	capacity int
}

// NewConversation creates a conversation bounded to capacity messages.
// Non-positive capacities fall back to 20.
func NewConversation(capacity int) *Conversation {
	if capacity <= 0 {
		capacity = 20
	}
	return &Conversation{
		session:  types.NewSessionID(),
		messages: make([]llm.Message, 0, capacity),
		capacity: capacity,
	}
}

// Session returns the identifier assigned to this conversation.
func (c *Conversation) Session() types.SessionID {
	return c.session
}

// Add appends a message, evicting the oldest when full.
func (c *Conversation) Add(msg llm.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.messages) >= c.capacity {
		c.messages = append(c.messages[:0], c.messages[1:]...)
	}
	c.messages = append(c.messages, msg)
}

// AddUser records a user message.
func (c *Conversation) AddUser(content string) {
	c.Add(llm.NewUserMessage(content))
}

// AddAssistant records an assistant message.
func (c *Conversation) AddAssistant(content string) {
	c.Add(llm.NewAssistantMessage(content))
}

// Recent returns a copy of the newest n messages, oldest first, with
// system messages filtered out. n <= 0 returns everything non-system.
func (c *Conversation) Recent(n int) []llm.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	filtered := make([]llm.Message, 0, len(c.messages))
	for _, m := range c.messages {
		if m.Role == llm.RoleSystem {
			continue
		}
		filtered = append(filtered, m)
	}
	if n > 0 && len(filtered) > n {
		filtered = filtered[len(filtered)-n:]
	}
	return filtered
}

// All returns a copy of every message, oldest first.
func (c *Conversation) All() []llm.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]llm.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of stored messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Clear drops the history.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = c.messages[:0]
}

// FindToolResult scans from newest to oldest for an assistant message
// recording a result of the named tool. Tool results are stored with a
// "[tool]" prefix by the executor so they can be recognized here.
func (c *Conversation) FindToolResult(tool string) (llm.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	marker := "[" + tool + "]"
	for i := len(c.messages) - 1; i >= 0; i-- {
		m := c.messages[i]
		if m.Role == llm.RoleAssistant && strings.HasPrefix(m.Content, marker) {
			return m, true
		}
	}
	return llm.Message{}, false
}
