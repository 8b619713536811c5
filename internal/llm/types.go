// Package llm defines the model gateway used by the agent roles, the
// message model exchanged with providers, and tolerant extraction of
// structured data from untrusted model output.
package llm

import (
	"context"
	"fmt"
	"time"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	}
	return false
}

// Message is a single conversation entry. Timestamp is set at creation and
// preserved when messages move through memory.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content, Timestamp: time.Now()}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: time.Now()}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content, Timestamp: time.Now()}
}

// Validate checks the message for structural problems.
func (m Message) Validate() error {
	if !m.Role.IsValid() {
		return NewInvalidRequestError(fmt.Sprintf("invalid message role: %q", m.Role))
	}
	if m.Content == "" {
		return NewInvalidRequestError("message content is empty")
	}
	return nil
}

// GenerateOptions tunes a single completion request.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
	Stop        []string
}

// Gateway is the minimal surface the agent roles need from a model
// provider. Implementations translate provider failures into the
// error taxonomy in errors.go so callers can distinguish connection,
// timeout, and auth failures.
type Gateway interface {
	// Generate produces a completion for the given conversation.
	Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error)
	// Name returns the provider name for logging.
	Name() string
}
