package types

import "github.com/google/uuid"

// SessionID identifies a single conversation with the agent.
type SessionID string

// MessageID identifies a single message exchanged with a model provider.
type MessageID string

// NewSessionID returns a new random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// NewMessageID returns a new random message identifier.
func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

func (id SessionID) String() string { return string(id) }
func (id MessageID) String() string { return string(id) }
