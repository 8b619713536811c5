package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelDeliversInOrder(t *testing.T) {
	c := NewChannel(4)
	c.Emit(New(EventThinking, "planning"))
	c.Emit(NewToolEvent(EventToolCall, "whois", "example.com", "dispatching"))
	c.Close()

	var got []Event
	for e := range c.Events() {
		got = append(got, e)
	}
	require.Len(t, got, 2)
	assert.Equal(t, EventThinking, got[0].Type)
	assert.Equal(t, "whois", got[1].Tool)
	assert.False(t, got[0].Timestamp.IsZero())
	assert.NotEmpty(t, got[0].ID)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestChannelDropsWhenFull(t *testing.T) {
	c := NewChannel(1)
	c.Emit(New(EventAnswer, "kept"))
	c.Emit(New(EventAnswer, "dropped"))
	c.Close()

	var got []Event
	for e := range c.Events() {
		got = append(got, e)
	}
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].Message)
}

func TestFuncSink(t *testing.T) {
	var seen []EventType
	sink := Func(func(e Event) { seen = append(seen, e.Type) })
	sink.Emit(New(EventError, "boom"))
	assert.Equal(t, []EventType{EventError}, seen)

	// Discard must accept events without effect
	Discard.Emit(New(EventAnswer, "ignored"))
}
