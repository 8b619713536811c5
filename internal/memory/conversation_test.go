package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm"
)

func TestConversationEvictsOldestAtCapacity(t *testing.T) {
	c := NewConversation(3)
	for i := 1; i <= 5; i++ {
		c.AddUser(fmt.Sprintf("message %d", i))
	}

	require.Equal(t, 3, c.Len())
	all := c.All()
	assert.Equal(t, "message 3", all[0].Content)
	assert.Equal(t, "message 5", all[2].Content)
}

func TestConversationPreservesOrderAndTimestamps(t *testing.T) {
	c := NewConversation(10)
	c.AddUser("first")
	c.AddAssistant("second")

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, llm.RoleUser, all[0].Role)
	assert.Equal(t, llm.RoleAssistant, all[1].Role)
	assert.False(t, all[0].Timestamp.IsZero())
	assert.False(t, all[0].Timestamp.After(all[1].Timestamp))
}

func TestRecentFiltersSystemMessages(t *testing.T) {
	c := NewConversation(10)
	c.Add(llm.NewSystemMessage("you are a recon agent"))
	c.AddUser("scan example.com")
	c.AddAssistant("on it")

	recent := c.Recent(5)
	require.Len(t, recent, 2)
	for _, m := range recent {
		assert.NotEqual(t, llm.RoleSystem, m.Role)
	}

	assert.Len(t, c.Recent(1), 1)
	assert.Equal(t, "on it", c.Recent(1)[0].Content)
}

func TestFindToolResult(t *testing.T) {
	c := NewConversation(10)
	c.AddAssistant("[whois] Status: SUCCESS\nexample.com registrar data")
	c.AddUser("unrelated")
	c.AddAssistant("[whois] Status: SUCCESS\nfresher result")

	msg, ok := c.FindToolResult("whois")
	require.True(t, ok)
	assert.Contains(t, msg.Content, "fresher result")

	_, ok = c.FindToolResult("nmap")
	assert.False(t, ok)
}

func TestConversationConcurrentAccess(t *testing.T) {
	c := NewConversation(50)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			c.AddUser(fmt.Sprintf("writer %d", n))
		}(i)
		go func() {
			defer wg.Done()
			_ = c.Recent(5)
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, c.Len())
}
