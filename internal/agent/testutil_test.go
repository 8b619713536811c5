package agent

import (
	"context"
	"errors"
	"sync"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool"
)

// scriptedGateway replays canned responses in order. A nil script entry
// yields an error for that call.
type scriptedGateway struct {
	mu        sync.Mutex
	responses []string
	failAt    map[int]error
	calls     int
	prompts   [][]llm.Message
}

func newScriptedGateway(responses ...string) *scriptedGateway {
	return &scriptedGateway{responses: responses, failAt: map[int]error{}}
}

func (g *scriptedGateway) Name() string { return "scripted" }

func (g *scriptedGateway) Generate(_ context.Context, messages []llm.Message, _ llm.GenerateOptions) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	call := g.calls
	g.calls++
	g.prompts = append(g.prompts, messages)

	if err, ok := g.failAt[call]; ok {
		return "", err
	}
	if call >= len(g.responses) {
		return "", errors.New("scripted gateway exhausted")
	}
	return g.responses[call], nil
}

// countingTool records how many times it was dispatched.
type countingTool struct {
	mu       sync.Mutex
	name     string
	output   string
	failWith error
	calls    int
}

func (c *countingTool) Name() string        { return c.name }
func (c *countingTool) Description() string { return "test probe" }

func (c *countingTool) Execute(_ context.Context, params map[string]any) (tool.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.failWith != nil {
		return tool.Result{}, c.failWith
	}
	out := c.output
	if out == "" {
		out = "result for " + tool.Target(params)
	}
	return tool.Result{Status: tool.StatusSuccess, Stdout: out}, nil
}

func (c *countingTool) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
