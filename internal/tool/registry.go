package tool

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// Registry manages tool registration, lookup, and dispatch. All methods
// are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering a duplicate name is an error.
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return types.NewError(types.TOOL_INVALID_INPUT, "tool cannot be nil")
	}
	name := t.Name()
	if name == "" {
		return types.NewError(types.TOOL_INVALID_INPUT, "tool name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return types.NewError(types.TOOL_ALREADY_EXISTS, fmt.Sprintf("tool %q already registered", name))
	}
	r.tools[name] = t
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	if !ok {
		return nil, types.NewError(types.TOOL_NOT_FOUND, fmt.Sprintf("tool %q not registered", name))
	}
	return t, nil
}

// Has reports whether a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Names returns the sorted names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptions returns "name: description" lines for every tool, sorted by
// name, for inclusion in model prompts.
func (r *Registry) Descriptions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		lines = append(lines, t.Name()+": "+t.Description())
	}
	sort.Strings(lines)
	return lines
}

// Execute dispatches to the named tool. A panicking tool never crosses
// this boundary; the panic is converted into a failed Result.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (result Result, err error) {
	t, err := r.Get(name)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			result = Result{
				Tool:     name,
				Status:   StatusFailed,
				Stderr:   fmt.Sprintf("panic: %v\n%s", rec, debug.Stack()),
				Duration: time.Since(start),
			}
			err = nil
		}
	}()

	result, err = t.Execute(ctx, params)
	if err != nil {
		return Result{}, types.WrapError(types.TOOL_EXECUTION_FAILED, fmt.Sprintf("executing %q", name), err)
	}
	result.Tool = name
	if result.Duration == 0 {
		result.Duration = time.Since(start)
	}
	return result, nil
}
