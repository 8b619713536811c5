// Package tool defines the typed tool surface the agent dispatches to and
// the registry that owns the known tool roster.
package tool

import (
	"context"
	"time"
)

// Tool is an atomic, stateless reconnaissance operation. Implementations
// must be safe for concurrent use and honor context cancellation.
type Tool interface {
	// Name returns the unique identifier used in plans and model prompts.
	Name() string

	// Description returns a one-line summary shown to the planner model.
	Description() string

	// Execute runs the tool against params. Operational failures are
	// reported inside the Result; an error return means the tool itself
	// could not run (bad input, cancelled context).
	Execute(ctx context.Context, params map[string]any) (Result, error)
}

// Status reports how an execution ended.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusTimeout Status = "timeout"
)

// Result is a structured execution outcome. Stdout carries the primary
// output, Stderr any diagnostics, and Metadata small facts worth surfacing
// (counts, versions, expiry dates). EvidencePath points at the raw capture
// on disk when one was written.
type Result struct {
	Tool         string            `json:"tool"`
	Status       Status            `json:"status"`
	Stdout       string            `json:"stdout,omitempty"`
	Stderr       string            `json:"stderr,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	EvidencePath string            `json:"evidence_path,omitempty"`
	Duration     time.Duration     `json:"duration"`
}

// Target extracts the target parameter from a params map, accepting the
// aliases the planner model tends to produce.
func Target(params map[string]any) string {
	for _, key := range []string{"target", "domain", "host", "ip", "url"} {
		if v, ok := params[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
