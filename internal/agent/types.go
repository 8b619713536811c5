// Package agent implements the reasoning roles of the reconnaissance
// agent: the planner that turns goals into tool workflows, the researcher
// that executes single steps under policy, the analyst that interprets
// results, and the investigator that coordinates a conversation.
package agent

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// WorkflowStep is a single planned tool invocation.
type WorkflowStep struct {
	Tool       string         `json:"tool"`
	Target     string         `json:"target"`
	Parameters map[string]any `json:"parameters"`
	Priority   int            `json:"priority"`
	Rationale  string         `json:"rationale"`
}

// ScanPlan is an ordered workflow for one goal.
type ScanPlan struct {
	Goal     string         `json:"goal"`
	Steps    []WorkflowStep `json:"steps"`
	Fallback bool           `json:"fallback,omitempty"`
}

// Validate checks a plan for the fields every step must carry and that
// every tool is in the authorized set. An empty step list is an error.
func (p *ScanPlan) Validate(authorizedTools map[string]bool) error {
	if len(p.Steps) == 0 {
		return types.NewError(types.PLAN_VALIDATION_FAILED, "plan has no steps")
	}
	for i, step := range p.Steps {
		if step.Tool == "" {
			return types.NewError(types.PLAN_VALIDATION_FAILED, fmt.Sprintf("step %d is missing a tool", i))
		}
		if !authorizedTools[step.Tool] {
			return types.NewError(types.PLAN_VALIDATION_FAILED, fmt.Sprintf("step %d uses unauthorized tool %q", i, step.Tool))
		}
		if step.Target == "" {
			return types.NewError(types.PLAN_VALIDATION_FAILED, fmt.Sprintf("step %d is missing a target", i))
		}
		if step.Rationale == "" {
			return types.NewError(types.PLAN_VALIDATION_FAILED, fmt.Sprintf("step %d is missing a rationale", i))
		}
	}
	return nil
}

// Sort orders the steps by ascending priority, stable for equal values.
func (p *ScanPlan) Sort() {
	sort.SliceStable(p.Steps, func(i, j int) bool {
		return p.Steps[i].Priority < p.Steps[j].Priority
	})
}

// Action is a decoded decision to invoke a tool.
type Action struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
	Rationale  string         `json:"rationale"`
}

// Target extracts the action's target from its parameters.
func (a Action) Target() string {
	for _, key := range []string{"target", "domain", "host", "ip", "url"} {
		if v, ok := a.Parameters[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// ParametersJSON renders the parameters for logging.
func (a Action) ParametersJSON() string {
	if len(a.Parameters) == 0 {
		return "{}"
	}
	data, err := json.Marshal(a.Parameters)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// noToolValues are tool names that mean "answer directly, no tool".
var noToolValues = map[string]bool{
	"":              true,
	"none":          true,
	"null":          true,
	"answer":        true,
	"complete_task": true,
}

// IsNoTool reports whether a tool name is a no-op marker rather than a
// real tool reference.
func IsNoTool(name string) bool {
	return noToolValues[strings.ToLower(strings.TrimSpace(name))]
}
