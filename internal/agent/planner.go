package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

const plannerSystemPrompt = `You are a reconnaissance planner. Produce a JSON
scan plan for the goal. Respond with ONLY a JSON object of this shape:

{"goal": "...", "steps": [{"tool": "...", "target": "...", "parameters": {...}, "priority": 1, "rationale": "..."}]}

Rules:
- Use only the tools listed below.
- Every step needs tool, target, parameters, priority and rationale.
- Lower priority numbers run first.
- Only passive reconnaissance. Never plan exploitation.`

// Planner turns a goal into an ordered tool workflow. Any failure in
// generation or validation yields the fixed fallback plan, so the caller
// always receives something executable.
type Planner struct {
	gateway llm.Gateway
	logger  *slog.Logger
}

// NewPlanner creates a planner on top of the given gateway.
func NewPlanner(gateway llm.Gateway, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{gateway: gateway, logger: logger}
}

// GeneratePlan asks the model for a plan covering goal against target.
// authorizedTools is the full dispatchable roster; toolDescriptions the
// prompt lines describing it.
func (p *Planner) GeneratePlan(ctx context.Context, goal, target string, authorizedTools map[string]bool, toolDescriptions []string) *ScanPlan {
	prompt := fmt.Sprintf("%s\n\nAvailable tools:\n%s\n\nAuthorized target: %s",
		plannerSystemPrompt, strings.Join(toolDescriptions, "\n"), target)

	response, err := p.gateway.Generate(ctx,
		[]llm.Message{
			llm.NewSystemMessage(prompt),
			llm.NewUserMessage("Goal: " + goal),
		},
		llm.GenerateOptions{Temperature: 0.2},
	)
	if err != nil {
		p.logger.Warn("plan generation failed, using fallback",
			"error", types.WrapError(types.PLAN_GENERATION_FAILED, "model call failed", err))
		return FallbackPlan(goal, target)
	}

	plan, err := llm.ExtractJSONAs[ScanPlan](llm.StripReasoning(response))
	if err != nil {
		p.logger.Warn("plan response not parseable, using fallback",
			"error", types.WrapError(types.PLAN_GENERATION_FAILED, "plan response not parseable", err))
		return FallbackPlan(goal, target)
	}
	if err := plan.Validate(authorizedTools); err != nil {
		p.logger.Warn("plan rejected, using fallback", "error", err)
		return FallbackPlan(goal, target)
	}

	if plan.Goal == "" {
		plan.Goal = goal
	}
	plan.Sort()
	p.logger.Info("plan generated", "goal", goal, "steps", len(plan.Steps))
	return &plan
}

// FallbackPlan is the fixed two-step plan used whenever generation fails:
// registration data first, then DNS enumeration.
func FallbackPlan(goal, target string) *ScanPlan {
	return &ScanPlan{
		Goal:     goal,
		Fallback: true,
		Steps: []WorkflowStep{
			{
				Tool:       "whois",
				Target:     target,
				Parameters: map[string]any{"domain": target},
				Priority:   1,
				Rationale:  "Basic domain information gathering",
			},
			{
				Tool:       "dns_lookup",
				Target:     target,
				Parameters: map[string]any{"domain": target},
				Priority:   2,
				Rationale:  "Basic DNS enumeration",
			},
		},
	}
}
