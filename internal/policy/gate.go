package policy

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// Violation records a denied operation for the audit trail.
type Violation struct {
	Rule     string    `json:"rule"`
	Type     string    `json:"type"`
	Tool     string    `json:"tool,omitempty"`
	Target   string    `json:"target,omitempty"`
	Severity string    `json:"severity"`
	Time     time.Time `json:"time"`
}

// Gate is the single policy checkpoint every dispatch passes through.
// Checks never have side effects on the counters; Record is called by the
// executor only after a dispatch actually ran.
type Gate struct {
	validator *TargetValidator
	perTool   *slidingWindow
	global    *rate.Limiter
	logger    *slog.Logger

	mu         sync.Mutex
	violations []Violation
}

// NewGate builds a gate from the policy configuration.
func NewGate(cfg config.PolicyConfig, logger *slog.Logger) (*Gate, error) {
	validator, err := NewTargetValidator(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	globalMax := cfg.GlobalMaxRequests
	if globalMax <= 0 {
		globalMax = 100
	}

	return &Gate{
		validator: validator,
		perTool:   newSlidingWindow(cfg.WindowSize, cfg.MaxRequests),
		global:    rate.NewLimiter(rate.Every(cfg.WindowSize/time.Duration(globalMax)), globalMax),
		logger:    logger,
	}, nil
}

// Authorize checks target scope. Denials are recorded as violations.
func (g *Gate) Authorize(tool, target string) error {
	if g.validator.Authorized(target) {
		return nil
	}
	g.addViolation(Violation{
		Rule:     "target_scope",
		Type:     "unauthorized_target",
		Tool:     tool,
		Target:   target,
		Severity: "high",
		Time:     time.Now(),
	})
	g.logger.Warn("target denied by policy", "tool", tool, "target", target)
	return types.NewError(types.POLICY_TARGET_DENIED, fmt.Sprintf("target %q is not authorized", target))
}

// AllowCall checks the per-tool and global rate budgets without consuming
// them. Denials are recorded as violations.
func (g *Gate) AllowCall(tool string) error {
	if !g.perTool.Allow(tool) {
		g.addViolation(Violation{
			Rule:     "rate_limit",
			Type:     "tool_rate_exceeded",
			Tool:     tool,
			Severity: "medium",
			Time:     time.Now(),
		})
		g.logger.Warn("tool rate limit exceeded", "tool", tool)
		return types.NewError(types.POLICY_RATE_LIMITED, fmt.Sprintf("rate limit exceeded for tool %q", tool))
	}
	if g.global.Tokens() < 1 {
		g.addViolation(Violation{
			Rule:     "rate_limit",
			Type:     "global_rate_exceeded",
			Tool:     tool,
			Severity: "medium",
			Time:     time.Now(),
		})
		g.logger.Warn("global rate limit exceeded", "tool", tool)
		return types.NewError(types.POLICY_RATE_LIMITED, "global rate limit exceeded")
	}
	return nil
}

// RecordCall consumes budget for a dispatch that actually ran.
func (g *Gate) RecordCall(tool string) {
	g.perTool.Record(tool)
	g.global.Allow()
}

// CallCount returns the number of recorded calls for tool in the current
// window, for reporting.
func (g *Gate) CallCount(tool string) int {
	return g.perTool.Count(tool)
}

// Violations returns a copy of the audit trail.
func (g *Gate) Violations() []Violation {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Violation, len(g.violations))
	copy(out, g.violations)
	return out
}

func (g *Gate) addViolation(v Violation) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.violations = append(g.violations, v)
}
