package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/asset"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/events"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/policy"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/report"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool"
)

// Management operations handled without touching the tool registry.
const (
	opAddAsset       = "add_asset"
	opListAssets     = "list_assets"
	opGenerateReport = "generate_report"
)

// ManagementOps is the set of operations the researcher serves directly
// from the asset store and report builder.
var ManagementOps = map[string]bool{
	opAddAsset:       true,
	opListAssets:     true,
	opGenerateReport: true,
}

const (
	maxStdoutLines = 25
	maxStderrLines = 10
)

// ReportNarrator composes a report narrative from accumulated analyses.
type ReportNarrator interface {
	ComposeReport(ctx context.Context, analyses []string, target map[string]string) (string, error)
}

// Researcher executes single workflow steps. Every dispatch passes the
// policy gate; every outcome, including panics and policy denials, comes
// back as a formatted observation string so the reasoning loop never has
// to handle a raised error.
type Researcher struct {
	registry *tool.Registry
	gate     *policy.Gate
	assets   *asset.Store
	reports  *report.Builder
	narrator ReportNarrator
	sink     events.Sink
	logger   *slog.Logger
	maxChars int
}

// NewResearcher wires the executor. maxChars bounds the formatted
// observation length; non-positive values fall back to 2000.
func NewResearcher(registry *tool.Registry, gate *policy.Gate, assets *asset.Store, reports *report.Builder, sink events.Sink, logger *slog.Logger, maxChars int) *Researcher {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = events.Discard
	}
	if maxChars <= 0 {
		maxChars = 2000
	}
	return &Researcher{
		registry: registry,
		gate:     gate,
		assets:   assets,
		reports:  reports,
		sink:     sink,
		logger:   logger,
		maxChars: maxChars,
	}
}

// SetNarrator wires the model-backed composer used by generate_report.
// Without one the report stays deterministic.
func (r *Researcher) SetNarrator(n ReportNarrator) {
	r.narrator = n
}

// KnownTool reports whether name is dispatchable, either as a registered
// tool or a management operation.
func (r *Researcher) KnownTool(name string) bool {
	return r.registry.Has(name) || ManagementOps[name]
}

// ExecuteStep runs one action end to end and returns the observation.
func (r *Researcher) ExecuteStep(ctx context.Context, action Action) string {
	toolName := action.Tool
	target := action.Target()

	if ManagementOps[toolName] {
		return r.executeManagement(ctx, toolName, action.Parameters)
	}

	if !r.registry.Has(toolName) {
		return fmt.Sprintf("ERROR: unknown tool %q", toolName)
	}

	if target != "" {
		if err := r.gate.Authorize(toolName, target); err != nil {
			return fmt.Sprintf("BLOCKED: target %q is not authorized", target)
		}
	}
	if err := r.gate.AllowCall(toolName); err != nil {
		return fmt.Sprintf("BLOCKED: rate limit exceeded for %s", toolName)
	}

	r.sink.Emit(events.NewToolEvent(events.EventToolCall, toolName, target, action.Rationale))
	r.logger.Info("dispatching tool", "tool", toolName, "target", target, "parameters", action.ParametersJSON())

	result, err := r.registry.Execute(ctx, toolName, action.Parameters)
	if err != nil {
		r.sink.Emit(events.NewToolEvent(events.EventError, toolName, target, err.Error()))
		return fmt.Sprintf("ERROR: %v", err)
	}
	// budget is consumed only by dispatches that actually ran
	r.gate.RecordCall(toolName)

	observation := r.formatResult(result)
	r.sink.Emit(events.NewToolEvent(events.EventToolResult, toolName, target, observation))
	return observation
}

// ExecutePlan runs every step of a plan in order and returns the
// observations, one per step.
func (r *Researcher) ExecutePlan(ctx context.Context, plan *ScanPlan) []string {
	observations := make([]string, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		if ctx.Err() != nil {
			break
		}
		params := step.Parameters
		if params == nil {
			params = map[string]any{"target": step.Target}
		}
		observations = append(observations, r.ExecuteStep(ctx, Action{
			Tool:       step.Tool,
			Parameters: params,
			Rationale:  step.Rationale,
		}))
	}
	return observations
}

func (r *Researcher) executeManagement(ctx context.Context, op string, params map[string]any) string {
	switch op {
	case opAddAsset:
		name, _ := params["name"].(string)
		assetType, _ := params["type"].(string)
		value, _ := params["value"].(string)
		if value == "" {
			value = tool.Target(params)
		}
		if name == "" {
			name = value
		}
		if assetType == "" {
			assetType = "domain"
		}
		added, err := r.assets.Add(ctx, name, assetType, value)
		if err != nil {
			return fmt.Sprintf("ERROR: %v", err)
		}
		return fmt.Sprintf("Status: SUCCESS\nAdded asset %q (%s) with value %s", added.Name, added.Type, added.Value)

	case opListAssets:
		assets, err := r.assets.List(ctx)
		if err != nil {
			return fmt.Sprintf("ERROR: %v", err)
		}
		if len(assets) == 0 {
			return "Status: SUCCESS\nNo assets registered."
		}
		var sb strings.Builder
		sb.WriteString("Status: SUCCESS\nRegistered assets:\n")
		for _, a := range assets {
			fmt.Fprintf(&sb, "- %s (%s): %s\n", a.Name, a.Type, a.Value)
		}
		return strings.TrimRight(sb.String(), "\n")

	case opGenerateReport:
		assets, err := r.assets.List(ctx)
		if err != nil {
			return fmt.Sprintf("ERROR: %v", err)
		}
		rates := make(map[string]int)
		for _, name := range r.registry.Names() {
			if n := r.gate.CallCount(name); n > 0 {
				rates[name] = n
			}
		}
		rep := r.reports.Build(assets, r.gate.Violations(), rates)
		if r.narrator != nil {
			if analyses := r.reports.Analyses(); len(analyses) > 0 {
				targetInfo := make(map[string]string, len(assets))
				for _, a := range assets {
					targetInfo[a.Name] = fmt.Sprintf("%s (%s)", a.Value, a.Type)
				}
				narrative, err := r.narrator.ComposeReport(ctx, analyses, targetInfo)
				if err != nil {
					r.logger.Warn("report narrative failed, keeping deterministic report", "error", err)
				} else {
					rep.Narrative = narrative
				}
			}
		}
		format, _ := params["format"].(string)
		if format == "json" {
			out, err := rep.RenderJSON()
			if err != nil {
				return fmt.Sprintf("ERROR: %v", err)
			}
			return out
		}
		return rep.RenderMarkdown()

	default:
		return fmt.Sprintf("ERROR: unknown management operation %q", op)
	}
}

// formatResult renders a structured result as the observation handed back
// to the model, truncating long output.
func (r *Researcher) formatResult(res tool.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Status: %s\n", strings.ToUpper(string(res.Status)))

	if res.Stdout != "" {
		sb.WriteString(truncateLines(strings.TrimRight(res.Stdout, "\n"), maxStdoutLines))
		sb.WriteByte('\n')
	}
	if res.Stderr != "" {
		sb.WriteString("Diagnostics:\n")
		sb.WriteString(truncateLines(strings.TrimRight(res.Stderr, "\n"), maxStderrLines))
		sb.WriteByte('\n')
	}
	for _, line := range metadataLines(res.Metadata) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if res.EvidencePath != "" {
		fmt.Fprintf(&sb, "Evidence: %s\n", res.EvidencePath)
	}

	out := strings.TrimRight(sb.String(), "\n")
	if len(out) > r.maxChars {
		// cut on a rune boundary, tool output is arbitrary network text
		cut := r.maxChars
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut] + "\n... (output truncated)"
	}
	return out
}

func truncateLines(s string, max int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}
	head := max / 2
	tail := max - head
	omitted := len(lines) - head - tail
	kept := append([]string{}, lines[:head]...)
	kept = append(kept, fmt.Sprintf("... (%d more lines truncated) ...", omitted))
	kept = append(kept, lines[len(lines)-tail:]...)
	return strings.Join(kept, "\n")
}

func metadataLines(meta map[string]string) []string {
	if len(meta) == 0 {
		return nil
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(meta))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("- %s: %s", k, meta[k]))
	}
	return lines
}
