// Package report assembles the engagement report from collected findings,
// assets, and policy violations, and renders it as JSON or Markdown.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/asset"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/policy"
)

// Severity levels, most severe first.
var severityOrder = []string{"critical", "high", "medium", "low", "info"}

// Finding is a single observation worth reporting.
type Finding struct {
	Severity string    `json:"severity"`
	Title    string    `json:"title"`
	Detail   string    `json:"detail,omitempty"`
	Tool     string    `json:"tool,omitempty"`
	Target   string    `json:"target,omitempty"`
	Time     time.Time `json:"time"`
}

// Report is the rendered engagement state. Rates carries the number of
// recorded calls per tool in the current rate window. Narrative is the
// model-composed assessment text, empty when no composer ran.
type Report struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Summary     map[string]int     `json:"summary"`
	Narrative   string             `json:"narrative,omitempty"`
	Assets      []asset.Asset      `json:"assets"`
	Findings    []Finding          `json:"findings"`
	Violations  []policy.Violation `json:"violations"`
	Rates       map[string]int     `json:"rates,omitempty"`
}

// Builder accumulates findings and analysis narratives during a session.
// Safe for concurrent use.
type Builder struct {
	mu       sync.Mutex
	findings []Finding
	analyses []string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddFinding records an observation. Unknown severities map to info.
func (b *Builder) AddFinding(f Finding) {
	if !knownSeverity(f.Severity) {
		f.Severity = "info"
	}
	if f.Time.IsZero() {
		f.Time = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.findings = append(b.findings, f)
}

// AddAnalysis records one goal's analysis narrative.
func (b *Builder) AddAnalysis(analysis string) {
	analysis = strings.TrimSpace(analysis)
	if analysis == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.analyses = append(b.analyses, analysis)
}

// Analyses returns a copy in recorded order.
func (b *Builder) Analyses() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.analyses))
	copy(out, b.analyses)
	return out
}

// Findings returns a copy sorted by severity, most severe first.
func (b *Builder) Findings() []Finding {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Finding, len(b.findings))
	copy(out, b.findings)
	sort.SliceStable(out, func(i, j int) bool {
		return severityRank(out[i].Severity) < severityRank(out[j].Severity)
	})
	return out
}

// Build assembles the full report.
func (b *Builder) Build(assets []asset.Asset, violations []policy.Violation, rates map[string]int) *Report {
	findings := b.Findings()
	summary := map[string]int{
		"assets":     len(assets),
		"findings":   len(findings),
		"violations": len(violations),
	}
	for _, f := range findings {
		summary[f.Severity]++
	}
	return &Report{
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
		Assets:      assets,
		Findings:    findings,
		Violations:  violations,
		Rates:       rates,
	}
}

// RenderJSON renders the report as indented JSON.
func (r *Report) RenderJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return string(data), nil
}

// RenderMarkdown renders the report as a Markdown document.
func (r *Report) RenderMarkdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Reconnaissance Report\n\nGenerated: %s\n\n", r.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(&sb, "## Summary\n\n")
	fmt.Fprintf(&sb, "- Assets in scope: %d\n", r.Summary["assets"])
	fmt.Fprintf(&sb, "- Findings: %d\n", r.Summary["findings"])
	fmt.Fprintf(&sb, "- Policy violations: %d\n", r.Summary["violations"])
	for _, sev := range severityOrder {
		if n := r.Summary[sev]; n > 0 {
			fmt.Fprintf(&sb, "  - %s: %d\n", sev, n)
		}
	}

	if r.Narrative != "" {
		fmt.Fprintf(&sb, "\n## Assessment Narrative\n\n%s\n", strings.TrimSpace(r.Narrative))
	}

	fmt.Fprintf(&sb, "\n## Assets\n\n")
	if len(r.Assets) == 0 {
		sb.WriteString("No assets registered.\n")
	}
	for _, a := range r.Assets {
		fmt.Fprintf(&sb, "- **%s** (%s): `%s`\n", a.Name, a.Type, a.Value)
	}

	fmt.Fprintf(&sb, "\n## Findings\n\n")
	if len(r.Findings) == 0 {
		sb.WriteString("No findings recorded.\n")
	}
	for _, f := range r.Findings {
		fmt.Fprintf(&sb, "### [%s] %s\n\n", strings.ToUpper(f.Severity), f.Title)
		if f.Tool != "" || f.Target != "" {
			fmt.Fprintf(&sb, "Tool: %s, target: %s\n\n", f.Tool, f.Target)
		}
		if f.Detail != "" {
			fmt.Fprintf(&sb, "%s\n\n", f.Detail)
		}
	}

	if len(r.Violations) > 0 {
		fmt.Fprintf(&sb, "## Policy Violations\n\n")
		for _, v := range r.Violations {
			fmt.Fprintf(&sb, "- %s (%s) tool=%s target=%s at %s\n",
				v.Type, v.Severity, v.Tool, v.Target, v.Time.Format(time.RFC3339))
		}
		sb.WriteByte('\n')
	}

	if len(r.Rates) > 0 {
		fmt.Fprintf(&sb, "## Tool Usage (current window)\n\n")
		tools := make([]string, 0, len(r.Rates))
		for name := range r.Rates {
			tools = append(tools, name)
		}
		sort.Strings(tools)
		for _, name := range tools {
			fmt.Fprintf(&sb, "- %s: %d call(s)\n", name, r.Rates[name])
		}
	}
	return sb.String()
}

func knownSeverity(s string) bool {
	return severityRank(s) < len(severityOrder)
}

func severityRank(s string) int {
	for i, sev := range severityOrder {
		if s == sev {
			return i
		}
	}
	return len(severityOrder)
}
