package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/report"
)

const analystSystemPrompt = `You are a security analyst reviewing passive
reconnaissance output. Summarize what was learned and list concrete
findings. Respond with ONLY a JSON object:

{"analysis": "...", "findings": [{"severity": "high|medium|low|info", "title": "...", "detail": "...", "tool": "...", "target": "..."}]}

Severity reflects exposure, not exploitability. An empty findings list is
valid when nothing stands out.`

const reportNarrativePrompt = `You are a security consultant writing an
assessment narrative from completed passive reconnaissance analyses.
Structure the narrative with these sections:

1. Assessment Summary
2. Findings by Severity
3. Risk Assessment
4. Recommended Next Steps

Respond in plain Markdown. Base every statement on the supplied
analyses; never invent findings.`

type analystResponse struct {
	Analysis string           `json:"analysis"`
	Findings []report.Finding `json:"findings"`
}

// Analyst interprets tool observations into prose and structured findings.
type Analyst struct {
	gateway llm.Gateway
	reports *report.Builder
	logger  *slog.Logger
}

// NewAnalyst creates an analyst that records findings on the builder.
func NewAnalyst(gateway llm.Gateway, reports *report.Builder, logger *slog.Logger) *Analyst {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyst{gateway: gateway, reports: reports, logger: logger}
}

// Analyze reviews the observations gathered for a goal. Findings that
// parse are recorded on the report builder; the prose analysis is
// returned either way. A model that answers in plain text still yields
// that text as the analysis.
func (a *Analyst) Analyze(ctx context.Context, goal string, observations []string) (string, error) {
	if len(observations) == 0 {
		return "No tool output was collected, so there is nothing to analyze.", nil
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Goal: %s\n\nTool output:\n", goal)
	for i, obs := range observations {
		fmt.Fprintf(&user, "--- step %d ---\n%s\n", i+1, obs)
	}

	response, err := a.gateway.Generate(ctx,
		[]llm.Message{
			llm.NewSystemMessage(analystSystemPrompt),
			llm.NewUserMessage(user.String()),
		},
		llm.GenerateOptions{Temperature: 0.3},
	)
	if err != nil {
		return "", fmt.Errorf("analysis generation: %w", err)
	}

	cleaned := llm.StripReasoning(response)
	parsed, err := llm.ExtractJSONAs[analystResponse](cleaned)
	if err != nil {
		a.logger.Debug("analysis response not structured, using raw text")
		a.reports.AddAnalysis(cleaned)
		return cleaned, nil
	}

	for _, f := range parsed.Findings {
		if f.Title == "" {
			continue
		}
		a.reports.AddFinding(f)
	}
	a.logger.Info("analysis complete", "goal", goal, "findings", len(parsed.Findings))

	analysis := parsed.Analysis
	if analysis == "" {
		analysis = cleaned
	}
	a.reports.AddAnalysis(analysis)
	return analysis, nil
}

// ComposeReport merges the per-goal analyses into one longer report
// narrative. Target metadata, when present, is included in the prompt.
// An empty analysis list yields an empty narrative without a model call.
func (a *Analyst) ComposeReport(ctx context.Context, analyses []string, target map[string]string) (string, error) {
	if len(analyses) == 0 {
		return "", nil
	}

	var user strings.Builder
	if len(target) > 0 {
		user.WriteString("Target information:\n")
		keys := make([]string, 0, len(target))
		for k := range target {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&user, "- %s: %s\n", k, target[k])
		}
		user.WriteString("\n")
	}
	user.WriteString("Analyses:\n\n")
	user.WriteString(strings.Join(analyses, "\n\n"))

	response, err := a.gateway.Generate(ctx,
		[]llm.Message{
			llm.NewSystemMessage(reportNarrativePrompt),
			llm.NewUserMessage(user.String()),
		},
		llm.GenerateOptions{Temperature: 0.3},
	)
	if err != nil {
		return "", fmt.Errorf("report narrative generation: %w", err)
	}

	a.logger.Info("report narrative composed", "analyses", len(analyses))
	return llm.StripReasoning(response), nil
}
