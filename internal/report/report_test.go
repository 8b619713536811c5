package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/asset"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/policy"
)

func TestBuilderSortsBySeverity(t *testing.T) {
	b := NewBuilder()
	b.AddFinding(Finding{Severity: "low", Title: "verbose banner"})
	b.AddFinding(Finding{Severity: "high", Title: "expired certificate"})
	b.AddFinding(Finding{Severity: "made-up", Title: "odd txt record"})

	findings := b.Findings()
	require.Len(t, findings, 3)
	assert.Equal(t, "expired certificate", findings[0].Title)
	assert.Equal(t, "verbose banner", findings[1].Title)
	// unknown severities collapse to info
	assert.Equal(t, "info", findings[2].Severity)
}

func TestBuildSummaryCounts(t *testing.T) {
	b := NewBuilder()
	b.AddFinding(Finding{Severity: "high", Title: "a"})
	b.AddFinding(Finding{Severity: "high", Title: "b"})

	assets := []asset.Asset{{Name: "site", Type: "domain", Value: "example.com"}}
	violations := []policy.Violation{{Type: "unauthorized_target", Severity: "high", Time: time.Now()}}

	r := b.Build(assets, violations, map[string]int{"whois": 3})
	assert.Equal(t, 1, r.Summary["assets"])
	assert.Equal(t, 2, r.Summary["findings"])
	assert.Equal(t, 1, r.Summary["violations"])
	assert.Equal(t, 2, r.Summary["high"])
	assert.Equal(t, 3, r.Rates["whois"])
}

func TestRenderJSON(t *testing.T) {
	b := NewBuilder()
	b.AddFinding(Finding{Severity: "medium", Title: "missing HSTS", Tool: "http_headers", Target: "example.com"})

	out, err := b.Build(nil, nil, nil).RenderJSON()
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Findings, 1)
	assert.Equal(t, "missing HSTS", decoded.Findings[0].Title)
}

func TestRenderMarkdown(t *testing.T) {
	b := NewBuilder()
	b.AddFinding(Finding{Severity: "high", Title: "expired certificate", Detail: "expired 12 days ago", Tool: "ssl_check", Target: "example.com"})

	rep := b.Build([]asset.Asset{{Name: "site", Type: "domain", Value: "example.com"}},
		[]policy.Violation{{Type: "tool_rate_exceeded", Severity: "medium", Tool: "whois", Time: time.Now()}},
		map[string]int{"whois": 2})
	rep.Narrative = "The certificate exposure drives the risk posture."
	md := rep.RenderMarkdown()

	assert.Contains(t, md, "# Reconnaissance Report")
	assert.Contains(t, md, "## Assessment Narrative\n\nThe certificate exposure drives the risk posture.")
	assert.Contains(t, md, "### [HIGH] expired certificate")
	assert.Contains(t, md, "**site** (domain): `example.com`")
	assert.Contains(t, md, "## Policy Violations")
	assert.Contains(t, md, "- whois: 2 call(s)")
}

func TestBuilderAnalyses(t *testing.T) {
	b := NewBuilder()
	b.AddAnalysis("first pass")
	b.AddAnalysis("  ")
	b.AddAnalysis("second pass")

	assert.Equal(t, []string{"first pass", "second pass"}, b.Analyses())
}
