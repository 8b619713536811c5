package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/report"
)

func TestAnalyzeRecordsFindings(t *testing.T) {
	gw := newScriptedGateway(`{
		"analysis": "The certificate expires soon and HSTS is missing.",
		"findings": [
			{"severity": "high", "title": "Certificate expires in 12 days", "tool": "ssl_check", "target": "example.com"},
			{"severity": "medium", "title": "Missing HSTS header", "tool": "http_headers", "target": "example.com"},
			{"severity": "low", "title": ""}
		]
	}`)
	reports := report.NewBuilder()
	a := NewAnalyst(gw, reports, nil)

	analysis, err := a.Analyze(context.Background(), "assess example.com", []string{"Status: SUCCESS\ncert data"})
	require.NoError(t, err)

	assert.Equal(t, "The certificate expires soon and HSTS is missing.", analysis)
	// title-less findings are dropped
	findings := reports.Findings()
	require.Len(t, findings, 2)
	assert.Equal(t, "Certificate expires in 12 days", findings[0].Title)
	assert.Equal(t, []string{"The certificate expires soon and HSTS is missing."}, reports.Analyses())
}

func TestAnalyzeUnstructuredResponse(t *testing.T) {
	gw := newScriptedGateway("Nothing notable turned up in the collected output.")
	a := NewAnalyst(gw, report.NewBuilder(), nil)

	analysis, err := a.Analyze(context.Background(), "assess example.com", []string{"Status: SUCCESS"})
	require.NoError(t, err)
	assert.Equal(t, "Nothing notable turned up in the collected output.", analysis)
}

func TestAnalyzeWithoutObservations(t *testing.T) {
	a := NewAnalyst(newScriptedGateway(), report.NewBuilder(), nil)
	analysis, err := a.Analyze(context.Background(), "assess example.com", nil)
	require.NoError(t, err)
	assert.Contains(t, analysis, "nothing to analyze")
}

func TestComposeReport(t *testing.T) {
	gw := newScriptedGateway("## Assessment Summary\n\nThe domain exposes an expiring certificate.")
	a := NewAnalyst(gw, report.NewBuilder(), nil)

	narrative, err := a.ComposeReport(context.Background(),
		[]string{"The certificate expires soon.", "HSTS is missing."},
		map[string]string{"corp": "example.com (domain)"})
	require.NoError(t, err)
	assert.Contains(t, narrative, "Assessment Summary")

	// target metadata and every analysis reach the prompt
	require.Len(t, gw.prompts, 1)
	user := gw.prompts[0][1].Content
	assert.Contains(t, user, "corp: example.com (domain)")
	assert.Contains(t, user, "HSTS is missing.")
}

func TestComposeReportWithoutAnalyses(t *testing.T) {
	gw := newScriptedGateway()
	a := NewAnalyst(gw, report.NewBuilder(), nil)

	narrative, err := a.ComposeReport(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, narrative)
	assert.Equal(t, 0, gw.calls)
}
