package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuthorizedTools = map[string]bool{
	"whois":      true,
	"dns_lookup": true,
	"ssl_check":  true,
}

func TestGeneratePlanParsesAndSorts(t *testing.T) {
	gw := newScriptedGateway(`{
		"goal": "recon example.com",
		"steps": [
			{"tool": "ssl_check", "target": "example.com", "parameters": {"host": "example.com"}, "priority": 3, "rationale": "certificate review"},
			{"tool": "whois", "target": "example.com", "parameters": {"domain": "example.com"}, "priority": 1, "rationale": "registration data"},
			{"tool": "dns_lookup", "target": "example.com", "parameters": {"domain": "example.com"}, "priority": 2, "rationale": "record enumeration"}
		]
	}`)
	p := NewPlanner(gw, nil)

	plan := p.GeneratePlan(context.Background(), "recon example.com", "example.com", testAuthorizedTools, nil)
	require.Len(t, plan.Steps, 3)
	assert.False(t, plan.Fallback)
	assert.Equal(t, []string{"whois", "dns_lookup", "ssl_check"},
		[]string{plan.Steps[0].Tool, plan.Steps[1].Tool, plan.Steps[2].Tool})
}

func TestGeneratePlanFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no json", "I think we should start by looking at the domain."},
		{"unauthorized tool", `{"goal": "x", "steps": [{"tool": "metasploit", "target": "example.com", "parameters": {}, "priority": 1, "rationale": "r"}]}`},
		{"missing rationale", `{"goal": "x", "steps": [{"tool": "whois", "target": "example.com", "parameters": {}, "priority": 1}]}`},
		{"missing target", `{"goal": "x", "steps": [{"tool": "whois", "parameters": {}, "priority": 1, "rationale": "r"}]}`},
		{"empty steps", `{"goal": "x", "steps": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlanner(newScriptedGateway(tt.response), nil)
			plan := p.GeneratePlan(context.Background(), "recon example.com", "example.com", testAuthorizedTools, nil)

			require.True(t, plan.Fallback)
			require.Len(t, plan.Steps, 2)
			assert.Equal(t, "whois", plan.Steps[0].Tool)
			assert.Equal(t, "Basic domain information gathering", plan.Steps[0].Rationale)
			assert.Equal(t, "dns_lookup", plan.Steps[1].Tool)
			assert.Equal(t, "example.com", plan.Steps[1].Target)
		})
	}
}

func TestGeneratePlanFallsBackOnGatewayError(t *testing.T) {
	gw := newScriptedGateway()
	p := NewPlanner(gw, nil)

	plan := p.GeneratePlan(context.Background(), "recon example.com", "example.com", testAuthorizedTools, nil)
	assert.True(t, plan.Fallback)
}

func TestPlanValidate(t *testing.T) {
	plan := &ScanPlan{Steps: []WorkflowStep{
		{Tool: "whois", Target: "example.com", Priority: 1, Rationale: "r"},
	}}
	assert.NoError(t, plan.Validate(testAuthorizedTools))

	plan.Steps[0].Tool = ""
	assert.Error(t, plan.Validate(testAuthorizedTools))
}
