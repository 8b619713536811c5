package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiresPlanning(t *testing.T) {
	tests := []struct {
		utterance string
		want      bool
	}{
		{"scan example.com for open services", true},
		{"run reconnaissance on the lab network", true},
		{"audit 192.168.1.0/24", true},
		{"please assess api.example.com", true},
		{"what is an IP address", false},
		{"what is a port scan", false},
		{"explain how dns enumeration works", false},
		{"how does a security test work", false},
		{"what is my IP", false},
		{"hello there", false},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, RequiresPlanning(tt.utterance))
		})
	}
}

func TestWantsRefresh(t *testing.T) {
	assert.True(t, WantsRefresh("check my public IP again"))
	assert.True(t, WantsRefresh("please refresh the whois data"))
	assert.True(t, WantsRefresh("re-run the dns lookup"))
	assert.False(t, WantsRefresh("what is my public IP"))
}

func TestIsClosingStatement(t *testing.T) {
	assert.True(t, IsClosingStatement("In conclusion, the domain is well configured."))
	assert.True(t, IsClosingStatement("Based on the above, no exposure was found."))
	assert.True(t, IsClosingStatement("Therefore the certificate needs renewal."))
	assert.False(t, IsClosingStatement("Let me check the DNS records next."))
}

func TestExtractTarget(t *testing.T) {
	assert.Equal(t, "example.com", ExtractTarget("scan example.com please"))
	assert.Equal(t, "api.example.com", ExtractTarget("Assess API.example.com today"))
	assert.Equal(t, "192.168.1.0/24", ExtractTarget("audit 192.168.1.0/24"))
	assert.Equal(t, "10.0.0.5", ExtractTarget("look at 10.0.0.5"))
	assert.Equal(t, "", ExtractTarget("scan something for me"))
}
