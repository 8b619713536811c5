package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, 5, cfg.Agent.MaxSteps)
	assert.Equal(t, 10, cfg.Policy.MaxRequests)
	assert.Equal(t, 60*time.Second, cfg.Policy.WindowSize)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: openai
  model: gpt-4o-mini
  api_key: test-key
policy:
  allowed_domains: ["example.com"]
  max_requests: 3
agent:
  max_steps: 8
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, []string{"example.com"}, cfg.Policy.AllowedDomains)
	assert.Equal(t, 3, cfg.Policy.MaxRequests)
	assert.Equal(t, 8, cfg.Agent.MaxSteps)
	// untouched sections keep defaults
	assert.Equal(t, 20, cfg.Memory.MaxMessages)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"missing provider", func(c *Config) { c.LLM.Provider = "" }, "llm.provider"},
		{"missing model", func(c *Config) { c.LLM.Model = "" }, "llm.model"},
		{"zero steps", func(c *Config) { c.Agent.MaxSteps = 0 }, "max_steps"},
		{"zero window", func(c *Config) { c.Policy.WindowSize = 0 }, "window_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
