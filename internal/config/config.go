// Package config loads and validates the agent configuration from a YAML
// file under the home directory, falling back to safe defaults when the
// file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// Config is the top-level agent configuration.
type Config struct {
	Home   string       `yaml:"home"`
	LLM    LLMConfig    `yaml:"llm"`
	Policy PolicyConfig `yaml:"policy"`
	Memory MemoryConfig `yaml:"memory"`
	Agent  AgentConfig  `yaml:"agent"`
	Tools  ToolsConfig  `yaml:"tools"`
}

// LLMConfig selects and tunes the model provider.
type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// PolicyConfig bounds what the agent may touch and how often.
type PolicyConfig struct {
	AllowedNetworks   []string      `yaml:"allowed_networks"`
	AllowedDomains    []string      `yaml:"allowed_domains"`
	Blocklist         []string      `yaml:"blocklist"`
	WindowSize        time.Duration `yaml:"window_size"`
	MaxRequests       int           `yaml:"max_requests"`
	GlobalMaxRequests int           `yaml:"global_max_requests"`
}

// MemoryConfig bounds the conversation memory.
type MemoryConfig struct {
	MaxMessages  int `yaml:"max_messages"`
	RecentWindow int `yaml:"recent_window"`
}

// AgentConfig tunes the reasoning loop.
type AgentConfig struct {
	MaxSteps       int `yaml:"max_steps"`
	MaxOutputChars int `yaml:"max_output_chars"`
}

// ToolsConfig tunes the built-in probe adapters.
type ToolsConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	EvidenceDir string        `yaml:"evidence_dir"`
	PublicIPURL string        `yaml:"public_ip_url"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".blackglove")
	return &Config{
		Home: base,
		LLM: LLMConfig{
			Provider:    "ollama",
			Model:       "qwen2.5:14b",
			BaseURL:     "http://localhost:11434",
			Temperature: 0.2,
			MaxTokens:   2048,
			Timeout:     120 * time.Second,
		},
		Policy: PolicyConfig{
			AllowedNetworks:   []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16", "127.0.0.0/8"},
			WindowSize:        60 * time.Second,
			MaxRequests:       10,
			GlobalMaxRequests: 100,
		},
		Memory: MemoryConfig{
			MaxMessages:  20,
			RecentWindow: 10,
		},
		Agent: AgentConfig{
			MaxSteps:       5,
			MaxOutputChars: 2000,
		},
		Tools: ToolsConfig{
			Timeout:     30 * time.Second,
			EvidenceDir: filepath.Join(base, "evidence"),
			PublicIPURL: "https://api.ipify.org",
		},
	}
}

// Load reads the configuration at path, layering it over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "reading config "+path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "parsing config "+path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the agent cannot run with.
func (c *Config) Validate() error {
	if c.LLM.Provider == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "llm.provider must be set")
	}
	if c.LLM.Model == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "llm.model must be set")
	}
	if c.Agent.MaxSteps < 1 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, fmt.Sprintf("agent.max_steps must be at least 1, got %d", c.Agent.MaxSteps))
	}
	if c.Memory.MaxMessages < 1 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, fmt.Sprintf("memory.max_messages must be at least 1, got %d", c.Memory.MaxMessages))
	}
	if c.Policy.MaxRequests < 1 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, fmt.Sprintf("policy.max_requests must be at least 1, got %d", c.Policy.MaxRequests))
	}
	if c.Policy.WindowSize <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, fmt.Sprintf("policy.window_size must be positive, got %s", c.Policy.WindowSize))
	}
	return nil
}

// DatabasePath returns the sqlite file for the asset store.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Home, "assets.db")
}

// EnsureDirs creates the home and evidence directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Home, c.Tools.EvidenceDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
