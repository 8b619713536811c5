// Package builtins provides the passive reconnaissance adapters that ship
// with the agent. Each adapter is stateless, honors its configured timeout,
// and writes its raw capture under the evidence directory.
package builtins

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool"
)

// RegisterAll registers every built-in adapter on the registry.
func RegisterAll(r *tool.Registry, cfg config.ToolsConfig) error {
	adapters := []tool.Tool{
		NewDNSLookup(cfg),
		NewWhois(cfg),
		NewSSLCheck(cfg),
		NewPublicIP(cfg),
		NewHTTPHeaders(cfg),
	}
	for _, a := range adapters {
		if err := r.Register(a); err != nil {
			return err
		}
	}
	return nil
}

// writeEvidence persists a raw capture and returns its path. Evidence
// failures never fail the probe; the result just carries no path.
func writeEvidence(dir, toolName, target, content string) string {
	if dir == "" {
		return ""
	}
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		}
		return '_'
	}, target)
	name := fmt.Sprintf("%s_%s_%d.txt", toolName, safe, time.Now().Unix())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return ""
	}
	return path
}
