package builtins

import (
	"context"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// Whois queries the IANA-delegated whois server for a domain over tcp/43.
type Whois struct {
	cfg config.ToolsConfig
	// Server overrides the referral chain, used in tests.
	Server string
}

func NewWhois(cfg config.ToolsConfig) *Whois {
	return &Whois{cfg: cfg}
}

func (w *Whois) Name() string { return "whois" }

func (w *Whois) Description() string {
	return "query domain registration data from the responsible whois server"
}

func (w *Whois) Execute(ctx context.Context, params map[string]any) (tool.Result, error) {
	domain := tool.Target(params)
	if domain == "" {
		return tool.Result{}, types.NewError(types.TOOL_INVALID_INPUT, "whois requires a domain parameter")
	}

	ctx, cancel := context.WithTimeout(ctx, w.cfg.Timeout)
	defer cancel()

	server := w.Server
	if server == "" {
		server = serverForDomain(domain)
	}

	out, err := w.query(ctx, server, domain)
	if err == nil {
		// follow one referral if the registry answer names a registrar server
		if ref := referralServer(out); ref != "" && ref != server {
			if refOut, refErr := w.query(ctx, ref, domain); refErr == nil {
				out = refOut
			}
		}
	}
	if err != nil {
		if ctx.Err() != nil {
			return tool.Result{Status: tool.StatusTimeout, Stderr: ctx.Err().Error()}, nil
		}
		return tool.Result{Status: tool.StatusFailed, Stderr: err.Error()}, nil
	}

	return tool.Result{
		Status:       tool.StatusSuccess,
		Stdout:       out,
		Metadata:     map[string]string{"domain": domain, "server": server},
		EvidencePath: writeEvidence(w.cfg.EvidenceDir, w.Name(), domain, out),
	}, nil
}

func (w *Whois) query(ctx context.Context, server, domain string) (string, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(server, "43"))
	if err != nil {
		return "", fmt.Errorf("connecting to %s: %w", server, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if _, err := fmt.Fprintf(conn, "%s\r\n", domain); err != nil {
		return "", fmt.Errorf("writing query: %w", err)
	}
	data, err := io.ReadAll(conn)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(data), nil
}

// serverForDomain picks the registry whois server by TLD, defaulting to IANA.
func serverForDomain(domain string) string {
	parts := strings.Split(strings.TrimSuffix(domain, "."), ".")
	tld := parts[len(parts)-1]
	switch strings.ToLower(tld) {
	case "com", "net":
		return "whois.verisign-grs.com"
	case "org":
		return "whois.publicinterestregistry.org"
	case "io":
		return "whois.nic.io"
	case "dev", "app":
		return "whois.nic.google"
	default:
		return "whois.iana.org"
	}
}

func referralServer(response string) string {
	for _, line := range strings.Split(response, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, prefix := range []string{"registrar whois server:", "whois server:", "refer:"} {
			if strings.HasPrefix(lower, prefix) {
				return strings.TrimSpace(lower[len(prefix):])
			}
		}
	}
	return ""
}
