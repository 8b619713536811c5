package builtins

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// SSLCheck performs a TLS handshake against host:443 and summarizes the
// presented certificate chain.
type SSLCheck struct {
	cfg config.ToolsConfig
}

func NewSSLCheck(cfg config.ToolsConfig) *SSLCheck {
	return &SSLCheck{cfg: cfg}
}

func (s *SSLCheck) Name() string { return "ssl_check" }

func (s *SSLCheck) Description() string {
	return "inspect the TLS certificate chain and expiry of a host"
}

func (s *SSLCheck) Execute(ctx context.Context, params map[string]any) (tool.Result, error) {
	host := tool.Target(params)
	if host == "" {
		return tool.Result{}, types.NewError(types.TOOL_INVALID_INPUT, "ssl_check requires a host parameter")
	}

	port := "443"
	if p, ok := params["port"].(string); ok && p != "" {
		port = p
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{},
		Config:    &tls.Config{ServerName: host, InsecureSkipVerify: true},
	}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		if ctx.Err() != nil {
			return tool.Result{Status: tool.StatusTimeout, Stderr: ctx.Err().Error()}, nil
		}
		return tool.Result{Status: tool.StatusFailed, Stderr: fmt.Sprintf("tls dial %s:%s: %v", host, port, err)}, nil
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return tool.Result{Status: tool.StatusFailed, Stderr: "no certificates presented"}, nil
	}

	leaf := state.PeerCertificates[0]
	daysLeft := int(time.Until(leaf.NotAfter).Hours() / 24)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Subject:    %s\n", leaf.Subject)
	fmt.Fprintf(&sb, "Issuer:     %s\n", leaf.Issuer)
	fmt.Fprintf(&sb, "Not before: %s\n", leaf.NotBefore.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Not after:  %s (%d days left)\n", leaf.NotAfter.Format(time.RFC3339), daysLeft)
	fmt.Fprintf(&sb, "DNS names:  %s\n", strings.Join(leaf.DNSNames, ", "))
	fmt.Fprintf(&sb, "Version:    %s\n", tls.VersionName(state.Version))
	fmt.Fprintf(&sb, "Chain length: %d\n", len(state.PeerCertificates))

	status := tool.StatusSuccess
	var stderr string
	if daysLeft < 0 {
		stderr = "certificate is expired"
	} else if daysLeft < 30 {
		stderr = fmt.Sprintf("certificate expires in %d days", daysLeft)
	}

	out := sb.String()
	return tool.Result{
		Status: status,
		Stdout: out,
		Stderr: stderr,
		Metadata: map[string]string{
			"host":      host,
			"issuer":    leaf.Issuer.CommonName,
			"days_left": fmt.Sprintf("%d", daysLeft),
		},
		EvidencePath: writeEvidence(s.cfg.EvidenceDir, s.Name(), host, out),
	}, nil
}
