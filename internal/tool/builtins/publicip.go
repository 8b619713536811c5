package builtins

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool"
)

// PublicIP fetches the machine's public address from an HTTP echo service.
type PublicIP struct {
	cfg    config.ToolsConfig
	client *http.Client
}

func NewPublicIP(cfg config.ToolsConfig) *PublicIP {
	return &PublicIP{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (p *PublicIP) Name() string { return "public_ip" }

func (p *PublicIP) Description() string {
	return "report the public IP address of this machine"
}

func (p *PublicIP) Execute(ctx context.Context, _ map[string]any) (tool.Result, error) {
	url := p.cfg.PublicIPURL
	if url == "" {
		url = "https://api.ipify.org"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return tool.Result{Status: tool.StatusFailed, Stderr: err.Error()}, nil
	}
	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return tool.Result{Status: tool.StatusTimeout, Stderr: ctx.Err().Error()}, nil
		}
		return tool.Result{Status: tool.StatusFailed, Stderr: err.Error()}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return tool.Result{Status: tool.StatusFailed, Stderr: err.Error()}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return tool.Result{
			Status: tool.StatusFailed,
			Stderr: fmt.Sprintf("echo service returned %s", resp.Status),
		}, nil
	}

	ip := strings.TrimSpace(string(body))
	return tool.Result{
		Status:   tool.StatusSuccess,
		Stdout:   ip,
		Metadata: map[string]string{"source": url},
	}, nil
}
