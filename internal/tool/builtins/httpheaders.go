package builtins

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// securityHeaders are the response headers reviewed by http_headers.
var securityHeaders = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Content-Type-Options",
	"X-Frame-Options",
	"Referrer-Policy",
	"Permissions-Policy",
}

// HTTPHeaders fetches a URL and reviews its security response headers.
type HTTPHeaders struct {
	cfg    config.ToolsConfig
	client *http.Client
}

func NewHTTPHeaders(cfg config.ToolsConfig) *HTTPHeaders {
	return &HTTPHeaders{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (h *HTTPHeaders) Name() string { return "http_headers" }

func (h *HTTPHeaders) Description() string {
	return "fetch a URL and review its security response headers"
}

func (h *HTTPHeaders) Execute(ctx context.Context, params map[string]any) (tool.Result, error) {
	target := tool.Target(params)
	if target == "" {
		return tool.Result{}, types.NewError(types.TOOL_INVALID_INPUT, "http_headers requires a url parameter")
	}
	if !strings.Contains(target, "://") {
		target = "https://" + target
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return tool.Result{Status: tool.StatusFailed, Stderr: err.Error()}, nil
	}
	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return tool.Result{Status: tool.StatusTimeout, Stderr: ctx.Err().Error()}, nil
		}
		return tool.Result{Status: tool.StatusFailed, Stderr: err.Error()}, nil
	}
	defer resp.Body.Close()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Status: %s\n\n", resp.Status)

	missing := 0
	for _, name := range securityHeaders {
		if v := resp.Header.Get(name); v != "" {
			fmt.Fprintf(&sb, "present  %s: %s\n", name, v)
		} else {
			fmt.Fprintf(&sb, "MISSING  %s\n", name)
			missing++
		}
	}
	if server := resp.Header.Get("Server"); server != "" {
		fmt.Fprintf(&sb, "\nServer banner: %s\n", server)
	}

	out := sb.String()
	return tool.Result{
		Status: tool.StatusSuccess,
		Stdout: out,
		Metadata: map[string]string{
			"url":             target,
			"missing_headers": fmt.Sprintf("%d", missing),
		},
		EvidencePath: writeEvidence(h.cfg.EvidenceDir, h.Name(), target, out),
	}, nil
}
