package builtins

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// DNSLookup resolves A, AAAA, MX, NS, and TXT records for a domain.
type DNSLookup struct {
	cfg      config.ToolsConfig
	resolver *net.Resolver
}

func NewDNSLookup(cfg config.ToolsConfig) *DNSLookup {
	return &DNSLookup{cfg: cfg, resolver: net.DefaultResolver}
}

func (d *DNSLookup) Name() string { return "dns_lookup" }

func (d *DNSLookup) Description() string {
	return "resolve A, AAAA, MX, NS and TXT records for a domain"
}

func (d *DNSLookup) Execute(ctx context.Context, params map[string]any) (tool.Result, error) {
	domain := tool.Target(params)
	if domain == "" {
		return tool.Result{}, types.NewError(types.TOOL_INVALID_INPUT, "dns_lookup requires a domain parameter")
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	var sb strings.Builder
	records := 0

	addrs, err := d.resolver.LookupHost(ctx, domain)
	if err != nil {
		if ctx.Err() != nil {
			return tool.Result{Status: tool.StatusTimeout, Stderr: ctx.Err().Error()}, nil
		}
		return tool.Result{
			Status: tool.StatusFailed,
			Stderr: fmt.Sprintf("host lookup for %s: %v", domain, err),
		}, nil
	}
	for _, a := range addrs {
		fmt.Fprintf(&sb, "A/AAAA  %s\n", a)
		records++
	}

	if mxs, err := d.resolver.LookupMX(ctx, domain); err == nil {
		for _, mx := range mxs {
			fmt.Fprintf(&sb, "MX      %d %s\n", mx.Pref, mx.Host)
			records++
		}
	}
	if nss, err := d.resolver.LookupNS(ctx, domain); err == nil {
		for _, ns := range nss {
			fmt.Fprintf(&sb, "NS      %s\n", ns.Host)
			records++
		}
	}
	if txts, err := d.resolver.LookupTXT(ctx, domain); err == nil {
		for _, txt := range txts {
			fmt.Fprintf(&sb, "TXT     %s\n", txt)
			records++
		}
	}

	out := sb.String()
	return tool.Result{
		Status:       tool.StatusSuccess,
		Stdout:       out,
		Metadata:     map[string]string{"domain": domain, "records": strconv.Itoa(records)},
		EvidencePath: writeEvidence(d.cfg.EvidenceDir, d.Name(), domain, out),
	}, nil
}
