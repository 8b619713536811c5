// Package policy enforces the authorization boundary of the agent: which
// targets may be touched and how often each tool may run.
package policy

import (
	"fmt"
	"net"
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
)

// TargetValidator decides whether a target is inside the authorized scope.
// The blocklist wins over every allow rule.
type TargetValidator struct {
	networks  []*net.IPNet
	domains   []string
	blocklist []string
}

// NewTargetValidator parses the allowed networks from the configuration.
// Invalid CIDR entries are rejected.
func NewTargetValidator(cfg config.PolicyConfig) (*TargetValidator, error) {
	v := &TargetValidator{
		blocklist: normalizeDomains(cfg.Blocklist),
	}
	for _, cidr := range cfg.AllowedNetworks {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed network %q: %w", cidr, err)
		}
		v.networks = append(v.networks, network)
	}
	for _, entry := range cfg.AllowedDomains {
		v.addAllowEntry(entry)
	}
	return v, nil
}

// addAllowEntry classifies one allow entry. Registered asset values of
// every type land here, so CIDR ranges and bare IPs are folded into the
// network list and everything else is kept as a domain suffix. The host
// part of URL values is extracted first.
func (v *TargetValidator) addAllowEntry(entry string) {
	entry = strings.TrimSpace(entry)
	if network, ok := parseCIDR(entry); ok {
		v.networks = append(v.networks, network)
		return
	}
	host := normalizeTarget(strings.TrimPrefix(entry, "*."))
	if host == "" {
		return
	}
	if ip := net.ParseIP(host); ip != nil {
		v.networks = append(v.networks, singleHostNet(ip))
		return
	}
	v.domains = append(v.domains, host)
}

// Authorized reports whether target is in scope. IP targets are checked
// against the allowed networks; hostnames against the domain allowlist by
// suffix match. Blocklisted entries are always denied.
func (v *TargetValidator) Authorized(target string) bool {
	target = normalizeTarget(target)
	if target == "" {
		return false
	}
	if v.blocked(target) {
		return false
	}

	if ip := net.ParseIP(target); ip != nil {
		for _, network := range v.networks {
			if network.Contains(ip) {
				return true
			}
		}
		return false
	}

	for _, domain := range v.domains {
		if target == domain || strings.HasSuffix(target, "."+domain) {
			return true
		}
	}
	return false
}

func (v *TargetValidator) blocked(target string) bool {
	for _, entry := range v.blocklist {
		if target == entry || strings.HasSuffix(target, "."+entry) {
			return true
		}
		if network, ok := parseCIDR(entry); ok {
			if ip := net.ParseIP(target); ip != nil && network.Contains(ip) {
				return true
			}
		}
	}
	return false
}

// normalizeTarget strips scheme, path, and port so URLs and host:port
// forms validate the same as their bare host.
func normalizeTarget(target string) string {
	target = strings.TrimSpace(strings.ToLower(target))
	if idx := strings.Index(target, "://"); idx >= 0 {
		target = target[idx+3:]
	}
	if idx := strings.IndexAny(target, "/?#"); idx >= 0 {
		target = target[:idx]
	}
	if host, _, err := net.SplitHostPort(target); err == nil {
		target = host
	}
	return strings.TrimSuffix(target, ".")
}

func normalizeDomains(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(e, "*.")))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

func singleHostNet(ip net.IP) *net.IPNet {
	bits := 8 * net.IPv6len
	if ip4 := ip.To4(); ip4 != nil {
		ip = ip4
		bits = 8 * net.IPv4len
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}
}

func parseCIDR(s string) (*net.IPNet, bool) {
	_, network, err := net.ParseCIDR(s)
	if err != nil {
		return nil, false
	}
	return network, true
}
