package builtins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/tool"
)

func testConfig(t *testing.T) config.ToolsConfig {
	t.Helper()
	return config.ToolsConfig{
		Timeout:     5 * time.Second,
		EvidenceDir: t.TempDir(),
	}
}

func TestRegisterAll(t *testing.T) {
	r := tool.NewRegistry()
	require.NoError(t, RegisterAll(r, testConfig(t)))
	assert.Equal(t, []string{"dns_lookup", "http_headers", "public_ip", "ssl_check", "whois"}, r.Names())
}

func TestDNSLookupRequiresDomain(t *testing.T) {
	d := NewDNSLookup(testConfig(t))
	_, err := d.Execute(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain")
}

func TestPublicIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("203.0.113.7\n"))
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.PublicIPURL = srv.URL
	p := NewPublicIP(cfg)

	res, err := p.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, tool.StatusSuccess, res.Status)
	assert.Equal(t, "203.0.113.7", res.Stdout)
}

func TestPublicIPServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.PublicIPURL = srv.URL
	p := NewPublicIP(cfg)

	res, err := p.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, tool.StatusFailed, res.Status)
	assert.Contains(t, res.Stderr, "502")
}

func TestHTTPHeadersReview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000")
		w.Header().Set("Server", "nginx/1.24")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	h := NewHTTPHeaders(testConfig(t))
	res, err := h.Execute(context.Background(), map[string]any{"url": srv.URL})
	require.NoError(t, err)

	assert.Equal(t, tool.StatusSuccess, res.Status)
	assert.Contains(t, res.Stdout, "present  Strict-Transport-Security")
	assert.Contains(t, res.Stdout, "MISSING  Content-Security-Policy")
	assert.Contains(t, res.Stdout, "nginx/1.24")
	assert.Equal(t, "5", res.Metadata["missing_headers"])
	assert.FileExists(t, res.EvidencePath)
}

func TestWhoisReferralParsing(t *testing.T) {
	resp := "Domain Name: EXAMPLE.COM\n   Registrar WHOIS Server: whois.example-registrar.com\n"
	assert.Equal(t, "whois.example-registrar.com", referralServer(resp))
	assert.Equal(t, "", referralServer("no referral here"))
}

func TestServerForDomain(t *testing.T) {
	assert.Equal(t, "whois.verisign-grs.com", serverForDomain("example.com"))
	assert.Equal(t, "whois.nic.io", serverForDomain("corp.io"))
	assert.Equal(t, "whois.iana.org", serverForDomain("example.gr"))
}

func TestWriteEvidence(t *testing.T) {
	dir := t.TempDir()
	path := writeEvidence(dir, "dns_lookup", "sub.example.com:443", "raw output")
	require.NotEmpty(t, path)
	assert.Equal(t, dir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "raw output", string(data))

	assert.Empty(t, writeEvidence("", "whois", "x", "y"))
}
