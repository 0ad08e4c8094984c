package settings

import (
	"testing"

	"github.com/caarlos0/env/v11"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"Yes", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"on", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ParseBool(tt.value); got != tt.want {
			t.Errorf("ParseBool(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestSettingsFromEnvironment(t *testing.T) {
	t.Setenv("ENABLE_HTTPS_PLATFORM", "yes")
	t.Setenv("ENABLE_CF_DNS_CHALLENGES", "0")
	t.Setenv("ADD_PLATFORM_ROUTES", "TRUE")
	t.Setenv("TRUST_PROXY", "off")
	t.Setenv("EXTERNAL_IP", "203.0.113.7")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("BIND_HOST", "127.0.0.1")
	t.Setenv("PLATFORM_DOMAIN", "example.com")

	cfg := &Settings{}
	if err := env.Parse(cfg); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !cfg.EnableHTTPS || cfg.EnableDNSChallenges || !cfg.AddPlatformRoutes || cfg.TrustProxy {
		t.Errorf("unexpected toggles: %+v", cfg)
	}
	if cfg.ExternalIP != "203.0.113.7" {
		t.Errorf("external ip = %q", cfg.ExternalIP)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("http port = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.HTTPSPort != 443 {
		t.Errorf("https port = %d, want default 443", cfg.HTTPSPort)
	}
	if cfg.BindHost != "127.0.0.1" || cfg.PlatformDomain != "example.com" {
		t.Errorf("unexpected host settings: %+v", cfg)
	}
}
