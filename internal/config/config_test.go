package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseAllowList(t *testing.T) {
	got := ParseAllowList(" Admin@Example.com, ,second@example.com,")
	want := AllowList{"admin@example.com": {}, "second@example.com": {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("allow list mismatch (-want +got):\n%s", diff)
	}
	if !got.Contains("  ADMIN@example.com ") {
		t.Error("lookup should ignore case and surrounding spaces")
	}
	if got.Contains("someone@example.com") {
		t.Error("unexpected member")
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("STORE", "memory")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("ADMIN_EMAILS", "boss@example.com")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want default 8080", cfg.Port)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d", cfg.RedisDB)
	}
	if !cfg.AdminEmails.Contains("boss@example.com") {
		t.Error("admin allow-list not loaded")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"mongo without secret": {"STORE": "mongo", "JWT_SECRET": ""},
		"unknown store":        {"STORE": "sqlite"},
		"bad ttl":              {"STORE": "memory", "SESSION_TTL": "forever"},
		"bad redis db":         {"STORE": "memory", "REDIS_DB": "x"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
