package goUX

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Search.Delay != 500*time.Millisecond || cfg.Search.MinLength != 3 {
		t.Fatalf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.Submission.Cooldown != 3*time.Second {
		t.Fatalf("unexpected cooldown default: %v", cfg.Submission.Cooldown)
	}
	if cfg.TabState.Key != "activeTab" {
		t.Fatalf("unexpected tab key default: %q", cfg.TabState.Key)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "search delay zero invalid",
			mutate:    func(c *Config) { c.Search.Delay = 0 },
			wantValid: false,
		},
		{
			name:      "search min length zero valid",
			mutate:    func(c *Config) { c.Search.MinLength = 0 },
			wantValid: true,
		},
		{
			name:      "search min length negative invalid",
			mutate:    func(c *Config) { c.Search.MinLength = -1 },
			wantValid: false,
		},
		{
			name:      "cooldown negative invalid",
			mutate:    func(c *Config) { c.Submission.Cooldown = -time.Second },
			wantValid: false,
		},
		{
			name:      "custom cooldown valid",
			mutate:    func(c *Config) { c.Submission.Cooldown = 750 * time.Millisecond },
			wantValid: true,
		},
		{
			name:      "blank password field invalid",
			mutate:    func(c *Config) { c.Fields.Password = "  " },
			wantValid: false,
		},
		{
			name:      "blank search field invalid",
			mutate:    func(c *Config) { c.Fields.Search = "" },
			wantValid: false,
		},
		{
			name:      "blank email field invalid",
			mutate:    func(c *Config) { c.Fields.Email = "" },
			wantValid: false,
		},
		{
			name:      "blank number field invalid",
			mutate:    func(c *Config) { c.Fields.Number = "" },
			wantValid: false,
		},
		{
			name:      "blank tab key invalid",
			mutate:    func(c *Config) { c.TabState.Key = " " },
			wantValid: false,
		},
		{
			name:      "redis prefix with space invalid",
			mutate:    func(c *Config) { c.TabState.RedisPrefix = "go ux" },
			wantValid: false,
		},
		{
			name: "events enabled without buffer invalid",
			mutate: func(c *Config) {
				c.Events.Enabled = true
				c.Events.BufferSize = 0
			},
			wantValid: false,
		},
		{
			name: "events disabled without buffer valid",
			mutate: func(c *Config) {
				c.Events.Enabled = false
				c.Events.BufferSize = 0
			},
			wantValid: true,
		},
		{
			name: "latency without metrics invalid",
			mutate: func(c *Config) {
				c.Metrics.Enabled = false
				c.Metrics.EnableLatencyHistograms = true
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantValid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
search:
  delay: 250ms
submission:
  cooldown: 5s
tab_state:
  scope_by_visitor: true
metrics:
  enabled: true
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Search.Delay != 250*time.Millisecond {
		t.Fatalf("delay = %v", cfg.Search.Delay)
	}
	if cfg.Search.MinLength != 3 {
		t.Fatalf("min length must keep default, got %d", cfg.Search.MinLength)
	}
	if cfg.Submission.Cooldown != 5*time.Second {
		t.Fatalf("cooldown = %v", cfg.Submission.Cooldown)
	}
	if !cfg.TabState.ScopeByVisitor || cfg.TabState.Key != "activeTab" {
		t.Fatalf("unexpected tab state config: %+v", cfg.TabState)
	}
	if cfg.TabState.LiveSync {
		t.Fatal("live sync must default to off")
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("metrics not enabled")
	}
}

func TestParseConfigLiveSync(t *testing.T) {
	cfg, err := ParseConfig([]byte("tab_state:\n  live_sync: true\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.TabState.LiveSync {
		t.Fatal("live_sync not applied")
	}
	if cfg.Fields.Number != "number" {
		t.Fatalf("number field must keep default, got %q", cfg.Fields.Number)
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	_, err := ParseConfig([]byte("submission:\n  cooldown: 0s\n"))
	if err == nil || !strings.Contains(err.Error(), "Cooldown") {
		t.Fatalf("expected cooldown error, got %v", err)
	}

	if _, err := ParseConfig([]byte("search: [")); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goux.yaml")
	if err := os.WriteFile(path, []byte("search:\n  min_length: 2\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Search.MinLength != 2 {
		t.Fatalf("min length = %d", cfg.Search.MinLength)
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBuildConfigImmutabilityAgainstExternalMutation(t *testing.T) {
	cfg := DefaultConfig()
	engine, err := New().WithConfig(cfg).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer engine.Close()

	cfg.Search.MinLength = 10
	if engine.Config().Search.MinLength != 3 {
		t.Fatal("engine config changed after external mutation")
	}
}
