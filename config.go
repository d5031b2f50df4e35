package goUX

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MrEthical07/goUX/guard"
	"github.com/MrEthical07/goUX/tabstate"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of an Engine. It is copied at Build time; later
// changes to the caller's value do not affect a running Engine.
type Config struct {
	Search     SearchConfig     `yaml:"search"`
	Submission SubmissionConfig `yaml:"submission"`
	Fields     FieldsConfig     `yaml:"fields"`
	TabState   TabStateConfig   `yaml:"tab_state"`
	Events     EventsConfig     `yaml:"events"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

/*
====================================
SEARCH CONFIG
====================================
*/

// SearchConfig controls the debounced search pipeline.
type SearchConfig struct {
	// Delay is the idle window after the last keystroke.
	Delay time.Duration `yaml:"delay"`
	// MinLength is the minimum query length, in characters, that runs the
	// search handler.
	MinLength int `yaml:"min_length"`
}

/*
====================================
SUBMISSION CONFIG
====================================
*/

// SubmissionConfig controls the per-form double-submit guard.
type SubmissionConfig struct {
	Cooldown time.Duration `yaml:"cooldown"`
}

// FieldsConfig names the inputs Bind attaches handlers to.
type FieldsConfig struct {
	Search   string `yaml:"search"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
	Number   string `yaml:"number"`
}

// TabStateConfig controls tab persistence.
type TabStateConfig struct {
	// Key is the storage key of the active tab.
	Key string `yaml:"key"`
	// RedisPrefix namespaces keys when the storage is Redis-backed.
	RedisPrefix string `yaml:"redis_prefix"`
	// ScopeByVisitor suffixes Key with the visitor id carried by the context.
	ScopeByVisitor bool `yaml:"scope_by_visitor"`
	// LiveSync makes Bind follow tabs activated in other windows sharing the
	// storage. Off by default: the saved tab is read once when the page binds.
	LiveSync bool `yaml:"live_sync"`
}

// EventsConfig controls the asynchronous event pipeline.
type EventsConfig struct {
	Enabled    bool `yaml:"enabled"`
	BufferSize int  `yaml:"buffer_size"`
	DropIfFull bool `yaml:"drop_if_full"`
}

// MetricsConfig controls in-process counters.
type MetricsConfig struct {
	Enabled                 bool `yaml:"enabled"`
	EnableLatencyHistograms bool `yaml:"enable_latency_histograms"`
}

// DefaultConfig returns the stock page behavior: 500 ms search
// debounce with a three-character threshold and a 3 s submit cooldown.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Delay:     500 * time.Millisecond,
			MinLength: 3,
		},
		Submission: SubmissionConfig{
			Cooldown: guard.DefaultCooldown,
		},
		Fields: FieldsConfig{
			Search:   "search",
			Password: "password",
			Email:    "email",
			Number:   "number",
		},
		TabState: TabStateConfig{
			Key:         tabstate.DefaultKey,
			RedisPrefix: "goux",
		},
		Events: EventsConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// Config is all values, so a plain copy is deep.
func cloneConfig(cfg Config) Config {
	return cfg
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	// Search
	if c.Search.Delay <= 0 {
		return errors.New("Search Delay must be > 0")
	}
	if c.Search.MinLength < 0 {
		return errors.New("Search MinLength must be >= 0")
	}

	// Submission
	if c.Submission.Cooldown <= 0 {
		return errors.New("Submission Cooldown must be > 0")
	}

	// Fields
	if strings.TrimSpace(c.Fields.Search) == "" {
		return errors.New("Fields Search must not be empty")
	}
	if strings.TrimSpace(c.Fields.Password) == "" {
		return errors.New("Fields Password must not be empty")
	}
	if strings.TrimSpace(c.Fields.Email) == "" {
		return errors.New("Fields Email must not be empty")
	}
	if strings.TrimSpace(c.Fields.Number) == "" {
		return errors.New("Fields Number must not be empty")
	}

	// Tab state
	if strings.TrimSpace(c.TabState.Key) == "" {
		return errors.New("TabState Key must not be empty")
	}
	if strings.ContainsAny(c.TabState.RedisPrefix, " \t\r\n") {
		return errors.New("TabState RedisPrefix must not contain whitespace")
	}

	// Events
	if c.Events.Enabled && c.Events.BufferSize <= 0 {
		return errors.New("Events BufferSize must be > 0 when Events is enabled")
	}

	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return errors.New("Metrics EnableLatencyHistograms requires Metrics Enabled")
	}

	return nil
}

// LoadConfigFile reads a YAML config. Fields absent from the file keep their
// DefaultConfig values; durations use Go syntax ("500ms", "3s").
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
