package goUX

import (
	"log/slog"

	"github.com/MrEthical07/goUX/debounce"
	"github.com/MrEthical07/goUX/guard"
	"github.com/MrEthical07/goUX/internal/clock"
	"github.com/MrEthical07/goUX/tabstate"
)

// Builder assembles an Engine. A Builder is single-use: the second Build
// returns ErrBuilderUsed.
type Builder struct {
	config Config

	storage  tabstate.Storage
	onSearch SearchHandler
	sink     EventSink
	logger   *slog.Logger

	// clock is swapped by tests only.
	clock clock.Clock

	built bool
}

// New returns a Builder holding DefaultConfig.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithTabStorage sets where the active tab is persisted. Without it the
// Engine keeps tab state in process memory.
func (b *Builder) WithTabStorage(s tabstate.Storage) *Builder {
	b.storage = s
	return b
}

// WithSearchHandler sets the action run for debounced queries that reach the
// minimum length.
func (b *Builder) WithSearchHandler(fn SearchHandler) *Builder {
	b.onSearch = fn
	return b
}

// WithEventSink sets the destination of engine events. Events are only
// dispatched when Config.Events.Enabled is set.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.sink = sink
	return b
}

// WithLogger sets the structured logger; slog.Default is used otherwise.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetricsEnabled toggles in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the tab storage latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and starts the Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := b.clock
	if clk == nil {
		clk = clock.Real()
	}
	storage := b.storage
	if storage == nil {
		storage = tabstate.NewMemoryStorage()
	}

	engine := &Engine{
		config:   cfg,
		logger:   logger,
		clock:    clk,
		onSearch: b.onSearch,
		metrics:  NewMetrics(cfg.Metrics),
		events:   newEventDispatcher(cfg.Events, b.sink),
		tabs:     tabstate.NewStore(storage, tabstate.WithKey(cfg.TabState.Key)),
	}

	engine.forms = guard.NewRegistry(
		guard.WithCooldown(cfg.Submission.Cooldown),
		guard.WithClock(clk),
	)
	engine.search = debounce.New(cfg.Search.Delay, engine.runSearch,
		debounce.WithClock(clk),
		debounce.WithSupersedeHook(func() { engine.metrics.Inc(MetricSearchSuperseded) }),
	)

	b.built = true

	return engine, nil
}
