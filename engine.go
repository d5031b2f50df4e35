package goUX

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/goUX/debounce"
	"github.com/MrEthical07/goUX/guard"
	"github.com/MrEthical07/goUX/internal/clock"
	"github.com/MrEthical07/goUX/tabstate"
)

// SearchHandler runs a debounced search query. It is called from a timer
// goroutine.
type SearchHandler func(query string)

// Engine owns one page's input handling state: the search debouncer, a
// submit guard per form, and the tab state store. It is safe for concurrent
// use.
type Engine struct {
	config   Config
	logger   *slog.Logger
	clock    clock.Clock
	onSearch SearchHandler

	search *debounce.Debouncer[string]
	forms  *guard.Registry
	tabs   *tabstate.Store

	events  *eventDispatcher
	metrics *Metrics

	closed    atomic.Bool
	closeOnce sync.Once
}

// Config returns a copy of the configuration the Engine was built with.
func (e *Engine) Config() Config {
	if e == nil {
		return Config{}
	}
	return cloneConfig(e.config)
}

// Close cancels a pending search and flushes queued events. Tab and submit
// operations keep working; SearchInput becomes a no-op.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		e.search.Stop()
		e.events.Close()
	})
}

// EventsDropped returns how many events were discarded on a full queue.
func (e *Engine) EventsDropped() uint64 {
	if e == nil || e.events == nil {
		return 0
	}
	return e.events.Dropped()
}

// EventsDroppedByType breaks EventsDropped down by event type.
func (e *Engine) EventsDroppedByType() map[string]uint64 {
	if e == nil {
		return map[string]uint64{}
	}
	return e.events.DroppedByType()
}

// MetricsSnapshot returns the current counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:      map[MetricID]uint64{},
			Histograms:    map[MetricID][]uint64{},
			HistogramSums: map[MetricID]time.Duration{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) emit(ctx context.Context, event Event) {
	if e == nil || e.events == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	event.Timestamp = e.clock.Now().UTC()
	if event.VisitorID == "" {
		event.VisitorID, _ = VisitorIDFromContext(ctx)
	}
	e.events.Emit(ctx, event)
}
