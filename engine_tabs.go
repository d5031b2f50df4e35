package goUX

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/goUX/tabstate"
)

// ActivateTab persists tabID as the active tab. The previous value is
// overwritten unconditionally.
func (e *Engine) ActivateTab(ctx context.Context, tabID string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	store := e.tabStore(ctx)

	start := e.clock.Now()
	err := store.Save(ctx, tabID)
	e.metrics.Observe(MetricTabStoreLatency, e.clock.Now().Sub(start))
	if err != nil {
		e.tabFailure(ctx, "save", store.Key(), err)
		return fmt.Errorf("%w: %v", ErrTabStateUnavailable, err)
	}

	e.metricInc(MetricTabSaved)
	e.emit(ctx, Event{Type: EventTabSaved, TabID: tabID})
	return nil
}

// RestoreTab returns the persisted active tab. Storage failures are logged
// and reported as absent, leaving the page on its default tab.
func (e *Engine) RestoreTab(ctx context.Context) (string, bool) {
	if e == nil {
		return "", false
	}
	store := e.tabStore(ctx)

	start := e.clock.Now()
	tabID, ok, err := store.Load(ctx)
	e.metrics.Observe(MetricTabStoreLatency, e.clock.Now().Sub(start))
	if err != nil {
		e.tabFailure(ctx, "load", store.Key(), err)
		return "", false
	}
	if !ok {
		e.metricInc(MetricTabAbsent)
		return "", false
	}

	e.metricInc(MetricTabRestored)
	e.emit(ctx, Event{Type: EventTabRestored, TabID: tabID})
	return tabID, true
}

// WatchTabs calls fn with tabs activated by other clients sharing the
// storage until ctx is done.
func (e *Engine) WatchTabs(ctx context.Context, fn func(tabID string)) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if e.closed.Load() {
		return ErrEngineClosed
	}

	err := e.tabStore(ctx).Watch(ctx, fn)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tabstate.ErrWatchUnsupported):
		return ErrTabWatchUnsupported
	default:
		return fmt.Errorf("%w: %v", ErrTabStateUnavailable, err)
	}
}

func (e *Engine) tabStore(ctx context.Context) *tabstate.Store {
	if e.config.TabState.ScopeByVisitor {
		if visitorID, ok := VisitorIDFromContext(ctx); ok {
			return e.tabs.Scoped(visitorID)
		}
	}
	return e.tabs
}

func (e *Engine) tabFailure(ctx context.Context, op, key string, err error) {
	e.metricInc(MetricTabStoreFailure)
	e.logger.WarnContext(ctx, "tab state "+op+" failed", "key", key, "err", err)
	e.emit(ctx, Event{
		Type:     EventTabStoreFailure,
		Error:    err.Error(),
		Metadata: map[string]string{"op": op},
	})
}
