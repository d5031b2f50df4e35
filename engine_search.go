package goUX

import (
	"context"
	"strconv"
	"unicode/utf8"
)

// SearchInput records a keystroke in the search box. The handler runs once
// the input has been idle for Search.Delay, with the latest value, and only
// when that value has at least Search.MinLength characters.
func (e *Engine) SearchInput(value string) {
	if e == nil || e.closed.Load() {
		return
	}
	e.metricInc(MetricSearchScheduled)
	e.search.Call(value)
}

// SearchPending reports whether a debounced search is waiting to run.
func (e *Engine) SearchPending() bool {
	if e == nil {
		return false
	}
	return e.search.Pending()
}

// FlushSearch runs a pending search immediately, as when the form is
// submitted with Enter. It reports whether anything was pending.
func (e *Engine) FlushSearch() bool {
	if e == nil || e.closed.Load() {
		return false
	}
	return e.search.Flush()
}

func (e *Engine) runSearch(query string) {
	n := utf8.RuneCountInString(query)
	if n < e.config.Search.MinLength {
		e.metricInc(MetricSearchBelowThreshold)
		e.emit(context.Background(), Event{
			Type:     EventSearchSkipped,
			Field:    e.config.Fields.Search,
			Metadata: map[string]string{"length": strconv.Itoa(n)},
		})
		return
	}

	e.metricInc(MetricSearchTriggered)
	e.emit(context.Background(), Event{
		Type:  EventSearchTriggered,
		Field: e.config.Fields.Search,
	})
	if e.onSearch != nil {
		e.onSearch(query)
	}
}
