package internaldefs

import (
	goUX "github.com/MrEthical07/goUX"
)

// CounterDef names one engine counter.
type CounterDef struct {
	ID   goUX.MetricID
	Name string
	Help string
}

// HistogramDef names one engine histogram.
type HistogramDef struct {
	ID   goUX.MetricID
	Name string
	Help string
}

// EventsDroppedName is the counter of events lost to a full dispatcher queue.
const (
	EventsDroppedName = "goux_events_dropped_total"
	EventsDroppedHelp = "Dropped engine events due to dispatcher backpressure."

	EventsDroppedByTypeName = "goux_events_dropped_by_type_total"
	EventsDroppedByTypeHelp = "Dropped engine events by event type."
)

// CounterDefs lists every exported counter in exposition order.
var CounterDefs = []CounterDef{
	{ID: goUX.MetricSearchScheduled, Name: "goux_search_scheduled_total", Help: "Search keystrokes handed to the debouncer."},
	{ID: goUX.MetricSearchSuperseded, Name: "goux_search_superseded_total", Help: "Pending searches replaced by a newer keystroke."},
	{ID: goUX.MetricSearchTriggered, Name: "goux_search_triggered_total", Help: "Debounced searches that ran the search handler."},
	{ID: goUX.MetricSearchBelowThreshold, Name: "goux_search_below_threshold_total", Help: "Debounced searches skipped for being shorter than the minimum length."},
	{ID: goUX.MetricSubmitAllowed, Name: "goux_submit_allowed_total", Help: "Form submissions allowed by the double-submit guard."},
	{ID: goUX.MetricSubmitSuppressed, Name: "goux_submit_suppressed_total", Help: "Form submissions suppressed inside the cooldown."},
	{ID: goUX.MetricSubmitReset, Name: "goux_submit_reset_total", Help: "Forms reset before the cooldown elapsed."},
	{ID: goUX.MetricStrengthWeak, Name: "goux_strength_weak_total", Help: "Passwords classified Weak."},
	{ID: goUX.MetricStrengthMedium, Name: "goux_strength_medium_total", Help: "Passwords classified Medium."},
	{ID: goUX.MetricStrengthStrong, Name: "goux_strength_strong_total", Help: "Passwords classified Strong."},
	{ID: goUX.MetricTabSaved, Name: "goux_tab_saved_total", Help: "Persisted tab activations."},
	{ID: goUX.MetricTabRestored, Name: "goux_tab_restored_total", Help: "Tab restores that found a saved tab."},
	{ID: goUX.MetricTabAbsent, Name: "goux_tab_absent_total", Help: "Tab restores with nothing saved."},
	{ID: goUX.MetricTabStoreFailure, Name: "goux_tab_store_failure_total", Help: "Tab storage errors."},
	{ID: goUX.MetricEmailInvalid, Name: "goux_email_invalid_total", Help: "Email inputs flagged as malformed."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: goUX.MetricTabStoreLatency, Name: "goux_tab_store_latency_seconds", Help: "Tab storage round-trip latency."},
}

// HistogramBoundSuffix names the eight buckets, +Inf last, in a form usable
// inside instrument names.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// HistogramBoundValues are the finite bucket upper bounds in seconds.
var HistogramBoundValues = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}

// NormalizeBuckets copies raw into a fixed eight-bucket array, zero-filling
// missing buckets.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
