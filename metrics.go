package goUX

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one engine counter or histogram.
type MetricID uint16

const (
	// MetricSearchScheduled counts search keystrokes handed to the debouncer.
	MetricSearchScheduled MetricID = iota
	// MetricSearchSuperseded counts pending searches replaced by a newer keystroke.
	MetricSearchSuperseded
	// MetricSearchTriggered counts debounced searches that ran the handler.
	MetricSearchTriggered
	// MetricSearchBelowThreshold counts debounced searches skipped for being too short.
	MetricSearchBelowThreshold
	// MetricSubmitAllowed counts submits accepted by a form guard.
	MetricSubmitAllowed
	// MetricSubmitSuppressed counts submits rejected inside the cooldown.
	MetricSubmitSuppressed
	// MetricSubmitReset counts explicit form resets.
	MetricSubmitReset
	// MetricStrengthWeak counts passwords classified Weak.
	MetricStrengthWeak
	// MetricStrengthMedium counts passwords classified Medium.
	MetricStrengthMedium
	// MetricStrengthStrong counts passwords classified Strong.
	MetricStrengthStrong
	// MetricTabSaved counts persisted tab activations.
	MetricTabSaved
	// MetricTabRestored counts restores that found a saved tab.
	MetricTabRestored
	// MetricTabAbsent counts restores with nothing saved.
	MetricTabAbsent
	// MetricTabStoreFailure counts tab storage errors.
	MetricTabStoreFailure
	// MetricEmailInvalid counts email inputs flagged as malformed.
	MetricEmailInvalid
	// MetricTabStoreLatency is the tab storage round-trip histogram.
	MetricTabStoreLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets  [histBucketCount]uint64
	sumNanos uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free engine counters. The zero value and a nil pointer
// are both valid and record nothing.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all counters and histograms.
// HistogramSums holds the total observed duration per histogram.
type MetricsSnapshot struct {
	Counters      map[MetricID]uint64
	Histograms    map[MetricID][]uint64
	HistogramSums map[MetricID]time.Duration
}

// NewMetrics returns a Metrics configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether histograms are recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to counter id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records d in histogram id. Only MetricTabStoreLatency is a
// histogram; other ids are ignored.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricTabStoreLatency {
		return
	}

	if d < 0 {
		d = 0
	}
	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
	atomic.AddUint64(&m.histograms[id].sumNanos, uint64(d))
}

// Value returns the current value of counter id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter, plus the latency histogram when enabled.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:      map[MetricID]uint64{},
			Histograms:    map[MetricID][]uint64{},
			HistogramSums: map[MetricID]time.Duration{},
		}
	}

	s := MetricsSnapshot{
		Counters:      make(map[MetricID]uint64, int(metricIDCount)),
		Histograms:    make(map[MetricID][]uint64, 1),
		HistogramSums: make(map[MetricID]time.Duration, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricTabStoreLatency {
			continue
		}
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricTabStoreLatency].buckets[i])
		}
		s.Histograms[MetricTabStoreLatency] = buckets
		s.HistogramSums[MetricTabStoreLatency] = time.Duration(atomic.LoadUint64(&m.histograms[MetricTabStoreLatency].sumNanos))
	}

	return s
}

// bucketIndex maps d to the upper bounds 5, 10, 25, 50, 100, 250, 500 ms and
// +Inf.
func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
