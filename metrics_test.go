package goUX

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricSubmitAllowed)

	if got := m.Value(MetricSubmitAllowed); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricSubmitAllowed)
	m.Inc(MetricSubmitAllowed)
	m.Inc(MetricSubmitAllowed)

	if got := m.Value(MetricSubmitAllowed); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricTabSaved)
	m.Observe(MetricTabStoreLatency, time.Millisecond)
	if m.Enabled() || m.LatencyEnabled() || m.Value(MetricTabSaved) != 0 {
		t.Fatal("nil metrics must be inert")
	}
	if snap := m.Snapshot(); len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("nil metrics snapshot not empty: %+v", snap)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricSearchScheduled)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricSearchScheduled); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		5 * time.Millisecond,
		10 * time.Millisecond,
		25 * time.Millisecond,
		50 * time.Millisecond,
		100 * time.Millisecond,
		250 * time.Millisecond,
		500 * time.Millisecond,
		700 * time.Millisecond,
	}

	for _, d := range observations {
		m.Observe(MetricTabStoreLatency, d)
	}
	// not a histogram
	m.Observe(MetricTabSaved, time.Millisecond)

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricTabStoreLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}

	for i, v := range buckets {
		if v != 1 {
			t.Fatalf("bucket %d expected 1, got %d", i, v)
		}
	}
	if _, ok := snap.Histograms[MetricTabSaved]; ok {
		t.Fatal("counter id must not produce a histogram")
	}
}

func TestMetricsSnapshotConsistency(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Inc(MetricSubmitAllowed)
	m.Inc(MetricSubmitSuppressed)
	m.Inc(MetricSubmitSuppressed)
	m.Observe(MetricTabStoreLatency, 2*time.Millisecond)

	snap := m.Snapshot()

	if snap.Counters[MetricSubmitAllowed] != 1 {
		t.Fatalf("expected MetricSubmitAllowed=1 got %d", snap.Counters[MetricSubmitAllowed])
	}
	if snap.Counters[MetricSubmitSuppressed] != 2 {
		t.Fatalf("expected MetricSubmitSuppressed=2 got %d", snap.Counters[MetricSubmitSuppressed])
	}
	if len(snap.Histograms[MetricTabStoreLatency]) != 8 {
		t.Fatalf("expected histogram length 8")
	}
	if snap.Histograms[MetricTabStoreLatency][0] != 1 {
		t.Fatalf("expected first histogram bucket=1 got %d", snap.Histograms[MetricTabStoreLatency][0])
	}
	if snap.HistogramSums[MetricTabStoreLatency] != 2*time.Millisecond {
		t.Fatalf("expected histogram sum 2ms got %v", snap.HistogramSums[MetricTabStoreLatency])
	}
}

func TestMetricsLatencyRequiresEnabled(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false, EnableLatencyHistograms: true})
	if m.LatencyEnabled() {
		t.Fatal("latency histograms must follow the master switch")
	}
}
