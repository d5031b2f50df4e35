package goUX

import (
	"context"
	"testing"
	"time"
)

func BenchmarkMetricsInc(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Inc(MetricSearchScheduled)
	}
}

func BenchmarkMetricsIncDisabled(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Inc(MetricSearchScheduled)
	}
}

func BenchmarkMetricsIncParallel(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Inc(MetricSearchScheduled)
		}
	})
}

func BenchmarkMetricsIncDisabledParallel(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Inc(MetricSearchScheduled)
		}
	})
}

func BenchmarkMetricsObserveLatencyParallel(b *testing.B) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	d := 12 * time.Millisecond
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Observe(MetricTabStoreLatency, d)
		}
	})
}

func BenchmarkEngineSearchInputParallel(b *testing.B) {
	engine, err := New().WithMetricsEnabled(true).Build()
	if err != nil {
		b.Fatalf("build: %v", err)
	}
	defer engine.Close()
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			engine.SearchInput("pas")
		}
	})
}

func BenchmarkEngineActivateTabMemory(b *testing.B) {
	engine, err := New().WithMetricsEnabled(true).WithLatencyHistograms(true).Build()
	if err != nil {
		b.Fatalf("build: %v", err)
	}
	defer engine.Close()
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = engine.ActivateTab(ctx, "#stats")
	}
}

func BenchmarkEngineStrength(b *testing.B) {
	engine, err := New().WithMetricsEnabled(true).Build()
	if err != nil {
		b.Fatalf("build: %v", err)
	}
	defer engine.Close()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = engine.Strength("Abc123!@#xyz")
	}
}

func BenchmarkEngineSubmitSuppressedParallel(b *testing.B) {
	engine, err := New().WithMetricsEnabled(true).Build()
	if err != nil {
		b.Fatalf("build: %v", err)
	}
	defer engine.Close()
	engine.Submit("checkout", nil)
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			engine.Submit("checkout", nil)
		}
	})
}
