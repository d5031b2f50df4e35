package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goUX "github.com/MrEthical07/goUX"
	"github.com/MrEthical07/goUX/guard"
	"github.com/MrEthical07/goUX/tabstate"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var tabs = []string{"#overview", "#courses", "#stats", "#settings", "#billing"}

func main() {
	var (
		visitors    = flag.Int("visitors", 10000, "number of visitors to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 100000, "operations per phase (activate, restore, submit)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "gouxlt", "redis key prefix")
	)
	flag.Parse()

	if *visitors <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "visitors, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	cfg := goUX.DefaultConfig()
	cfg.TabState.ScopeByVisitor = true
	cfg.TabState.RedisPrefix = *prefix
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true

	engine, err := goUX.New().
		WithConfig(cfg).
		WithTabStorage(tabstate.NewRedisStorage(client, *prefix)).
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	ids := make([]string, *visitors)
	fmt.Printf("seeding %d visitors...\n", *visitors)
	startSeed := time.Now()
	for i := range ids {
		ids[i] = uuid.NewString()
		vctx := goUX.WithVisitorID(ctx, ids[i])
		if err := engine.ActivateTab(vctx, tabs[i%len(tabs)]); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	activateStats := runPhase(*ops, *concurrency, 7919, func(r *rand.Rand, _ int) error {
		vctx := goUX.WithVisitorID(ctx, ids[r.Intn(len(ids))])
		return engine.ActivateTab(vctx, tabs[r.Intn(len(tabs))])
	})
	restoreStats := runPhase(*ops, *concurrency, 6151, func(r *rand.Rand, _ int) error {
		vctx := goUX.WithVisitorID(ctx, ids[r.Intn(len(ids))])
		if _, ok := engine.RestoreTab(vctx); !ok {
			return errAbsent
		}
		return nil
	})

	submits := guard.NewRedisGuard(client, *prefix+":submit", cfg.Submission.Cooldown)
	var suppressed int64
	submitStats := runPhase(*ops, *concurrency, 4409, func(r *rand.Rand, _ int) error {
		decision, err := submits.Acquire(ctx, ids[r.Intn(len(ids))]+":/profile")
		if err == nil && decision == guard.Suppressed {
			atomic.AddInt64(&suppressed, 1)
		}
		return err
	})

	fmt.Println("---- results ----")
	printStats("activate", activateStats)
	printStats("restore", restoreStats)
	printStats("submit", submitStats)
	fmt.Printf("submit: suppressed=%d\n", atomic.LoadInt64(&suppressed))
	printLatency(engine.MetricsSnapshot())
}

var errAbsent = errors.New("tab absent")

func runPhase(ops, concurrency int, seed int64, op func(r *rand.Rand, i int) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*seed))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				err := op(r, i)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

func printLatency(snapshot goUX.MetricsSnapshot) {
	buckets := snapshot.Histograms[goUX.MetricTabStoreLatency]
	if len(buckets) == 0 {
		return
	}
	fmt.Printf("tab store latency buckets (<=5ms,10ms,25ms,50ms,100ms,250ms,500ms,+Inf): %v\n", buckets)
	fmt.Printf("tab saved=%d restored=%d absent=%d failures=%d\n",
		snapshot.Counters[goUX.MetricTabSaved],
		snapshot.Counters[goUX.MetricTabRestored],
		snapshot.Counters[goUX.MetricTabAbsent],
		snapshot.Counters[goUX.MetricTabStoreFailure],
	)
}
