//go:build integration
// +build integration

package test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	goUX "github.com/MrEthical07/goUX"
	"github.com/MrEthical07/goUX/guard"
	"github.com/MrEthical07/goUX/tabstate"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// redisMode describes which Redis backend the compatibility suite is running against.
type redisMode struct {
	name  string
	setup func(t *testing.T) (redis.UniversalClient, func())
}

// redisModes returns the set of Redis backends to test.
// miniredis is always available.
// Real Redis standalone is used when REDIS_ADDR is set (e.g. "127.0.0.1:6379").
func redisModes(t *testing.T) []redisMode {
	t.Helper()
	modes := []redisMode{
		{
			name: "miniredis",
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				mr, err := miniredis.Run()
				if err != nil {
					t.Fatalf("miniredis: %v", err)
				}
				rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
				return rdb, func() { _ = rdb.Close(); mr.Close() }
			},
		},
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		modes = append(modes, redisMode{
			name: "standalone:" + addr,
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				rdb := redis.NewClient(&redis.Options{Addr: addr})
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := rdb.Ping(ctx).Err(); err != nil {
					t.Skipf("cannot connect to Redis at %s: %v", addr, err)
				}
				// Flush the test DB to avoid state leaking between runs.
				rdb.FlushDB(context.Background())
				return rdb, func() { rdb.FlushDB(context.Background()); _ = rdb.Close() }
			},
		})
	}

	// Cluster mode: when REDIS_CLUSTER_ADDRS is set (comma-separated).
	if addrs := os.Getenv("REDIS_CLUSTER_ADDRS"); addrs != "" {
		modes = append(modes, redisMode{
			name: "cluster",
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				clusterAddrs := splitAddrs(addrs)
				rdb := redis.NewClusterClient(&redis.ClusterOptions{Addrs: clusterAddrs})
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := rdb.Ping(ctx).Err(); err != nil {
					t.Skipf("cannot connect to Redis cluster: %v", err)
				}
				return rdb, func() { _ = rdb.Close() }
			},
		})
	}

	// Sentinel mode: when REDIS_SENTINEL_ADDRS and REDIS_SENTINEL_MASTER are set.
	if addrs := os.Getenv("REDIS_SENTINEL_ADDRS"); addrs != "" {
		master := os.Getenv("REDIS_SENTINEL_MASTER")
		if master == "" {
			master = "mymaster"
		}
		modes = append(modes, redisMode{
			name: "sentinel",
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				rdb := redis.NewFailoverClient(&redis.FailoverOptions{
					MasterName:    master,
					SentinelAddrs: splitAddrs(addrs),
				})
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := rdb.Ping(ctx).Err(); err != nil {
					t.Skipf("cannot connect to Redis sentinel: %v", err)
				}
				rdb.FlushDB(context.Background())
				return rdb, func() { rdb.FlushDB(context.Background()); _ = rdb.Close() }
			},
		})
	}

	return modes
}

func splitAddrs(s string) []string {
	var addrs []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	return addrs
}

func TestRedisCompatTabState(t *testing.T) {
	for _, mode := range redisModes(t) {
		t.Run(mode.name, func(t *testing.T) {
			rdb, cleanup := mode.setup(t)
			defer cleanup()
			ctx := context.Background()

			cfg := goUX.DefaultConfig()
			cfg.TabState.ScopeByVisitor = true
			engine, err := goUX.New().
				WithConfig(cfg).
				WithTabStorage(tabstate.NewRedisStorage(rdb, "compat")).
				Build()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			defer engine.Close()

			alice := goUX.WithVisitorID(ctx, "alice")
			bob := goUX.WithVisitorID(ctx, "bob")

			if _, ok := engine.RestoreTab(alice); ok {
				t.Fatal("never-saved visitor must restore nothing")
			}
			if err := engine.ActivateTab(alice, "#stats"); err != nil {
				t.Fatalf("activate: %v", err)
			}
			if err := engine.ActivateTab(bob, "#courses"); err != nil {
				t.Fatalf("activate: %v", err)
			}
			if tab, ok := engine.RestoreTab(alice); !ok || tab != "#stats" {
				t.Fatalf("alice restored %q ok=%v", tab, ok)
			}
			if tab, ok := engine.RestoreTab(bob); !ok || tab != "#courses" {
				t.Fatalf("bob restored %q ok=%v", tab, ok)
			}

			ttl, err := rdb.TTL(ctx, "compat:activeTab:alice").Result()
			if err != nil {
				t.Fatalf("ttl: %v", err)
			}
			if ttl >= 0 {
				t.Fatalf("tab state must not expire, ttl=%v", ttl)
			}
		})
	}
}

func TestRedisCompatWatch(t *testing.T) {
	for _, mode := range redisModes(t) {
		t.Run(mode.name, func(t *testing.T) {
			rdb, cleanup := mode.setup(t)
			defer cleanup()

			store := tabstate.NewStore(tabstate.NewRedisStorage(rdb, "compat"))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			got := make(chan string, 8)
			go func() { _ = store.Watch(ctx, func(v string) { got <- v }) }()

			deadline := time.After(5 * time.Second)
			tick := time.NewTicker(50 * time.Millisecond)
			defer tick.Stop()
			for {
				if err := store.Save(context.Background(), "#billing"); err != nil {
					t.Fatalf("save: %v", err)
				}
				select {
				case v := <-got:
					if v != "#billing" {
						t.Fatalf("watch reported %q", v)
					}
					return
				case <-deadline:
					t.Fatal("watch never reported the write")
				case <-tick.C:
				}
			}
		})
	}
}

func TestRedisCompatSubmitGuard(t *testing.T) {
	for _, mode := range redisModes(t) {
		t.Run(mode.name, func(t *testing.T) {
			rdb, cleanup := mode.setup(t)
			defer cleanup()
			ctx := context.Background()

			rg := guard.NewRedisGuard(rdb, "compat:submit", time.Second)
			if d, err := rg.Acquire(ctx, "v1:/profile"); err != nil || d != guard.Allowed {
				t.Fatalf("first acquire: %v %v", d, err)
			}
			if d, err := rg.Acquire(ctx, "v1:/profile"); err != nil || d != guard.Suppressed {
				t.Fatalf("second acquire: %v %v", d, err)
			}
			remaining, err := rg.Remaining(ctx, "v1:/profile")
			if err != nil || remaining <= 0 || remaining > time.Second {
				t.Fatalf("remaining %v err=%v", remaining, err)
			}
			if err := rg.Release(ctx, "v1:/profile"); err != nil {
				t.Fatalf("release: %v", err)
			}
			if d, err := rg.Acquire(ctx, "v1:/profile"); err != nil || d != guard.Allowed {
				t.Fatalf("acquire after release: %v %v", d, err)
			}
		})
	}
}

func TestRedisCompatUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	defer rdb.Close()

	engine, err := goUX.New().WithTabStorage(tabstate.NewRedisStorage(rdb, "")).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer engine.Close()

	if err := engine.ActivateTab(context.Background(), "#x"); !errors.Is(err, goUX.ErrTabStateUnavailable) {
		t.Fatalf("expected ErrTabStateUnavailable, got %v", err)
	}
	if _, ok := engine.RestoreTab(context.Background()); ok {
		t.Fatal("unreachable storage must restore nothing")
	}
}
