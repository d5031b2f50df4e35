package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/MrEthical07/goUX/internal/clock"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func newFakeDebouncer(delay time.Duration, opts ...Option) (*Debouncer[string], *clock.Fake, *recorder) {
	fake := clock.NewFake(time.Unix(1_700_000_000, 0))
	rec := &recorder{}
	opts = append([]Option{WithClock(fake)}, opts...)
	return New(delay, rec.record, opts...), fake, rec
}

func TestBurstFiresOnceWithLastArgument(t *testing.T) {
	d, fake, rec := newFakeDebouncer(500 * time.Millisecond)

	bursts := []string{"a", "b", "c", "d"}
	for _, v := range bursts {
		d.Call(v)
		fake.Advance(499 * time.Millisecond)
	}
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected no firing inside the burst, got %v", got)
	}

	fake.Advance(time.Millisecond)
	got := rec.snapshot()
	if len(got) != 1 || got[0] != "d" {
		t.Fatalf("expected single call with last argument, got %v", got)
	}

	fake.Advance(10 * time.Second)
	if got := rec.snapshot(); len(got) != 1 {
		t.Fatalf("expected no extra firing, got %v", got)
	}
}

func TestSpacedCallsFireEach(t *testing.T) {
	d, fake, rec := newFakeDebouncer(500 * time.Millisecond)

	for _, v := range []string{"x", "y", "z"} {
		d.Call(v)
		fake.Advance(500 * time.Millisecond)
	}

	got := rec.snapshot()
	want := []string{"x", "y", "z"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestAtMostOnePendingTimer(t *testing.T) {
	d, fake, _ := newFakeDebouncer(time.Second)

	for i := 0; i < 10; i++ {
		d.Call("v")
	}
	if fake.Pending() != 1 {
		t.Fatalf("expected exactly one scheduled timer, got %d", fake.Pending())
	}
	if !d.Pending() {
		t.Fatal("expected debouncer to report pending")
	}
}

func TestSupersedeHookCountsReplacedCalls(t *testing.T) {
	superseded := 0
	d, fake, rec := newFakeDebouncer(100*time.Millisecond, WithSupersedeHook(func() { superseded++ }))

	d.Call("p")
	d.Call("pa")
	d.Call("pas")
	fake.Advance(100 * time.Millisecond)

	if superseded != 2 {
		t.Fatalf("expected 2 superseded calls, got %d", superseded)
	}
	if got := rec.snapshot(); len(got) != 1 || got[0] != "pas" {
		t.Fatalf("unexpected calls %v", got)
	}

	d.Call("next")
	if superseded != 2 {
		t.Fatalf("a call after firing must not count as superseding, got %d", superseded)
	}
}

func TestCancelDropsPendingInvocation(t *testing.T) {
	d, fake, rec := newFakeDebouncer(time.Second)

	d.Call("gone")
	if !d.Cancel() {
		t.Fatal("expected Cancel to report a pending invocation")
	}
	if d.Cancel() {
		t.Fatal("expected second Cancel to report nothing pending")
	}

	fake.Advance(2 * time.Second)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("cancelled invocation fired: %v", got)
	}
}

func TestFlushRunsImmediately(t *testing.T) {
	d, fake, rec := newFakeDebouncer(time.Second)

	if d.Flush() {
		t.Fatal("flush with nothing pending must report false")
	}

	d.Call("now")
	if !d.Flush() {
		t.Fatal("expected flush to run pending invocation")
	}
	if got := rec.snapshot(); len(got) != 1 || got[0] != "now" {
		t.Fatalf("unexpected calls %v", got)
	}

	fake.Advance(2 * time.Second)
	if got := rec.snapshot(); len(got) != 1 {
		t.Fatalf("flushed invocation fired twice: %v", got)
	}
}

func TestStopIgnoresLaterCalls(t *testing.T) {
	d, fake, rec := newFakeDebouncer(time.Second)

	d.Call("before")
	d.Stop()
	d.Call("after")
	fake.Advance(5 * time.Second)

	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("stopped debouncer fired: %v", got)
	}
	if d.Pending() {
		t.Fatal("stopped debouncer reports pending")
	}
}

func TestRealClockFiresOnce(t *testing.T) {
	done := make(chan string, 4)
	d := New(20*time.Millisecond, func(v string) { done <- v })

	d.Call("one")
	d.Call("two")
	d.Call("three")

	select {
	case got := <-done:
		if got != "three" {
			t.Fatalf("expected last argument, got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debounced action did not fire")
	}

	select {
	case extra := <-done:
		t.Fatalf("unexpected extra firing with %q", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConcurrentCallsFireOnce(t *testing.T) {
	d, fake, rec := newFakeDebouncer(time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d.Call("v")
			}
		}()
	}
	wg.Wait()

	fake.Advance(time.Second)
	if got := rec.snapshot(); len(got) != 1 {
		t.Fatalf("expected exactly one firing, got %d", len(got))
	}
}
