package goUX

import (
	"context"
	"sync"
	"sync/atomic"
)

// droppedOther collects drops of event types the engine does not emit itself.
const droppedOther = "other"

var engineEventTypes = []string{
	EventSearchTriggered,
	EventSearchSkipped,
	EventSubmitAllowed,
	EventSubmitSuppressed,
	EventSubmitReset,
	EventTabSaved,
	EventTabRestored,
	EventTabStoreFailure,
	EventEmailInvalid,
}

// eventDispatcher hands events to the sink on one goroutine so engine calls
// never wait on a slow sink. Drops are counted per event type; the drops map
// is fixed at construction and read without locking.
type eventDispatcher struct {
	sink       EventSink
	queue      chan Event
	stop       chan struct{}
	running    sync.WaitGroup
	dropIfFull bool
	drops      map[string]*atomic.Uint64
	closed     atomic.Bool
	closeOnce  sync.Once
}

// newEventDispatcher returns nil when events are disabled; a nil dispatcher
// accepts and discards everything.
func newEventDispatcher(cfg EventsConfig, sink EventSink) *eventDispatcher {
	if !cfg.Enabled {
		return nil
	}
	d := newIdleDispatcher(cfg, sink)
	d.running.Add(1)
	go d.loop()
	return d
}

// newIdleDispatcher builds the queue without starting the delivery goroutine.
func newIdleDispatcher(cfg EventsConfig, sink EventSink) *eventDispatcher {
	size := cfg.BufferSize
	if size <= 0 {
		size = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	drops := make(map[string]*atomic.Uint64, len(engineEventTypes)+1)
	for _, t := range engineEventTypes {
		drops[t] = new(atomic.Uint64)
	}
	drops[droppedOther] = new(atomic.Uint64)

	return &eventDispatcher{
		sink:       sink,
		queue:      make(chan Event, size),
		stop:       make(chan struct{}),
		dropIfFull: cfg.DropIfFull,
		drops:      drops,
	}
}

func (d *eventDispatcher) loop() {
	defer d.running.Done()

	ctx := context.Background()
	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(ctx, event)
		case <-d.stop:
			d.drain(ctx)
			return
		}
	}
}

// drain delivers whatever is still queued after Close.
func (d *eventDispatcher) drain(ctx context.Context) {
	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(ctx, event)
		default:
			return
		}
	}
}

// Emit queues event. With DropIfFull a full queue drops the event and counts
// it under its type; otherwise Emit waits for room, ctx or Close.
func (d *eventDispatcher) Emit(ctx context.Context, event Event) {
	if d == nil || d.closed.Load() {
		return
	}

	if d.dropIfFull {
		select {
		case d.queue <- event:
		case <-d.stop:
		default:
			d.countDrop(event.Type)
		}
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case d.queue <- event:
	case <-ctx.Done():
	case <-d.stop:
	}
}

func (d *eventDispatcher) countDrop(eventType string) {
	counter, ok := d.drops[eventType]
	if !ok {
		counter = d.drops[droppedOther]
	}
	counter.Add(1)
}

// Close delivers queued events and stops the goroutine.
func (d *eventDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.stop)
		d.running.Wait()
	})
}

// Dropped returns the total number of dropped events.
func (d *eventDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	var total uint64
	for _, counter := range d.drops {
		total += counter.Load()
	}
	return total
}

// DroppedByType returns the drop count of every type that lost at least one
// event. Types the engine does not emit are folded into "other".
func (d *eventDispatcher) DroppedByType() map[string]uint64 {
	out := map[string]uint64{}
	if d == nil {
		return out
	}
	for t, counter := range d.drops {
		if n := counter.Load(); n > 0 {
			out[t] = n
		}
	}
	return out
}
