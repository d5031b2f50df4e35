package goUX

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Event types emitted by the Engine.
const (
	EventSearchTriggered  = "search_triggered"
	EventSearchSkipped    = "search_skipped"
	EventSubmitAllowed    = "submit_allowed"
	EventSubmitSuppressed = "submit_suppressed"
	EventSubmitReset      = "submit_reset"
	EventTabSaved         = "tab_saved"
	EventTabRestored      = "tab_restored"
	EventTabStoreFailure  = "tab_store_failure"
	EventEmailInvalid     = "email_invalid"
)

// Event describes one user-visible state change.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      string            `json:"type"`
	VisitorID string            `json:"visitor_id,omitempty"`
	FormID    string            `json:"form_id,omitempty"`
	TabID     string            `json:"tab_id,omitempty"`
	Field     string            `json:"field,omitempty"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// EventSink receives events from the dispatcher goroutine.
type EventSink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink discards events.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink forwards events to a buffered channel. Emit never blocks: when
// the channel is full the event is dropped and counted, so a reader that stops
// draining Events cannot stall the dispatcher or Engine.Close.
type ChannelSink struct {
	events  chan Event
	dropped atomic.Uint64
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan Event, buffer),
	}
}

func (s *ChannelSink) Emit(_ context.Context, event Event) {
	select {
	case s.events <- event:
	default:
		s.dropped.Add(1)
	}
}

func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// Dropped returns how many events found the channel full.
func (s *ChannelSink) Dropped() uint64 {
	return s.dropped.Load()
}

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(ctx context.Context, event Event) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

// SlogSink logs events at Info, or Warn when the event carries an error.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink returns a sink writing to logger, or slog.Default when nil.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Emit(ctx context.Context, event Event) {
	if s == nil {
		return
	}
	attrs := make([]slog.Attr, 0, 6+len(event.Metadata))
	attrs = append(attrs, slog.String("type", event.Type))
	if event.VisitorID != "" {
		attrs = append(attrs, slog.String("visitor_id", event.VisitorID))
	}
	if event.FormID != "" {
		attrs = append(attrs, slog.String("form_id", event.FormID))
	}
	if event.TabID != "" {
		attrs = append(attrs, slog.String("tab_id", event.TabID))
	}
	if event.Field != "" {
		attrs = append(attrs, slog.String("field", event.Field))
	}
	for k, v := range event.Metadata {
		attrs = append(attrs, slog.String(k, v))
	}

	level := slog.LevelInfo
	if event.Error != "" {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("err", event.Error))
	}
	s.logger.LogAttrs(ctx, level, "goux event", attrs...)
}
