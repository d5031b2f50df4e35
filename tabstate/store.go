package tabstate

import (
	"context"
	"errors"
	"strings"
)

// DefaultKey is the storage key of the active tab identifier.
const DefaultKey = "activeTab"

var (
	// ErrStorageUnavailable wraps backend failures.
	ErrStorageUnavailable = errors.New("tab state storage unavailable")
	// ErrWatchUnsupported is returned by Store.Watch when the backend cannot
	// report changes.
	ErrWatchUnsupported = errors.New("tab state storage does not support watch")
	// ErrNilStorage is returned when a Store has no backend.
	ErrNilStorage = errors.New("nil tab state storage")
)

// Storage is a synchronous string key-value capability.
type Storage interface {
	// Get returns the value stored under key; ok is false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// Watcher is implemented by storages that can report values written by other
// clients. Watch blocks until ctx is done and calls fn for every write of key,
// including a write that repeats the stored value.
type Watcher interface {
	Watch(ctx context.Context, key string, fn func(value string)) error
}

// Option customizes a Store.
type Option func(*Store)

// WithKey overrides DefaultKey. Blank keys are ignored.
func WithKey(key string) Option {
	return func(s *Store) {
		if strings.TrimSpace(key) != "" {
			s.key = key
		}
	}
}

// Store reads and writes the active tab identifier.
type Store struct {
	storage Storage
	key     string
}

// NewStore returns a Store over storage.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// Scoped returns a Store sharing the backend with its key suffixed by scope.
// An empty scope returns s unchanged.
func (s *Store) Scoped(scope string) *Store {
	if scope == "" {
		return s
	}
	return &Store{storage: s.storage, key: s.key + ":" + scope}
}

// Save overwrites the persisted identifier.
func (s *Store) Save(ctx context.Context, tabID string) error {
	if s == nil || s.storage == nil {
		return ErrNilStorage
	}
	return s.storage.Set(ctx, s.key, tabID)
}

// Load returns the persisted identifier. ok is false when nothing was saved
// or the saved identifier is empty.
func (s *Store) Load(ctx context.Context) (string, bool, error) {
	if s == nil || s.storage == nil {
		return "", false, ErrNilStorage
	}
	value, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return "", false, err
	}
	if !ok || value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// Watch reports identifiers written by other clients until ctx is done.
func (s *Store) Watch(ctx context.Context, fn func(tabID string)) error {
	if s == nil || s.storage == nil {
		return ErrNilStorage
	}
	w, ok := s.storage.(Watcher)
	if !ok {
		return ErrWatchUnsupported
	}
	return w.Watch(ctx, s.key, func(value string) {
		if value != "" {
			fn(value)
		}
	})
}
