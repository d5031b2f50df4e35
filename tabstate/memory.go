package tabstate

import (
	"context"
	"sync"
)

// MemoryStorage keeps values in a map. Every Set is broadcast to watchers of
// the same key, including ones registered by the writer.
type MemoryStorage struct {
	mu       sync.RWMutex
	values   map[string]string
	watchers map[string]map[int]func(string)
	nextID   int
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values:   make(map[string]string),
		watchers: make(map[string]map[int]func(string)),
	}
}

// Get returns the value under key.
func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key and notifies watchers.
func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	fns := make([]func(string), 0, len(m.watchers[key]))
	for _, fn := range m.watchers[key] {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
	return nil
}

// Delete removes key.
func (m *MemoryStorage) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// Watch calls fn for every Set of key until ctx is done.
func (m *MemoryStorage) Watch(ctx context.Context, key string, fn func(value string)) error {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	if m.watchers[key] == nil {
		m.watchers[key] = make(map[int]func(string))
	}
	m.watchers[key][id] = fn
	m.mu.Unlock()

	<-ctx.Done()

	m.mu.Lock()
	delete(m.watchers[key], id)
	if len(m.watchers[key]) == 0 {
		delete(m.watchers, key)
	}
	m.mu.Unlock()
	return nil
}

// Watchers returns the number of active watchers on key.
func (m *MemoryStorage) Watchers(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.watchers[key])
}
