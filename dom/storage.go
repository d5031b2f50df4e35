//go:build js && wasm

package dom

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/MrEthical07/goUX/tabstate"
)

// LocalStorage is a tabstate.Storage over window.localStorage. Watch reports
// writes made by other tabs of the same origin.
type LocalStorage struct {
	window js.Value
}

// NewLocalStorage returns a LocalStorage over the global window.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{window: js.Global()}
}

// Get returns the item under key.
func (s *LocalStorage) Get(_ context.Context, key string) (value string, ok bool, err error) {
	defer recoverJS(&err)

	storage, err := s.storage()
	if err != nil {
		return "", false, err
	}
	item := storage.Call("getItem", key)
	if item.IsNull() || item.IsUndefined() {
		return "", false, nil
	}
	return item.String(), true, nil
}

// Set overwrites the item under key.
func (s *LocalStorage) Set(_ context.Context, key, value string) (err error) {
	defer recoverJS(&err)

	storage, err := s.storage()
	if err != nil {
		return err
	}
	storage.Call("setItem", key, value)
	return nil
}

// Watch calls fn with the new value each time another tab writes key, until
// ctx is done. Removals are not reported.
func (s *LocalStorage) Watch(ctx context.Context, key string, fn func(value string)) error {
	values := make(chan string, 16)
	handler := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		ev := args[0]
		if ev.Get("key").String() != key {
			return nil
		}
		next := ev.Get("newValue")
		if next.IsNull() {
			return nil
		}
		select {
		case values <- next.String():
		default:
		}
		return nil
	})
	s.window.Call("addEventListener", "storage", handler)
	defer func() {
		s.window.Call("removeEventListener", "storage", handler)
		handler.Release()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case v := <-values:
			fn(v)
		}
	}
}

func (s *LocalStorage) storage() (js.Value, error) {
	storage := s.window.Get("localStorage")
	if !storage.Truthy() {
		return js.Value{}, fmt.Errorf("%w: localStorage not available", tabstate.ErrStorageUnavailable)
	}
	return storage, nil
}

// recoverJS turns a thrown JS exception (quota, privacy mode) into an error.
func recoverJS(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", tabstate.ErrStorageUnavailable, r)
	}
}
