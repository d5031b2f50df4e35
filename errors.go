package goUX

import "errors"

var (
	// ErrBuilderUsed is returned by a second Build on the same Builder.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrEngineNotReady is returned by operations on a nil Engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrEngineClosed is returned by operations that start work after Close.
	ErrEngineClosed = errors.New("engine closed")
	// ErrTabStateUnavailable wraps tab storage failures surfaced by
	// ActivateTab and WatchTabs.
	ErrTabStateUnavailable = errors.New("tab state unavailable")
	// ErrTabWatchUnsupported is returned by WatchTabs when the storage cannot
	// report writes from other clients.
	ErrTabWatchUnsupported = errors.New("tab state storage does not support watch")
)
