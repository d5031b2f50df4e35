// Package debounce coalesces bursts of calls into a single delayed action.
//
// A [Debouncer] owns exactly one timer. Every [Debouncer.Call] cancels the
// pending invocation (if any) and schedules a new one after the configured
// delay, carrying the most recent argument. The action therefore runs at most
// once per idle window, with the argument of the last call in the burst.
//
// # Concurrency
//
// Debouncer methods are safe for concurrent use. The action runs on the timer
// goroutine, never while the Debouncer's lock is held, so it may call back into
// the same Debouncer.
//
// # What this package must NOT do
//
//   - Retry or queue actions: a superseded invocation is dropped, not deferred.
//   - Import any other goUX package except internal/clock.
package debounce
