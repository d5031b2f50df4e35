// Package guard prevents duplicate form submissions inside a cooldown window.
//
// A [Guard] is a two-state machine owned by one form:
//
//	Idle --Submit--> Submitting --(cooldown | Reset)--> Idle
//
// Submit in Idle returns [Allowed] and disables the attached [Control]; Submit
// in Submitting returns [Suppressed] and the caller must cancel the underlying
// action. The guard is reusable: there is no terminal state.
//
// [Registry] keeps one Guard per form id. [RedisGuard] is the server-side
// counterpart used to reject duplicate POSTs across processes; it shares the
// fixed-window SET NX PX semantics of a cooldown but not the Control wiring.
//
// # What this package must NOT do
//
//   - Coordinate browser windows: each Guard only sees its own submits.
//   - Import any other goUX package except internal/clock.
package guard
