// Package goUX is the input-handling core of a server-rendered web front-end:
// a debounced search box, a double-submit guard per form, a password strength
// indicator, email hints and a persisted active tab.
//
// An [Engine] is built once per page (or per process on the server) through
// [Builder.Build]. Its methods are safe to call from multiple goroutines; timer
// callbacks run on runtime goroutines and never hold engine locks while
// calling user code.
//
// # Architecture boundaries
//
// The timing and state machines live in sub-packages ([debounce], [guard],
// [strength], [tabstate]) and are usable on their own. This package wires them
// to configuration, metrics, events and an abstract page ([EventSource],
// [Presenter]). The browser binding lives in the dom package and is only
// compiled for js/wasm.
//
// # What this package must NOT do
//
//   - Talk to a server on behalf of the page. Search handlers decide that.
//   - Treat the strength tier as a security control. It is a UI hint.
//   - Fail a user interaction because storage is down. Tab restore degrades
//     to "nothing saved".
//
// [debounce]: github.com/MrEthical07/goUX/debounce
// [guard]: github.com/MrEthical07/goUX/guard
// [strength]: github.com/MrEthical07/goUX/strength
// [tabstate]: github.com/MrEthical07/goUX/tabstate
package goUX
