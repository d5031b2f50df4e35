// Package dom binds a goUX Engine to a browser page when compiled for
// GOOS=js GOARCH=wasm.
//
// [Document] turns DOM listeners into goUX.EventSource callbacks, [Presenter]
// writes render fragments back into the page, and [LocalStorage] persists the
// active tab in window.localStorage. A field matches elements by id, name or
// input type; elements without an id are keyed through data-goux-key, and
// forms without one through data-goux-form.
//
// # What this package must NOT do
//
//   - Make decisions. Debounce, guard, strength and tab logic live in the
//     Engine.
//   - Keep js.Func values after Release.
package dom
