// Package middleware provides net/http adapters for server-rendered pages
// that use goUX.
//
// # Handlers
//
//   - [Visitor] issues a visitor cookie and stores the id in the request
//     context, which scopes tab state per browser.
//   - [SubmitGuard] applies the double-submit cooldown on the server through a
//     shared [guard.RedisGuard].
//
// # What this package must NOT do
//
//   - Render pages or decide what a form does.
//   - Hold per-request state beyond the context values it sets.
package middleware
