// Package tabstate persists the identifier of the last active UI tab.
//
// A [Store] writes a single string under a fixed key through an injected
// [Storage] capability. Save overwrites unconditionally (last write wins);
// Load reports absence when nothing, or an empty identifier, was saved.
//
// # Backends
//
//   - [MemoryStorage]: process-local map, also the test fake.
//   - [RedisStorage]: shared across processes; change notifications over pub/sub.
//   - [SQLiteStorage]: single-file database (modernc.org/sqlite, no cgo).
//   - [FileStorage]: JSON document replaced atomically; fsnotify-based watch.
//
// Backends that also implement [Watcher] let a window observe identifiers
// written by other windows. Concurrent writers are not coordinated; the last
// write is what the next Load sees.
//
// # What this package must NOT do
//
//   - Version, lock or merge values: the tab id is cosmetic state.
//   - Import the root goUX package.
package tabstate
