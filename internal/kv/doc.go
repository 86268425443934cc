// Package kv provides durable key-value slots for the task store.
//
// A slot holds one opaque text value per key and is always replaced as a
// whole; there is no incremental or delta persistence. Three backends
// implement [Store]:
//
//   - [FileStore]: one file per key in a directory, written atomically
//     (temp file + rename) under a cross-process file lock
//   - [SQLiteStore]: a single kv table in a SQLite database
//   - [MemoryStore]: a map, for tests and throwaway sessions
//
// Every backend accepts [WithQuota] to cap the total bytes stored across
// all keys. A write that would exceed the cap fails with
// [ErrQuotaExceeded] and leaves the previous value in place.
//
// Usage:
//
//	store, err := kv.Open(kv.BackendFile, dataDir, kv.WithQuota(5<<20))
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	if err := store.Set("taskManager_theme", "dark"); err != nil { ... }
//	theme, err := store.Get("taskManager_theme")
//	if errors.Is(err, kv.ErrNotFound) { ... }
//
// [FileStore] also implements [Watcher] so an interactive session can
// react when another process rewrites a key.
package kv
