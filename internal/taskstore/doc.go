// Package taskstore owns the task collection and its persisted form.
//
// The whole collection is stored as one JSON array under the key
// "taskManager_tasks" of a [kv.Store]; the theme preference lives under
// "taskManager_theme". Every mutation reads the current blob, applies the
// change to a fresh copy and writes the copy back, so a failed write leaves
// the previous collection in place and the call can simply be retried.
//
// Reads never fail: a missing, unreadable or corrupt blob reads as an
// empty collection and is logged. [Store.Inspect] reports corruption
// distinctly for callers that need to tell it apart from "no data yet".
//
// Mutations return nil on success. Failures are values that can be matched
// with errors.Is against the sentinels in internal/errors:
//
//	ErrTaskNotFound        no task has the id
//	ErrDuplicateTask       Add with an id already in use
//	ErrInvalidInput        empty title or unknown priority
//	ErrStorageFull         the kv quota rejected the write
//	ErrStorageUnavailable  the kv store could not be read or written
package taskstore
