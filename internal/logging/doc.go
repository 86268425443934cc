// Package logging provides structured logging for taskmgr.
//
// Logs are JSON lines written through log/slog to taskmgr.log in the data
// directory. The file is rotated by size by [RotatingWriter], keeping a
// configurable number of numbered backups.
//
// # Context
//
// Child loggers carry persistent attributes:
//
//	log := logger.WithOperation("toggle").WithTask(id)
//	log.Debug("task toggled", "completed", true)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"task toggled","op":"toggle","task_id":"...","completed":true}
//
// # Reading logs back
//
// [ReadEntries] parses the current log and its backups, and [FilterEntries]
// narrows them by level, operation, task or time. The logs command is
// built on these.
//
// # Thread Safety
//
// [Logger] and [RotatingWriter] are safe for concurrent use. Child loggers
// share the parent's writer.
package logging
