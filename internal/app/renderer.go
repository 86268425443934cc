package app

import (
	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/taskstore"
)

// Renderer draws coordinator state. Implementations never touch storage.
type Renderer interface {
	// RenderTasks draws the tasks visible under filter, in order.
	RenderTasks(tasks []task.Task, filter task.Filter)
	// UpdateStats draws the total, pending and completed counts.
	UpdateStats(c task.Counts)
	// ShowError shows a blocking, user-facing message.
	ShowError(msg string)
	// ApplyTheme switches the color scheme.
	ApplyTheme(theme taskstore.Theme)
	// ClearForm resets the add/edit form after a successful submit.
	ClearForm()
}

// TaskStore is the subset of *taskstore.Store the coordinator uses.
type TaskStore interface {
	GetAll() []task.Task
	GetByID(id string) (task.Task, bool)
	GetByFilter(f task.Filter) []task.Task
	Counts() task.Counts
	Add(t *task.Task) error
	Update(id string, p task.Patch) error
	Delete(id string) error
	ToggleCompletion(id string) error
	ClearAll() error
	Theme() taskstore.Theme
	SaveTheme(t taskstore.Theme) error
}

var _ TaskStore = (*taskstore.Store)(nil)
