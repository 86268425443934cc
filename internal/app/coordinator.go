// Package app wires user intents to the task store and tells a Renderer
// what to draw. The CLI and the TUI both drive a Coordinator.
package app

import (
	"strings"

	"github.com/Iron-Ham/taskmgr/internal/errors"
	"github.com/Iron-Ham/taskmgr/internal/logging"
	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/taskstore"
)

// Messages shown through Renderer.ShowError.
const (
	MsgInvalidInput = "Please enter a valid task title and due date."
	MsgAddFailed    = "Failed to add task. Please try again."
	MsgUpdateFailed = "Failed to update task."
	MsgToggleFailed = "Failed to update task status."
	MsgDeleteFailed = "Failed to delete task."
	MsgClearFailed  = "Failed to clear tasks."
	MsgThemeFailed  = "Failed to save theme."
	MsgTaskNotFound = "Task not found."
)

// Form is the add/edit form. EditID is empty when adding.
type Form struct {
	EditID   string
	Title    string
	DueDate  string
	Priority string
}

// Editing reports whether the form edits an existing task.
func (f Form) Editing() bool {
	return f.EditID != ""
}

// Coordinator owns the current filter and theme and re-renders after
// every successful mutation. It is not safe for concurrent use; callers
// serialize intents the way an event loop does.
type Coordinator struct {
	store    TaskStore
	renderer Renderer
	logger   *logging.Logger

	filter          task.Filter
	theme           taskstore.Theme
	defaultPriority task.Priority
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithFilter sets the initial filter.
func WithFilter(f task.Filter) Option {
	return func(c *Coordinator) { c.filter = task.ParseFilter(string(f)) }
}

// WithDefaultPriority sets the priority used when a form leaves it blank.
func WithDefaultPriority(p task.Priority) Option {
	return func(c *Coordinator) {
		if p.Valid() {
			c.defaultPriority = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Coordinator over store drawing to r.
func New(store TaskStore, r Renderer, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:           store,
		renderer:        r,
		logger:          logging.NopLogger(),
		filter:          task.FilterAll,
		theme:           taskstore.DefaultTheme,
		defaultPriority: task.DefaultPriority,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Filter returns the current filter.
func (c *Coordinator) Filter() task.Filter { return c.filter }

// Theme returns the current theme.
func (c *Coordinator) Theme() taskstore.Theme { return c.theme }

// Init loads and applies the stored theme, then renders.
func (c *Coordinator) Init() {
	c.theme = c.store.Theme()
	c.renderer.ApplyTheme(c.theme)
	c.render()
}

// Refresh re-renders the current filter, for example after another
// process changed the stored tasks.
func (c *Coordinator) Refresh() {
	c.render()
}

func (c *Coordinator) render() {
	c.renderer.RenderTasks(c.store.GetByFilter(c.filter), c.filter)
	c.renderer.UpdateStats(c.store.Counts())
}

func (c *Coordinator) fail(err error, fallback string) error {
	msg := errors.UserMessage(err, fallback)
	c.logger.Debug("intent failed", "error", err.Error(), "message", msg, "retryable", errors.IsRetryable(err))
	c.renderer.ShowError(msg)
	return err
}

// Submit validates f and either adds a new task or updates the one named
// by f.EditID. It returns the stored task on success.
func (c *Coordinator) Submit(f Form) (task.Task, error) {
	if err := task.ValidateInput(f.Title, f.DueDate); err != nil {
		return task.Task{}, c.fail(err, MsgInvalidInput)
	}

	priority := c.defaultPriority
	if strings.TrimSpace(f.Priority) != "" {
		p, err := task.ParsePriority(f.Priority)
		if err != nil {
			return task.Task{}, c.fail(err, MsgInvalidInput)
		}
		priority = p
	}

	var (
		stored task.Task
		err    error
	)
	if f.Editing() {
		stored, err = c.update(f, priority)
	} else {
		stored, err = c.add(f, priority)
	}
	if err != nil {
		return task.Task{}, err
	}

	c.renderer.ClearForm()
	c.render()
	return stored, nil
}

func (c *Coordinator) add(f Form, p task.Priority) (task.Task, error) {
	t := task.Task{Title: f.Title, DueDate: strings.TrimSpace(f.DueDate), Priority: p}
	if err := c.store.Add(&t); err != nil {
		return task.Task{}, c.fail(err, MsgAddFailed)
	}
	c.logger.WithOperation("add").WithTask(t.ID).Info("task added")
	return t, nil
}

func (c *Coordinator) update(f Form, p task.Priority) (task.Task, error) {
	title, due := f.Title, f.DueDate
	patch := task.Patch{Title: &title, DueDate: &due, Priority: &p}
	if err := c.store.Update(f.EditID, patch); err != nil {
		return task.Task{}, c.fail(err, MsgUpdateFailed)
	}
	log := c.logger.WithOperation("update").WithTask(f.EditID)
	t, ok := c.store.GetByID(f.EditID)
	if !ok {
		err := errors.NewNotFoundError("task", f.EditID)
		log.Warn("task disappeared after update")
		c.renderer.ShowError(MsgUpdateFailed)
		c.render()
		return task.Task{}, err
	}
	log.Info("task updated")
	return t, nil
}

// Edit returns a form pre-filled from the task with id.
func (c *Coordinator) Edit(id string) (Form, bool) {
	t, ok := c.store.GetByID(id)
	if !ok {
		c.renderer.ShowError(MsgTaskNotFound)
		return Form{}, false
	}
	return Form{
		EditID:   t.ID,
		Title:    t.Title,
		DueDate:  t.DueDate,
		Priority: string(t.Priority),
	}, true
}

// Toggle flips the completion flag of the task with id.
func (c *Coordinator) Toggle(id string) error {
	if err := c.store.ToggleCompletion(id); err != nil {
		return c.fail(err, MsgToggleFailed)
	}
	c.render()
	return nil
}

// Delete removes the task with id.
func (c *Coordinator) Delete(id string) error {
	if err := c.store.Delete(id); err != nil {
		return c.fail(err, MsgDeleteFailed)
	}
	c.render()
	return nil
}

// ClearAll removes every task.
func (c *Coordinator) ClearAll() error {
	if err := c.store.ClearAll(); err != nil {
		return c.fail(err, MsgClearFailed)
	}
	c.render()
	return nil
}

// SetFilter changes the current filter and re-renders. Unknown filters
// become task.FilterAll.
func (c *Coordinator) SetFilter(f task.Filter) {
	c.filter = task.ParseFilter(string(f))
	c.render()
}

// SetTheme applies and persists t. The theme is applied even when saving
// fails.
func (c *Coordinator) SetTheme(t taskstore.Theme) error {
	c.theme = t
	c.renderer.ApplyTheme(t)
	if err := c.store.SaveTheme(t); err != nil {
		return c.fail(err, MsgThemeFailed)
	}
	return nil
}

// ToggleTheme switches between light and dark.
func (c *Coordinator) ToggleTheme() error {
	return c.SetTheme(c.theme.Toggle())
}
