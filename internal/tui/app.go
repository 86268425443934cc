package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/taskmgr/internal/kv"
	"github.com/Iron-Ham/taskmgr/internal/logging"
	"github.com/Iron-Ham/taskmgr/internal/taskstore"
)

// App wraps the bubbletea program.
type App struct {
	program *tea.Program
	model   Model
	watcher kv.Watcher
	logger  *logging.Logger
}

// New creates a TUI application. When w is non-nil the task list reloads
// whenever the stored tasks change on disk.
func New(model Model, w kv.Watcher) *App {
	return &App{model: model, watcher: w, logger: model.logger}
}

// Run starts the program and blocks until the user quits.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.program = tea.NewProgram(a.model, tea.WithAltScreen(), tea.WithContext(ctx))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			a.program.Send(tea.Quit())
		case <-ctx.Done():
		}
	}()

	if a.watcher != nil {
		err := a.watcher.Watch(ctx, taskstore.TasksKey, func() {
			a.program.Send(refreshMsg{})
		})
		if err != nil {
			// The TUI still works without live reload.
			a.logger.Warn("watch disabled", "error", err.Error())
		}
	}

	if _, err := a.program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
