package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmgr/internal/app"
	"github.com/Iron-Ham/taskmgr/internal/config"
	"github.com/Iron-Ham/taskmgr/internal/errors"
	"github.com/Iron-Ham/taskmgr/internal/kv"
	"github.com/Iron-Ham/taskmgr/internal/logging"
	"github.com/Iron-Ham/taskmgr/internal/render"
	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/taskstore"
)

// env is everything a task command needs: the loaded config, the opened
// store and a coordinator drawing to the command's output.
type env struct {
	cfg     *config.Config
	dataDir string
	backend kv.Store
	store   *taskstore.Store
	logger  *logging.Logger
	text    *render.Text
	coord   *app.Coordinator
}

// openEnv loads the configuration and opens the task store. The text
// renderer starts quiet so mutations print only their own confirmation;
// commands that list tasks turn it back on.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	dataDir := cfg.Storage.DataDir()
	backendName := strings.ToLower(cfg.Storage.Backend)

	logger := logging.NopLogger()
	if cfg.Logging.Enabled && backendName != kv.BackendMemory {
		l, err := logging.NewLogger(dataDir, cfg.Logging.Level, cfg.Logging.Rotation())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
		} else {
			logger = l
		}
	}

	backend, err := kv.Open(backendName, dataDir, kv.WithQuota(cfg.Storage.QuotaBytes))
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("failed to open %s storage in %s: %w", backendName, dataDir, err)
	}

	logger = logger.With("cmd", cmd.Name())
	store := taskstore.New(backend, taskstore.WithLogger(logger))

	text := render.NewText(cmd.OutOrStdout(), cmd.ErrOrStderr(),
		render.WithTitleWidth(cfg.Display.TitleWidth),
		render.WithDateLayout(cfg.Display.DateFormat),
	)
	text.Quiet = true

	coord := app.New(store, text,
		app.WithFilter(task.ParseFilter(cfg.Display.DefaultFilter)),
		app.WithDefaultPriority(task.Priority(strings.ToLower(cfg.Display.DefaultPriority))),
		app.WithLogger(logger),
	)
	coord.Init()

	return &env{
		cfg:     cfg,
		dataDir: dataDir,
		backend: backend,
		store:   store,
		logger:  logger,
		text:    text,
		coord:   coord,
	}, nil
}

// Close releases the store and the log file.
func (e *env) Close() error {
	err := e.backend.Close()
	if lerr := e.logger.Close(); err == nil {
		err = lerr
	}
	return err
}

// show turns the task table back on and draws the current filter.
func (e *env) show() {
	e.text.Quiet = false
	e.coord.Refresh()
}

// resolveID maps an id or a unique id prefix to a stored task id. The
// table prints shortened ids, so prefixes are what users usually type.
func (e *env) resolveID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.NewValidationError("is required").WithField("id")
	}
	if _, ok := e.store.GetByID(ref); ok {
		return ref, nil
	}

	var matches []string
	for _, t := range e.store.GetAll() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", errors.NewNotFoundError("task", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d tasks; use more characters", ref, len(matches))
	}
}

// withEnv opens an env for the duration of fn.
func withEnv(cmd *cobra.Command, fn func(e *env) error) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()
	return fn(e)
}
