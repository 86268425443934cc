package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmgr/internal/kv"
	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive task list",
	Long: `Open the full-screen task list.

With the file backend and tui.watch enabled, the list redraws when
another taskmgr process changes the tasks.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

var uiFilter string

func init() {
	uiCmd.Flags().StringVarP(&uiFilter, "filter", "f", "", "initial filter: all, pending or completed")
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(e *env) error {
		cfg := e.cfg
		filter := task.ParseFilter(cfg.Display.DefaultFilter)
		if cmd.Flags().Changed("filter") {
			filter = task.ParseFilter(uiFilter)
		}

		model := tui.NewModel(e.store, tui.Options{
			Filter:          filter,
			DefaultPriority: task.Priority(strings.ToLower(cfg.Display.DefaultPriority)),
			ConfirmDelete:   cfg.TUI.ConfirmDelete,
			TitleWidth:      cfg.Display.TitleWidth,
			DateLayout:      cfg.Display.DateFormat,
			Logger:          e.logger.WithOperation("ui"),
		})

		var watcher kv.Watcher
		if cfg.TUI.Watch {
			watcher, _ = e.backend.(kv.Watcher)
		}

		e.logger.Info("tui started", "watch", watcher != nil)
		return tui.New(model, watcher).Run(cmd.Context())
	})
}
