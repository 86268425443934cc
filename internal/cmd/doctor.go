package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmgr/internal/errors"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the stored tasks for problems",
	Long: `Check that the stored task list can be read and decoded, that every
task is valid and that no two tasks share an id.

A damaged list is treated as empty by the other commands and is replaced
by the next change. Run 'taskmgr doctor' before changing anything if you
want to rescue it first, for example with 'taskmgr export'.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(e *env) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Backend:   %s\n", e.cfg.Storage.Backend)
		fmt.Fprintf(out, "Data dir:  %s\n", e.dataDir)

		err := e.store.Inspect()
		switch {
		case err == nil:
			c := e.store.Counts()
			fmt.Fprintf(out, "Tasks:     %d (%d pending, %d completed)\n", c.Total, c.Pending, c.Completed)
			fmt.Fprintf(out, "Theme:     %s\n", e.store.Theme())
			fmt.Fprintln(out, "OK")
			return nil
		case errors.Is(err, errors.ErrStoreCorrupted):
			return fmt.Errorf("stored tasks are damaged: %w", err)
		default:
			return fmt.Errorf("stored tasks cannot be read: %w", err)
		}
	})
}
