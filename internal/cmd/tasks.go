package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/taskmgr/internal/app"
	"github.com/Iron-Ham/taskmgr/internal/render"
	"github.com/Iron-Ham/taskmgr/internal/task"
	"github.com/Iron-Ham/taskmgr/internal/util"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task with a title and a due date.

Examples:
  taskmgr add "Write report" --due 2025-03-14
  taskmgr add "Renew passport" --due 2025-06-01 --priority high`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks in the order they were added.

The filter defaults to display.default_filter from the configuration.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var toggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"done"},
	Short:   "Mark a task completed, or pending again",
	Args:    cobra.ExactArgs(1),
	RunE:    runToggle,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a task's title, due date or priority",
	Long: `Change a task. Only the flags you pass are changed.

Example:
  taskmgr edit 3f2a --due 2025-03-20 --priority low`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every task",
	Long: `Delete every task.

On a terminal you are asked to confirm. Pass --yes to skip the question;
it is required when stdin is not a terminal.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

var (
	addDue      string
	addPriority string

	listFilter string

	editTitle    string
	editDue      string
	editPriority string

	clearYes bool
)

func init() {
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "due date (YYYY-MM-DD, required)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "priority: low, medium or high")

	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "filter: all, pending or completed")

	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "new due date (YYYY-MM-DD)")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "new priority")

	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")

	rootCmd.AddCommand(addCmd, listCmd, showCmd, toggleCmd, editCmd, deleteCmd, clearCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(e *env) error {
		t, err := e.coord.Submit(app.Form{
			Title:    strings.Join(args, " "),
			DueDate:  addDue,
			Priority: addPriority,
		})
		if err != nil {
			return shown(err)
		}
		e.text.Quiet = false
		e.text.Success("Added %s %s", util.ShortID(t.ID, render.IDWidth), t.Title)
		return nil
	})
}

func runList(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(e *env) error {
		e.text.Quiet = false
		if cmd.Flags().Changed("filter") {
			e.coord.SetFilter(task.ParseFilter(listFilter))
			return nil
		}
		e.show()
		return nil
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(e *env) error {
		id, err := e.resolveID(args[0])
		if err != nil {
			return err
		}
		t, _ := e.store.GetByID(id)
		e.text.Task(t)
		return nil
	})
}

func runToggle(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(e *env) error {
		id, err := e.resolveID(args[0])
		if err != nil {
			return err
		}
		if err := e.coord.Toggle(id); err != nil {
			return shown(err)
		}
		t, _ := e.store.GetByID(id)
		state := "pending"
		if t.Completed {
			state = "completed"
		}
		e.text.Quiet = false
		e.text.Success("Marked %s %s", util.ShortID(id, render.IDWidth), state)
		return nil
	})
}

func runEdit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("title") && !flags.Changed("due") && !flags.Changed("priority") {
		return fmt.Errorf("nothing to change: pass --title, --due or --priority")
	}

	return withEnv(cmd, func(e *env) error {
		id, err := e.resolveID(args[0])
		if err != nil {
			return err
		}
		form, ok := e.coord.Edit(id)
		if !ok {
			return shown(fmt.Errorf("task %s not found", id))
		}
		if flags.Changed("title") {
			form.Title = editTitle
		}
		if flags.Changed("due") {
			form.DueDate = editDue
		}
		if flags.Changed("priority") {
			form.Priority = editPriority
		}

		t, err := e.coord.Submit(form)
		if err != nil {
			return shown(err)
		}
		e.text.Quiet = false
		e.text.Success("Updated %s %s", util.ShortID(t.ID, render.IDWidth), t.Title)
		return nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(e *env) error {
		id, err := e.resolveID(args[0])
		if err != nil {
			return err
		}
		if err := e.coord.Delete(id); err != nil {
			return shown(err)
		}
		e.text.Quiet = false
		e.text.Success("Deleted %s", util.ShortID(id, render.IDWidth))
		return nil
	})
}

func runClear(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(e *env) error {
		n := e.store.Counts().Total
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks to clear.")
			return nil
		}

		if !clearYes {
			if !stdinIsTerminal() {
				return fmt.Errorf("refusing to delete %d tasks without --yes", n)
			}
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete all %d tasks?", n))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		if err := e.coord.ClearAll(); err != nil {
			return shown(err)
		}
		e.text.Quiet = false
		e.text.Success("Deleted %d tasks", n)
		return nil
	})
}

// stdinIsTerminal is a variable so tests can pretend to be interactive.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks a yes/no question and reads the answer from in.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
