package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmgr/internal/task"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts",
	Long: `Display how many tasks exist, how many are pending and how many are
completed, plus how many pending tasks are overdue.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var (
	statsJSON bool // Output as JSON
)

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

type statsOutput struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

func runStats(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(e *env) error {
		tasks := e.store.GetAll()
		c := task.CountOf(tasks)
		out := statsOutput{Total: c.Total, Pending: c.Pending, Completed: c.Completed}
		now := time.Now()
		for _, t := range tasks {
			if t.IsOverdue(now) {
				out.Overdue++
			}
		}

		if statsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		e.text.Quiet = false
		e.text.UpdateStats(c)
		if out.Overdue > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d overdue\n", out.Overdue)
		}
		return nil
	})
}
