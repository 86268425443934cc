package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmgr/internal/taskstore"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the color theme",
	Long: `Without arguments, print the saved theme. With "light" or "dark", save
that theme. With "toggle", switch to the other one.

The theme is shared with the interactive UI.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(e *env) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), e.coord.Theme())
			return nil
		}

		var err error
		if strings.EqualFold(strings.TrimSpace(args[0]), "toggle") {
			err = e.coord.ToggleTheme()
		} else {
			var t taskstore.Theme
			t, err = taskstore.ParseTheme(args[0])
			if err != nil {
				return err
			}
			err = e.coord.SetTheme(t)
		}
		if err != nil {
			return shown(err)
		}

		e.text.Quiet = false
		e.text.Success("Theme set to %s", e.coord.Theme())
		return nil
	})
}
