package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/taskmgr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View taskmgr configuration",
	Long: `View taskmgr configuration.

Without arguments, displays the current configuration.
Use subcommands to find or create the config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/taskmgr/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	if _, err := config.Load(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; defaults are used instead\n", err)
	}

	settings := viper.AllSettings()
	delete(settings, "config")
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

const defaultConfigContent = `# taskmgr configuration

storage:
  # Where tasks are kept: file, sqlite or memory (memory is lost on exit)
  backend: file
  # Data directory. Empty means $XDG_DATA_HOME/taskmgr
  dir: ""
  # Total bytes the store may hold; 0 means unlimited
  quota_bytes: 5242880

display:
  # Filter shown first: all, pending or completed
  default_filter: all
  # Priority used when none is given: low, medium or high
  default_priority: medium
  # Go time layout for due dates
  date_format: "Jan 2, 2006"
  # Column width for titles (10-200)
  title_width: 40

tui:
  # Redraw when another process changes the tasks (file backend only)
  watch: true
  # Ask before deleting a task
  confirm_delete: true

logging:
  # Write taskmgr.log in the data directory
  enabled: true
  # debug, info, warn or error
  level: info
  # Rotate the log at this size
  max_size_mb: 10
  # Rotated logs to keep
  max_backups: 3
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintf(out, "\nEnvironment variables: %s_* (e.g., %s_STORAGE_BACKEND)\n", config.EnvPrefix, config.EnvPrefix)

	dataCfg := config.Get().Storage
	fmt.Fprintf(out, "\nData directory: %s\n", dataCfg.DataDir())
	if strings.EqualFold(dataCfg.Backend, "memory") {
		fmt.Fprintln(out, "  (memory backend: tasks are not saved between runs)")
	}
	return nil
}
