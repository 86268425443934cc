package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/taskmgr/internal/config"
	"github.com/Iron-Ham/taskmgr/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "taskmgr",
	Short: "A small to-do list manager",
	Long: `taskmgr keeps a list of tasks with a title, a due date and a priority.

Tasks are stored as one JSON document in a key-value slot on disk. Use the
subcommands to manage tasks from scripts, or run 'taskmgr ui' for the
interactive terminal interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errShown marks an error whose user-facing message was already printed.
var errShown = errors.New("already reported")

// shown wraps err so Execute's caller does not print it a second time.
func shown(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(errShown, err.Error())
}

// IsShown reports whether err's message was already printed by a command.
func IsShown(err error) bool {
	return errors.Is(err, errShown)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/taskmgr/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory that holds the task data")
	rootCmd.PersistentFlags().String("backend", "", "storage backend: file, sqlite or memory")
	bindFlags()
}

// bindFlags lets the global flags override config file and environment
// values.
func bindFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("storage.dir", flags.Lookup("data-dir"))
	_ = viper.BindPFlag("storage.backend", flags.Lookup("backend"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)
	// e.g. TASKMGR_STORAGE_BACKEND for storage.backend
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
