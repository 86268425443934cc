package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmgr/internal/taskstore"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all tasks as JSON or YAML",
	Long: `Write all tasks to stdout, or to a file with --output.

Examples:
  taskmgr export > tasks.json
  taskmgr export --format yaml -o tasks.yaml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add tasks from a JSON or YAML export",
	Long: `Add the tasks in file to the stored list. Use "-" to read stdin.

The format is taken from --format, or from the file extension. Every task
is checked before any is stored, so a bad file changes nothing. Tasks
whose id is already in use get a new id.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	exportFormat string
	exportOutput string
	importFormat string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "input format: json or yaml (default: from extension)")
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := taskstore.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	return withEnv(cmd, func(e *env) error {
		if exportOutput == "" {
			return e.store.Export(cmd.OutOrStdout(), format)
		}

		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		if err := e.store.Export(f, format); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", e.store.Counts().Total, exportOutput)
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := importFormatFor(path, importFormat)
	if err != nil {
		return err
	}

	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	return withEnv(cmd, func(e *env) error {
		n, err := e.store.Import(r, format)
		if err != nil {
			if n > 0 {
				return fmt.Errorf("import stopped after %d tasks: %w", n, err)
			}
			return fmt.Errorf("import failed: %w", err)
		}
		e.text.Quiet = false
		e.text.Success("Imported %d tasks", n)
		return nil
	})
}

// importFormatFor prefers an explicit flag, then the file extension, then
// JSON.
func importFormatFor(path, flag string) (taskstore.Format, error) {
	if flag != "" {
		return taskstore.ParseFormat(flag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return taskstore.FormatYAML, nil
	}
	return taskstore.FormatJSON, nil
}
