package main

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/taskmgr/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !cmd.IsShown(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
