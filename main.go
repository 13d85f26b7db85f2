// Package main is the entry point for the conductor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/conductor-cli/conductor/cmd"
	"github.com/conductor-cli/conductor/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
