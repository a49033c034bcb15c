// Package main is the entry point for the Hecto editor.
package main

import (
	"fmt"
	"io"
	"os"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the root command and maps the outcome to an exit status.
// The terminal has been restored by the time an error is printed.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(newTerminal)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
