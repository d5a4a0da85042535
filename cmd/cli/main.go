// Package main is the entry point for the launchplane CLI.
// The CLI is the operator terminal tool for the launchplane API.
package main

import (
	"os"

	"launchplane/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
