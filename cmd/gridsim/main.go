// Package main provides the gridsim CLI.
package main

import (
	"os"

	"github.com/gridsim-labs/gridsim/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
