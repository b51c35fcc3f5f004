// Package main is the entry point for the prprocessor CLI.
package main

import (
	"os"

	"github.com/jlsherrill/prprocessor/cmd/prprocessor/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
