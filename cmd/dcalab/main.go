package main

import (
	"os"

	"github.com/jmlee/dcalab/cmd/dcalab/commands"
)

// main is the entry point for the dcalab CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
