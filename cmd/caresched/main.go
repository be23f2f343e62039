// Package main is the entry point for the caresched CLI.
package main

import (
	"os"

	"github.com/cyp0633/caresched/cmd/caresched/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
