// Package main is the entry point for taskdex.
package main

import (
	"fmt"
	"os"

	"github.com/hy4ri/taskdex/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
