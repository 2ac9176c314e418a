// Package main is the entry point for the chemlab CLI.
package main

import (
	"os"

	"github.com/daniacca/chemlab/cmd/chemlab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
