// Package main is the entry point for the marketlab CLI.
package main

import (
	"os"

	"github.com/f3rmion/marketlab/cmd/marketlab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
