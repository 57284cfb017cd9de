// Package main provides the structlint command.
package main

import (
	"os"

	"github.com/habittracker/structlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
