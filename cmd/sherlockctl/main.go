// Package main is the entry point for the sherlockctl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/stemsi/sherlock/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
