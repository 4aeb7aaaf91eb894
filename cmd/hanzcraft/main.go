// Package main is the entry point for the HanzCraft CLI.
package main

import (
	"os"

	"github.com/f3rmion/hanzcraft/cmd/hanzcraft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
