package main

import (
	"os"

	"github.com/relnotes/relnotes-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
