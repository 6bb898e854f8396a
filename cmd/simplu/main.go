package main

import (
	"os"

	"github.com/simplu-io/simplu-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
