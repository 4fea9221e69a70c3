package main

import (
	"os"

	"github.com/rustyeddy/putsim/cmd/putsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
