package main

import (
	"os"

	"github.com/Makepad-fr/atlas/internal/cli"
)

func main() {
	// Hand the args to the CLI runner; it owns flags and exit codes.
	os.Exit(cli.Run(os.Args[1:]))
}
