// barmate-cli is the headless companion to the BarMate desktop app. It runs
// the cutting optimizer and the rebar calculators from the command line and
// re-exports saved project files.
package main

import (
	"os"

	"github.com/barmate/barmate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
