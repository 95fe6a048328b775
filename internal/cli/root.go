// Package cli implements the barmate command-line interface.
//
// This package provides commands for running the cutting-stock optimizer on
// cut lists, the rebar calculators (cut length, stirrups, tonnage, weight),
// and exports to PDF, Excel and DXF. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
//   - optimize: Plan cut requirements against the stock catalog
//   - cutlength: Cutting length of a bent bar from its segments
//   - stirrup: Cutting length of a closed stirrup
//   - tonnage: Convert between bar counts and tonnes
//   - weight: Steel weight of a bar run
//   - export: Re-export a saved project file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/barmate/barmate/internal/version"
)

// Execute runs the barmate CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "barmate",
		Short:        "BarMate plans waste-minimizing rebar cutting",
		Long:         `BarMate is a cutting-stock planner for reinforcing steel: it packs required cut lengths onto standard stock bars with minimal waste, and carries the supporting bar schedule calculators and exports.`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("barmate %s\ncommit: %s\nbuilt: %s\n", version.Version, version.GitCommit, version.BuildTime))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newOptimizeCmd())
	root.AddCommand(newCutLengthCmd())
	root.AddCommand(newStirrupCmd())
	root.AddCommand(newTonnageCmd())
	root.AddCommand(newWeightCmd())
	root.AddCommand(newExportCmd())

	return root.ExecuteContext(context.Background())
}
