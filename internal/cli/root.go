// Package cli implements the hingegen command-line interface.
//
// It provides commands for checking a hinge pivot layout, synthesizing one
// automatically, exporting templates and drawings, and inspecting the
// derived geometry. The CLI is built with cobra; all commands support
// --verbose (-v) for debug-level logging via the charmbracelet/log
// library.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version string shown by --version, typically
// injected via ldflags at build time.
func SetVersion(v string) {
	version = v
}

// Execute runs the hingegen CLI and returns an error if any command
// fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "hingegen",
		Short:        "hingegen parametrizes and validates up-and-over box hinges",
		Long:         `hingegen models a box with an up-and-over lid hinge built from a planar four-bar linkage, checks whether a pivot layout lets the lid swing from closed to open without locking, searches for valid layouts automatically, and exports drilling templates.`,
		Version:      version,
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

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newShowCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newSolveCmd())
	root.AddCommand(newExportCmd())

	return root.ExecuteContext(context.Background())
}
