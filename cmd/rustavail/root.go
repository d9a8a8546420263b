package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for rustavail.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rustavail",
		Short: "Rust tools per-release availability monitor",
		Long: `rustavail tracks which Rust toolchain components are available on which
targets across recent releases.

It downloads the daily channel manifests, builds an availability dataset,
renders one HTML page per target through a user-supplied template, and
writes a static file tree of per-target, per-package availability
artifacts suitable for serving as-is.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
