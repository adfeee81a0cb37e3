package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/lsystem"
	"github.com/gogpu/lsystem/internal/logging"
)

// newRootCmd builds the command tree. Every call returns fresh commands
// with their own flag sets.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lsystem",
		Short: "Grow animated L-system figures",
		Long: `lsystem grows Lindenmayer-system figures (ferns, plants, lightning,
cracked earth and more) from press points and renders them as PNG or SVG,
either from a scripted session or through an HTTP API.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			log := logging.New(logging.ParseLevel(level))
			slog.SetDefault(log)
			lsystem.SetLogger(log)
		},
	}
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.AddCommand(newRenderCmd(), newServeCmd(), newFamiliesCmd(), newVersionCmd())
	return root
}

// Execute builds the command tree and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
