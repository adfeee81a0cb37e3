package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/lsystem"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of lsystem",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lsystem version %s\n", lsystem.Version)
		},
	}
}
