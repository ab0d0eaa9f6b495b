package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/logger"
	"github.com/schemaforge/schemaforge/mcpserver"
)

func newMCPCmd(version string) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generator over the Model Context Protocol on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Stdout carries the protocol stream; diagnostics go to
			// stderr and only when asked for.
			return mcpserver.Run(version, logger.NewMCPLogger(os.Stderr, !verbose))
		},
	}
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log server lifecycle to stderr")
	return cmd
}
