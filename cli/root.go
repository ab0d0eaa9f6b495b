package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/logger"
)

// Execute runs the root command. The context cancels the long-running
// subcommands (watch, mcp) when a termination signal arrives.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	root := &cobra.Command{
		Use:           "schemaforge",
		Short:         "Spring Boot CRUD scaffolding generator",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newGenerateCmd(log),
		newWatchCmd(log),
		newMCPCmd(version),
	)
	return root.ExecuteContext(ctx)
}
