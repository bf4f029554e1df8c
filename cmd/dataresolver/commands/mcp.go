package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/erraggy/dataresolver/internal/mcpserver"
)

// MCPCmd creates the mcp command.
func MCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the resolve,
validate_path and list_paths tools.

The server is configured with DATARESOLVER_* environment variables
(DATARESOLVER_PATHS_LIMIT, DATARESOLVER_MAX_DEPTH, DATARESOLVER_MAX_CONTENT_SIZE, ...).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return mcpserver.Run(ctx)
		},
	}
}
