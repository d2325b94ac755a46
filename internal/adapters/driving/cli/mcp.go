package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quill-labs/quill-cli/internal/adapters/driving/mcp"
	"github.com/quill-labs/quill-cli/internal/core/services"
)

var mcpRefreshEvery time.Duration

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

While the server runs, a background scheduler keeps the archive fresh;
the cache TTL still decides when sources are actually refetched.

Examples:
  # Stdio mode (default, for Claude Desktop)
  quill mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  quill mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "quill": {
        "command": "/path/to/quill",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().DurationVar(&mcpRefreshEvery, "refresh-interval", 30*time.Minute,
		"how often the background freshness check runs")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Search:  searchService,
		Sync:    syncService,
		Article: articleService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if syncService != nil {
		scheduler := services.NewRefreshScheduler(refreshInterval(mcpRefreshEvery), syncService)
		go scheduler.Start(ctx) //nolint:errcheck
		defer scheduler.Stop()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
