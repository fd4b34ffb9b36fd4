package cli

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragchat/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve ragchat to MCP clients",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Starts a Model Context Protocol server over the same documents and
sessions as the CLI.

Tools:
  ask             answer a question, optionally continuing a session
  list_documents  list uploaded documents
  list_sessions   list saved chat sessions

Resources:
  ragchat://documents/{id}  extracted document text
  ragchat://sessions/{id}   turns of a saved session

The server speaks JSON-RPC over stdio unless --port is set, in which case it
serves the streamable HTTP transport instead.

Examples:
  ragchat mcp serve
  ragchat mcp serve --port 8080
  ragchat mcp serve --host 0.0.0.0 --port 8080

Client configuration:
  {
    "mcpServers": {
      "ragchat": {"command": "/path/to/ragchat", "args": ["mcp", "serve"]}
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

var (
	mcpPort int
	mcpHost string
)

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "HTTP listen host")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Chat:     chatService,
		Document: documentService,
		Session:  sessionService,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if mcpPort <= 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	cmd.PrintErrf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
