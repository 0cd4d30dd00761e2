// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents log moods, quizzes and journal entries via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/mindspace/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs MindSpace as an MCP (Model Context Protocol) server so LLM agents
can log moods, record stress quizzes and keep the journal via stdio.
Everything stays in the local store.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by the agent host)
  mindspace mcp

  # Configure in the host's config file:
  # {
  #   "mcpServers": {
  #     "mindspace": {
  #       "command": "mindspace",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Lifecycle logs go to stderr; stdout belongs to the protocol
	if !quiet {
		log.SetOutput(os.Stderr)
	}

	store, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	server := mcpserver.NewMCPServer(
		"MindSpace",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, store)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("MindSpace MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, closing store...")
		}
		if err := store.Close(); err != nil {
			log.Printf("Warning: Error closing storage: %v", err)
		}
		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		_ = store.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
