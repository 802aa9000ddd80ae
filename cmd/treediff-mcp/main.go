package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ludo-technologies/treediff/internal/config"
	"github.com/ludo-technologies/treediff/internal/version"
	"github.com/ludo-technologies/treediff/mcp"
)

const serverName = "treediff"

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Pick up a .treediff.toml from the working directory, if present
	cfg, err := config.NewTomlConfigLoader().LoadConfig(".")
	if err != nil {
		log.Printf("Warning: failed to load configuration, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	// Create MCP server with tool capabilities
	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	handlers := mcp.NewHandlerSet(mcp.NewDependencies(cfg, ""))
	mcp.RegisterTools(server, handlers)

	log.Printf("Starting %s MCP server %s\n", serverName, version.Short())
	log.Println("Registered tools:")
	log.Println("  - diff_documents: Structural JSON/YAML document diff")
	log.Println("  - diff_source: Structural Python source diff")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	// Start server with stdio transport
	// This blocks until the server is terminated
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
