package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/jsxtract/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for JSX extraction",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can
classify and extract JSX fragments.

Tools:
- jsx_classify: lists the names a fragment reads and their provenance
- jsx_extract: synthesizes the new component and its call site

Neither tool writes files. Communicates via stdio (standard MCP transport).

Example:
  jsxtract mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "jsxtract MCP Server\n")
	fmt.Fprintf(os.Stderr, "Component style: %s\n\n", cfg.Component.Style)

	mcp.ServerVersion = Version
	server, err := mcp.NewMCPServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
