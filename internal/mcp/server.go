package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/jsxtract/internal/config"
)

// ServerVersion is reported to MCP clients during initialization.
var ServerVersion = "dev"

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	config  *config.Config
	results *resultCache
	mcp     *server.MCPServer
}

// NewMCPServer creates a server exposing the jsx_classify and jsx_extract tools.
// A nil config uses the defaults.
func NewMCPServer(cfg *config.Config) (*MCPServer, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	results, err := newResultCache(defaultResultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"jsxtract-mcp",
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	AddJSXClassifyTool(mcpServer)
	AddJSXExtractTool(mcpServer, cfg.UnitOptions(), cfg.Imports.ReactPath, results)

	return &MCPServer{
		config:  cfg,
		results: results,
		mcp:     mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the result cache.
func (s *MCPServer) Close() error {
	if s.results != nil {
		s.results.Close()
	}
	return nil
}
