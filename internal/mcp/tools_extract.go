package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/jsxtract/internal/extract"
	mcputils "github.com/mvp-joe/jsxtract/internal/mcp-utils"
	"github.com/mvp-joe/jsxtract/internal/workflow"
)

// ExtractRequest is the argument object of jsx_extract.
type ExtractRequest struct {
	Fragment    string `json:"fragment"`
	Destination string `json:"destination"`
	Style       string `json:"style,omitempty"`
	Indent      string `json:"indent,omitempty"`
	ReactImport bool   `json:"react_import,omitempty"`
}

// ExtractResponse is the result of jsx_extract. Module is the unit preceded
// by the React import, set only when react_import was requested.
type ExtractResponse struct {
	*extract.Extraction
	Module string `json:"module,omitempty"`
}

// AddJSXExtractTool registers the jsx_extract tool with an MCP server.
// The tool only synthesizes text; files are never touched.
func AddJSXExtractTool(s *server.MCPServer, defaults extract.UnitOptions, reactPath string, results *resultCache) {
	tool := mcp.NewTool(
		"jsx_extract",
		mcp.WithDescription("Extract a JSX fragment into a new component named after the destination file. Returns the component definition and the call site that replaces the fragment. Does not write files."),
		mcp.WithString("fragment",
			mcp.Required(),
			mcp.Description("A single JSX expression selected from a class component's render method")),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Destination file path; its basename becomes the component name (e.g. 'user-card.jsx' -> UserCard)")),
		mcp.WithString("style",
			mcp.Description("Component style: function (default) or class")),
		mcp.WithString("indent",
			mcp.Description("Indentation unit for the generated component (default: two spaces)")),
		mcp.WithBoolean("react_import",
			mcp.Description("Also return 'module': the component preceded by the React import, ready to be written as a new file")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createJSXExtractHandler(defaults, reactPath, results))
}

func createJSXExtractHandler(defaults extract.UnitOptions, reactPath string, results *resultCache) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !hasArgumentMap(request) {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req ExtractRequest
		if err := mcputils.BindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(req.Fragment) == "" {
			return mcp.NewToolResultError("fragment parameter is required"), nil
		}
		if strings.TrimSpace(req.Destination) == "" {
			return mcp.NewToolResultError("destination parameter is required"), nil
		}

		opts := defaults
		if req.Style != "" {
			opts.Style = extract.Style(strings.ToLower(req.Style))
			if opts.Style != extract.StyleFunction && opts.Style != extract.StyleClass {
				return mcp.NewToolResultError(fmt.Sprintf("invalid style %q: must be function or class", req.Style)), nil
			}
		}
		if req.Indent != "" {
			opts.Indent = req.Indent
		}

		key := resultKey(req.Fragment, req.Destination, opts)
		ext, ok := results.Get(key)
		if !ok {
			var err error
			ext, err = extract.Extract(req.Destination, req.Fragment, opts)
			if err != nil {
				if isUserError(err) {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return nil, err
			}
			results.Set(key, ext)
		}

		response := ExtractResponse{Extraction: ext}
		if req.ReactImport {
			module, err := workflow.SyntaxImportInjector{}.EnsureDefaultImport([]byte(ext.Unit), "React", reactPath)
			if err != nil {
				return nil, fmt.Errorf("failed to add react import: %w", err)
			}
			response.Module = string(module)
		}
		return marshalToolResponse(response)
	}
}
