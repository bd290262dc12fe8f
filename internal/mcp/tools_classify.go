package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/jsxtract/internal/extract"
	mcputils "github.com/mvp-joe/jsxtract/internal/mcp-utils"
)

// ClassifyRequest is the argument object of jsx_classify.
type ClassifyRequest struct {
	Fragment string `json:"fragment"`
}

// ClassifyResponse lists the free names of a fragment and its normalized body.
type ClassifyResponse struct {
	Classification *extract.Classification `json:"classification"`
	Rewrites       []extract.Rewrite       `json:"rewrites"`
	Body           string                  `json:"body"`
}

// AddJSXClassifyTool registers the jsx_classify tool with an MCP server.
func AddJSXClassifyTool(s *server.MCPServer) {
	tool := mcp.NewTool(
		"jsx_classify",
		mcp.WithDescription("Classify the free names of a JSX fragment taken from a class component: state, argument props, member props and component members. Returns the normalized fragment body."),
		mcp.WithString("fragment",
			mcp.Required(),
			mcp.Description("A single JSX expression, e.g. '<div>{this.props.label}</div>'")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createJSXClassifyHandler())
}

func createJSXClassifyHandler() func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !hasArgumentMap(request) {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req ClassifyRequest
		if err := mcputils.BindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(req.Fragment) == "" {
			return mcp.NewToolResultError("fragment parameter is required"), nil
		}

		result, err := extract.ClassifyText(req.Fragment)
		if err != nil {
			if isUserError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, err
		}
		defer result.Close()

		return marshalToolResponse(&ClassifyResponse{
			Classification: result.Classification,
			Rewrites:       result.Rewrites,
			Body:           result.Body(),
		})
	}
}
