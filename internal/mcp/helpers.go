package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mvp-joe/jsxtract/internal/extract"
)

// hasArgumentMap reports whether the request carries an arguments object.
func hasArgumentMap(request mcp.CallToolRequest) bool {
	_, ok := request.GetRawArguments().(map[string]interface{})
	return ok
}

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// isUserError reports whether err was caused by the tool input and should be
// shown to the caller instead of failing the request.
func isUserError(err error) bool {
	return errors.Is(err, extract.ErrMalformedFragment) ||
		errors.Is(err, extract.ErrSynthesisInput) ||
		errors.Is(err, extract.ErrInvalidUnitName)
}
