// Package graphtools provides the MCP tool handlers for the knowledge graph.
//
// Each tool handler follows the same pattern:
// - A struct with the graph store injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Caller mistakes (missing or malformed arguments) come back as error
// results, never as Go errors: a bad request must not take down the serve
// loop.
package graphtools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// decodeArg unmarshals a structured argument into out via a JSON round trip
// (arrays arrive from the protocol layer as []any of map[string]any). The
// returned bool reports whether the key was present at all.
func decodeArg(req mcp.CallToolRequest, key string, out any) (bool, error) {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return false, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return true, fmt.Errorf("reading '%s': %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("parsing '%s': %w", key, err)
	}
	return true, nil
}
