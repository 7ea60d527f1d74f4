package graphtools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/graphmem/graphmem/internal/graph"
)

// ReadGraphTool handles the read_graph MCP tool.
type ReadGraphTool struct {
	store *graph.Store
}

// NewReadGraphTool creates a ReadGraphTool with the given store.
func NewReadGraphTool(store *graph.Store) *ReadGraphTool {
	return &ReadGraphTool{store: store}
}

// Definition returns the MCP tool definition for read_graph.
func (t *ReadGraphTool) Definition() mcp.Tool {
	return mcp.NewTool("read_graph",
		mcp.WithDescription(
			"Read the entire knowledge graph: entity, relation, and observation counts plus the full contents.",
		),
	)
}

// Handle processes the read_graph tool call.
func (t *ReadGraphTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := t.store.ReadGraph()

	data, err := json.MarshalIndent(snap.Graph, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize graph: %v", err)), nil
	}

	var b strings.Builder
	b.WriteString("## Knowledge Graph\n\n")
	fmt.Fprintf(&b, "- **Entities**: %d\n", snap.Stats.Entities)
	fmt.Fprintf(&b, "- **Relations**: %d\n", snap.Stats.Relations)
	fmt.Fprintf(&b, "- **Observations**: %d\n\n", snap.Stats.TotalObservations)
	b.Write(data)

	return mcp.NewToolResultText(b.String()), nil
}
