package graphtools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/graphmem/graphmem/internal/graph"
)

// AddObservationsTool handles the add_observations MCP tool.
type AddObservationsTool struct {
	store *graph.Store
}

// NewAddObservationsTool creates an AddObservationsTool with the given store.
func NewAddObservationsTool(store *graph.Store) *AddObservationsTool {
	return &AddObservationsTool{store: store}
}

// Definition returns the MCP tool definition for add_observations.
func (t *AddObservationsTool) Definition() mcp.Tool {
	return mcp.NewTool("add_observations",
		mcp.WithDescription(
			"Append observation strings to existing entities in the knowledge graph. "+
				"Entries naming an unknown entity are skipped without error.",
		),
		mcp.WithArray("observations",
			mcp.Required(),
			mcp.Description("Observation batches to append"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"entityName": map[string]any{
						"type":        "string",
						"description": "Entity to append to",
					},
					"contents": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Observation strings to append",
					},
				},
				"required": []string{"entityName", "contents"},
			}),
		),
	)
}

// Handle processes the add_observations tool call.
func (t *AddObservationsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var inputs []graph.ObservationInput
	ok, err := decodeArg(req, "observations", &inputs)
	if !ok {
		return mcp.NewToolResultError("'observations' is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	n := t.store.AddObservations(inputs)
	return mcp.NewToolResultText(fmt.Sprintf("Added observations for %d entities", n)), nil
}
