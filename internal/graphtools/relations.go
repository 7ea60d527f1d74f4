package graphtools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/graphmem/graphmem/internal/graph"
)

// CreateRelationsTool handles the create_relations MCP tool.
type CreateRelationsTool struct {
	store *graph.Store
}

// NewCreateRelationsTool creates a CreateRelationsTool with the given store.
func NewCreateRelationsTool(store *graph.Store) *CreateRelationsTool {
	return &CreateRelationsTool{store: store}
}

// Definition returns the MCP tool definition for create_relations.
func (t *CreateRelationsTool) Definition() mcp.Tool {
	return mcp.NewTool("create_relations",
		mcp.WithDescription(
			"Create multiple directed relations between entities in the knowledge graph. "+
				"Name relations in active voice, e.g. 'alice' works_at 'acme'. "+
				"Endpoints are not checked against existing entities.",
		),
		mcp.WithArray("relations",
			mcp.Required(),
			mcp.Description("Relations to create"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"from": map[string]any{
						"type":        "string",
						"description": "Source entity name",
					},
					"to": map[string]any{
						"type":        "string",
						"description": "Target entity name",
					},
					"relationType": map[string]any{
						"type":        "string",
						"description": "Relation type in active voice, e.g. 'works_at'",
					},
				},
				"required": []string{"from", "to", "relationType"},
			}),
		),
	)
}

// Handle processes the create_relations tool call.
func (t *CreateRelationsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var inputs []graph.RelationInput
	ok, err := decodeArg(req, "relations", &inputs)
	if !ok {
		return mcp.NewToolResultError("'relations' is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	n := t.store.CreateRelations(inputs)
	return mcp.NewToolResultText(fmt.Sprintf("Created %d relations", n)), nil
}
