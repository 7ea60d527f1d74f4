package graphtools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/graphmem/graphmem/internal/graph"
)

// CreateEntitiesTool handles the create_entities MCP tool.
type CreateEntitiesTool struct {
	store *graph.Store
}

// NewCreateEntitiesTool creates a CreateEntitiesTool with the given store.
func NewCreateEntitiesTool(store *graph.Store) *CreateEntitiesTool {
	return &CreateEntitiesTool{store: store}
}

// Definition returns the MCP tool definition for create_entities.
func (t *CreateEntitiesTool) Definition() mcp.Tool {
	return mcp.NewTool("create_entities",
		mcp.WithDescription(
			"Create multiple new entities in the knowledge graph. "+
				"An entity has a unique name, a free-form type, and a list of observation strings. "+
				"Creating a name that already exists replaces that entity entirely.",
		),
		mcp.WithArray("entities",
			mcp.Required(),
			mcp.Description("Entities to create"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Unique entity name",
					},
					"entityType": map[string]any{
						"type":        "string",
						"description": "Classification, e.g. 'person' or 'project'",
					},
					"observations": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Initial observation strings",
					},
				},
				"required": []string{"name", "entityType"},
			}),
		),
	)
}

// Handle processes the create_entities tool call.
func (t *CreateEntitiesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var inputs []graph.EntityInput
	ok, err := decodeArg(req, "entities", &inputs)
	if !ok {
		return mcp.NewToolResultError("'entities' is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	n := t.store.CreateEntities(inputs)
	return mcp.NewToolResultText(fmt.Sprintf("Created %d entities", n)), nil
}
