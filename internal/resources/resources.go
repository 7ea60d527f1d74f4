// Package resources implements MCP resource handlers for graphmem.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (memory://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/graphmem/graphmem/internal/graph"
)

// Handler manages graphmem resource endpoints.
type Handler struct {
	store *graph.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store *graph.Store) *Handler {
	return &Handler{store: store}
}

// GraphResource returns the MCP resource definition for the graph snapshot.
func (h *Handler) GraphResource() mcp.Resource {
	return mcp.NewResource(
		"memory://graph",
		"Knowledge Graph",
		mcp.WithResourceDescription("Full knowledge graph snapshot with entity, relation, and observation counts"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleGraph returns the current graph snapshot as JSON.
func (h *Handler) HandleGraph(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap := h.store.ReadGraph()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling graph snapshot: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
