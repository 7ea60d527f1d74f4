package graphtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/graphmem/graphmem/internal/graph"
)

// SearchTool handles the search_nodes MCP tool.
type SearchTool struct {
	store            *graph.Store
	includeRelations bool
}

// NewSearchTool creates a SearchTool. includeRelations extends matching to
// relation fields; the reduced profile runs entity-only search.
func NewSearchTool(store *graph.Store, includeRelations bool) *SearchTool {
	return &SearchTool{store: store, includeRelations: includeRelations}
}

// Definition returns the MCP tool definition for search_nodes.
func (t *SearchTool) Definition() mcp.Tool {
	desc := "Search the knowledge graph with a case-insensitive substring query. " +
		"Matches entity names, types, and observation text."
	if t.includeRelations {
		desc = "Search the knowledge graph with a case-insensitive substring query. " +
			"Matches entity names, types, and observation text, plus relation endpoints and types."
	}
	return mcp.NewTool("search_nodes",
		mcp.WithDescription(desc),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Substring to look for"),
		),
	)
}

// Handle processes the search_nodes tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	matches := t.store.SearchNodes(query, graph.SearchOptions{IncludeRelations: t.includeRelations})
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No matches for %q.", query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matches:\n\n", len(matches))
	for i, m := range matches {
		switch m.Kind {
		case graph.KindEntity:
			fmt.Fprintf(&b, "[%d] entity %q (%s)\n", i+1, m.Entity.Name, m.Entity.EntityType)
			for _, obs := range m.Entity.Observations {
				fmt.Fprintf(&b, "    - %s\n", obs)
			}
		case graph.KindRelation:
			fmt.Fprintf(&b, "[%d] relation %q → %q (%s)\n",
				i+1, m.Relation.From, m.Relation.To, m.Relation.RelationType)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}
