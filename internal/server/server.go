// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the tool, prompt, and resource
// handlers and registers the set selected by the deployment profile.
// No business logic lives here — only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/graphmem/graphmem/internal/config"
	"github.com/graphmem/graphmem/internal/graph"
	"github.com/graphmem/graphmem/internal/graphtools"
	"github.com/graphmem/graphmem/internal/prompts"
	"github.com/graphmem/graphmem/internal/resources"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server against the given store.
//
// Every profile carries entity creation, search, and graph reads. The
// full profile adds relation and observation tools, the graph resource,
// and the usage prompt; its search also matches relations. The reduced
// profile is the same store behind a smaller surface.
func New(cfg config.Config, store *graph.Store) *server.MCPServer {
	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions(cfg.Profile)),
	}
	if cfg.Profile == config.ProfileFull {
		opts = append(opts,
			server.WithResourceCapabilities(false, true),
			server.WithPromptCapabilities(true),
		)
	}

	s := server.NewMCPServer("graphmem", Version, opts...)

	// --- Tools available in every profile ---

	createEntities := graphtools.NewCreateEntitiesTool(store)
	s.AddTool(createEntities.Definition(), createEntities.Handle)

	searchTool := graphtools.NewSearchTool(store, cfg.Profile.SearchIncludesRelations())
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	readTool := graphtools.NewReadGraphTool(store)
	s.AddTool(readTool.Definition(), readTool.Handle)

	if cfg.Profile != config.ProfileFull {
		return s
	}

	// --- Full profile: relation and observation tools ---

	createRelations := graphtools.NewCreateRelationsTool(store)
	s.AddTool(createRelations.Definition(), createRelations.Handle)

	addObservations := graphtools.NewAddObservationsTool(store)
	s.AddTool(addObservations.Definition(), addObservations.Handle)

	// --- Register prompts ---

	usagePrompt := prompts.NewUsagePrompt()
	s.AddPrompt(usagePrompt.Definition(), usagePrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store)
	s.AddResource(resourceHandler.GraphResource(), resourceHandler.HandleGraph)

	return s
}

// serverInstructions returns the instruction block hosts receive on
// initialize, describing the tool set the profile actually exposes.
func serverInstructions(p config.Profile) string {
	if p == config.ProfileReduced {
		return `# graphmem — Knowledge Graph Memory (reduced)

Persistent memory backed by a local knowledge graph. This deployment
exposes entities only.

## Workflow

1. **Recall first**: call search_nodes with the user's name and topic
   keywords before answering anything that may have prior context.
   Searches are case-insensitive substring matches over entity names,
   types, and observations.
2. **Capture as you go**: when the conversation surfaces a new person,
   organization, project, or event, record it with create_entities.
   Keep each observation to a single atomic fact.
3. **Read sparingly**: read_graph returns the whole graph. Use it for
   orientation, not routine lookups.

## Rules

- Entity names are identifiers. Re-creating an existing name replaces
  the old entity wholesale, observations included.
- Writes are persisted immediately; nothing extra to flush.`
	}

	return `# graphmem — Knowledge Graph Memory

Persistent memory backed by a local knowledge graph. Entities carry
observations; relations connect entities in active voice.

## Workflow

1. **Recall first**: call search_nodes with the user's name and topic
   keywords before answering anything that may have prior context.
   Searches are case-insensitive substring matches over entity names,
   types, observations, and relation endpoints.
2. **Capture as you go**: when the conversation surfaces a new person,
   organization, project, or event, record it with create_entities and
   connect it to what you already know with create_relations (active
   voice, e.g. "works_at", "maintains").
3. **Attach facts**: add_observations appends atomic facts to entities
   that already exist. Prefer it over re-creating an entity — creation
   replaces the entity wholesale, observations included.
4. **Read sparingly**: read_graph returns the whole graph. Use it for
   orientation, not routine lookups. The same snapshot is available as
   the memory://graph resource.

## Rules

- Entity names are identifiers; pick stable, specific names.
- Relations may point at entities that do not exist yet. That is fine —
  create the endpoints when they become concrete.
- add_observations never creates entities. Entries naming unknown
  entities are skipped, so create the entity first.
- Writes are persisted immediately; nothing extra to flush.`
}
