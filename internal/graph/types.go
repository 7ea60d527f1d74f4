package graph

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entity is a named, typed node carrying an append-only list of free-text
// observations. Names are unique within the graph; re-creating a name
// replaces the entity wholesale.
type Entity struct {
	Name         string   `json:"name"`
	EntityType   string   `json:"entityType"`
	Observations []string `json:"observations"`
	CreatedAt    string   `json:"createdAt"`
}

// clone returns a deep copy so callers can't mutate store state.
func (e *Entity) clone() *Entity {
	c := *e
	c.Observations = append([]string{}, e.Observations...)
	return &c
}

// Relation is a directed, typed edge between two entity names. The names are
// not checked against the entity set — dangling references are allowed.
type Relation struct {
	From         string `json:"from"`
	To           string `json:"to"`
	RelationType string `json:"relationType"`
	CreatedAt    string `json:"createdAt"`
}

// Graph is the root aggregate: every entity and relation, fully resident in
// memory. The persisted snapshot is this struct, pretty-printed.
type Graph struct {
	// Entities preserves insertion order so snapshots round-trip with stable
	// key order; overwriting a name keeps its original position.
	Entities  *orderedmap.OrderedMap[string, *Entity] `json:"entities"`
	Relations []Relation                              `json:"relations"`

	// Observations is a reserved field in the snapshot shape. No operation
	// reads or writes it; it is carried so existing files round-trip intact.
	Observations map[string][]string `json:"observations"`
}

// NewGraph returns an empty graph with every container initialized, so an
// empty snapshot serializes as {"entities":{},"relations":[],"observations":{}}.
func NewGraph() *Graph {
	return &Graph{
		Entities:     orderedmap.New[string, *Entity](),
		Relations:    []Relation{},
		Observations: map[string][]string{},
	}
}

// normalize re-initializes containers a hand-edited or partial snapshot may
// have left nil, keeping the on-disk shape stable on the next save. Record
// contents are deliberately left untouched — loads accept parsed data as-is.
func (g *Graph) normalize() {
	if g.Entities == nil {
		g.Entities = orderedmap.New[string, *Entity]()
	}
	if g.Relations == nil {
		g.Relations = []Relation{}
	}
	if g.Observations == nil {
		g.Observations = map[string][]string{}
	}
	for pair := g.Entities.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value != nil && pair.Value.Observations == nil {
			pair.Value.Observations = []string{}
		}
	}
}

// clone deep-copies the graph, preserving entity order.
func (g *Graph) clone() *Graph {
	c := NewGraph()
	for pair := g.Entities.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			c.Entities.Set(pair.Key, nil)
			continue
		}
		c.Entities.Set(pair.Key, pair.Value.clone())
	}
	c.Relations = append(c.Relations, g.Relations...)
	for name, obs := range g.Observations {
		c.Observations[name] = append([]string{}, obs...)
	}
	return c
}

// EntityInput is one entry in a create_entities batch.
type EntityInput struct {
	Name         string   `json:"name"`
	EntityType   string   `json:"entityType"`
	Observations []string `json:"observations"`
}

// RelationInput is one entry in a create_relations batch.
type RelationInput struct {
	From         string `json:"from"`
	To           string `json:"to"`
	RelationType string `json:"relationType"`
}

// ObservationInput is one entry in an add_observations batch: a target
// entity plus the observation strings to append to it.
type ObservationInput struct {
	EntityName string   `json:"entityName"`
	Contents   []string `json:"contents"`
}

// MatchKind tags a search hit as an entity or a relation.
type MatchKind string

// Match kinds.
const (
	KindEntity   MatchKind = "entity"
	KindRelation MatchKind = "relation"
)

// Match is a single search_nodes hit carrying its full record.
type Match struct {
	Kind     MatchKind `json:"kind"`
	Entity   *Entity   `json:"entity,omitempty"`
	Relation *Relation `json:"relation,omitempty"`
}

// SearchOptions controls search breadth.
type SearchOptions struct {
	// IncludeRelations extends matching to relation from/to/relationType
	// fields. The reduced deployment profile runs entity-only search.
	IncludeRelations bool
}

// Stats summarizes graph size for read_graph.
type Stats struct {
	Entities          int `json:"entities"`
	Relations         int `json:"relations"`
	TotalObservations int `json:"totalObservations"`
}

// Snapshot is the read_graph result: stats plus a full copy of the graph.
type Snapshot struct {
	Stats Stats  `json:"stats"`
	Graph *Graph `json:"graph"`
}
