// Package graph implements the persistent knowledge graph behind graphmem.
//
// The whole graph lives in memory and is mirrored to a single pretty-printed
// JSON snapshot file after every mutation — there is no incremental
// persistence and no indexing; search is a linear scan. Loading falls back to
// an empty graph on any failure, so a corrupt or missing snapshot never
// prevents startup.
package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds graph store configuration.
type Config struct {
	// Path locates the JSON snapshot file.
	Path string
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{Path: "memory.json"}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store owns the in-memory graph and mirrors it to the snapshot file.
//
// One mutex serializes mutations the way the original single-threaded
// dispatch did: a mutation and its snapshot write complete before the next
// mutation begins. Reads share an RLock. The snapshot file must not be
// shared between processes.
type Store struct {
	mu    sync.RWMutex
	graph *Graph
	cfg   Config
	log   *zap.Logger
}

// New creates a Store and loads the snapshot at cfg.Path. Any load failure
// (missing file, invalid JSON, I/O error) is logged and replaced by an empty
// graph, which is immediately persisted so a fresh deployment produces a
// valid file. The returned error covers unrecoverable setup only.
func New(cfg Config, log *zap.Logger) (*Store, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}
	if log == nil {
		log = zap.NewNop()
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("graph: create snapshot dir: %w", err)
		}
	}

	s := &Store{graph: NewGraph(), cfg: cfg, log: log}
	s.mu.Lock()
	s.load()
	s.mu.Unlock()
	return s, nil
}

// ─── Persistence ─────────────────────────────────────────────────────────────

// load reads the snapshot into memory. Parsed content is accepted verbatim —
// no schema validation beyond what decoding into the Graph shape implies.
// Every failure path ends with an empty graph, both in memory and on disk.
// Callers must hold mu.
func (s *Store) load() {
	data, err := os.ReadFile(s.cfg.Path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info("no snapshot found, starting empty", zap.String("path", s.cfg.Path))
		} else {
			s.log.Warn("reading snapshot failed, starting empty",
				zap.String("path", s.cfg.Path), zap.Error(err))
		}
		s.graph = NewGraph()
		s.save()
		return
	}

	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		s.log.Warn("parsing snapshot failed, starting empty",
			zap.String("path", s.cfg.Path), zap.Error(err))
		s.graph = NewGraph()
		s.save()
		return
	}

	g.normalize()
	s.graph = &g
	s.log.Info("snapshot loaded",
		zap.String("path", s.cfg.Path),
		zap.Int("entities", g.Entities.Len()),
		zap.Int("relations", len(g.Relations)))
}

// save rewrites the snapshot file with the full graph, pretty-printed.
// Failures are logged and swallowed: a persistence error never rolls back or
// fails the in-memory mutation that preceded it. Callers must hold mu.
func (s *Store) save() {
	data, err := json.MarshalIndent(s.graph, "", "  ")
	if err != nil {
		s.log.Error("marshaling snapshot failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.cfg.Path, data, 0o644); err != nil {
		s.log.Error("writing snapshot failed",
			zap.String("path", s.cfg.Path), zap.Error(err))
	}
}

// ─── Mutations ───────────────────────────────────────────────────────────────

// CreateEntities upserts a batch in input order. An existing name is fully
// replaced — its prior observations and createdAt are discarded — but keeps
// its position in the entity map, so snapshots stay stably ordered. Saves
// once after the batch. Returns the number of entries processed, overwrites
// included.
func (s *Store) CreateEntities(inputs []EntityInput) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, in := range inputs {
		obs := []string{}
		if in.Observations != nil {
			obs = append(obs, in.Observations...)
		}
		s.graph.Entities.Set(in.Name, &Entity{
			Name:         in.Name,
			EntityType:   in.EntityType,
			Observations: obs,
			CreatedAt:    stamp(),
		})
	}
	s.save()
	return len(inputs)
}

// CreateRelations appends a batch in input order, stamping each relation
// with its creation time. The from/to names are not required to reference
// existing entities. Saves once after the batch. Returns the number appended.
func (s *Store) CreateRelations(inputs []RelationInput) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, in := range inputs {
		s.graph.Relations = append(s.graph.Relations, Relation{
			From:         in.From,
			To:           in.To,
			RelationType: in.RelationType,
			CreatedAt:    stamp(),
		})
	}
	s.save()
	return len(inputs)
}

// AddObservations appends observation strings to existing entities, in input
// order, duplicates allowed. Entries naming an unknown entity are skipped
// silently — no error and no entity creation. Saves once after the batch.
// The returned count is the number of input entries, skipped ones included.
func (s *Store) AddObservations(inputs []ObservationInput) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, in := range inputs {
		ent, ok := s.graph.Entities.Get(in.EntityName)
		if !ok || ent == nil {
			continue
		}
		ent.Observations = append(ent.Observations, in.Contents...)
	}
	s.save()
	return len(inputs)
}

// ─── Queries ─────────────────────────────────────────────────────────────────

// SearchNodes runs a case-insensitive substring scan over the graph — no
// tokenization, no ranking. An entity matches on its name, type, or any
// observation; with opts.IncludeRelations a relation matches on from, to, or
// relationType. Results follow graph iteration order — entities in insertion
// order, then relations in append order — and carry copies of the matched
// records.
func (s *Store) SearchNodes(query string, opts SearchOptions) []Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	matches := []Match{}

	for pair := s.graph.Entities.Oldest(); pair != nil; pair = pair.Next() {
		ent := pair.Value
		if ent == nil {
			continue
		}
		if entityMatches(ent, q) {
			matches = append(matches, Match{Kind: KindEntity, Entity: ent.clone()})
		}
	}

	if opts.IncludeRelations {
		for i := range s.graph.Relations {
			rel := s.graph.Relations[i]
			if relationMatches(&rel, q) {
				matches = append(matches, Match{Kind: KindRelation, Relation: &rel})
			}
		}
	}

	return matches
}

func entityMatches(e *Entity, q string) bool {
	if strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.EntityType), q) {
		return true
	}
	for _, obs := range e.Observations {
		if strings.Contains(strings.ToLower(obs), q) {
			return true
		}
	}
	return false
}

func relationMatches(r *Relation, q string) bool {
	return strings.Contains(strings.ToLower(r.From), q) ||
		strings.Contains(strings.ToLower(r.To), q) ||
		strings.Contains(strings.ToLower(r.RelationType), q)
}

// ReadGraph returns counts plus a deep copy of the whole graph. The copy
// keeps entity order, so serializing it reproduces the snapshot file.
func (s *Store) ReadGraph() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Entities:  s.graph.Entities.Len(),
		Relations: len(s.graph.Relations),
	}
	for pair := s.graph.Entities.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value != nil {
			stats.TotalObservations += len(pair.Value.Observations)
		}
	}
	return Snapshot{Stats: stats, Graph: s.graph.clone()}
}
