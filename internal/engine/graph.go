// Package engine provides the tick pipeline: the mutable working graph,
// the ordered system list, and the simulation facade that commits one
// immutable snapshot per tick.
package engine

import (
	"fmt"

	"histmat/internal/world"
)

// Graph is the mutable working representation of the world during a single
// tick: an entity arena with a stable id index plus an ordered relationship
// list. It is exclusively owned by the executor for the duration of a
// step; systems mutate it through pointers into the arena and convert back
// to an immutable snapshot only at the tick boundary.
type Graph struct {
	tick          uint64
	entities      []world.Entity
	index         map[string]int
	relationships []world.Relationship
	economy       world.Economy
	log           []string

	// produced accumulates value created this tick, consumed by the
	// metabolism system for ecological accounting. Reset per tick by
	// construction.
	produced float64
}

// NewGraph builds a working graph from a committed snapshot.
func NewGraph(s *world.State) *Graph {
	entities := s.Entities()
	index := make(map[string]int, len(entities))
	for i, e := range entities {
		index[e.ID] = i
	}
	return &Graph{
		tick:          s.Tick(),
		entities:      entities,
		index:         index,
		relationships: s.Relationships(),
		economy:       s.Economy(),
		log:           s.Log(),
	}
}

// Tick returns the tick of the snapshot this graph was built from.
func (g *Graph) Tick() uint64 { return g.tick }

// Entity returns a mutable pointer into the arena. The pointer stays valid
// for the whole tick; entities are never added or removed mid-run.
func (g *Graph) Entity(id string) (*world.Entity, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return &g.entities[i], true
}

// Each visits every entity in arena order, the only iteration order
// systems may use (map iteration would break determinism).
func (g *Graph) Each(fn func(*world.Entity)) {
	for i := range g.entities {
		fn(&g.entities[i])
	}
}

// EachActive visits living entities in arena order.
func (g *Graph) EachActive(fn func(*world.Entity)) {
	for i := range g.entities {
		if g.entities[i].Active {
			fn(&g.entities[i])
		}
	}
}

// EachRelationship visits every edge in list order.
func (g *Graph) EachRelationship(fn func(*world.Relationship)) {
	for i := range g.relationships {
		fn(&g.relationships[i])
	}
}

// AddRelationship appends a new edge (e.g. a freshly formed alliance).
// Edge pointers obtained earlier this tick are invalidated.
func (g *Graph) AddRelationship(r world.Relationship) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, ok := g.index[r.SourceID]; !ok {
		return fmt.Errorf("add relationship: unknown entity %q", r.SourceID)
	}
	if _, ok := g.index[r.TargetID]; !ok {
		return fmt.Errorf("add relationship: unknown entity %q", r.TargetID)
	}
	g.relationships = append(g.relationships, r)
	return nil
}

// Economy returns the mutable global economy record.
func (g *Graph) Economy() *world.Economy { return &g.economy }

// AddProduced records value created this tick.
func (g *Graph) AddProduced(v float64) { g.produced += v }

// Produced returns the value created so far this tick.
func (g *Graph) Produced() float64 { return g.produced }

// Logf appends a narrative log line.
func (g *Graph) Logf(format string, args ...any) {
	g.log = append(g.log, fmt.Sprintf(format, args...))
}

// Commit validates the working graph and freezes it into the snapshot for
// the given tick. A validation failure aborts the tick; no partial state
// escapes the executor.
func (g *Graph) Commit(tick uint64) (*world.State, error) {
	return world.New(tick, g.entities, g.relationships, g.economy, g.log)
}

// clamp01 bounds a scalar to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
