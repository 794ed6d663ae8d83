package world

import "fmt"

// MaxLogLines caps the narrative log carried by a snapshot. Older lines are
// dropped first, mirroring the bounded event ring in the engine.
const MaxLogLines = 1000

// State is the immutable snapshot of the world at one tick: every entity,
// every relationship, the global economy, and the narrative log. A State is
// never mutated after construction; every committed tick produces a new
// value. All accessors return copies, so retaining a *State is always safe.
type State struct {
	tick          uint64
	entities      []Entity // arena order: insertion order, stable across ticks
	index         map[string]int
	relationships []Relationship
	economy       Economy
	log           []string
}

// New validates and constructs a snapshot. It fails with a
// *ValidationError on duplicate or malformed ids, dangling relationship
// references, self-loops, or out-of-range fields.
func New(tick uint64, entities []Entity, relationships []Relationship, economy Economy, log []string) (*State, error) {
	index := make(map[string]int, len(entities))
	ents := make([]Entity, len(entities))
	for i, e := range entities {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, dup := index[e.ID]; dup {
			return nil, &ValidationError{Field: "id", Msg: fmt.Sprintf("duplicate entity id %q", e.ID)}
		}
		index[e.ID] = i
		ents[i] = e
	}

	rels := make([]Relationship, len(relationships))
	for i, r := range relationships {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, ok := index[r.SourceID]; !ok {
			return nil, &ValidationError{Field: "source_id", Msg: fmt.Sprintf("relationship references unknown entity %q", r.SourceID)}
		}
		if _, ok := index[r.TargetID]; !ok {
			return nil, &ValidationError{Field: "target_id", Msg: fmt.Sprintf("relationship references unknown entity %q", r.TargetID)}
		}
		rels[i] = r
	}

	if err := economy.Validate(); err != nil {
		return nil, err
	}

	if len(log) > MaxLogLines {
		log = log[len(log)-MaxLogLines:]
	}
	lines := make([]string, len(log))
	copy(lines, log)

	return &State{
		tick:          tick,
		entities:      ents,
		index:         index,
		relationships: rels,
		economy:       economy,
		log:           lines,
	}, nil
}

// Tick returns the tick this snapshot was committed at.
func (s *State) Tick() uint64 { return s.tick }

// Entity returns a copy of the entity with the given id.
func (s *State) Entity(id string) (Entity, bool) {
	i, ok := s.index[id]
	if !ok {
		return Entity{}, false
	}
	return s.entities[i], true
}

// Entities returns copies of all entities in arena order.
func (s *State) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Relationships returns a copy of the ordered relationship list.
func (s *State) Relationships() []Relationship {
	out := make([]Relationship, len(s.relationships))
	copy(out, s.relationships)
	return out
}

// Economy returns the global economy record.
func (s *State) Economy() Economy { return s.economy }

// Log returns a copy of the ordered narrative log.
func (s *State) Log() []string {
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// ActiveCount returns the number of living entities.
func (s *State) ActiveCount() int {
	n := 0
	for _, e := range s.entities {
		if e.Active {
			n++
		}
	}
	return n
}

// TotalWealth sums wealth across living entities.
func (s *State) TotalWealth() float64 {
	total := 0.0
	for _, e := range s.entities {
		if e.Active {
			total += e.Wealth
		}
	}
	return total
}

// MeanTension averages tension over relationships with positive flow.
// Returns 0 when no relationship carries value.
func (s *State) MeanTension() float64 {
	total, n := 0.0, 0
	for _, r := range s.relationships {
		if r.ValueFlow > 0 {
			total += r.Tension
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// Equal reports structural equality: same tick, entities, relationships,
// economy, and log. Used for deterministic replay comparison.
func (s *State) Equal(o *State) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.tick != o.tick ||
		len(s.entities) != len(o.entities) ||
		len(s.relationships) != len(o.relationships) ||
		len(s.log) != len(o.log) ||
		s.economy != o.economy {
		return false
	}
	for i := range s.entities {
		if s.entities[i] != o.entities[i] {
			return false
		}
	}
	for i := range s.relationships {
		if s.relationships[i] != o.relationships[i] {
			return false
		}
	}
	for i := range s.log {
		if s.log[i] != o.log[i] {
			return false
		}
	}
	return true
}
