// Package world provides the immutable world-state data model: entities,
// directed value-flow relationships, and the global economy record.
package world

import (
	"fmt"
	"regexp"
)

// idPattern constrains entity identifiers: lowercase, digits, - and _,
// starting with a letter.
var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Kind classifies an entity's position in the relations of production.
type Kind uint8

const (
	KindWorker Kind = iota
	KindOwner
	KindState
	KindColony
	KindPeasant
)

var kindNames = [...]string{"worker", "owner", "state", "colony", "peasant"}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// KindFromString parses a kind name as it appears in scenario files.
func KindFromString(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind %q", s)
}

// Entity is a node in the world graph. Entities are value types: a copy is
// a safe read-only view, and systems mutate them only through the working
// graph during a tick.
type Entity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`

	// Material position.
	Wealth    float64 `json:"wealth"`    // Accumulated value, >= 0
	Territory float64 `json:"territory"` // Territorial control, 0..1

	// Collective capacities.
	Organization  float64 `json:"organization"`  // Capacity for collective action, 0..1
	Consciousness float64 `json:"consciousness"` // Awareness of class position, 0..1

	// Biological viability.
	Survival float64 `json:"survival"` // Survival probability, 0..1

	// Active is cleared on death. Dead entities are never removed (history
	// must stay replayable); every system skips them.
	Active bool `json:"active"`
}

// Validate checks the entity's invariants.
func (e Entity) Validate() error {
	if !idPattern.MatchString(e.ID) {
		return &ValidationError{Field: "id", Msg: fmt.Sprintf("invalid entity id %q", e.ID)}
	}
	if e.Wealth < 0 {
		return &ValidationError{Field: "wealth", Msg: fmt.Sprintf("entity %s: wealth %g is negative", e.ID, e.Wealth)}
	}
	for _, f := range []struct {
		name string
		val  float64
	}{
		{"territory", e.Territory},
		{"organization", e.Organization},
		{"consciousness", e.Consciousness},
		{"survival", e.Survival},
	} {
		if f.val < 0 || f.val > 1 {
			return &ValidationError{Field: f.name, Msg: fmt.Sprintf("entity %s: %s %g outside [0,1]", e.ID, f.name, f.val)}
		}
	}
	return nil
}
