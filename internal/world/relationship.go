package world

import "fmt"

// RelationKind types a directed edge between two entities.
//
// For extraction and tribute edges the source is the extractor: value flows
// target -> source. For solidarity and subsidy edges support flows
// source -> target.
type RelationKind uint8

const (
	RelationExtraction RelationKind = iota
	RelationSolidarity
	RelationTribute
	RelationSubsidy
)

var relationNames = [...]string{"extraction", "solidarity", "tribute", "subsidy"}

// String returns the lowercase name of the relation kind.
func (k RelationKind) String() string {
	if int(k) < len(relationNames) {
		return relationNames[k]
	}
	return fmt.Sprintf("relation(%d)", uint8(k))
}

// RelationKindFromString parses a relation kind name from scenario files.
func RelationKindFromString(s string) (RelationKind, error) {
	for i, name := range relationNames {
		if name == s {
			return RelationKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown relation kind %q", s)
}

// Extractive reports whether value flows target -> source along this kind.
func (k RelationKind) Extractive() bool {
	return k == RelationExtraction || k == RelationTribute
}

// Relationship is a directed edge between two distinct entities. Edges are
// never deleted within a run: a severed relationship is represented by zero
// flow so successive snapshots stay diffable.
type Relationship struct {
	SourceID    string       `json:"source_id"`
	TargetID    string       `json:"target_id"`
	Kind        RelationKind `json:"kind"`
	ValueFlow   float64      `json:"value_flow"` // Nominal per-tick flow, >= 0
	Tension     float64      `json:"tension"`    // Accumulated contradiction, 0..1
	Description string       `json:"description,omitempty"`
}

// Validate checks the relationship's invariants. Entity existence is
// checked by the State constructor, which owns the id index.
func (r Relationship) Validate() error {
	if r.SourceID == r.TargetID {
		return &ValidationError{Field: "target_id", Msg: fmt.Sprintf("self-loop on %q", r.SourceID)}
	}
	if r.ValueFlow < 0 {
		return &ValidationError{Field: "value_flow", Msg: fmt.Sprintf("%s->%s: value flow %g is negative", r.SourceID, r.TargetID, r.ValueFlow)}
	}
	if r.Tension < 0 || r.Tension > 1 {
		return &ValidationError{Field: "tension", Msg: fmt.Sprintf("%s->%s: tension %g outside [0,1]", r.SourceID, r.TargetID, r.Tension)}
	}
	return nil
}
