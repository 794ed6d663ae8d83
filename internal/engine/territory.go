package engine

import (
	"histmat/internal/services"
	"histmat/internal/world"
)

// territorySystem resolves spatial/territorial conditions: tribute and
// extraction inflows consolidate the extractor's territorial control,
// while unreinforced control erodes.
type territorySystem struct{}

func (territorySystem) Name() string { return "territory" }

func (territorySystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	c := svc.Coefficients

	// Consolidation from active extractive edges.
	g.EachRelationship(func(r *world.Relationship) {
		if !r.Kind.Extractive() || r.ValueFlow <= 0 {
			return
		}
		src, ok := g.Entity(r.SourceID)
		if !ok || !src.Active {
			return
		}
		tgt, ok := g.Entity(r.TargetID)
		if !ok || !tgt.Active {
			return
		}
		src.Territory = clamp01(src.Territory + c.TerritoryGain*r.ValueFlow)
	})

	// Erosion everywhere.
	g.EachActive(func(e *world.Entity) {
		e.Territory = clamp01(e.Territory - c.TerritoryDecay)
	})
	return nil
}
