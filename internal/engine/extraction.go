package engine

import (
	"histmat/internal/event"
	"histmat/internal/formula"
	"histmat/internal/services"
	"histmat/internal/world"
)

// extractionSystem moves value along extractive edges: for each extraction
// or tribute relationship the rent formula decides the per-tick take,
// bounded by what the target actually holds. A target with nothing left is
// an expected condition, signaled by the absence of an extraction event,
// never by an error.
type extractionSystem struct{}

func (extractionSystem) Name() string { return "extraction" }

func (extractionSystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	rent, err := requireFormula(svc, formula.ImperialRent)
	if err != nil {
		return err
	}

	c := svc.Coefficients
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

		take := rent(c.Alpha, r.ValueFlow, tgt.Consciousness)
		if take > tgt.Wealth {
			take = tgt.Wealth
		}
		if take <= 0 {
			return
		}

		tgt.Wealth -= take
		src.Wealth += take
		g.Economy().AccumulatedRent += take

		svc.Bus.Publish(event.New(event.TypeExtraction, tc.Tick, event.Payload{
			"source": r.SourceID,
			"target": r.TargetID,
			"kind":   r.Kind.String(),
			"amount": take,
		}))
	})
	return nil
}
