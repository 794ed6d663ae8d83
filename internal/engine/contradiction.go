package engine

import (
	"histmat/internal/event"
	"histmat/internal/formula"
	"histmat/internal/services"
	"histmat/internal/world"
)

// contradictionSystem accumulates tension on edges that carried extraction
// this tick. Solidarity flowing toward the extracted party relieves part
// of the gain. When mean tension across value-bearing edges passes the
// crisis threshold, the tick records a systemic crisis.
type contradictionSystem struct{}

func (contradictionSystem) Name() string { return "contradiction" }

// solidarityInflow sums solidarity/subsidy flows arriving at an entity.
func solidarityInflow(g *Graph, id string) float64 {
	total := 0.0
	g.EachRelationship(func(r *world.Relationship) {
		if r.Kind.Extractive() || r.TargetID != id {
			return
		}
		src, ok := g.Entity(r.SourceID)
		if !ok || !src.Active {
			return
		}
		total += r.ValueFlow
	})
	return total
}

func (contradictionSystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	gainFn, err := requireFormula(svc, formula.TensionGain)
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

		relief := c.SolidarityRelief * solidarityInflow(g, tgt.ID)
		if relief > 1 {
			relief = 1
		}
		r.Tension = clamp01(r.Tension + gainFn(c.TensionGain, relief))
	})

	// Systemic crisis check over the committed-to-be tension field.
	total, n := 0.0, 0
	g.EachRelationship(func(r *world.Relationship) {
		if r.ValueFlow > 0 {
			total += r.Tension
			n++
		}
	})
	if n > 0 && total/float64(n) > c.CrisisTension {
		svc.Bus.Publish(event.New(event.TypeCrisis, tc.Tick, event.Payload{
			"cause":        "contradiction",
			"mean_tension": total / float64(n),
		}))
		g.Logf("systemic crisis: mean tension %.3f", total/float64(n))
	}
	return nil
}
