package engine

import (
	"histmat/internal/event"
	"histmat/internal/formula"
	"histmat/internal/services"
	"histmat/internal/world"
)

// controlSystem runs the control-ratio/terminal check: repression relaxes
// a little each tick, and if any entity's organization exceeds what the
// current order can absorb, the tick records a rupture.
type controlSystem struct{}

func (controlSystem) Name() string { return "control" }

func (controlSystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	capacityFn, err := requireFormula(svc, formula.ControlCapacity)
	if err != nil {
		return err
	}

	c := svc.Coefficients
	eco := g.Economy()
	eco.RepressionLevel = clamp01(eco.RepressionLevel - c.RepressionDecay)

	capacity := capacityFn(c.ControlBase, eco.RepressionLevel)

	g.EachActive(func(e *world.Entity) {
		if e.Kind == world.KindOwner || e.Kind == world.KindState {
			return
		}
		if e.Organization <= capacity {
			return
		}
		eco.RepressionLevel = clamp01(eco.RepressionLevel + c.RepressionStep)
		svc.Bus.Publish(event.New(event.TypeRupture, tc.Tick, event.Payload{
			"entity":       e.ID,
			"organization": e.Organization,
			"capacity":     capacity,
		}))
		g.Logf("rupture: %s organized beyond control capacity (%.3f > %.3f)", e.Name, e.Organization, capacity)
	})
	return nil
}
