package engine

import (
	"histmat/internal/event"
	"histmat/internal/services"
	"histmat/internal/world"
)

// decompositionSystem runs the class-decomposition/crisis check: when the
// owning kinds concentrate almost all wealth, the producing classes can no
// longer reproduce themselves. The order answers with repression.
type decompositionSystem struct{}

func (decompositionSystem) Name() string { return "decomposition" }

func (decompositionSystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	c := svc.Coefficients

	total, owning := 0.0, 0.0
	g.EachActive(func(e *world.Entity) {
		total += e.Wealth
		if e.Kind == world.KindOwner || e.Kind == world.KindState {
			owning += e.Wealth
		}
	})
	if total <= 0 {
		return nil
	}

	share := owning / total
	if share <= c.ConcentrationLimit {
		return nil
	}

	eco := g.Economy()
	eco.RepressionLevel = clamp01(eco.RepressionLevel + c.RepressionStep)

	svc.Bus.Publish(event.New(event.TypeCrisis, tc.Tick, event.Payload{
		"cause":        "decomposition",
		"wealth_share": share,
	}))
	svc.Bus.Publish(event.New(event.TypeRepression, tc.Tick, event.Payload{
		"level": eco.RepressionLevel,
	}))
	g.Logf("decomposition crisis: owning classes hold %.1f%% of wealth", share*100)
	return nil
}
