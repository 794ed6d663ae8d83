package engine

import (
	"histmat/internal/services"
	"histmat/internal/world"
)

// metabolismSystem charges the environmental cost of existing and of this
// tick's production. Upkeep never drives wealth negative; running out is a
// viability problem handled by the survival and mortality systems.
type metabolismSystem struct{}

func (metabolismSystem) Name() string { return "metabolism" }

func (metabolismSystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	c := svc.Coefficients

	g.EachActive(func(e *world.Entity) {
		e.Wealth -= c.MetabolicCost
		if e.Wealth < 0 {
			e.Wealth = 0
		}
	})

	g.Economy().EcologicalDebt += c.EcologyPerValue * g.Produced()
	return nil
}
