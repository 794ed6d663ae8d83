package engine

import (
	"histmat/internal/event"
	"histmat/internal/formula"
	"histmat/internal/services"
	"histmat/internal/world"
)

// productionSystem creates value. Producing kinds (workers, peasants,
// colonies) generate value through labor; the wage rate decides how much
// of it they retain, the rest stands ready for extraction.
type productionSystem struct{}

func (productionSystem) Name() string { return "production" }

func producing(k world.Kind) bool {
	return k == world.KindWorker || k == world.KindPeasant || k == world.KindColony
}

func (productionSystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	laborValue, err := requireFormula(svc, formula.LaborValue)
	if err != nil {
		return err
	}

	c := svc.Coefficients
	wageRate := g.Economy().WageRate

	total := 0.0
	g.EachActive(func(e *world.Entity) {
		if !producing(e.Kind) {
			return
		}
		value := laborValue(c.ProductivityBase, e.Organization, e.Territory)
		if value <= 0 {
			return
		}
		e.Wealth += value * wageRate
		total += value
	})

	if total > 0 {
		g.AddProduced(total)
		svc.Bus.Publish(event.New(event.TypeProduction, tc.Tick, event.Payload{
			"value":      total,
			"wage_share": wageRate,
		}))
	}
	return nil
}
