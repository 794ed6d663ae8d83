package engine

import (
	"histmat/internal/formula"
	"histmat/internal/services"
	"histmat/internal/world"
)

// survivalSystem reassesses each entity's survival probability against the
// subsistence floor. The drift is applied here; the mortality system at
// the head of the next tick decides whether it was fatal.
type survivalSystem struct{}

func (survivalSystem) Name() string { return "survival" }

func (survivalSystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	drift, err := requireFormula(svc, formula.SurvivalDrift)
	if err != nil {
		return err
	}

	c := svc.Coefficients
	g.EachActive(func(e *world.Entity) {
		delta := drift(e.Wealth, c.SubsistenceFloor, c.SurvivalDecay, c.SurvivalRecovery)
		e.Survival = clamp01(e.Survival + delta)
	})
	return nil
}
