package engine

import (
	"histmat/internal/formula"
	"histmat/internal/services"
	"histmat/internal/world"
)

// ideologySystem drifts consciousness. Lived tension and organization pull
// toward awareness of one's class position; repression pulls back toward
// the ruling ideology. Owning kinds are carriers of that ideology, not
// subjects of the drift.
type ideologySystem struct{}

func (ideologySystem) Name() string { return "ideology" }

func (ideologySystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	drift, err := requireFormula(svc, formula.ConsciousnessDrift)
	if err != nil {
		return err
	}

	c := svc.Coefficients
	repression := g.Economy().RepressionLevel

	g.EachActive(func(e *world.Entity) {
		if e.Kind == world.KindOwner || e.Kind == world.KindState {
			return
		}
		tension := maxInboundTension(g, e.ID)
		delta := drift(tension, e.Organization, repression, c.ConsciousnessGain, c.ConsciousnessRepression)
		e.Consciousness = clamp01(e.Consciousness + delta)
	})
	return nil
}
