package engine

import (
	"histmat/internal/event"
	"histmat/internal/services"
	"histmat/internal/world"
)

// mortalitySystem runs the biological viability check: an entity whose
// survival probability has collapsed below the death threshold dies.
// Death is a flag, never removal — history stays replayable and the dead
// are skipped by every later system.
type mortalitySystem struct{}

func (mortalitySystem) Name() string { return "mortality" }

func (mortalitySystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	c := svc.Coefficients
	g.EachActive(func(e *world.Entity) {
		if e.Survival >= c.DeathThreshold {
			return
		}
		e.Active = false
		svc.Bus.Publish(event.New(event.TypeEntityDied, tc.Tick, event.Payload{
			"entity":   e.ID,
			"survival": e.Survival,
			"wealth":   e.Wealth,
		}))
		g.Logf("%s has perished (survival %.3f)", e.Name, e.Survival)
	})
	return nil
}
