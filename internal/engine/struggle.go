package engine

import (
	"histmat/internal/event"
	"histmat/internal/services"
	"histmat/internal/world"
)

// struggleSystem is the agency step: a target that is sufficiently
// organized and conscious contests the edges extracting from it, shrinking
// their nominal flow. The edge survives at reduced flow — severance is
// zero flow, never deletion.
type struggleSystem struct{}

func (struggleSystem) Name() string { return "struggle" }

func (struggleSystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	c := svc.Coefficients

	g.EachRelationship(func(r *world.Relationship) {
		if !r.Kind.Extractive() || r.ValueFlow <= 0 {
			return
		}
		tgt, ok := g.Entity(r.TargetID)
		if !ok || !tgt.Active {
			return
		}
		if tgt.Organization < c.StruggleOrganization || tgt.Consciousness < c.StruggleConsciousness {
			return
		}

		reclaimed := r.ValueFlow * c.ReclaimRate
		r.ValueFlow -= reclaimed

		svc.Bus.Publish(event.New(event.TypeReclaimed, tc.Tick, event.Payload{
			"source":    r.SourceID,
			"target":    r.TargetID,
			"reclaimed": reclaimed,
			"flow":      r.ValueFlow,
		}))
		g.Logf("%s pushed back: flow from %s reduced to %.4f", tgt.Name, r.SourceID, r.ValueFlow)
	})
	return nil
}
