package engine

import (
	"histmat/internal/event"
	"histmat/internal/services"
	"histmat/internal/world"
)

// organizationSystem grows collective organization. Sustained tension on
// inbound extractive edges plus existing consciousness drive organization
// upward; state repression suppresses the growth.
type organizationSystem struct{}

func (organizationSystem) Name() string { return "organization" }

// maxInboundTension returns the highest tension on extractive edges whose
// target is the given entity.
func maxInboundTension(g *Graph, id string) float64 {
	max := 0.0
	g.EachRelationship(func(r *world.Relationship) {
		if r.Kind.Extractive() && r.TargetID == id && r.ValueFlow > 0 && r.Tension > max {
			max = r.Tension
		}
	})
	return max
}

func (organizationSystem) Step(g *Graph, svc *services.Container, tc TickContext) error {
	c := svc.Coefficients
	repression := g.Economy().RepressionLevel

	g.EachActive(func(e *world.Entity) {
		if e.Kind == world.KindOwner || e.Kind == world.KindState {
			return
		}
		tension := maxInboundTension(g, e.ID)
		if tension == 0 && e.Consciousness == 0 {
			return
		}
		before := e.Organization
		delta := c.OrganizationGrowth * (0.5*tension + 0.5*e.Consciousness) * (1 - repression)
		e.Organization = clamp01(e.Organization + delta)

		// Crossing the struggle threshold is a reportable shift.
		if before < c.StruggleOrganization && e.Organization >= c.StruggleOrganization {
			svc.Bus.Publish(event.New(event.TypeOrganization, tc.Tick, event.Payload{
				"entity":       e.ID,
				"organization": e.Organization,
			}))
			g.Logf("%s has organized (organization %.3f)", e.Name, e.Organization)
		}
	})
	return nil
}
