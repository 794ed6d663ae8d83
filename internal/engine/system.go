package engine

import (
	"fmt"

	"histmat/internal/formula"
	"histmat/internal/services"
)

// TickContext carries per-tick call context into systems.
type TickContext struct {
	Tick uint64 // the tick being produced
}

// System is one named state-transition module, applied once per tick.
// Systems signal expected domain conditions (zero wealth, a severed flow)
// through events, never through errors; a returned error means the system
// cannot fulfil its contract at all and aborts the tick.
type System interface {
	Name() string
	Step(g *Graph, svc *services.Container, tc TickContext) error
}

// ConfigurationError reports a system that could not complete its
// contract — typically a missing formula or coefficient. The tick it
// occurred on is aborted before any later system runs.
type ConfigurationError struct {
	Tick   uint64
	System string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tick %d: system %s: %v", e.Tick, e.System, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Pipeline returns the fixed system order. The order encodes causal
// precedence — biological viability before economics, economics before
// ideology — and is a hard compatibility invariant: reordering changes
// simulation outcomes and requires a version bump.
func Pipeline() []System {
	return []System{
		mortalitySystem{},     // 1. biological viability check
		territorySystem{},     // 2. spatial/territorial conditions
		productionSystem{},    // 3. value production
		organizationSystem{},  // 4. collective organization
		extractionSystem{},    // 5. value extraction
		decompositionSystem{}, // 6. class decomposition / crisis checks
		controlSystem{},       // 7. control-ratio / terminal checks
		metabolismSystem{},    // 8. environmental metabolism
		survivalSystem{},      // 9. survival-probability assessment
		struggleSystem{},      // 10. agency / struggle
		ideologySystem{},      // 11. ideological drift
		contradictionSystem{}, // 12. contradiction / tension accumulation
	}
}

// requireFormula resolves a formula a system cannot run without.
func requireFormula(svc *services.Container, name string) (formula.Func, error) {
	fn, err := svc.Formulas.Get(name)
	if err != nil {
		return nil, fmt.Errorf("required formula: %w", err)
	}
	return fn, nil
}
