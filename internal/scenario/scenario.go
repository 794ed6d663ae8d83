// Package scenario builds initial worlds: the built-in class structures,
// inline yaml-declared worlds, and jittered parameter-sweep variants.
package scenario

import (
	"fmt"

	"histmat/internal/config"
	"histmat/internal/formula"
	"histmat/internal/world"
)

// Scenario is the triple a simulation run starts from.
type Scenario struct {
	Name         string
	State        *world.State
	Config       config.Config
	Coefficients formula.Coefficients
}

// FromConfig resolves the scenario a configuration names: inline entities
// when declared, otherwise the built-in by name.
func FromConfig(cfg config.Config) (*Scenario, error) {
	if len(cfg.Scenario.Entities) > 0 {
		return fromInline(cfg)
	}
	switch cfg.Scenario.Builtin {
	case "baseline":
		return Baseline(cfg)
	case "colonial-triad":
		return ColonialTriad(cfg)
	default:
		return nil, fmt.Errorf("unknown builtin scenario %q", cfg.Scenario.Builtin)
	}
}

// Baseline is the minimal two-class world: a worker class and an owner
// class joined by a single extraction edge.
func Baseline(cfg config.Config) (*Scenario, error) {
	state, err := world.New(0,
		[]world.Entity{
			{
				ID: "worker", Name: "Workers", Kind: world.KindWorker,
				Wealth: 0.5, Territory: 0.1,
				Organization: 0.2, Consciousness: 0.1,
				Survival: 0.95, Active: true,
			},
			{
				ID: "owner", Name: "Owners", Kind: world.KindOwner,
				Wealth: 0.9, Territory: 0.6,
				Organization: 0.1, Consciousness: 0.0,
				Survival: 0.99, Active: true,
			},
		},
		[]world.Relationship{
			{
				SourceID: "owner", TargetID: "worker",
				Kind: world.RelationExtraction, ValueFlow: 0.2, Tension: 0.3,
				Description: "wage labor under private ownership",
			},
		},
		world.Economy{WageRate: cfg.Scenario.WageRate},
		[]string{"the baseline world takes shape: workers and owners"},
	)
	if err != nil {
		return nil, err
	}
	return &Scenario{Name: "baseline", State: state, Config: cfg, Coefficients: cfg.Coefficients}, nil
}

// ColonialTriad is the four-entity imperial structure: a metropole
// extracting from both its domestic workers and a colony, a state
// subsidizing the metropole, and a thin solidarity link between the
// extracted parties.
func ColonialTriad(cfg config.Config) (*Scenario, error) {
	state, err := world.New(0,
		[]world.Entity{
			{
				ID: "metropole", Name: "Metropolitan Capital", Kind: world.KindOwner,
				Wealth: 1.2, Territory: 0.7, Organization: 0.2,
				Survival: 0.99, Active: true,
			},
			{
				ID: "workers", Name: "Metropolitan Workers", Kind: world.KindWorker,
				Wealth: 0.5, Territory: 0.1, Organization: 0.25, Consciousness: 0.15,
				Survival: 0.95, Active: true,
			},
			{
				ID: "colony", Name: "Colonial Periphery", Kind: world.KindColony,
				Wealth: 0.4, Territory: 0.3, Organization: 0.15, Consciousness: 0.2,
				Survival: 0.9, Active: true,
			},
			{
				ID: "state", Name: "Imperial State", Kind: world.KindState,
				Wealth: 0.8, Territory: 0.5,
				Survival: 0.99, Active: true,
			},
		},
		[]world.Relationship{
			{SourceID: "metropole", TargetID: "workers", Kind: world.RelationExtraction, ValueFlow: 0.2, Tension: 0.3, Description: "domestic wage extraction"},
			{SourceID: "metropole", TargetID: "colony", Kind: world.RelationTribute, ValueFlow: 0.3, Tension: 0.4, Description: "colonial tribute"},
			{SourceID: "state", TargetID: "metropole", Kind: world.RelationSubsidy, ValueFlow: 0.05, Description: "state subsidy to capital"},
			{SourceID: "workers", TargetID: "colony", Kind: world.RelationSolidarity, ValueFlow: 0.05, Description: "internationalist solidarity"},
		},
		world.Economy{WageRate: cfg.Scenario.WageRate},
		[]string{"the imperial triad takes shape: metropole, colony, state"},
	)
	if err != nil {
		return nil, err
	}
	return &Scenario{Name: "colonial-triad", State: state, Config: cfg, Coefficients: cfg.Coefficients}, nil
}

func fromInline(cfg config.Config) (*Scenario, error) {
	entities := make([]world.Entity, 0, len(cfg.Scenario.Entities))
	for _, ec := range cfg.Scenario.Entities {
		kind, err := world.KindFromString(ec.Kind)
		if err != nil {
			return nil, fmt.Errorf("scenario entity %q: %w", ec.ID, err)
		}
		survival := ec.Survival
		if survival == 0 {
			survival = 0.95
		}
		entities = append(entities, world.Entity{
			ID: ec.ID, Name: ec.Name, Kind: kind,
			Wealth: ec.Wealth, Territory: ec.Territory,
			Organization: ec.Organization, Consciousness: ec.Consciousness,
			Survival: survival, Active: true,
		})
	}

	relationships := make([]world.Relationship, 0, len(cfg.Scenario.Relationships))
	for _, rc := range cfg.Scenario.Relationships {
		kind, err := world.RelationKindFromString(rc.Kind)
		if err != nil {
			return nil, fmt.Errorf("scenario relationship %s->%s: %w", rc.Source, rc.Target, err)
		}
		relationships = append(relationships, world.Relationship{
			SourceID: rc.Source, TargetID: rc.Target, Kind: kind,
			ValueFlow: rc.ValueFlow, Tension: rc.Tension, Description: rc.Description,
		})
	}

	state, err := world.New(0, entities, relationships,
		world.Economy{WageRate: cfg.Scenario.WageRate}, nil)
	if err != nil {
		return nil, err
	}
	return &Scenario{Name: cfg.Name, State: state, Config: cfg, Coefficients: cfg.Coefficients}, nil
}
