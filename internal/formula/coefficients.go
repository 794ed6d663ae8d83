package formula

// Coefficients is the frozen set of tunables consumed by systems. A
// simulation run receives one value at construction and never writes to
// it; sweeps produce variants by copying and jittering.
type Coefficients struct {
	// Production.
	ProductivityBase float64 `yaml:"productivity_base"` // Value created per producer per tick
	Alpha            float64 `yaml:"alpha"`             // Rent share taken along extractive edges

	// Contradiction and struggle.
	TensionGain           float64 `yaml:"tension_gain"`           // Per-tick tension added by sustained extraction
	SolidarityRelief      float64 `yaml:"solidarity_relief"`      // Fraction of tension gain relieved per unit solidarity inflow
	OrganizationGrowth    float64 `yaml:"organization_growth"`    // Per-tick organization growth scale
	StruggleOrganization  float64 `yaml:"struggle_organization"`  // Organization needed to contest extraction
	StruggleConsciousness float64 `yaml:"struggle_consciousness"` // Consciousness needed to contest extraction
	ReclaimRate           float64 `yaml:"reclaim_rate"`           // Fraction of flow reclaimed per successful struggle tick

	// Ideology.
	ConsciousnessGain       float64 `yaml:"consciousness_gain"`       // Drift toward awareness under tension/organization
	ConsciousnessRepression float64 `yaml:"consciousness_repression"` // Drift toward ruling ideology under repression

	// Viability and metabolism.
	SubsistenceFloor float64 `yaml:"subsistence_floor"` // Wealth below which survival decays
	SurvivalDecay    float64 `yaml:"survival_decay"`    // Per-tick survival loss under the floor
	SurvivalRecovery float64 `yaml:"survival_recovery"` // Per-tick survival gain above the floor
	DeathThreshold   float64 `yaml:"death_threshold"`   // Survival level at which an entity dies
	MetabolicCost    float64 `yaml:"metabolic_cost"`    // Flat per-tick upkeep per active entity
	EcologyPerValue  float64 `yaml:"ecology_per_value"` // Ecological debt accrued per unit of value produced

	// Crisis and control.
	CrisisTension      float64 `yaml:"crisis_tension"`      // Mean tension that signals systemic crisis
	ConcentrationLimit float64 `yaml:"concentration_limit"` // Wealth share concentration that signals decomposition
	RepressionStep     float64 `yaml:"repression_step"`     // Repression added per crisis signal
	RepressionDecay    float64 `yaml:"repression_decay"`    // Per-tick repression relaxation
	ControlBase        float64 `yaml:"control_base"`        // Baseline control capacity against organization

	// Territory.
	TerritoryGain  float64 `yaml:"territory_gain"`  // Per-tick consolidation from tribute inflows
	TerritoryDecay float64 `yaml:"territory_decay"` // Per-tick territorial erosion
}

// DefaultCoefficients returns the tuning used by the baseline scenario.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		ProductivityBase: 0.015,
		Alpha:            0.04,

		TensionGain:           0.004,
		SolidarityRelief:      0.5,
		OrganizationGrowth:    0.003,
		StruggleOrganization:  0.75,
		StruggleConsciousness: 0.5,
		ReclaimRate:           0.05,

		ConsciousnessGain:       0.002,
		ConsciousnessRepression: 0.003,

		SubsistenceFloor: 0.05,
		SurvivalDecay:    0.02,
		SurvivalRecovery: 0.01,
		DeathThreshold:   0.05,
		MetabolicCost:    0.0005,
		EcologyPerValue:  0.1,

		CrisisTension:      0.85,
		ConcentrationLimit: 0.9,
		RepressionStep:     0.01,
		RepressionDecay:    0.001,
		ControlBase:        0.85,

		TerritoryGain:  0.002,
		TerritoryDecay: 0.001,
	}
}
