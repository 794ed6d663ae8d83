package formula

// Names of the formulas every stock system requires. Scenario authors may
// hot-swap any of them; the replacements must keep the documented argument
// order and stay pure.
const (
	// ImperialRent(alpha, flow, consciousness) -> per-tick rent taken
	// along an extractive edge. Rising consciousness erodes the take.
	ImperialRent = "imperial_rent"

	// LaborValue(base, organization, territory) -> value produced by one
	// producer in one tick.
	LaborValue = "labor_value"

	// TensionGain(gain, relief) -> tension added to an edge this tick,
	// after solidarity relief.
	TensionGain = "tension_gain"

	// SurvivalDrift(wealth, floor, decay, recovery) -> signed survival
	// delta for one tick.
	SurvivalDrift = "survival_drift"

	// ConsciousnessDrift(tension, organization, repression, gain, pull)
	// -> signed consciousness delta for one tick.
	ConsciousnessDrift = "consciousness_drift"

	// ControlCapacity(base, repression) -> the organization level the
	// current order can absorb before rupture.
	ControlCapacity = "control_capacity"
)

// Defaults returns a registry pre-loaded with the stock formula set.
func Defaults() *Registry {
	r := NewRegistry()

	r.Register(ImperialRent, func(args ...float64) float64 {
		alpha, flow, consciousness := args[0], args[1], args[2]
		rent := alpha * flow * (1 - 0.5*consciousness)
		if rent < 0 {
			return 0
		}
		return rent
	})

	r.Register(LaborValue, func(args ...float64) float64 {
		base, organization, territory := args[0], args[1], args[2]
		v := base * (1 + 0.25*organization) * (0.7 + 0.3*territory)
		if v < 0 {
			return 0
		}
		return v
	})

	r.Register(TensionGain, func(args ...float64) float64 {
		gain, relief := args[0], args[1]
		g := gain * (1 - relief)
		if g < 0 {
			return 0
		}
		return g
	})

	r.Register(SurvivalDrift, func(args ...float64) float64 {
		wealth, floor, decay, recovery := args[0], args[1], args[2], args[3]
		if wealth < floor {
			return -decay
		}
		return recovery
	})

	r.Register(ConsciousnessDrift, func(args ...float64) float64 {
		tension, organization, repression, gain, pull := args[0], args[1], args[2], args[3], args[4]
		return gain*(0.5*tension+0.5*organization) - pull*repression
	})

	r.Register(ControlCapacity, func(args ...float64) float64 {
		base, repression := args[0], args[1]
		return base * (0.7 + 0.3*repression)
	})

	return r
}
