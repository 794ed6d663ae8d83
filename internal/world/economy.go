package world

import "fmt"

// Economy holds the global pool-style scalars shared by every entity.
type Economy struct {
	AccumulatedRent float64 `json:"accumulated_rent"` // Total value extracted to date, >= 0
	WageRate        float64 `json:"wage_rate"`        // Share of produced value retained by producers, 0..1
	RepressionLevel float64 `json:"repression_level"` // State capacity directed against organization, 0..1
	EcologicalDebt  float64 `json:"ecological_debt"`  // Cumulative metabolic cost of production, >= 0
}

// Validate checks the economy's invariants.
func (e Economy) Validate() error {
	if e.AccumulatedRent < 0 {
		return &ValidationError{Field: "accumulated_rent", Msg: fmt.Sprintf("accumulated rent %g is negative", e.AccumulatedRent)}
	}
	if e.WageRate < 0 || e.WageRate > 1 {
		return &ValidationError{Field: "wage_rate", Msg: fmt.Sprintf("wage rate %g outside [0,1]", e.WageRate)}
	}
	if e.RepressionLevel < 0 || e.RepressionLevel > 1 {
		return &ValidationError{Field: "repression_level", Msg: fmt.Sprintf("repression level %g outside [0,1]", e.RepressionLevel)}
	}
	if e.EcologicalDebt < 0 {
		return &ValidationError{Field: "ecological_debt", Msg: fmt.Sprintf("ecological debt %g is negative", e.EcologicalDebt)}
	}
	return nil
}
