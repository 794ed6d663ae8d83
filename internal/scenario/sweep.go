package scenario

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// sweepAmplitude bounds coefficient jitter to ±20% of the base value.
const sweepAmplitude = 0.2

// Sweep derives n independent scenario variants from a base, jittering the
// dynamically interesting coefficients with smooth seeded noise. The
// result is deterministic per (seed, index): the same sweep can be
// reproduced, and each variant can be replayed on its own.
func Sweep(base *Scenario, n int, seed int64) ([]*Scenario, error) {
	noise := opensimplex.NewNormalized(seed)

	variants := make([]*Scenario, 0, n)
	for i := 0; i < n; i++ {
		coeffs := base.Coefficients
		x := float64(i)

		// Channels along the second noise axis keep the jitters of one
		// variant decorrelated from each other.
		coeffs.Alpha = jitter(noise, coeffs.Alpha, x, 0)
		coeffs.ProductivityBase = jitter(noise, coeffs.ProductivityBase, x, 1)
		coeffs.TensionGain = jitter(noise, coeffs.TensionGain, x, 2)
		coeffs.OrganizationGrowth = jitter(noise, coeffs.OrganizationGrowth, x, 3)
		coeffs.SolidarityRelief = jitter(noise, coeffs.SolidarityRelief, x, 4)

		cfg := base.Config
		cfg.Name = fmt.Sprintf("%s-v%d", base.Name, i)
		cfg.Coefficients = coeffs

		variant, err := FromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("sweep variant %d: %w", i, err)
		}
		variant.Name = cfg.Name
		variants = append(variants, variant)
	}
	return variants, nil
}

// jitter scales a coefficient by a noise sample in [1-amp, 1+amp].
func jitter(noise opensimplex.Noise, base, x, channel float64) float64 {
	n := noise.Eval2(x*0.73+11.3, channel*7.91) // normalized to [0,1]
	scaled := base * (1 + sweepAmplitude*(2*n-1))
	if scaled < 0 {
		return 0
	}
	return scaled
}
