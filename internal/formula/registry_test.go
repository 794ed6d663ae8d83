package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUnknownName(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("no_such_formula")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterAndHotSwap(t *testing.T) {
	r := NewRegistry()
	r.Register("rent", func(args ...float64) float64 { return args[0] })

	fn, err := r.Get("rent")
	require.NoError(t, err)
	assert.Equal(t, 2.0, fn(2))

	r.Register("rent", func(args ...float64) float64 { return args[0] * 10 })
	fn, err = r.Get("rent")
	require.NoError(t, err)
	assert.Equal(t, 20.0, fn(2))
}

func TestListSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("zeta", func(...float64) float64 { return 0 })
	r.Register("alpha", func(...float64) float64 { return 0 })
	assert.Equal(t, []string{"alpha", "zeta"}, r.List())
}

func TestDefaultsCoverStockNames(t *testing.T) {
	r := Defaults()
	for _, name := range []string{
		ImperialRent, LaborValue, TensionGain,
		SurvivalDrift, ConsciousnessDrift, ControlCapacity,
	} {
		_, err := r.Get(name)
		assert.NoError(t, err, name)
	}
}

func TestImperialRentNonNegative(t *testing.T) {
	fn, err := Defaults().Get(ImperialRent)
	require.NoError(t, err)

	// Full consciousness halves the rent but never flips its sign.
	assert.InDelta(t, 0.004, fn(0.04, 0.2, 0), 1e-12)
	assert.InDelta(t, 0.002, fn(0.04, 0.2, 1), 1e-12)
	assert.GreaterOrEqual(t, fn(-1, 0.2, 0), 0.0)
}

func TestSurvivalDriftSign(t *testing.T) {
	fn, err := Defaults().Get(SurvivalDrift)
	require.NoError(t, err)
	assert.Equal(t, -0.02, fn(0.01, 0.05, 0.02, 0.01))
	assert.Equal(t, 0.01, fn(0.5, 0.05, 0.02, 0.01))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := Defaults()
	b := Defaults()
	a.Register(ImperialRent, func(...float64) float64 { return 99 })

	fn, err := b.Get(ImperialRent)
	require.NoError(t, err)
	assert.NotEqual(t, 99.0, fn(0.04, 0.2, 0))
}
