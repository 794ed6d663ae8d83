package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histmat/internal/config"
	"histmat/internal/event"
	"histmat/internal/formula"
)

func TestContainersAreIndependent(t *testing.T) {
	a := New(config.Default())
	b := New(config.Default())

	a.Bus.Publish(event.New(event.TypeCrisis, 1, nil))
	assert.Empty(t, b.Bus.History(), "buses must not be shared")

	a.Formulas.Register(formula.ImperialRent, func(...float64) float64 { return 0 })
	fn, err := b.Formulas.Get(formula.ImperialRent)
	require.NoError(t, err)
	assert.NotEqual(t, 0.0, fn(0.04, 0.2, 0), "registries must not be shared")
}

func TestCoefficientsComeFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Coefficients.Alpha = 0.123
	c := New(cfg)
	assert.Equal(t, 0.123, c.Coefficients.Alpha)
}

func TestOptions(t *testing.T) {
	r := formula.NewRegistry()
	c := New(config.Default(), WithFormulas(r))
	assert.Same(t, r, c.Formulas)
	assert.NotNil(t, c.Bus)
}
