// Package services provides the per-run dependency container handed to
// every system and observer.
package services

import (
	"log/slog"

	"histmat/internal/checkpoint"
	"histmat/internal/config"
	"histmat/internal/event"
	"histmat/internal/formula"
)

// Container bundles the dependencies a simulation run owns: configuration,
// the event bus, the formula registry, the frozen coefficient set, and the
// checkpoint store. Containers share no mutable state, so independent runs
// (parameter sweeps) can execute concurrently.
type Container struct {
	Config       config.Config
	Bus          *event.Bus
	Formulas     *formula.Registry
	Coefficients formula.Coefficients
	Checkpoints  checkpoint.Store
	Logger       *slog.Logger
}

// Option customizes a container at construction.
type Option func(*Container)

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Container) { c.Logger = l }
}

// WithFormulas replaces the default formula registry.
func WithFormulas(r *formula.Registry) Option {
	return func(c *Container) { c.Formulas = r }
}

// WithCheckpoints attaches a persistence sink for checkpoints.
func WithCheckpoints(s checkpoint.Store) Option {
	return func(c *Container) { c.Checkpoints = s }
}

// New builds an independent container: a fresh bus, the stock formula set,
// and the coefficients from the configuration.
func New(cfg config.Config, opts ...Option) *Container {
	c := &Container{
		Config:       cfg,
		Formulas:     formula.Defaults(),
		Coefficients: cfg.Coefficients,
		Logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Bus == nil {
		c.Bus = event.NewBus(c.Logger)
	}
	return c
}
