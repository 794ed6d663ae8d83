package engine

import (
	"fmt"

	"histmat/internal/history"
	"histmat/internal/observer"
	"histmat/internal/services"
	"histmat/internal/world"
)

// Simulation ties the pipeline, history stack, and observer notifier
// together. A tick is an atomic unit of work: the full pipeline runs to
// completion and the new snapshot is pushed to history before any observer
// hears about it. One Simulation is single-threaded by contract; run
// independent instances for parallel scenario variants.
type Simulation struct {
	svc      *services.Container
	systems  []System
	stack    *history.Stack
	notifier *observer.Notifier
	current  *world.State

	started bool
	ended   bool
}

// NewSimulation builds a simulation around an initial snapshot. The
// initial state occupies the first history entry.
func NewSimulation(initial *world.State, svc *services.Container) *Simulation {
	cfg := svc.Config
	stack := history.NewStack(cfg.History.MaxDepth)
	stack.Push(initial.Tick(), initial)

	return &Simulation{
		svc:      svc,
		systems:  Pipeline(),
		stack:    stack,
		notifier: observer.NewNotifier(cfg.ObserverTimeout, svc.Logger),
		current:  initial,
	}
}

// Register adds an observer. Registration order is notification order.
func (s *Simulation) Register(o observer.Observer) {
	s.notifier.Register(o)
}

// Notifier exposes the notifier for test configuration.
func (s *Simulation) Notifier() *observer.Notifier { return s.notifier }

// Current returns the committed snapshot at the cursor.
func (s *Simulation) Current() *world.State { return s.current }

// History returns the undo/redo stack. Read it freely; it is written only
// by this simulation.
func (s *Simulation) History() *history.Stack { return s.stack }

// Start notifies observers of the initial state. Called automatically by
// the first Step if the caller didn't.
func (s *Simulation) Start() {
	if s.started {
		return
	}
	s.started = true
	s.notifier.NotifyStart(s.current, s.svc.Config)
}

// Step advances the world by exactly one tick: build the working graph,
// run every system in pipeline order, commit the successor snapshot, push
// it to history, then notify observers. On any failure the prior snapshot
// stays current and nothing partial is visible.
func (s *Simulation) Step() (*world.State, error) {
	s.Start()

	tick := s.current.Tick() + 1
	g := NewGraph(s.current)
	tc := TickContext{Tick: tick}

	for _, sys := range s.systems {
		if err := sys.Step(g, s.svc, tc); err != nil {
			return nil, &ConfigurationError{Tick: tick, System: sys.Name(), Err: err}
		}
	}

	next, err := g.Commit(tick)
	if err != nil {
		return nil, fmt.Errorf("tick %d: commit: %w", tick, err)
	}

	s.stack.Push(tick, next)
	if pe := s.svc.Config.History.ProtectEvery; pe > 0 && tick%pe == 0 {
		s.stack.Protect(tick)
	}
	s.stack.Prune()

	prev := s.current
	s.current = next

	// Observers run strictly after the history push, never interleaved
	// with system execution.
	s.notifier.NotifyTick(prev, next)

	return next, nil
}

// Run advances n ticks, stopping at the first failed tick.
func (s *Simulation) Run(n uint64) (*world.State, error) {
	for i := uint64(0); i < n; i++ {
		if _, err := s.Step(); err != nil {
			return s.current, err
		}
	}
	return s.current, nil
}

// Undo moves the cursor back one committed snapshot.
func (s *Simulation) Undo() (*world.State, error) {
	st, err := s.stack.Undo()
	if err != nil {
		return nil, err
	}
	s.current = st
	return st, nil
}

// Redo moves the cursor forward one committed snapshot.
func (s *Simulation) Redo() (*world.State, error) {
	st, err := s.stack.Redo()
	if err != nil {
		return nil, err
	}
	s.current = st
	return st, nil
}

// End notifies observers that the run is over. Idempotent.
func (s *Simulation) End() {
	if s.ended {
		return
	}
	s.ended = true
	s.notifier.NotifyEnd(s.current)
}
