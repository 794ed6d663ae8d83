package checkpoint

import (
	"log/slog"

	"histmat/internal/config"
	"histmat/internal/world"
)

// AutoCheckpointer saves a checkpoint every Interval committed ticks and
// prunes its own older checkpoints beyond Retain. It plugs into the
// simulation as an observer, so a failing or slow persistence sink can
// never abort a tick; failures are logged and surfaced only as errors to
// the (swallowing) notifier.
type AutoCheckpointer struct {
	store    Store
	interval uint64
	retain   int
	logger   *slog.Logger

	cfg  config.Config
	made []string // ids written by this checkpointer, oldest first
}

// NewAutoCheckpointer builds a policy around a store. interval is in
// ticks; retain <= 0 keeps every checkpoint.
func NewAutoCheckpointer(store Store, interval uint64, retain int, logger *slog.Logger) *AutoCheckpointer {
	if logger == nil {
		logger = slog.Default()
	}
	return &AutoCheckpointer{store: store, interval: interval, retain: retain, logger: logger}
}

// OnSimulationStart captures the run configuration embedded in every
// checkpoint and snapshots the initial state.
func (a *AutoCheckpointer) OnSimulationStart(initial *world.State, cfg config.Config) error {
	a.cfg = cfg
	return a.save(initial, "initial state")
}

// OnTick saves every interval-th committed tick.
func (a *AutoCheckpointer) OnTick(prev, next *world.State) error {
	if a.interval == 0 || next.Tick()%a.interval != 0 {
		return nil
	}
	return a.save(next, "auto checkpoint")
}

// OnSimulationEnd saves the final state regardless of interval alignment.
func (a *AutoCheckpointer) OnSimulationEnd(final *world.State) error {
	return a.save(final, "final state")
}

func (a *AutoCheckpointer) save(state *world.State, description string) error {
	cp := New(state, a.cfg, description)
	if err := a.store.Save(cp); err != nil {
		a.logger.Error("auto checkpoint failed", "tick", state.Tick(), "error", err)
		return err
	}
	a.made = append(a.made, cp.Metadata.ID)
	a.pruneOwn()
	return nil
}

// pruneOwn deletes this checkpointer's oldest writes beyond the retention
// count. Checkpoints written by other callers are never touched.
func (a *AutoCheckpointer) pruneOwn() {
	if a.retain <= 0 {
		return
	}
	for len(a.made) > a.retain {
		key := a.made[0]
		a.made = a.made[1:]
		if err := a.store.Delete(key); err != nil {
			a.logger.Warn("auto checkpoint prune failed", "id", key, "error", err)
		}
	}
}
