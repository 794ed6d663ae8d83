package observer

import (
	"fmt"
	"log/slog"

	"histmat/internal/config"
	"histmat/internal/world"
)

// LogObserver writes a one-line delta summary per committed tick.
type LogObserver struct {
	Logger *slog.Logger
}

// Name identifies the observer in notifier logs.
func (l *LogObserver) Name() string { return "log" }

func (l *LogObserver) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func (l *LogObserver) OnSimulationStart(initial *world.State, cfg config.Config) error {
	l.logger().Info("simulation started",
		"run", cfg.Name,
		"entities", len(initial.Entities()),
		"relationships", len(initial.Relationships()),
	)
	return nil
}

func (l *LogObserver) OnTick(prev, next *world.State) error {
	l.logger().Info("tick committed",
		"tick", next.Tick(),
		"alive", next.ActiveCount(),
		"total_wealth", fmt.Sprintf("%.4f", next.TotalWealth()),
		"wealth_delta", fmt.Sprintf("%+.4f", next.TotalWealth()-prev.TotalWealth()),
		"mean_tension", fmt.Sprintf("%.4f", next.MeanTension()),
		"rent", fmt.Sprintf("%.4f", next.Economy().AccumulatedRent),
	)
	return nil
}

func (l *LogObserver) OnSimulationEnd(final *world.State) error {
	l.logger().Info("simulation ended",
		"tick", final.Tick(),
		"alive", final.ActiveCount(),
		"total_wealth", fmt.Sprintf("%.4f", final.TotalWealth()),
	)
	return nil
}

// TickSample is one row of the aggregate series kept by StatsObserver.
type TickSample struct {
	Tick        uint64  `json:"tick"`
	Alive       int     `json:"alive"`
	TotalWealth float64 `json:"total_wealth"`
	MeanTension float64 `json:"mean_tension"`
	Rent        float64 `json:"rent"`
	Repression  float64 `json:"repression"`
}

// StatsObserver accumulates an in-memory aggregate series across the run.
type StatsObserver struct {
	Samples []TickSample
	Deaths  int
}

// Name identifies the observer in notifier logs.
func (s *StatsObserver) Name() string { return "stats" }

func (s *StatsObserver) OnSimulationStart(initial *world.State, cfg config.Config) error {
	s.record(initial)
	return nil
}

func (s *StatsObserver) OnTick(prev, next *world.State) error {
	s.Deaths += prev.ActiveCount() - next.ActiveCount()
	s.record(next)
	return nil
}

func (s *StatsObserver) OnSimulationEnd(final *world.State) error { return nil }

func (s *StatsObserver) record(state *world.State) {
	eco := state.Economy()
	s.Samples = append(s.Samples, TickSample{
		Tick:        state.Tick(),
		Alive:       state.ActiveCount(),
		TotalWealth: state.TotalWealth(),
		MeanTension: state.MeanTension(),
		Rent:        eco.AccumulatedRent,
		Repression:  eco.RepressionLevel,
	})
}

// ChronicleObserver collects the narrative log lines added each tick, the
// raw material an external narrator would consume.
type ChronicleObserver struct {
	Lines []string
}

// Name identifies the observer in notifier logs.
func (c *ChronicleObserver) Name() string { return "chronicle" }

func (c *ChronicleObserver) OnSimulationStart(initial *world.State, cfg config.Config) error {
	c.Lines = append(c.Lines, initial.Log()...)
	return nil
}

func (c *ChronicleObserver) OnTick(prev, next *world.State) error {
	prevLen := len(prev.Log())
	log := next.Log()
	if prevLen > len(log) {
		// The snapshot log is capped; after a trim just take the tail.
		prevLen = 0
	}
	c.Lines = append(c.Lines, log[prevLen:]...)
	return nil
}

func (c *ChronicleObserver) OnSimulationEnd(final *world.State) error { return nil }
