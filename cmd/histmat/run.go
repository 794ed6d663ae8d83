package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"histmat/internal/checkpoint"
	"histmat/internal/engine"
	"histmat/internal/observer"
	"histmat/internal/scenario"
	"histmat/internal/services"
	"histmat/internal/world"
)

var (
	runTicks       uint64
	runScenario    string
	runCheckpoints bool
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario for a fixed number of ticks",
		Args:  cobra.NoArgs,
		RunE:  runRun,
	}
	cmd.Flags().Uint64Var(&runTicks, "ticks", 0, "Ticks to simulate (0 = config value)")
	cmd.Flags().StringVar(&runScenario, "scenario", "", "Built-in scenario overriding the config")
	cmd.Flags().BoolVar(&runCheckpoints, "checkpoints", false, "Enable checkpointing regardless of config")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runTicks > 0 {
		cfg.Ticks = runTicks
	}
	if runScenario != "" {
		cfg.Scenario.Builtin = runScenario
		cfg.Scenario.Entities = nil
	}
	if runCheckpoints {
		cfg.Checkpoint.Enabled = true
	}

	sc, err := scenario.FromConfig(cfg)
	if err != nil {
		return err
	}

	svc := services.New(cfg)
	sim := engine.NewSimulation(sc.State, svc)

	stats := &observer.StatsObserver{}
	sim.Register(&observer.LogObserver{})
	sim.Register(stats)

	if cfg.Checkpoint.Enabled {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		sim.Register(checkpoint.NewAutoCheckpointer(
			store, cfg.Checkpoint.Interval, cfg.Checkpoint.Retain, svc.Logger))
	}

	_, err = runTicksInterruptible(sim, cfg.Ticks)
	sim.End()
	if err != nil {
		return err
	}

	printSummary(cmd, sc.Name, stats)
	return nil
}

// runTicksInterruptible advances the simulation tick by tick, stopping
// cleanly between ticks on SIGINT or SIGTERM. A tick is never cut short.
func runTicksInterruptible(sim *engine.Simulation, ticks uint64) (*world.State, error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sim.Start()
	for i := uint64(0); i < ticks; i++ {
		select {
		case sig := <-sigCh:
			slog.Info("received signal, stopping after committed tick", "signal", sig, "tick", sim.Current().Tick())
			return sim.Current(), nil
		default:
		}
		if _, err := sim.Step(); err != nil {
			return sim.Current(), err
		}
	}
	return sim.Current(), nil
}

func printSummary(cmd *cobra.Command, name string, stats *observer.StatsObserver) {
	if len(stats.Samples) == 0 {
		return
	}
	first := stats.Samples[0]
	last := stats.Samples[len(stats.Samples)-1]

	cmd.Printf("Run %q complete.\n", name)
	cmd.Printf("  Ticks:        %d\n", last.Tick)
	cmd.Printf("  Alive:        %d (deaths: %d)\n", last.Alive, stats.Deaths)
	cmd.Printf("  Total wealth: %.4f (%+.4f)\n", last.TotalWealth, last.TotalWealth-first.TotalWealth)
	cmd.Printf("  Mean tension: %.4f (%+.4f)\n", last.MeanTension, last.MeanTension-first.MeanTension)
	cmd.Printf("  Rent taken:   %.4f\n", last.Rent)
	cmd.Printf("  Repression:   %.4f\n", last.Repression)
}
