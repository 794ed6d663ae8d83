package main

import (
	"github.com/spf13/cobra"

	"histmat/internal/checkpoint"
	"histmat/internal/engine"
	"histmat/internal/observer"
	"histmat/internal/services"
)

var resumeTicks uint64

func resumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume <id>",
		Short: "Continue a run from a stored checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE:  runResume,
	}
	cmd.Flags().Uint64Var(&resumeTicks, "ticks", 0, "Additional ticks to simulate (0 = checkpoint config value)")
	return cmd
}

func runResume(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	cp, err := store.Load(args[0])
	if err != nil {
		return err
	}

	// The checkpoint carries its own configuration; only the ticks flag
	// overrides it. The store stays the current one, so continuations land
	// next to the checkpoint they started from.
	runCfg := cp.Config
	if resumeTicks > 0 {
		runCfg.Ticks = resumeTicks
	}

	svc := services.New(runCfg)
	sim := engine.NewSimulation(cp.State, svc)

	stats := &observer.StatsObserver{}
	sim.Register(&observer.LogObserver{})
	sim.Register(stats)
	if runCfg.Checkpoint.Enabled {
		sim.Register(checkpoint.NewAutoCheckpointer(
			store, runCfg.Checkpoint.Interval, runCfg.Checkpoint.Retain, svc.Logger))
	}

	cmd.Printf("Resuming %q from tick %d.\n", runCfg.Name, cp.State.Tick())

	_, err = runTicksInterruptible(sim, runCfg.Ticks)
	sim.End()
	if err != nil {
		return err
	}

	printSummary(cmd, runCfg.Name, stats)
	return nil
}
