// Command histmat runs deterministic historical-materialist world
// simulations: tick-based class dynamics over a graph of entities and
// extraction relationships.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:   "histmat",
		Short: "Deterministic tick-based world simulation engine",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a yaml run configuration")
	root.AddCommand(runCmd())
	root.AddCommand(sweepCmd())
	root.AddCommand(checkpointsCmd())
	root.AddCommand(resumeCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
