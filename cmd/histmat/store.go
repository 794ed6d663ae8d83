package main

import (
	"fmt"
	"log/slog"

	"histmat/internal/checkpoint"
	"histmat/internal/config"
)

// loadConfig resolves the run configuration: the --config file when given,
// otherwise the built-in defaults.
func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// openStore opens the checkpoint backend the configuration names. The
// caller owns the returned store and must Close it.
func openStore(cfg config.Config) (checkpoint.Store, error) {
	switch cfg.Checkpoint.Backend {
	case "file":
		return checkpoint.NewFileStore(cfg.Checkpoint.Dir, slog.Default())
	case "sqlite":
		return checkpoint.OpenSQLite(cfg.Checkpoint.Path, slog.Default())
	default:
		return nil, fmt.Errorf("unknown checkpoint backend %q", cfg.Checkpoint.Backend)
	}
}
