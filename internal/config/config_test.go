package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
name: sweep-7
ticks: 500
seed: 99
coefficients:
  alpha: 0.08
checkpoint:
  enabled: true
  backend: sqlite
  path: data/run.db
  interval: 50
  retain: 3
scenario:
  builtin: colonial-triad
  wage_rate: 0.35
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sweep-7", cfg.Name)
	assert.Equal(t, uint64(500), cfg.Ticks)
	assert.Equal(t, 0.08, cfg.Coefficients.Alpha)
	// Untouched coefficients keep their defaults.
	assert.Equal(t, 0.004, cfg.Coefficients.TensionGain)
	assert.Equal(t, "sqlite", cfg.Checkpoint.Backend)
	assert.Equal(t, 0.35, cfg.Scenario.WageRate)
}

func TestLoadRejectsBadCheckpointBackend(t *testing.T) {
	path := writeConfig(t, `
name: bad
checkpoint:
  enabled: true
  backend: s3
  interval: 10
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend")
}

func TestLoadRejectsMissingName(t *testing.T) {
	path := writeConfig(t, `name: ""`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestInlineScenario(t *testing.T) {
	path := writeConfig(t, `
name: inline
scenario:
  builtin: ""
  wage_rate: 0.4
  entities:
    - {id: worker, name: Workers, kind: worker, wealth: 0.5, survival: 0.95}
    - {id: owner, name: Owners, kind: owner, wealth: 0.9, survival: 0.99}
  relationships:
    - {source: owner, target: worker, kind: extraction, value_flow: 0.2, tension: 0.3}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Scenario.Entities, 2)
	assert.Equal(t, "extraction", cfg.Scenario.Relationships[0].Kind)
}
