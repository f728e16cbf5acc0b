package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
model:
  architecture: schnet-lite
  cutoff: 4.0
`))
	require.NoError(t, err)

	assert.Equal(t, "schnet-lite", cfg.Model.Architecture)
	assert.Equal(t, 4.0, cfg.Model.Cutoff)
	// Absent fields keep their defaults.
	assert.Equal(t, 64, cfg.Model.NumFeatures)
	assert.Equal(t, "silu", cfg.Model.Activation)
	assert.Equal(t, "eV", cfg.Units.Energy)
}

func TestParseFull(t *testing.T) {
	cfg, err := Parse([]byte(`
model:
  architecture: painn
  num_features: 32
  num_basis: 8
  cutoff: 6.0
  num_interactions: 2
  activation: sigmoid
  max_z: 54
  charge_head: true
  element_shifts:
    1: -13.6
    8: -2000.1
units:
  energy: kcal_mol
  length: nm
`))
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Model.NumFeatures)
	assert.Equal(t, 2, cfg.Model.NumInteractions)
	assert.True(t, cfg.Model.ChargeHead)
	assert.Equal(t, -13.6, cfg.Model.ElementShifts[1])
	assert.Equal(t, "kcal_mol", cfg.Units.Energy)
	assert.Equal(t, "nm", cfg.Units.Length)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("model: ["))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	mutate := func(f func(*Config)) error {
		cfg := Default()
		f(&cfg)
		return cfg.Validate()
	}

	assert.NoError(t, Default().Validate())
	assert.Error(t, mutate(func(c *Config) { c.Model.NumFeatures = 0 }))
	assert.Error(t, mutate(func(c *Config) { c.Model.NumBasis = 0 }))
	assert.Error(t, mutate(func(c *Config) { c.Model.Cutoff = -1 }))
	assert.Error(t, mutate(func(c *Config) { c.Model.NumInteractions = -1 }))
	assert.Error(t, mutate(func(c *Config) { c.Model.MaxZ = 0 }))
	assert.Error(t, mutate(func(c *Config) { c.Model.ElementShifts = map[int]float64{0: 1} }))
	assert.Error(t, mutate(func(c *Config) { c.Model.ElementShifts = map[int]float64{95: 1} }))
	assert.NoError(t, mutate(func(c *Config) { c.Model.ElementShifts = map[int]float64{8: -2000} }))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  cutoff: 3.5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.Model.Cutoff)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
