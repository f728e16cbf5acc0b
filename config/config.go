// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package config loads model and run configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Model describes a potential architecture.
type Model struct {
	Architecture    string          `yaml:"architecture"`
	NumFeatures     int             `yaml:"num_features"`
	NumBasis        int             `yaml:"num_basis"`
	Cutoff          float64         `yaml:"cutoff"`
	NumInteractions int             `yaml:"num_interactions"`
	Activation      string          `yaml:"activation"`
	MaxZ            int             `yaml:"max_z"`
	ElementShifts   map[int]float64 `yaml:"element_shifts,omitempty"`
	ChargeHead      bool            `yaml:"charge_head,omitempty"`
}

// Units names the energy and length units the run's data is expressed
// in.
type Units struct {
	Energy string `yaml:"energy"`
	Length string `yaml:"length"`
}

// Config is the top-level run configuration.
type Config struct {
	Model Model `yaml:"model"`
	Units Units `yaml:"units"`
}

// Default returns a configuration with the common defaults filled in.
func Default() Config {
	return Config{
		Model: Model{
			Architecture:    "painn",
			NumFeatures:     64,
			NumBasis:        16,
			Cutoff:          5.0,
			NumInteractions: 3,
			Activation:      "silu",
			MaxZ:            86,
		},
		Units: Units{
			Energy: "eV",
			Length: "Angstrom",
		},
	}
}

// Parse decodes a YAML document over the defaults, so absent fields
// keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Validate checks value ranges. Architecture and activation names are
// validated by their registries at construction.
func (c Config) Validate() error {
	if c.Model.NumFeatures < 1 {
		return fmt.Errorf("config: num_features must be positive, got %d", c.Model.NumFeatures)
	}
	if c.Model.NumBasis < 1 {
		return fmt.Errorf("config: num_basis must be positive, got %d", c.Model.NumBasis)
	}
	if c.Model.Cutoff <= 0 {
		return fmt.Errorf("config: cutoff must be positive, got %g", c.Model.Cutoff)
	}
	if c.Model.NumInteractions < 0 {
		return fmt.Errorf("config: num_interactions must not be negative, got %d", c.Model.NumInteractions)
	}
	if c.Model.MaxZ < 1 {
		return fmt.Errorf("config: max_z must be positive, got %d", c.Model.MaxZ)
	}
	for z := range c.Model.ElementShifts {
		if z < 1 || z > c.Model.MaxZ {
			return fmt.Errorf("config: element shift for atomic number %d outside [1, %d]", z, c.Model.MaxZ)
		}
	}
	return nil
}
