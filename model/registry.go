// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package model

import (
	"fmt"

	"github.com/atomgrad/atomgrad/autodiff"
	"github.com/atomgrad/atomgrad/config"
	"github.com/atomgrad/atomgrad/nn"
)

// Architectures lists the model names Resolve accepts.
func Architectures() []string {
	return []string{"painn", "schnet-lite"}
}

// Resolve builds a model from a named architecture. Unknown names are
// rejected here, before any computation.
func Resolve[B autodiff.BackwardCapable](cfg config.Model, backend B) (*Model[B], error) {
	switch cfg.Architecture {
	case "painn":
		return newInvariantNet(cfg, backend, true)
	case "schnet-lite":
		return newInvariantNet(cfg, backend, false)
	default:
		return nil, fmt.Errorf("model: unsupported architecture %q (known: %v)", cfg.Architecture, Architectures())
	}
}

// newInvariantNet assembles the shared embedding / radial basis /
// interaction / output pipeline. The painn variant adds a residual
// interaction stack twice as deep; both are invariant message-passing
// stand-ins for the published architectures they are named after.
func newInvariantNet[B autodiff.BackwardCapable](cfg config.Model, backend B, deep bool) (*Model[B], error) {
	var stages []nn.Module[B]

	stages = append(stages, nn.NewElementEmbedding[B](cfg.MaxZ, cfg.NumFeatures, backend))

	rbf, err := nn.NewBesselBasis[B](cfg.NumBasis, cfg.Cutoff, backend)
	if err != nil {
		return nil, err
	}
	stages = append(stages, rbf)

	numInteractions := cfg.NumInteractions
	if deep {
		numInteractions *= 2
	}
	for i := 0; i < numInteractions; i++ {
		interaction, err := nn.NewInteraction[B](cfg.NumFeatures, cfg.NumBasis, cfg.Activation, backend)
		if err != nil {
			return nil, err
		}
		stages = append(stages, interaction)
	}

	energy, err := nn.NewEnergyOutput[B](cfg.NumFeatures, cfg.Activation, backend)
	if err != nil {
		return nil, err
	}
	if len(cfg.ElementShifts) > 0 {
		if err := energy.SetElementShifts(cfg.ElementShifts, cfg.MaxZ, backend); err != nil {
			return nil, err
		}
	}

	var charge *nn.ChargeOutput[B]
	if cfg.ChargeHead {
		charge, err = nn.NewChargeOutput[B](cfg.NumFeatures, cfg.Activation, backend)
		if err != nil {
			return nil, err
		}
	}

	if charge != nil {
		stages = append(stages, charge)
	}
	stages = append(stages, energy)

	m := New(cfg.Architecture, stages...)
	if charge != nil {
		m.DeclareExtraProperty(nn.KeyCharges)
	}
	return m, nil
}
