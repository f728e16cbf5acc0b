// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package units provides unit conversion for atomistic quantities.
//
// All registry values are expressed in Hartree atomic units, the
// internal currency of quantum-chemistry reference data. Conversion
// between arbitrary unit expressions ("eV/Angstrom", "GPa") goes
// through this common base.
//
// The unit configuration is an explicit System value threaded through
// callers. There is no process-wide mutable default.
package units

import (
	"fmt"
)

// Registry values in Hartree atomic units. CODATA 2018.
const (
	Hartree  = 1.0
	Bohr     = 1.0
	AUTime   = 1.0
	AUCharge = 1.0

	EV         = 1.0 / 27.211386245988
	KcalPerMol = 1.0 / 627.5094740631
	KJPerMol   = 1.0 / 2625.4996394799

	Angstrom  = 1.0 / 0.529177210903
	Nanometer = 10.0 * Angstrom

	Femtosecond = 1.0 / 0.02418884326509
	Picosecond  = 1000.0 * Femtosecond

	Debye = 0.3934303
	GPa   = 1.0 / 29421.02648438959
)

var registry = map[string]float64{
	"Hartree":  Hartree,
	"Ha":       Hartree,
	"Bohr":     Bohr,
	"a0":       Bohr,
	"eV":       EV,
	"meV":      EV / 1000.0,
	"kcal_mol": KcalPerMol,
	"kJ_mol":   KJPerMol,
	"Angstrom": Angstrom,
	"Ang":      Angstrom,
	"nm":       Nanometer,
	"fs":       Femtosecond,
	"ps":       Picosecond,
	"e":        AUCharge,
	"Debye":    Debye,
	"GPa":      GPa,
}

// Lookup returns the atomic-unit value of a single named unit.
func Lookup(name string) (float64, error) {
	v, ok := registry[name]
	if !ok {
		return 0, fmt.Errorf("units: unknown unit %q", name)
	}
	return v, nil
}

// Evaluate parses a unit expression and returns its value in atomic
// units. The grammar supports unit names, numeric literals, the
// operators *, / and ^, and parentheses. Examples:
//
//	Evaluate("eV/Angstrom")
//	Evaluate("eV/Angstrom^3")
//	Evaluate("kcal_mol/(Angstrom^2)")
func Evaluate(expr string) (float64, error) {
	p := &parser{input: expr}
	v, err := p.parseExpr()
	if err != nil {
		return 0, fmt.Errorf("units: %q: %w", expr, err)
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("units: %q: unexpected %q at offset %d", expr, p.input[p.pos], p.pos)
	}
	return v, nil
}

// Convert returns the factor that converts a value in the from
// expression to the to expression.
func Convert(from, to string) (float64, error) {
	f, err := Evaluate(from)
	if err != nil {
		return 0, err
	}
	t, err := Evaluate(to)
	if err != nil {
		return 0, err
	}
	return f / t, nil
}

// System is the unit configuration for one run: the energy and length
// units the caller's data is expressed in. Derived property units
// follow from these (forces in Energy/Length, stress in
// Energy/Length^3).
type System struct {
	Energy string
	Length string
}

// Default returns the common machine-learning potential convention of
// electron volts and angstroms.
func Default() System {
	return System{Energy: "eV", Length: "Angstrom"}
}

// NewSystem builds a System, validating both unit expressions up front
// so later factor calls cannot fail.
func NewSystem(energy, length string) (System, error) {
	if _, err := Evaluate(energy); err != nil {
		return System{}, err
	}
	if _, err := Evaluate(length); err != nil {
		return System{}, err
	}
	return System{Energy: energy, Length: length}, nil
}

// EnergyFactor returns the atomic-unit value of the energy unit.
func (s System) EnergyFactor() (float64, error) {
	return Evaluate(s.Energy)
}

// LengthFactor returns the atomic-unit value of the length unit.
func (s System) LengthFactor() (float64, error) {
	return Evaluate(s.Length)
}

// ForceFactor returns the atomic-unit value of Energy/Length.
func (s System) ForceFactor() (float64, error) {
	return Evaluate(s.Energy + "/(" + s.Length + ")")
}

// StressFactor returns the atomic-unit value of Energy/Length^3.
func (s System) StressFactor() (float64, error) {
	return Evaluate(s.Energy + "/(" + s.Length + ")^3")
}
