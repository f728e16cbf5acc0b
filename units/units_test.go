package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	v, err := Lookup("eV")
	require.NoError(t, err)
	assert.InDelta(t, 1.0/27.211386245988, v, 1e-15)

	_, err = Lookup("parsec")
	assert.Error(t, err)
}

func TestEvaluateExpressions(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"Hartree", 1.0},
		{"eV", EV},
		{"meV", EV / 1000},
		{"eV/Angstrom", EV / Angstrom},
		{"eV/Angstrom^3", EV / (Angstrom * Angstrom * Angstrom)},
		{"kcal_mol/(Angstrom^2)", KcalPerMol / (Angstrom * Angstrom)},
		{"Angstrom^-1", 1.0 / Angstrom},
		{"2*eV", 2 * EV},
		{"(eV/Angstrom)^2", (EV / Angstrom) * (EV / Angstrom)},
		{"Ang", Angstrom},
		{"a0", 1.0},
	}
	for _, tc := range cases {
		v, err := Evaluate(tc.expr)
		require.NoError(t, err, tc.expr)
		assert.InDelta(t, tc.want, v, math.Abs(tc.want)*1e-12, tc.expr)
	}
}

func TestEvaluateRejectsMalformed(t *testing.T) {
	for _, expr := range []string{
		"",
		"eV/",
		"eV)",
		"(eV",
		"eV^x",
		"furlong",
		"eV Angstrom",
	} {
		_, err := Evaluate(expr)
		assert.Error(t, err, expr)
	}
}

func TestConvert(t *testing.T) {
	f, err := Convert("Hartree", "eV")
	require.NoError(t, err)
	assert.InDelta(t, 27.211386245988, f, 1e-9)

	f, err = Convert("eV", "eV")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f, 1e-15)

	f, err = Convert("nm", "Angstrom")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, f, 1e-12)
}

func TestSystemFactors(t *testing.T) {
	s := Default()
	assert.Equal(t, "eV", s.Energy)
	assert.Equal(t, "Angstrom", s.Length)

	e, err := s.EnergyFactor()
	require.NoError(t, err)
	assert.InDelta(t, EV, e, 1e-15)

	f, err := s.ForceFactor()
	require.NoError(t, err)
	assert.InDelta(t, EV/Angstrom, f, 1e-15)

	p, err := s.StressFactor()
	require.NoError(t, err)
	assert.InDelta(t, EV/(Angstrom*Angstrom*Angstrom), p, 1e-15)
}

func TestNewSystemValidates(t *testing.T) {
	_, err := NewSystem("eV", "cubit")
	assert.Error(t, err)

	s, err := NewSystem("kcal_mol", "nm")
	require.NoError(t, err)
	assert.Equal(t, "kcal_mol", s.Energy)
}

func TestStressFactorMatchesGPa(t *testing.T) {
	// eV/Angstrom^3 is 160.2176634 GPa.
	f, err := Convert("eV/Angstrom^3", "GPa")
	require.NoError(t, err)
	assert.InDelta(t, 160.2176634, f, 1e-4)
}
