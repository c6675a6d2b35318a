package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaMMoS-project/mammos-entity/errors"
)

func TestResolveSIUnit(t *testing.T) {
	o := MustDefault()

	tests := []struct {
		label string
		want  string
	}{
		// family member selected, non-coherent kA/m dropped
		{"SpontaneousMagnetization", "A/m"},
		{"Magnetization", "A/m"},
		// unit declared on an ancestor, not the concept itself
		{"ExternalMagneticField", "A/m"},
		{"AnisotropyField", "A/m"},
		// non-coherent Celsius dropped in favour of Kelvin
		{"ThermodynamicTemperature", "K"},
		{"CurieTemperature", "K"},
		// only derived candidates: the parenthesised code is skipped
		{"UniaxialAnisotropyConstant", "J/m3"},
		{"MaximumEnergyProduct", "J/m3"},
		{"MagneticPolarisation", "T"},
		{"SpontaneousMagneticPolarisation", "T"},
		{"MagneticFluxDensity", "T"},
		// unit concept without subclasses contributes its own code
		{"ExchangeStiffnessConstant", "J/m"},
		// dimensionless
		{"DemagnetizingFactor", ""},
		// no ancestor declares a unit
		{"ShapeAnisotropy", ""},
	}
	for _, tc := range tests {
		got, err := ResolveSIUnit(o, tc.label)
		require.NoError(t, err, tc.label)
		assert.Equal(t, tc.want, got, tc.label)
	}
}

func TestResolveSIUnitUnknownLabel(t *testing.T) {
	o := MustDefault()
	_, err := ResolveSIUnit(o, "NotAConcept")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownConcept))
}

func TestResolveSIUnitTieBreakOrder(t *testing.T) {
	// Two equally eligible members: declaration order decides.
	o, err := New([]*Concept{
		{Label: "SIDimensionalUnit"},
		{Label: "LengthUnit"},
		{Label: "Metre", Parents: []string{"LengthUnit", "SIDimensionalUnit"}, UCUMCodes: []string{"m"}},
		{Label: "Angstrom", Parents: []string{"LengthUnit", "SIDimensionalUnit"}, UCUMCodes: []string{"Ao"}},
		{Label: "Length", MeasurementUnit: "LengthUnit"},
	})
	require.NoError(t, err)

	got, err := ResolveSIUnit(o, "Length")
	require.NoError(t, err)
	assert.Equal(t, "m", got)
}

func TestResolveSIUnitNoUsableCandidate(t *testing.T) {
	// All candidate codes are parenthesised.
	o, err := New([]*Concept{
		{Label: "SIDimensionalUnit"},
		{Label: "WeirdUnit"},
		{Label: "Paren", Parents: []string{"WeirdUnit", "SIDimensionalUnit"}, UCUMCodes: []string{"J/(m.m2)"}},
		{Label: "Weird", MeasurementUnit: "WeirdUnit"},
	})
	require.NoError(t, err)

	_, err = ResolveSIUnit(o, "Weird")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIntegrity))
}
