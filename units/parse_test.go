package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A/m", "A / m"},
		{"A / m", "A / m"},
		{"J/m3", "J / m3"},
		{"J / m3", "J / m3"},
		{"kA/m", "kA / m"},
		{"T", "T"},
		{"mT", "mT"},
		{"kg/(A.s2)", "kg / (A s2)"},
		{"kg / (A s2)", "kg / (A s2)"},
		{"m", "m"},
		{"1", ""},
		{"", ""},
		{"J/(m.K)", "J / (m K)"},
		{"W/(m.K)", "W / (m K)"},
		{"m**3", "m3"},
		{"m^-1", "1 / m"},
		{"1/m", "1 / m"},
	}
	for _, tc := range tests {
		u, err := Parse(tc.in)
		require.NoError(t, err, "parse %q", tc.in)
		assert.Equal(t, tc.want, u.String(), "parse %q", tc.in)
	}
}

func TestParseUnknownSymbol(t *testing.T) {
	_, err := Parse("florbs")
	require.Error(t, err)

	_, err = Parse("A//m")
	require.Error(t, err)
}

func TestParsePrefixSplit(t *testing.T) {
	// Whole-token match wins over prefix split: "T" is tesla, not
	// tera-(nothing); "mT" splits into milli+tesla.
	tesla, err := Parse("T")
	require.NoError(t, err)
	milli, err := Parse("mT")
	require.NoError(t, err)
	assert.Equal(t, tesla.Dims(), milli.Dims())
	assert.InDelta(t, 1e-3, milli.Scale()/tesla.Scale(), 1e-12)

	// "min" is a minute, not milli-inch.
	minute, err := Parse("min")
	require.NoError(t, err)
	assert.InDelta(t, 60.0, minute.Scale(), 1e-12)
}

func TestParseWithAliases(t *testing.T) {
	aliases := map[string]string{"Cel": "K", "mCel": "K", "har": "m2"}

	u, err := ParseWithAliases("Cel", aliases)
	require.NoError(t, err)
	assert.Equal(t, "K", u.String())

	u, err = ParseWithAliases("J/har", aliases)
	require.NoError(t, err)
	assert.Equal(t, "J / m2", u.String())
}

func TestDimensionalEquality(t *testing.T) {
	a := MustParse("J/m3")
	b := MustParse("kg/(m.s2)")
	assert.Equal(t, a.Dims(), b.Dims())
	assert.InDelta(t, a.Scale(), b.Scale(), 1e-12)

	tesla := MustParse("T")
	derived := MustParse("kg/(A.s2)")
	assert.Equal(t, tesla.Dims(), derived.Dims())
}

func TestUnitSI(t *testing.T) {
	u := MustParse("kA/m")
	si := u.SI()
	assert.Equal(t, u.Dims(), si.Dims())
	assert.InDelta(t, 1.0, si.Scale(), 1e-12)
}

func TestUnitMulDiv(t *testing.T) {
	j := MustParse("J")
	m3 := MustParse("m3")
	density := j.Div(m3)
	assert.Equal(t, MustParse("J/m3").Dims(), density.Dims())

	back := density.Mul(m3)
	assert.Equal(t, j.Dims(), back.Dims())
}
