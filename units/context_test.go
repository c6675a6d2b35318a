package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaMMoS-project/mammos-entity/errors"
)

func TestTemperatureEquivalency(t *testing.T) {
	cel := MustParse("Cel")
	kelvin := MustParse("K")

	q := MustQuantity(20.0, cel)
	out, err := q.To(kelvin, Temperature())
	require.NoError(t, err)
	v, ok := out.Value().ScalarValue()
	require.True(t, ok)
	assert.InDelta(t, 293.15, v, 1e-9)

	back, err := out.To(cel, Temperature())
	require.NoError(t, err)
	v, ok = back.Value().ScalarValue()
	require.True(t, ok)
	assert.InDelta(t, 20.0, v, 1e-9)
}

func TestOffsetConversionRequiresTemperatureContext(t *testing.T) {
	cel := MustParse("Cel")
	kelvin := MustParse("K")

	// Without the temperature equivalency a Cel <-> K conversion must fail
	// instead of silently applying a scale-only factor of 1.
	assert.False(t, cel.IsEquivalent(kelvin, nil))
	assert.False(t, kelvin.IsEquivalent(cel, nil))

	q := MustQuantity(20.0, cel)
	_, err := q.To(kelvin, nil)
	require.Error(t, err)
	assert.True(t, errors.IsUnitMismatch(err))

	out, err := q.To(kelvin, Temperature())
	require.NoError(t, err)
	v, ok := out.Value().ScalarValue()
	require.True(t, ok)
	assert.InDelta(t, 293.15, v, 1e-9)

	// Offset-free conversions stay context-free.
	out, err = MustQuantity(2000.0, MustParse("mK")).To(kelvin, nil)
	require.NoError(t, err)
	v, ok = out.Value().ScalarValue()
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestMagneticFluxFieldEquivalency(t *testing.T) {
	tesla := MustParse("T")
	field := MustParse("A/m")

	// B = mu0 * H: 1 T corresponds to 1/mu0 A/m.
	q := MustQuantity(1.0, tesla)
	out, err := q.To(field, MagneticFluxField())
	require.NoError(t, err)
	v, ok := out.Value().ScalarValue()
	require.True(t, ok)
	assert.InDelta(t, 1/mu0, v, 1e-3)

	round, err := out.To(tesla, MagneticFluxField())
	require.NoError(t, err)
	v, ok = round.Value().ScalarValue()
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-9)

	// without the context the dimensions do not bridge
	_, err = q.To(field, Temperature())
	require.Error(t, err)
}

func TestConversionExactFactors(t *testing.T) {
	// Prefix conversions must produce exact factors so converted values can
	// serve as join keys.
	cm := MustParse("cm")
	mm := MustParse("mm")
	q := MustQuantity([]float64{1, 2, 3}, cm)
	out, err := q.To(mm, Temperature())
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, out.Value().Data())

	kam := MustParse("kA/m")
	am := MustParse("A/m")
	q = MustQuantity(4.5, kam)
	out, err = q.To(am, Temperature())
	require.NoError(t, err)
	v, _ := out.Value().ScalarValue()
	assert.Equal(t, 4500.0, v)
}

func TestToMismatch(t *testing.T) {
	q := MustQuantity(1.0, MustParse("J/m3"))
	_, err := q.To(MustParse("A/m"), Temperature())
	require.Error(t, err)
	assert.True(t, errors.IsUnitMismatch(err))
}

func TestAllClose(t *testing.T) {
	am := MustParse("A/m")
	kam := MustParse("kA/m")

	a := MustQuantity([]float64{1000, 2000}, am)
	b := MustQuantity([]float64{1, 2}, kam)
	assert.True(t, AllClose(a, b, Temperature()))

	c := MustQuantity([]float64{1, 3}, kam)
	assert.False(t, AllClose(a, c, Temperature()))

	// NaN matches NaN
	d := MustQuantity([]float64{math.NaN()}, am)
	e := MustQuantity([]float64{math.NaN()}, am)
	assert.True(t, AllClose(d, e, Temperature()))

	// shape mismatch is never close
	f := MustQuantity([]float64{1000}, am)
	assert.False(t, AllClose(a, f, Temperature()))

	// inconvertible units are never close
	g := MustQuantity([]float64{1000, 2000}, MustParse("J/m3"))
	assert.False(t, AllClose(a, g, Temperature()))
}
