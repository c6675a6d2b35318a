package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaMMoS-project/mammos-entity/errors"
)

func TestAsArrayScalar(t *testing.T) {
	for _, v := range []any{3.0, float32(3), 3, int64(3)} {
		a, err := AsArray(v)
		require.NoError(t, err)
		assert.True(t, a.IsScalar())
		got, ok := a.ScalarValue()
		require.True(t, ok)
		assert.Equal(t, 3.0, got)
	}
}

func TestAsArrayVector(t *testing.T) {
	a, err := AsArray([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, a.Shape())
	assert.Equal(t, []float64{1, 2, 3}, a.Data())

	a, err = AsArray([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, a.Data())
}

func TestAsArrayNested(t *testing.T) {
	a, err := AsArray([]any{[]any{1.0, 2.0}, []any{3.0, 4.0}})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, a.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4}, a.Data())

	nested, ok := a.Nested().([]any)
	require.True(t, ok)
	assert.Equal(t, []any{1.0, 2.0}, nested[0])
	assert.Equal(t, []any{3.0, 4.0}, nested[1])
}

func TestAsArrayRagged(t *testing.T) {
	_, err := AsArray([]any{[]any{1.0, 2.0}, []any{3.0}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrShapeMismatch))
}

func TestArrayFlatten(t *testing.T) {
	a, err := AsArray([]any{[]any{1.0, 2.0}, []any{3.0, 4.0}})
	require.NoError(t, err)
	flat := a.Flatten()
	assert.Equal(t, []int{4}, flat.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4}, flat.Data())

	s := Scalar(7)
	assert.Equal(t, []int{1}, s.Flatten().Shape())
}

func TestAllCloseArrays(t *testing.T) {
	a := Vector([]float64{1, 2, 3})
	b := Vector([]float64{1, 2, 3.0000001})
	assert.True(t, AllCloseArrays(a, b))

	c := Vector([]float64{1, 2, 3.1})
	assert.False(t, AllCloseArrays(a, c))

	assert.False(t, AllCloseArrays(a, Scalar(1)))

	n := Vector([]float64{math.NaN(), 1})
	m := Vector([]float64{math.NaN(), 1})
	assert.True(t, AllCloseArrays(n, m))
}

func TestArrayString(t *testing.T) {
	// Integral floats keep the trailing ".0" of Python's repr.
	assert.Equal(t, "3.0", Scalar(3).String())
	assert.Equal(t, "3.5", Scalar(3.5).String())
	assert.Equal(t, "1e+20", Scalar(1e20).String())
	assert.Equal(t, "[1.0 2.0 3.0]", Vector([]float64{1, 2, 3}).String())

	a, err := AsArray([]any{[]any{1.0, 2.0}, []any{3.0, 4.0}})
	require.NoError(t, err)
	assert.Equal(t, "[[1.0 2.0] [3.0 4.0]]", a.String())
}

func TestQuantityString(t *testing.T) {
	q := MustQuantity(3.0, MustParse("A/m"))
	assert.Equal(t, "3.0 A / m", q.String())

	q = MustQuantity(3.0, Dimensionless)
	assert.Equal(t, "3.0", q.String())
}
