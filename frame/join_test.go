package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFrame(t *testing.T, cols ...*Column) *Frame {
	t.Helper()
	f := New()
	for _, c := range cols {
		require.NoError(t, f.AddColumn(c.Name, c.Cells))
	}
	return f
}

func floats(vs ...float64) []any {
	cells := make([]any, len(vs))
	for i, v := range vs {
		cells[i] = v
	}
	return cells
}

func columnFloats(t *testing.T, f *Frame, name string) []float64 {
	t.Helper()
	vs, err := f.Floats(name)
	require.NoError(t, err)
	return vs
}

func TestJoinInnerSingleKey(t *testing.T) {
	left := buildFrame(t,
		&Column{"x", floats(1, 2, 3, 3)},
		&Column{"y", floats(1, 1, 3, 3)},
		&Column{"Ms", floats(1, 2, 3, 3.5)},
	)
	right := buildFrame(t,
		&Column{"x", floats(2, 3, 4, 3)},
		&Column{"y", floats(1, 3, 5, 7)},
		&Column{"A", floats(22, 33, 44, 33.55)},
	)

	out, err := Join(left, right, JoinOptions{How: Inner, On: []string{"x"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y_x", "Ms", "y_y", "A"}, out.Names())
	assert.Equal(t, []float64{2, 3, 3, 3, 3}, columnFloats(t, out, "x"))
	assert.Equal(t, []float64{1, 3, 3, 3, 3}, columnFloats(t, out, "y_x"))
	assert.Equal(t, []float64{1, 3, 7, 3, 7}, columnFloats(t, out, "y_y"))
	assert.Equal(t, []float64{2, 3, 3, 3.5, 3.5}, columnFloats(t, out, "Ms"))
	assert.Equal(t, []float64{22, 33, 33.55, 33, 33.55}, columnFloats(t, out, "A"))
}

func TestJoinInnerTwoKeys(t *testing.T) {
	left := buildFrame(t,
		&Column{"x", floats(1, 2, 3, 3)},
		&Column{"y", floats(1, 1, 3, 3)},
		&Column{"Ms", floats(1, 2, 3, 3.5)},
	)
	right := buildFrame(t,
		&Column{"x", floats(2, 3, 4, 3)},
		&Column{"y", floats(1, 3, 5, 7)},
		&Column{"A", floats(22, 33, 44, 33.55)},
	)

	out, err := Join(left, right, JoinOptions{How: Inner, On: []string{"x", "y"}})
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 3, 3}, columnFloats(t, out, "x"))
	assert.Equal(t, []float64{1, 3, 3}, columnFloats(t, out, "y"))
	assert.Equal(t, []float64{2, 3, 3.5}, columnFloats(t, out, "Ms"))
	assert.Equal(t, []float64{22, 33, 33}, columnFloats(t, out, "A"))
}

func TestJoinLeft(t *testing.T) {
	left := buildFrame(t,
		&Column{"x", floats(1, 2, 3)},
		&Column{"y", floats(1, 2, 3)},
		&Column{"Ms", floats(1, 2, 3)},
	)
	right := buildFrame(t,
		&Column{"x", floats(2, 3, 4)},
		&Column{"y", floats(2, 3, 4)},
		&Column{"A", floats(2, 3, 4)},
	)

	out, err := Join(left, right, JoinOptions{How: Left, On: []string{"x", "y"}})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, columnFloats(t, out, "x"))
	a := columnFloats(t, out, "A")
	assert.True(t, a[0] != a[0]) // NaN for the unmatched left row
	assert.Equal(t, []float64{2, 3}, a[1:])
}

func TestJoinRight(t *testing.T) {
	left := buildFrame(t,
		&Column{"x", floats(1, 2, 3)},
		&Column{"Ms", floats(1, 2, 3)},
	)
	right := buildFrame(t,
		&Column{"x", floats(2, 3, 4)},
		&Column{"A", floats(2, 3, 4)},
	)

	out, err := Join(left, right, JoinOptions{How: Right, On: []string{"x"}})
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 3, 4}, columnFloats(t, out, "x"))
	ms := columnFloats(t, out, "Ms")
	assert.Equal(t, []float64{2, 3}, ms[:2])
	assert.True(t, ms[2] != ms[2])
	assert.Equal(t, []float64{2, 3, 4}, columnFloats(t, out, "A"))
}

func TestJoinOuterWithIndicator(t *testing.T) {
	left := buildFrame(t,
		&Column{"x", floats(1, 2, 3)},
		&Column{"y", floats(1, 2, 3)},
		&Column{"Ms", floats(1, 2, 3)},
	)
	right := buildFrame(t,
		&Column{"x", floats(2, 3, 4)},
		&Column{"y", floats(2, 3, 4)},
		&Column{"Ms", floats(2, 3, 4)},
	)

	out, err := Join(left, right, JoinOptions{How: Outer, On: []string{"x", "y"}, Indicator: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y", "Ms_x", "Ms_y", "_merge"}, out.Names())
	assert.Equal(t, []float64{1, 2, 3, 4}, columnFloats(t, out, "x"))
	assert.Equal(t, []float64{1, 2, 3, 4}, columnFloats(t, out, "y"))

	msx := columnFloats(t, out, "Ms_x")
	assert.Equal(t, []float64{1, 2, 3}, msx[:3])
	assert.True(t, msx[3] != msx[3])

	msy := columnFloats(t, out, "Ms_y")
	assert.True(t, msy[0] != msy[0])
	assert.Equal(t, []float64{2, 3, 4}, msy[1:])

	ind, ok := out.Column(MergeColumn)
	require.True(t, ok)
	assert.Equal(t, []any{"left_only", "both", "both", "right_only"}, ind.Cells)
}

func TestJoinCross(t *testing.T) {
	left := buildFrame(t,
		&Column{"x", floats(1, 2, 3)},
		&Column{"Ms", floats(1, 2, 3)},
	)
	right := buildFrame(t,
		&Column{"x", floats(2, 3, 4)},
		&Column{"Ms", floats(2, 3, 4)},
	)

	_, err := Join(left, right, JoinOptions{How: Cross, On: []string{"x"}})
	require.Error(t, err)

	out, err := Join(left, right, JoinOptions{How: Cross})
	require.NoError(t, err)
	assert.Equal(t, []string{"x_x", "Ms_x", "x_y", "Ms_y"}, out.Names())
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2, 3, 3, 3}, columnFloats(t, out, "x_x"))
	assert.Equal(t, []float64{2, 3, 4, 2, 3, 4, 2, 3, 4}, columnFloats(t, out, "x_y"))
}

func TestJoinDifferentKeyNames(t *testing.T) {
	left := buildFrame(t,
		&Column{"x_array", floats(1, 2)},
		&Column{"Ms", floats(100, 200)},
	)
	right := buildFrame(t,
		&Column{"x", floats(1, 2)},
		&Column{"A", floats(0.8, 0.8)},
	)

	out, err := Join(left, right, JoinOptions{How: Inner, LeftOn: []string{"x_array"}, RightOn: []string{"x"}})
	require.NoError(t, err)

	// both key columns survive
	assert.Equal(t, []string{"x_array", "Ms", "x", "A"}, out.Names())
	assert.Equal(t, []float64{1, 2}, columnFloats(t, out, "x_array"))
	assert.Equal(t, []float64{1, 2}, columnFloats(t, out, "x"))
	assert.Equal(t, []float64{100, 200}, columnFloats(t, out, "Ms"))
}

func TestJoinNaturalKeys(t *testing.T) {
	left := buildFrame(t,
		&Column{"x", floats(1, 2, 3)},
		&Column{"Ms", floats(1, 2, 3)},
	)
	right := buildFrame(t,
		&Column{"x", floats(2, 3, 4)},
		&Column{"Ms", floats(22, 33, 44)},
	)

	// joining on all shared columns yields no matching rows here
	out, err := Join(left, right, JoinOptions{How: Inner})
	require.NoError(t, err)
	assert.Equal(t, 0, out.NumRows())
	assert.Equal(t, []string{"x", "Ms"}, out.Names())
}

func TestJoinSuffixes(t *testing.T) {
	left := buildFrame(t,
		&Column{"x", floats(1, 2, 3)},
		&Column{"Ms", floats(1, 2, 3)},
	)
	right := buildFrame(t,
		&Column{"x", floats(2, 3, 4)},
		&Column{"Ms", floats(22, 33, 44)},
	)

	out, err := Join(left, right, JoinOptions{How: Inner, On: []string{"x"}, Suffixes: []string{"_1", "_2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "Ms_1", "Ms_2"}, out.Names())

	_, err = Join(left, right, JoinOptions{How: Inner, On: []string{"x"}, Suffixes: []string{"", ""}})
	require.Error(t, err)
}

func TestJoinValidation(t *testing.T) {
	left := buildFrame(t, &Column{"x", floats(1)})
	right := buildFrame(t, &Column{"y", floats(1)})

	_, err := Join(left, right, JoinOptions{How: "sideways"})
	require.Error(t, err)

	_, err = Join(left, right, JoinOptions{How: Inner})
	require.Error(t, err) // no shared columns

	_, err = Join(left, right, JoinOptions{How: Inner, On: []string{"x"}})
	require.Error(t, err) // key missing on the right

	_, err = Join(left, right, JoinOptions{How: Inner, On: []string{"x"}, LeftOn: []string{"x"}, RightOn: []string{"y"}})
	require.Error(t, err)

	_, err = Join(left, right, JoinOptions{How: Inner, LeftOn: []string{"x"}, RightOn: []string{"y", "y"}})
	require.Error(t, err)
}
