package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MaMMoS-project/mammos-entity/errors"
)

// Array is an immutable n-dimensional numeric value. A nil shape marks a
// scalar. Data is stored flattened in row-major order.
type Array struct {
	data  []float64
	shape []int
}

// Scalar wraps a single number.
func Scalar(v float64) Array {
	return Array{data: []float64{v}}
}

// Vector wraps a 1-D slice, copying it.
func Vector(v []float64) Array {
	data := make([]float64, len(v))
	copy(data, v)
	return Array{data: data, shape: []int{len(v)}}
}

// AsArray converts numbers, slices, and nested slices (uniform per level)
// into an Array. Accepted element types: float64, float32, all int types,
// []float64, []int, []any, and nested combinations thereof.
func AsArray(value any) (Array, error) {
	switch v := value.(type) {
	case Array:
		return v, nil
	case float64:
		return Scalar(v), nil
	case float32:
		return Scalar(float64(v)), nil
	case int:
		return Scalar(float64(v)), nil
	case int64:
		return Scalar(float64(v)), nil
	case []float64:
		return Vector(v), nil
	case []int:
		data := make([]float64, len(v))
		for i, x := range v {
			data[i] = float64(x)
		}
		return Array{data: data, shape: []int{len(v)}}, nil
	case [][]float64:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return fromNested(items)
	default:
		return fromNested(value)
	}
}

// fromNested handles []any trees, validating that every level is uniform.
func fromNested(value any) (Array, error) {
	list, ok := value.([]any)
	if !ok {
		return Array{}, errors.Newf("cannot interpret %T as a numeric value", value)
	}
	if len(list) == 0 {
		return Array{shape: []int{0}}, nil
	}
	subs := make([]Array, len(list))
	for i, item := range list {
		sub, err := AsArray(item)
		if err != nil {
			return Array{}, err
		}
		if i > 0 && !shapeEqual(sub.shape, subs[0].shape) {
			return Array{}, errors.Wrapf(errors.ErrShapeMismatch,
				"ragged nested value: element %d has shape %v, expected %v", i, sub.shape, subs[0].shape)
		}
		subs[i] = sub
	}
	shape := append([]int{len(list)}, subs[0].shape...)
	data := make([]float64, 0, len(list)*subs[0].Size())
	for _, sub := range subs {
		data = append(data, sub.data...)
	}
	return Array{data: data, shape: shape}, nil
}

// IsScalar reports whether the array wraps a single dimensionless-shape
// number.
func (a Array) IsScalar() bool {
	return a.shape == nil
}

// Shape returns a copy of the shape (nil for scalars).
func (a Array) Shape() []int {
	if a.shape == nil {
		return nil
	}
	out := make([]int, len(a.shape))
	copy(out, a.shape)
	return out
}

// NDim returns the number of dimensions (0 for scalars).
func (a Array) NDim() int {
	return len(a.shape)
}

// Size returns the total number of elements.
func (a Array) Size() int {
	return len(a.data)
}

// Data returns a copy of the flattened data.
func (a Array) Data() []float64 {
	out := make([]float64, len(a.data))
	copy(out, a.data)
	return out
}

// ScalarValue returns the single value of a scalar array.
func (a Array) ScalarValue() (float64, bool) {
	if !a.IsScalar() || len(a.data) != 1 {
		return 0, false
	}
	return a.data[0], true
}

// Flatten returns a 1-D view of the data (scalars become length-1 vectors).
func (a Array) Flatten() Array {
	return Array{data: a.Data(), shape: []int{len(a.data)}}
}

// Map returns a new array with f applied to every element.
func (a Array) Map(f func(float64) float64) Array {
	data := make([]float64, len(a.data))
	for i, v := range a.data {
		data[i] = f(v)
	}
	return Array{data: data, shape: a.Shape()}
}

// Nested reconstructs the value as nested []any (or a bare float64 for
// scalars), for structured serialization.
func (a Array) Nested() any {
	if a.IsScalar() {
		return a.data[0]
	}
	return nest(a.data, a.shape)
}

func nest(data []float64, shape []int) any {
	if len(shape) == 1 {
		out := make([]any, shape[0])
		for i := range out {
			out[i] = data[i]
		}
		return out
	}
	stride := 1
	for _, s := range shape[1:] {
		stride *= s
	}
	out := make([]any, shape[0])
	for i := range out {
		out[i] = nest(data[i*stride:(i+1)*stride], shape[1:])
	}
	return out
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ShapeEqual reports whether two arrays have identical shapes.
func (a Array) ShapeEqual(b Array) bool {
	return shapeEqual(a.shape, b.shape)
}

// relative tolerance matching numpy.allclose defaults
const closeRtol = 1e-5

// AllCloseArrays reports element-wise numeric closeness with NaN treated as
// equal to NaN. Shapes must match.
func AllCloseArrays(a, b Array) bool {
	if !a.ShapeEqual(b) {
		return false
	}
	for i := range a.data {
		x, y := a.data[i], b.data[i]
		if math.IsNaN(x) && math.IsNaN(y) {
			continue
		}
		if math.Abs(x-y) > closeRtol*math.Abs(y)+1e-300 {
			return false
		}
	}
	return true
}

// String renders the array numpy-style: scalars plain, vectors bracketed.
func (a Array) String() string {
	if a.IsScalar() {
		return formatFloat(a.data[0])
	}
	return formatNested(a.Nested())
}

func formatNested(v any) string {
	switch x := v.(type) {
	case float64:
		return formatFloat(x)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = formatNested(item)
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

// formatFloat matches Python's float repr: integral values keep a trailing
// ".0", everything else renders shortest round-trip.
func formatFloat(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1e16 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
