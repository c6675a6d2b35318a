package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaMMoS-project/mammos-entity/entity"
	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/ontology"
	"github.com/MaMMoS-project/mammos-entity/units"
)

func onto(t *testing.T) ontology.Graph {
	t.Helper()
	g, err := ontology.Default()
	require.NoError(t, err)
	return g
}

func ms(t *testing.T, g ontology.Graph, value any, opts ...entity.Option) *entity.Entity {
	t.Helper()
	e, err := entity.Ms(g, value, opts...)
	require.NoError(t, err)
	return e
}

func concat(t *testing.T, g ontology.Graph, elements []any, opts ...ConcatOption) *entity.Entity {
	t.Helper()
	e, err := ConcatFlat(g, elements, opts...)
	require.NoError(t, err)
	return e
}

func TestConcatFlat(t *testing.T) {
	g := onto(t)

	e1 := ms(t, g, 1.0)
	e2 := ms(t, g, 2.0)
	assert.True(t, concat(t, g, []any{e1, e2}).Equal(ms(t, g, []float64{1, 2})))
	assert.True(t, concat(t, g, []any{e1, e1, e2}).Equal(ms(t, g, []float64{1, 1, 2})))
	assert.True(t, concat(t, g, []any{e1, 4.0}).Equal(ms(t, g, []float64{1, 4})))
	assert.True(t, concat(t, g, []any{4.0, e1}).Equal(ms(t, g, []float64{4, 1})))
	assert.True(t, concat(t, g, []any{e1, [][]float64{{2}, {3}}}).Equal(ms(t, g, []float64{1, 2, 3})))

	e3 := ms(t, g, []float64{1, 2})
	assert.True(t, concat(t, g, []any{e3, e1, 4.0}).Equal(ms(t, g, []float64{1, 2, 1, 4})))

	// slices of elements are spliced into the argument list
	ee := []any{e1, e2, e3}
	assert.True(t, concat(t, g, []any{ee}).Equal(ms(t, g, []float64{1, 2, 1, 2})))
	assert.True(t, concat(t, g, []any{ee, 3.0}).Equal(ms(t, g, []float64{1, 2, 1, 2, 3})))
	assert.True(t, concat(t, g, []any{[]any{e1, 2.0}}).Equal(ms(t, g, []float64{1, 2})))

	// the first entity's unit wins; prefixed values convert
	e4 := ms(t, g, 1.0, entity.WithUnitExpr("kA/m"))
	assert.True(t, concat(t, g, []any{e1, e4}).Equal(ms(t, g, []float64{1, 1000})))
	kam := concat(t, g, []any{e4, e4})
	assert.True(t, kam.Equal(ms(t, g, []float64{1, 1}, entity.WithUnitExpr("kA/m"))))
	assert.Equal(t, "kA / m", kam.Unit().String())

	mam := concat(t, g, []any{e4, e4}, WithUnitExpr("mA/m"))
	assert.True(t, units.AllCloseArrays(units.Vector([]float64{1e6, 1e6}), mam.Value()))
	assert.Equal(t, "mA / m", mam.Unit().String())

	multi := ms(t, g, [][]float64{{1, 2}, {3, 4}})
	assert.True(t, concat(t, g, []any{multi, 5.0}).Equal(ms(t, g, []float64{1, 2, 3, 4, 5})))

	q := units.MustQuantity(3.0, units.MustParse("A/m"))
	assert.True(t, concat(t, g, []any{e1, q}).Equal(ms(t, g, []float64{1, 3})))
}

func TestConcatFlatDescription(t *testing.T) {
	g := onto(t)

	e := concat(t, g, []any{ms(t, g, 1.0)}, WithDescription("merged values"))
	assert.Equal(t, "merged values", e.Description())
}

func TestConcatFlatFailures(t *testing.T) {
	g := onto(t)

	_, err := ConcatFlat(g, nil)
	require.Error(t, err)

	_, err = ConcatFlat(g, []any{1.0, 2.0})
	require.Error(t, err)

	lengths := units.MustQuantity([]float64{1, 2}, units.MustParse("m"))
	_, err = ConcatFlat(g, []any{lengths, 3.0})
	require.Error(t, err)

	js, jerr := entity.Js(g, 2.0)
	require.NoError(t, jerr)
	_, err = ConcatFlat(g, []any{ms(t, g, 1.0), js})
	require.ErrorIs(t, err, errors.ErrLabelMismatch)

	// a quantity that cannot convert to the entity unit
	seconds := units.MustQuantity(1.0, units.MustParse("s"))
	_, err = ConcatFlat(g, []any{ms(t, g, 1.0), seconds})
	require.ErrorIs(t, err, errors.ErrUnitMismatch)
}
