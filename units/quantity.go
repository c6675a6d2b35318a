package units

import (
	"github.com/MaMMoS-project/mammos-entity/errors"
)

// Quantity is an immutable numeric value with a unit and no semantic
// (ontology) information attached.
type Quantity struct {
	value Array
	unit  Unit
}

// NewQuantity builds a quantity from any accepted numeric value (see
// AsArray) and a unit.
func NewQuantity(value any, unit Unit) (Quantity, error) {
	arr, err := AsArray(value)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: arr, unit: unit}, nil
}

// MustQuantity is NewQuantity for values known valid at compile time.
func MustQuantity(value any, unit Unit) Quantity {
	q, err := NewQuantity(value, unit)
	if err != nil {
		panic(err)
	}
	return q
}

// Value returns the numeric data.
func (q Quantity) Value() Array {
	return q.value
}

// Unit returns the unit.
func (q Quantity) Unit() Unit {
	return q.unit
}

// IsEquivalent reports whether the unit can be converted to target under
// the context. Units on different absolute scales (Cel vs K) only become
// equivalent once the temperature equivalency is enabled; without it a
// scale-only conversion would silently drop the offset.
func (u Unit) IsEquivalent(target Unit, ctx *Context) bool {
	if u.offset != target.offset && !ctx.hasTemperature() {
		return false
	}
	_, ok := ctx.equivalentDims(u.dims, target.dims)
	return ok
}

// To converts the quantity to target under the context. Returns
// ErrUnitMismatch when the dimensions are not equivalent.
func (q Quantity) To(target Unit, ctx *Context) (Quantity, error) {
	if !q.unit.IsEquivalent(target, ctx) {
		return Quantity{}, errors.Wrapf(errors.ErrUnitMismatch,
			"cannot convert %q to %q", q.unit.String(), target.String())
	}
	conv := ctx.conversion(q.unit, target)
	return Quantity{value: q.value.Map(conv), unit: target}, nil
}

// Flatten returns the quantity with its value flattened row-major.
func (q Quantity) Flatten() Quantity {
	return Quantity{value: q.value.Flatten(), unit: q.unit}
}

// AllClose reports numeric closeness of two quantities after converting b
// to a's unit under the context. Inconvertible units are never close.
func AllClose(a, b Quantity, ctx *Context) bool {
	converted, err := b.To(a.unit, ctx)
	if err != nil {
		return false
	}
	return AllCloseArrays(a.value, converted.value)
}

// String renders "value unit" ("value" alone when unitless).
func (q Quantity) String() string {
	if q.unit.Empty() {
		return q.value.String()
	}
	return q.value.String() + " " + q.unit.String()
}
