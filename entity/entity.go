// Package entity couples physical quantities to concepts of the MaMMoS
// magnetic materials ontology. An Entity carries a concept label, a numeric
// value with a unit validated against the concept's SI unit, and a free-text
// description.
package entity

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/ontology"
	"github.com/MaMMoS-project/mammos-entity/units"
)

// defaultAliases rewrites UCUM codes we do not want as default units when
// parsing the ontology's SI unit (degree Celsius collapses to Kelvin,
// hectare to square metres).
var defaultAliases = map[string]string{
	"Cel":  "K",
	"mCel": "K",
	"har":  "m2",
}

// equivalencies enabled everywhere entities convert or compare units.
func equivalencies() *units.Context {
	return units.Temperature()
}

// Entity is an immutable ontology-linked quantity. Construction validates
// the unit against the concept, so an Entity always holds a value expressed
// in a unit convertible to its concept's SI unit.
type Entity struct {
	label       string
	quantity    units.Quantity
	description string
	concept     *ontology.Concept
}

type config struct {
	unit     units.Unit
	unitExpr string
	unitSet  bool

	description string
}

// Option configures New.
type Option func(*config)

// WithUnit sets the entity's unit explicitly.
func WithUnit(unit units.Unit) Option {
	return func(c *config) {
		c.unit = unit
		c.unitSet = true
		c.unitExpr = ""
	}
}

// WithUnitExpr sets the entity's unit from a unit expression like "kA/m".
func WithUnitExpr(expr string) Option {
	return func(c *config) {
		c.unitExpr = expr
		c.unitSet = true
	}
}

// WithDescription sets the entity's description.
func WithDescription(description string) Option {
	return func(c *config) {
		c.description = description
	}
}

// New constructs an Entity for the concept named by label.
//
// value may be a plain number or nested numeric slices, a units.Quantity, or
// another *Entity (which must carry the same label); nil means the scalar 0.
// Without WithUnit/WithUnitExpr the unit is taken from the value when it
// carries one, and otherwise defaults to the concept's resolved SI unit. An
// explicit unit must be convertible to the SI unit under the
// absolute-temperature equivalency; a value carrying a different unit is
// converted to the explicit one.
func New(g ontology.Graph, label string, value any, opts ...Option) (*Entity, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.unitExpr != "" {
		parsed, err := units.Parse(cfg.unitExpr)
		if err != nil {
			return nil, err
		}
		cfg.unit = parsed
	}

	concept, err := g.GetByLabel(label)
	if err != nil {
		return nil, err
	}

	var quantity units.Quantity
	var carried bool
	switch v := value.(type) {
	case *Entity:
		if v.label != label {
			return nil, errors.Wrapf(errors.ErrLabelMismatch,
				"incompatible label for initialization: trying to initialize a %s with a %s",
				label, v.label)
		}
		quantity, carried = v.quantity, true
	case units.Quantity:
		quantity, carried = v, true
	case nil:
		quantity = units.MustQuantity(0.0, units.Dimensionless)
	default:
		quantity, err = units.NewQuantity(v, units.Dimensionless)
		if err != nil {
			return nil, err
		}
	}

	code, err := ontology.ResolveSIUnit(g, label)
	if err != nil {
		return nil, err
	}
	siUnit, err := units.ParseWithAliases(code, defaultAliases)
	if err != nil {
		return nil, errors.Wrapf(err, "SI unit of %s", label)
	}

	switch {
	case cfg.unitSet:
		if !siUnit.IsEquivalent(cfg.unit, equivalencies()) {
			return nil, errors.Wrapf(errors.ErrUnitMismatch,
				"the unit %q is not equivalent to the unit of %s %q",
				cfg.unit.String(), label, siUnit.String())
		}
		if carried {
			quantity, err = quantity.To(cfg.unit, equivalencies())
			if err != nil {
				return nil, err
			}
		} else {
			quantity = units.MustQuantity(quantity.Value(), cfg.unit)
		}
	case carried:
		if !siUnit.IsEquivalent(quantity.Unit(), equivalencies()) {
			return nil, errors.Wrapf(errors.ErrUnitMismatch,
				"the unit %q is not equivalent to the unit of %s %q",
				quantity.Unit().String(), label, siUnit.String())
		}
	default:
		quantity = units.MustQuantity(quantity.Value(), siUnit)
	}

	return &Entity{
		label:       label,
		quantity:    quantity,
		description: cfg.description,
		concept:     concept,
	}, nil
}

// MustNew is New for entities known valid at compile time.
func MustNew(g ontology.Graph, label string, value any, opts ...Option) *Entity {
	e, err := New(g, label, value, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// OntologyLabel returns the concept label.
func (e *Entity) OntologyLabel() string {
	return e.label
}

// Ontology returns the resolved concept.
func (e *Entity) Ontology() *ontology.Concept {
	return e.concept
}

// OntologyLabelWithIRI returns "label iri".
func (e *Entity) OntologyLabelWithIRI() string {
	return e.label + " " + e.concept.IRI
}

// Value returns the raw numeric data.
func (e *Entity) Value() units.Array {
	return e.quantity.Value()
}

// Unit returns the unit.
func (e *Entity) Unit() units.Unit {
	return e.quantity.Unit()
}

// Quantity returns value and unit without the concept label. Detaching the
// label is intentional: arithmetic on the quantity no longer represents the
// concept unless explicitly re-wrapped.
func (e *Entity) Quantity() units.Quantity {
	return e.quantity
}

// Description returns the free-text description.
func (e *Entity) Description() string {
	return e.description
}

// WithDescription returns a copy with a new description.
func (e *Entity) WithDescription(description string) *Entity {
	out := *e
	out.description = description
	return &out
}

// AxisLabel renders the label for plot axes: camel-case words separated by
// spaces, with the unit appended when there is one.
//
//	SpontaneousMagnetization in A / m -> "Spontaneous Magnetization (A / m)"
//	DemagnetizingFactor (unitless)    -> "Demagnetizing Factor"
func (e *Entity) AxisLabel() string {
	var b strings.Builder
	for i, r := range e.label {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if u := e.Unit().String(); u != "" {
		b.WriteString(" (" + u + ")")
	}
	return b.String()
}

// To converts the entity to a different unit, keeping label and description.
func (e *Entity) To(target units.Unit) (*Entity, error) {
	converted, err := e.quantity.To(target, equivalencies())
	if err != nil {
		return nil, err
	}
	return &Entity{
		label:       e.label,
		quantity:    converted,
		description: e.description,
		concept:     e.concept,
	}, nil
}

// SI returns the entity converted to coherent SI base units.
func (e *Entity) SI() (*Entity, error) {
	return e.To(e.Unit().SI())
}

// Equal reports whether two entities represent the same data: same concept
// label, same shape, and numerically close values once converted to a
// common unit, so unit prefixes have no effect. The description is ignored.
func (e *Entity) Equal(other *Entity) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.label == other.label &&
		e.Value().ShapeEqual(other.Value()) &&
		units.AllClose(e.quantity, other.quantity, equivalencies())
}

// String reproduces the construction arguments, putting the value on its
// own line when it has more than four elements.
func (e *Entity) String() string {
	sep := ", "
	if e.Value().Size() > 4 {
		sep = ",\n    "
	}
	args := []string{
		fmt.Sprintf("ontology_label=%s", e.label),
		fmt.Sprintf("value=%s", e.Value().String()),
	}
	if u := e.Unit().String(); u != "" {
		args = append(args, fmt.Sprintf("unit=%s", u))
	}
	if e.description != "" {
		args = append(args, fmt.Sprintf("description=%q", e.description))
	}
	return "Entity(" + strings.Join(args, sep) + ")"
}
