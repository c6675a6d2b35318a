// Package ops provides entity-aware tabular operations on collections:
// flat concatenation into a single entity and a dataframe-style merge that
// preserves ontology labels and units.
package ops

import (
	"github.com/MaMMoS-project/mammos-entity/entity"
	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/ontology"
	"github.com/MaMMoS-project/mammos-entity/units"
)

type concatConfig struct {
	unit     units.Unit
	unitSet  bool
	unitExpr string

	description string
}

// ConcatOption configures ConcatFlat.
type ConcatOption func(*concatConfig)

// WithUnit converts all inputs to this unit instead of the first entity's.
func WithUnit(unit units.Unit) ConcatOption {
	return func(c *concatConfig) {
		c.unit = unit
		c.unitSet = true
		c.unitExpr = ""
	}
}

// WithUnitExpr is WithUnit taking a unit expression like "MA/m".
func WithUnitExpr(expr string) ConcatOption {
	return func(c *concatConfig) {
		c.unitExpr = expr
		c.unitSet = true
	}
}

// WithDescription sets the description of the resulting entity.
func WithDescription(description string) ConcatOption {
	return func(c *concatConfig) {
		c.description = description
	}
}

// ConcatFlat concatenates entities, quantities and plain numbers into one
// flat entity. At least one input must be an entity, and all entities must
// share the same ontology label. Values are flattened in C order and
// converted to the unit of the first entity (or the WithUnit option); bare
// numbers are interpreted in that unit. An []any element is spliced into
// the argument list.
func ConcatFlat(g ontology.Graph, elements []any, opts ...ConcatOption) (*entity.Entity, error) {
	var cfg concatConfig
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

	var flat []any
	for _, e := range elements {
		if list, ok := e.([]any); ok {
			flat = append(flat, list...)
		} else {
			flat = append(flat, e)
		}
	}

	label := ""
	unit := cfg.unit
	for _, e := range flat {
		ent, ok := e.(*entity.Entity)
		if !ok {
			continue
		}
		if label == "" {
			label = ent.OntologyLabel()
			if !cfg.unitSet {
				unit = ent.Unit()
			}
		} else if label != ent.OntologyLabel() {
			return nil, errors.Wrapf(errors.ErrLabelMismatch,
				"entities with different ontology labels are not supported: %s and %s",
				label, ent.OntologyLabel())
		}
	}
	if label == "" {
		return nil, errors.New("at least one Entity is required")
	}

	var values []float64
	for _, e := range flat {
		var q units.Quantity
		switch v := e.(type) {
		case *entity.Entity:
			q = v.Quantity()
		case units.Quantity:
			q = v
		default:
			arr, err := units.AsArray(v)
			if err != nil {
				return nil, err
			}
			values = append(values, arr.Flatten().Data()...)
			continue
		}
		converted, err := q.Flatten().To(unit, nil)
		if err != nil {
			return nil, err
		}
		values = append(values, converted.Value().Data()...)
	}

	return entity.New(g, label, units.MustQuantity(units.Vector(values), unit),
		entity.WithDescription(cfg.description))
}
