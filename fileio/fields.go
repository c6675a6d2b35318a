package fileio

import (
	"github.com/MaMMoS-project/mammos-entity/entity"
	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/ontology"
	"github.com/MaMMoS-project/mammos-entity/units"
)

// field is the on-disk view of one collection entry. Entities carry label,
// IRI, unit and description; quantities carry only a unit; raw arrays and
// text columns carry neither. hasUnit distinguishes a dimensionless entity
// or quantity (unit present but empty) from raw data (no unit at all).
type field struct {
	name        string
	label       string
	iri         string
	unit        string
	hasUnit     bool
	description string
	isText      bool
	text        []string
	values      units.Array
}

func collectFields(c *entity.Collection) []field {
	out := make([]field, 0, c.Len())
	c.Each(func(name string, value any) {
		f := field{name: name}
		switch v := value.(type) {
		case *entity.Entity:
			f.label = v.OntologyLabel()
			f.iri = v.Ontology().IRI
			f.unit = v.Unit().String()
			f.hasUnit = true
			f.description = v.Description()
			f.values = v.Value()
		case units.Quantity:
			f.unit = v.Unit().String()
			f.hasUnit = true
			f.values = v.Value()
		case units.Array:
			f.values = v
		case []string:
			f.isText = true
			f.text = v
		}
		out = append(out, f)
	})
	return out
}

// buildColumn reconstructs one collection entry from file metadata. A label
// yields an Entity (validated against the ontology, IRI cross-checked), a
// bare unit yields a Quantity, and everything else passes through raw.
func buildColumn(g ontology.Graph, f field, value any) (any, error) {
	switch {
	case f.label != "":
		var opts []entity.Option
		if f.unit != "" {
			opts = append(opts, entity.WithUnitExpr(f.unit))
		}
		if f.description != "" {
			opts = append(opts, entity.WithDescription(f.description))
		}
		e, err := entity.New(g, f.label, value, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", f.name)
		}
		if err := checkIRI(e, f.iri); err != nil {
			return nil, err
		}
		return e, nil
	case f.hasUnit && !f.isText:
		unit, err := units.Parse(f.unit)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", f.name)
		}
		q, err := units.NewQuantity(value, unit)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", f.name)
		}
		return q, nil
	default:
		return value, nil
	}
}
