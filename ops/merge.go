package ops

import (
	"strings"

	"github.com/MaMMoS-project/mammos-entity/entity"
	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/frame"
	"github.com/MaMMoS-project/mammos-entity/ontology"
	"github.com/MaMMoS-project/mammos-entity/units"
)

// MergeOptions mirrors frame.JoinOptions; see there for the key and suffix
// semantics.
type MergeOptions struct {
	How       string
	On        []string
	LeftOn    []string
	RightOn   []string
	Suffixes  []string
	Indicator bool
}

// Merge joins two collections like a dataframe merge while preserving
// ontology labels and units. Neither input is modified.
//
// One side is "preferred" (right for How "right", left otherwise) and wins
// label and unit conflicts: before joining, overlapping fields are checked
// for compatibility and converted to the preferred side's unit, so equal
// physical values match as join keys even when recorded in different units.
// After the join every column gets its entity or quantity metadata back
// from the collection it came from.
//
// Two collections without any common field and without explicit keys are
// combined column by column instead of joined.
func Merge(g ontology.Graph, left, right *entity.Collection, opts MergeOptions) (*entity.Collection, error) {
	left = left.DeepCopy()
	right = right.DeepCopy()

	preferred, other := left, right
	if strings.ToLower(opts.How) == frame.Right {
		preferred, other = right, left
	}

	matching := matchingKeys(preferred, other, opts.On)
	if err := harmonizeShared(g, preferred, other, matching); err != nil {
		return nil, err
	}
	if err := harmonizeSideKeys(preferred, other, left == preferred, opts); err != nil {
		return nil, err
	}

	if len(matching) == 0 && len(opts.LeftOn) == 0 && len(opts.RightOn) == 0 &&
		opts.How != frame.Cross {
		return concatColumns(left, right)
	}

	lf, err := left.ToFrame(false)
	if err != nil {
		return nil, err
	}
	rf, err := right.ToFrame(false)
	if err != nil {
		return nil, err
	}
	merged, err := frame.Join(lf, rf, frame.JoinOptions{
		How:       opts.How,
		On:        opts.On,
		LeftOn:    opts.LeftOn,
		RightOn:   opts.RightOn,
		Suffixes:  opts.Suffixes,
		Indicator: opts.Indicator,
	})
	if err != nil {
		return nil, err
	}

	return rebuild(g, merged, left, right, preferred, other, matching, opts)
}

// matchingKeys returns the field names harmonized before the join: the
// explicit "on" keys, or all names present in both collections.
func matchingKeys(preferred, other *entity.Collection, on []string) map[string]bool {
	keys := make(map[string]bool)
	if len(on) > 0 {
		for _, k := range on {
			keys[k] = true
		}
		return keys
	}
	for _, name := range preferred.Names() {
		if other.Has(name) {
			keys[name] = true
		}
	}
	return keys
}

// harmonizeShared validates overlapping fields and converts the other side
// to the preferred side's unit. Ontology labels spread from whichever side
// carries one.
func harmonizeShared(g ontology.Graph, preferred, other *entity.Collection, matching map[string]bool) error {
	for _, key := range preferred.Names() {
		if !matching[key] {
			continue
		}
		prefV, _ := preferred.Get(key)
		otherV, ok := other.Get(key)
		if !ok {
			continue
		}

		switch p := prefV.(type) {
		case *entity.Entity:
			switch o := otherV.(type) {
			case *entity.Entity:
				if p.OntologyLabel() != o.OntologyLabel() {
					return errors.Wrapf(errors.ErrLabelMismatch,
						"incompatible ontology labels for %q: %s and %s",
						key, p.OntologyLabel(), o.OntologyLabel())
				}
				converted, err := o.To(p.Unit())
				if err != nil {
					return err
				}
				other.MustSet(key, converted)
			case units.Quantity:
				if !p.Unit().IsEquivalent(o.Unit(), nil) {
					return errors.Wrapf(errors.ErrUnitMismatch,
						"incompatible units for %q: %s and %s", key, p.Unit(), o.Unit())
				}
				q, err := o.To(p.Unit(), nil)
				if err != nil {
					return err
				}
				e, err := entity.New(g, p.OntologyLabel(), q)
				if err != nil {
					return err
				}
				other.MustSet(key, e)
			}
		case units.Quantity:
			switch o := otherV.(type) {
			case *entity.Entity:
				if !p.Unit().IsEquivalent(o.Unit(), nil) {
					return errors.Wrapf(errors.ErrUnitMismatch,
						"incompatible units for %q: %s and %s", key, p.Unit(), o.Unit())
				}
				promoted, err := entity.New(g, o.OntologyLabel(), p)
				if err != nil {
					return err
				}
				preferred.MustSet(key, promoted)
				converted, err := o.To(p.Unit())
				if err != nil {
					return err
				}
				other.MustSet(key, converted)
			case units.Quantity:
				if !p.Unit().IsEquivalent(o.Unit(), nil) {
					return errors.Wrapf(errors.ErrUnitMismatch,
						"incompatible units for %q: %s and %s", key, p.Unit(), o.Unit())
				}
				q, err := o.To(p.Unit(), nil)
				if err != nil {
					return err
				}
				other.MustSet(key, q)
			}
		}
	}
	return nil
}

// harmonizeSideKeys converts pairs of left_on/right_on join keys to a
// common unit where the pair is compatible, leaving incompatible pairs for
// the join to sort out.
func harmonizeSideKeys(preferred, other *entity.Collection, leftPreferred bool, opts MergeOptions) error {
	if len(opts.LeftOn) == 0 || len(opts.RightOn) == 0 {
		return nil
	}
	prefKeys, otherKeys := opts.LeftOn, opts.RightOn
	if !leftPreferred {
		prefKeys, otherKeys = opts.RightOn, opts.LeftOn
	}
	for i := 0; i < len(prefKeys) && i < len(otherKeys); i++ {
		prefV, ok := preferred.Get(prefKeys[i])
		if !ok {
			continue
		}
		otherV, ok := other.Get(otherKeys[i])
		if !ok {
			continue
		}
		switch p := prefV.(type) {
		case *entity.Entity:
			switch o := otherV.(type) {
			case *entity.Entity:
				if p.OntologyLabel() == o.OntologyLabel() {
					converted, err := o.To(p.Unit())
					if err != nil {
						return err
					}
					other.MustSet(otherKeys[i], converted)
				}
			case units.Quantity:
				if p.Unit().IsEquivalent(o.Unit(), nil) {
					q, err := o.To(p.Unit(), nil)
					if err != nil {
						return err
					}
					other.MustSet(otherKeys[i], q)
				}
			}
		case units.Quantity:
			if o, ok := otherV.(*entity.Entity); ok && p.Unit().IsEquivalent(o.Unit(), nil) {
				converted, err := o.To(p.Unit())
				if err != nil {
					return err
				}
				other.MustSet(otherKeys[i], converted)
			}
		}
	}
	return nil
}

// concatColumns places the fields of both collections side by side.
func concatColumns(left, right *entity.Collection) (*entity.Collection, error) {
	out := entity.NewCollection("")
	var err error
	add := func(name string, value any) {
		if err == nil {
			err = out.Set(name, value)
		}
	}
	left.Each(add)
	right.Each(add)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// rebuild reattaches entity and quantity metadata to the joined columns.
func rebuild(g ontology.Graph, merged *frame.Frame, left, right, preferred, other *entity.Collection,
	matching map[string]bool, opts MergeOptions) (*entity.Collection, error) {
	suffixes := opts.Suffixes
	if suffixes == nil {
		suffixes = []string{"_x", "_y"}
	}

	result := entity.NewCollection("")
	if merged.NumRows() == 0 {
		// a join without matches yields no fields at all
		return result, nil
	}
	for _, name := range merged.Names() {
		key := name
		var label string
		var unit units.Unit
		var haveUnit bool

		if !preferred.Has(key) && !other.Has(key) {
			matched := false
			for i, suffix := range suffixes {
				src := left
				if i == 1 {
					src = right
				}
				if !strings.HasSuffix(key, suffix) {
					continue
				}
				base := strings.TrimSuffix(key, suffix)
				obj, ok := src.Get(base)
				if !ok {
					continue
				}
				key = base
				matched = true
				switch v := obj.(type) {
				case *entity.Entity:
					label, unit, haveUnit = v.OntologyLabel(), v.Unit(), true
				case units.Quantity:
					unit, haveUnit = v.Unit(), true
				}
				break
			}
			// columns the join invented, e.g. the indicator
			if !matched {
				if err := setRawColumn(result, name, merged); err != nil {
					return nil, err
				}
				continue
			}
		}

		if matching[key] {
			prefV, _ := preferred.Get(key)
			otherV, _ := other.Get(key)
			if e, ok := prefV.(*entity.Entity); ok {
				label, unit, haveUnit = e.OntologyLabel(), e.Unit(), true
			} else if e, ok := otherV.(*entity.Entity); ok {
				label, unit, haveUnit = e.OntologyLabel(), e.Unit(), true
			} else if q, ok := prefV.(units.Quantity); ok {
				unit, haveUnit = q.Unit(), true
			} else if q, ok := otherV.(units.Quantity); ok {
				unit, haveUnit = q.Unit(), true
			}
		} else {
			obj, ok := preferred.Get(key)
			if !ok {
				obj, _ = other.Get(key)
			}
			if e, ok := obj.(*entity.Entity); ok && label == "" {
				label, unit, haveUnit = e.OntologyLabel(), e.Unit(), true
			} else if q, ok := obj.(units.Quantity); ok && !haveUnit {
				unit, haveUnit = q.Unit(), true
			}
		}

		values, err := merged.Floats(name)
		if err != nil {
			if err := setRawColumn(result, name, merged); err != nil {
				return nil, err
			}
			continue
		}
		switch {
		case label != "":
			e, err := entity.New(g, label, units.Vector(values), entity.WithUnit(unit))
			if err != nil {
				return nil, err
			}
			if err := result.Set(name, e); err != nil {
				return nil, err
			}
		case haveUnit:
			if err := result.Set(name, units.MustQuantity(units.Vector(values), unit)); err != nil {
				return nil, err
			}
		default:
			if err := result.Set(name, units.Vector(values)); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// setRawColumn stores a joined column without metadata, as text when any
// cell is a string and as plain numbers otherwise.
func setRawColumn(c *entity.Collection, name string, merged *frame.Frame) error {
	if values, err := merged.Floats(name); err == nil {
		return c.Set(name, units.Vector(values))
	}
	col, _ := merged.Column(name)
	strs := make([]string, len(col.Cells))
	for i, cell := range col.Cells {
		if s, ok := cell.(string); ok {
			strs[i] = s
		}
	}
	return c.Set(name, strs)
}
