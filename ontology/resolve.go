package ontology

import (
	"strings"

	"github.com/MaMMoS-project/mammos-entity/errors"
)

// Labels of the unit classification concepts the resolver keys on.
const (
	dimensionlessUnit    = "DimensionlessUnit"
	siDimensionalUnit    = "SIDimensionalUnit"
	siNonCoherentUnit    = "SINonCoherentUnit"
	siNonCoherentDerived = "SINonCoherentDerivedUnit"
	derivedUnit          = "DerivedUnit"
)

// Graph is the slice of ontology access the unit resolver needs. *Ontology
// implements it.
type Graph interface {
	GetByLabel(label string) (*Concept, error)
	Ancestors(label string) ([]*Concept, error)
	Subclasses(label string) []*Concept
	HasAncestor(label, ancestor string) bool
}

// ResolveSIUnit returns the UCUM code of the canonical SI unit for the
// concept named by label, or "" for unitless concepts. The concept's
// ancestors are walked starting from the concept itself; the first one
// declaring a measurement unit decides:
//
//   - the dimensionless unit concept means no unit;
//   - a unit family with subclasses is narrowed to one member (see
//     siUnitFromCandidates);
//   - a unit concept without subclasses contributes its own UCUM code.
//
// A concept no ancestor of which declares a measurement unit is unitless.
func ResolveSIUnit(g Graph, label string) (string, error) {
	ancestors, err := g.Ancestors(label)
	if err != nil {
		return "", err
	}
	for _, ancestor := range ancestors {
		if ancestor.MeasurementUnit == "" {
			continue
		}
		if ancestor.MeasurementUnit == dimensionlessUnit {
			return "", nil
		}
		unitConcept, err := g.GetByLabel(ancestor.MeasurementUnit)
		if err != nil {
			return "", errors.Wrapf(err, "measurement unit of %q", ancestor.Label)
		}
		if candidates := g.Subclasses(unitConcept.Label); len(candidates) > 0 {
			return siUnitFromCandidates(g, candidates)
		}
		if len(unitConcept.UCUMCodes) == 0 {
			return "", errors.Wrapf(errors.ErrIntegrity,
				"unit concept %q has no UCUM code", unitConcept.Label)
		}
		return unitConcept.UCUMCodes[0], nil
	}
	return "", nil
}

// siUnitFromCandidates narrows a unit family to one member and returns its
// UCUM code. Only SI dimensional units that are not non-coherent survive;
// members that are not derived units are preferred when any exist; the
// result is the first parenthesis-free code of the survivors in declaration
// order (parenthesised codes are not parseable as unit expressions). Which
// member wins carries no physical meaning, so only determinism matters.
func siUnitFromCandidates(g Graph, candidates []*Concept) (string, error) {
	var possible []*Concept
	for _, c := range candidates {
		if g.HasAncestor(c.Label, siDimensionalUnit) &&
			!g.HasAncestor(c.Label, siNonCoherentUnit) &&
			!g.HasAncestor(c.Label, siNonCoherentDerived) {
			possible = append(possible, c)
		}
	}
	var notDerived []*Concept
	for _, c := range possible {
		if !g.HasAncestor(c.Label, derivedUnit) {
			notDerived = append(notDerived, c)
		}
	}
	if len(notDerived) > 0 {
		possible = notDerived
	}
	for _, c := range possible {
		for _, code := range c.UCUMCodes {
			if !strings.Contains(code, "(") {
				return code, nil
			}
		}
	}
	return "", errors.Wrap(errors.ErrIntegrity, "no usable SI unit among candidates")
}
