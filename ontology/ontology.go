// Package ontology provides read-only access to the MaMMoS magnetic
// materials ontology (a subset of EMMO): concept lookup by label, ancestor
// traversal, label search, and SI unit resolution.
package ontology

import (
	"regexp"
	"sort"
	"strings"

	"github.com/MaMMoS-project/mammos-entity/errors"
)

// Concept is one ontology class. Concepts are identified by their unique
// label; PrefLabel defaults to the label when the snapshot does not record
// one. MeasurementUnit names the unit-family concept a quantity concept
// measures in, or is empty for concepts that are not quantities.
type Concept struct {
	Label           string   `yaml:"label"`
	PrefLabel       string   `yaml:"prefLabel,omitempty"`
	AltLabels       []string `yaml:"altLabels,omitempty"`
	IRI             string   `yaml:"iri,omitempty"`
	Parents         []string `yaml:"parents,omitempty"`
	MeasurementUnit string   `yaml:"measurementUnit,omitempty"`
	UCUMCodes       []string `yaml:"ucumCodes,omitempty"`
}

// Ontology is an immutable concept store. Declaration order of the loaded
// snapshot is preserved: Subclasses and the unit resolver's candidate
// iteration depend on it for deterministic results.
type Ontology struct {
	concepts []*Concept
	byLabel  map[string]*Concept
}

// New builds an ontology from a concept list. Labels must be unique;
// duplicate labels and empty labels are rejected. Parent and measurement
// unit references may point outside the list (the snapshot is a subset of a
// larger ontology); dangling references are simply never reached by walks.
func New(concepts []*Concept) (*Ontology, error) {
	o := &Ontology{
		concepts: concepts,
		byLabel:  make(map[string]*Concept, len(concepts)),
	}
	for _, c := range concepts {
		if c.Label == "" {
			return nil, errors.Newf("concept with empty label (iri %q)", c.IRI)
		}
		if _, ok := o.byLabel[c.Label]; ok {
			return nil, errors.Newf("duplicate concept label %q", c.Label)
		}
		if c.PrefLabel == "" {
			c.PrefLabel = c.Label
		}
		o.byLabel[c.Label] = c
	}
	return o, nil
}

// Len returns the number of concepts.
func (o *Ontology) Len() int {
	return len(o.concepts)
}

// Concepts returns all concepts in declaration order.
func (o *Ontology) Concepts() []*Concept {
	return o.concepts
}

// GetByLabel returns the concept with the given label. The primary label,
// the preferred label and the alternative labels all resolve; the primary
// label wins on conflict. Returns ErrUnknownConcept when nothing matches.
func (o *Ontology) GetByLabel(label string) (*Concept, error) {
	if c, ok := o.byLabel[label]; ok {
		return c, nil
	}
	for _, c := range o.concepts {
		if c.PrefLabel == label {
			return c, nil
		}
		for _, alt := range c.AltLabels {
			if alt == label {
				return c, nil
			}
		}
	}
	return nil, errors.Wrapf(errors.ErrUnknownConcept, "label %q", label)
}

// Ancestors returns the concept itself followed by its superclasses in
// breadth-first order over the declared parents, each concept at most once.
func (o *Ontology) Ancestors(label string) ([]*Concept, error) {
	c, err := o.GetByLabel(label)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{c.Label: true}
	out := []*Concept{c}
	queue := []*Concept{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range cur.Parents {
			pc, ok := o.byLabel[p]
			if !ok || seen[pc.Label] {
				continue
			}
			seen[pc.Label] = true
			out = append(out, pc)
			queue = append(queue, pc)
		}
	}
	return out, nil
}

// HasAncestor reports whether the concept named by label is ancestor itself
// or has it among its transitive superclasses. Unknown labels report false.
func (o *Ontology) HasAncestor(label, ancestor string) bool {
	ancestors, err := o.Ancestors(label)
	if err != nil {
		return false
	}
	for _, a := range ancestors {
		if a.Label == ancestor {
			return true
		}
	}
	return false
}

// Subclasses returns the direct subclasses of the concept named by label,
// in declaration order.
func (o *Ontology) Subclasses(label string) []*Concept {
	var out []*Concept
	for _, c := range o.concepts {
		for _, p := range c.Parents {
			if p == label {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// SearchLabels searches text in the label, preferred label and alternative
// labels of every concept and returns the sorted preferred labels of the
// matches. The match is case sensitive; '*' in text matches any run of
// characters. With autoWildcard, text is wrapped in wildcards so any label
// containing it matches; without it only whole labels match.
func (o *Ontology) SearchLabels(text string, autoWildcard bool) []string {
	if autoWildcard {
		text = "*" + text + "*"
	}
	re := wildcardRegexp(text)
	seen := make(map[string]bool)
	var out []string
	for _, c := range o.concepts {
		if matchesConcept(re, c) && !seen[c.PrefLabel] {
			seen[c.PrefLabel] = true
			out = append(out, c.PrefLabel)
		}
	}
	sort.Strings(out)
	return out
}

func matchesConcept(re *regexp.Regexp, c *Concept) bool {
	if re.MatchString(c.Label) || re.MatchString(c.PrefLabel) {
		return true
	}
	for _, alt := range c.AltLabels {
		if re.MatchString(alt) {
			return true
		}
	}
	return false
}

func wildcardRegexp(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}
