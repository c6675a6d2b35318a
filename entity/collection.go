package entity

import (
	"sort"
	"strings"

	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/frame"
	"github.com/MaMMoS-project/mammos-entity/ontology"
	"github.com/MaMMoS-project/mammos-entity/units"
)

// Collection is an ordered, named bag of entity-like values plus a free-text
// description. An entry is one of:
//
//	*Entity          concept-linked quantity
//	units.Quantity   value with a unit but no concept
//	units.Array      raw numeric data
//	[]string         raw text data
//
// Set normalizes plain numbers and nested numeric slices to units.Array.
// Entry names starting with an underscore are collection internals (such as
// a join indicator) and may hold raw values only.
type Collection struct {
	description string
	names       []string
	entries     map[string]any
}

// NewCollection returns an empty collection with the given description.
func NewCollection(description string) *Collection {
	return &Collection{
		description: description,
		entries:     make(map[string]any),
	}
}

// Description returns the collection-level description.
func (c *Collection) Description() string {
	return c.description
}

// SetDescription replaces the collection-level description.
func (c *Collection) SetDescription(description string) {
	c.description = description
}

// Set stores an entry under name, replacing any existing entry with the same
// name but keeping its position. The name "description" is reserved.
func (c *Collection) Set(name string, value any) error {
	if name == "description" {
		return errors.Newf("%q is not allowed as entity name", name)
	}
	switch v := value.(type) {
	case *Entity, units.Quantity:
		if strings.HasPrefix(name, "_") {
			return errors.Newf("internal entry %q may only hold raw values", name)
		}
	case units.Array, []string:
		// stored as is
	case string:
		value = []string{v}
	default:
		arr, err := units.AsArray(v)
		if err != nil {
			return errors.Wrapf(err, "entry %q", name)
		}
		value = arr
	}
	if _, ok := c.entries[name]; !ok {
		c.names = append(c.names, name)
	}
	c.entries[name] = value
	return nil
}

// MustSet is Set for entries known valid at compile time.
func (c *Collection) MustSet(name string, value any) {
	if err := c.Set(name, value); err != nil {
		panic(err)
	}
}

// Get returns the entry stored under name.
func (c *Collection) Get(name string) (any, bool) {
	v, ok := c.entries[name]
	return v, ok
}

// Entity returns the entry stored under name when it is an Entity.
func (c *Collection) Entity(name string) (*Entity, bool) {
	e, ok := c.entries[name].(*Entity)
	return e, ok
}

// Has reports whether an entry exists.
func (c *Collection) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Delete removes an entry. Removing a missing entry is a no-op.
func (c *Collection) Delete(name string) {
	if _, ok := c.entries[name]; !ok {
		return
	}
	delete(c.entries, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.names)
}

// Names returns the entry names in insertion order.
func (c *Collection) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Each calls fn for every entry in insertion order.
func (c *Collection) Each(fn func(name string, value any)) {
	for _, name := range c.names {
		fn(name, c.entries[name])
	}
}

// Copy returns a shallow copy: an independent name table over the same
// entry values.
func (c *Collection) Copy() *Collection {
	out := NewCollection(c.description)
	c.Each(func(name string, value any) {
		out.names = append(out.names, name)
		out.entries[name] = value
	})
	return out
}

// DeepCopy returns a copy whose entries share no data with the original.
func (c *Collection) DeepCopy() *Collection {
	out := NewCollection(c.description)
	c.Each(func(name string, value any) {
		out.names = append(out.names, name)
		out.entries[name] = deepCopyValue(value)
	})
	return out
}

func deepCopyValue(value any) any {
	switch v := value.(type) {
	case *Entity:
		copied := *v
		copied.quantity = copyQuantity(v.quantity)
		return &copied
	case units.Quantity:
		return copyQuantity(v)
	case units.Array:
		return copyArray(v)
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	default:
		return v
	}
}

func copyQuantity(q units.Quantity) units.Quantity {
	return units.MustQuantity(copyArray(q.Value()), q.Unit())
}

func copyArray(a units.Array) units.Array {
	return a.Map(func(v float64) float64 { return v })
}

// entryUnit returns the unit string of an entry, "" when it has none.
func entryUnit(value any) string {
	switch v := value.(type) {
	case *Entity:
		return v.Unit().String()
	case units.Quantity:
		return v.Unit().String()
	default:
		return ""
	}
}

// entryValue returns the numeric or textual data of an entry.
func entryValue(value any) any {
	switch v := value.(type) {
	case *Entity:
		return v.Value()
	case units.Quantity:
		return v.Value()
	default:
		return value
	}
}

// ToFrame projects the collection onto a table, one column per entry in
// insertion order. Scalars broadcast to the common length; vectors must all
// have that length, and higher-dimensional values are rejected. With
// includeUnits, columns of unit-carrying entries are named "name (unit)".
func (c *Collection) ToFrame(includeUnits bool) (*frame.Frame, error) {
	rows := 1
	for _, name := range c.names {
		switch v := entryValue(c.entries[name]).(type) {
		case units.Array:
			if v.NDim() > 1 {
				return nil, errors.Wrapf(errors.ErrShapeMismatch,
					"entry %q has %d dimensions", name, v.NDim())
			}
			if !v.IsScalar() {
				if n := v.Size(); rows != 1 && n != rows {
					return nil, errors.Wrapf(errors.ErrShapeMismatch,
						"entry %q has %d rows, expected %d", name, n, rows)
				} else if n != rows {
					rows = n
				}
			}
		case []string:
			// one-element text entries broadcast like scalars
			if n := len(v); n != 1 && rows != 1 && n != rows {
				return nil, errors.Wrapf(errors.ErrShapeMismatch,
					"entry %q has %d rows, expected %d", name, n, rows)
			} else if n != 1 && n != rows {
				rows = n
			}
		}
	}

	out := frame.New()
	for _, name := range c.names {
		column := name
		if includeUnits {
			if u := entryUnit(c.entries[name]); u != "" {
				column += " (" + u + ")"
			}
		}
		var err error
		switch v := entryValue(c.entries[name]).(type) {
		case units.Array:
			err = out.AddFloatColumn(column, broadcastFloats(v, rows))
		case []string:
			err = out.AddStringColumn(column, broadcastStrings(v, rows))
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func broadcastFloats(a units.Array, rows int) []float64 {
	if v, ok := a.ScalarValue(); ok && rows > 1 {
		out := make([]float64, rows)
		for i := range out {
			out[i] = v
		}
		return out
	}
	return a.Flatten().Data()
}

func broadcastStrings(v []string, rows int) []string {
	if len(v) == 1 && rows > 1 {
		out := make([]string, rows)
		for i := range out {
			out[i] = v[0]
		}
		return out
	}
	return v
}

// FieldMeta is the per-entry metadata exported by Metadata: label, unit and
// description for entities, the unit alone for quantities, nothing for raw
// entries.
type FieldMeta struct {
	OntologyLabel string
	Unit          string
	Description   string
}

// Metadata captures everything ToFrame drops, so that FromFrame can rebuild
// an equivalent collection.
type Metadata struct {
	Description string
	Fields      map[string]FieldMeta
}

// Metadata exports the collection-level description and per-entry metadata.
func (c *Collection) Metadata() Metadata {
	meta := Metadata{
		Description: c.description,
		Fields:      make(map[string]FieldMeta, len(c.names)),
	}
	c.Each(func(name string, value any) {
		field := FieldMeta{Unit: entryUnit(value)}
		if e, ok := value.(*Entity); ok {
			field.OntologyLabel = e.OntologyLabel()
			field.Description = e.Description()
		}
		meta.Fields[name] = field
	})
	return meta
}

// FromFrame is the inverse of ToFrame plus Metadata: every frame column must
// have a metadata field and vice versa. Single-row columns collapse to
// scalars. A field with an ontology label becomes an Entity, one with only a
// unit becomes a quantity, anything else stays raw.
func FromFrame(g ontology.Graph, f *frame.Frame, meta Metadata) (*Collection, error) {
	names := f.Names()
	if err := matchKeySets(names, meta.Fields); err != nil {
		return nil, err
	}

	out := NewCollection(meta.Description)
	for _, name := range names {
		field := meta.Fields[name]
		value, err := columnValue(f, name)
		if err != nil {
			return nil, err
		}
		entry, err := buildEntry(g, field, value)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", name)
		}
		if err := out.Set(name, entry); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func matchKeySets(names []string, fields map[string]FieldMeta) error {
	var missing, extra []string
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range fields {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	if len(missing) > 0 || len(extra) > 0 {
		return errors.Newf("metadata does not match columns: missing %v, extra %v",
			missing, extra)
	}
	return nil
}

// columnValue reads a frame column back as a scalar, vector or string slice.
func columnValue(f *frame.Frame, name string) (any, error) {
	col, _ := f.Column(name)
	textual := false
	for _, cell := range col.Cells {
		if _, ok := cell.(string); ok {
			textual = true
			break
		}
	}
	if textual {
		out := make([]string, len(col.Cells))
		for i, cell := range col.Cells {
			s, ok := cell.(string)
			if !ok {
				return nil, errors.Newf("column %q mixes text and numbers", name)
			}
			out[i] = s
		}
		return out, nil
	}
	values, err := f.Floats(name)
	if err != nil {
		return nil, err
	}
	if len(values) == 1 {
		return units.Scalar(values[0]), nil
	}
	return units.Vector(values), nil
}

func buildEntry(g ontology.Graph, field FieldMeta, value any) (any, error) {
	switch {
	case field.OntologyLabel != "":
		opts := []Option{WithDescription(field.Description)}
		if field.Unit != "" {
			opts = append(opts, WithUnitExpr(field.Unit))
		}
		return New(g, field.OntologyLabel, value, opts...)
	case field.Unit != "":
		arr, ok := value.(units.Array)
		if !ok {
			return nil, errors.Newf("unit %q on non-numeric data", field.Unit)
		}
		unit, err := units.Parse(field.Unit)
		if err != nil {
			return nil, err
		}
		return units.MustQuantity(arr, unit), nil
	default:
		return value, nil
	}
}
