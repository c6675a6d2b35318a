// Package frame provides a small ordered-column table and a relational join
// over it. Cells are float64 or string; nil marks a missing cell.
package frame

import (
	"github.com/MaMMoS-project/mammos-entity/errors"
)

// Column is one named column. Cells hold float64 or string values; nil is a
// missing cell (introduced by non-inner joins).
type Column struct {
	Name  string
	Cells []any
}

// Frame is an ordered collection of equal-length columns.
type Frame struct {
	cols  []*Column
	index map[string]int
}

// New returns an empty frame.
func New() *Frame {
	return &Frame{index: make(map[string]int)}
}

// AddColumn appends a column. The name must be new and the length must match
// the columns already present.
func (f *Frame) AddColumn(name string, cells []any) error {
	if _, ok := f.index[name]; ok {
		return errors.Newf("duplicate column %q", name)
	}
	if len(f.cols) > 0 && len(cells) != f.NumRows() {
		return errors.Wrapf(errors.ErrShapeMismatch,
			"column %q has %d rows, frame has %d", name, len(cells), f.NumRows())
	}
	f.index[name] = len(f.cols)
	f.cols = append(f.cols, &Column{Name: name, Cells: cells})
	return nil
}

// AddFloatColumn appends a numeric column.
func (f *Frame) AddFloatColumn(name string, values []float64) error {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.AddColumn(name, cells)
}

// AddStringColumn appends a string column.
func (f *Frame) AddStringColumn(name string, values []string) error {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.AddColumn(name, cells)
}

// NumRows returns the row count (0 for an empty frame).
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return len(f.cols[0].Cells)
}

// NumCols returns the column count.
func (f *Frame) NumCols() int {
	return len(f.cols)
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name
	}
	return out
}

// Has reports whether a column exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns the named column.
func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Columns returns all columns in order.
func (f *Frame) Columns() []*Column {
	return f.cols
}

// Floats returns the named column as float64 values. Missing cells become
// NaN; a string cell is an error.
func (f *Frame) Floats(name string) ([]float64, error) {
	col, ok := f.Column(name)
	if !ok {
		return nil, errors.Newf("no column %q", name)
	}
	out := make([]float64, len(col.Cells))
	for i, cell := range col.Cells {
		switch v := cell.(type) {
		case float64:
			out[i] = v
		case nil:
			out[i] = nan
		default:
			return nil, errors.Newf("column %q: cell %d is %T, not numeric", name, i, cell)
		}
	}
	return out, nil
}
