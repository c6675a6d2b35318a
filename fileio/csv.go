package fileio

import (
	"bytes"
	"encoding/csv"
	"os"
	"regexp"
	"strings"

	"github.com/MaMMoS-project/mammos-entity/entity"
	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/ontology"
	"github.com/MaMMoS-project/mammos-entity/units"
)

// csvVersion matches the mandatory first line of every commented CSV file.
var csvVersion = regexp.MustCompile(`^#mammos csv (v\d+)$`)

const descriptionFence = "#----------------------------------------"

// writeCSV stores the collection in the v3 layout: a version line, an
// optional fenced file description, five metadata rows (labels,
// descriptions, IRIs, units, names) and one row per data point. CSV holds
// tabular data only, so every field must be a scalar or all fields must be
// one-dimensional with a common length.
func writeCSV(path string, c *entity.Collection) error {
	fields := collectFields(c)
	rows, err := csvRowCount(fields)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("#mammos csv v3\n")
	if desc := c.Description(); desc != "" {
		buf.WriteString(descriptionFence + "\n")
		for _, line := range strings.Split(desc, "\n") {
			buf.WriteString("# " + line + "\n")
		}
		buf.WriteString(descriptionFence + "\n")
	}

	w := csv.NewWriter(&buf)
	head := make([][]string, 5)
	for _, f := range fields {
		head[0] = append(head[0], f.label)
		head[1] = append(head[1], f.description)
		head[2] = append(head[2], f.iri)
		head[3] = append(head[3], f.unit)
		head[4] = append(head[4], f.name)
	}
	for _, rec := range head {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	for r := 0; r < rows; r++ {
		rec := make([]string, len(fields))
		for i, f := range fields {
			if f.isText {
				rec[i] = f.text[r]
			} else {
				rec[i] = formatValue(f.values.Data()[r])
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// csvRowCount validates the shapes and returns the number of data rows.
// Scalars count as one row, so a collection of scalars writes a single row.
func csvRowCount(fields []field) (int, error) {
	rows := -1
	for _, f := range fields {
		n := 1
		switch {
		case f.isText:
			n = len(f.text)
		case f.values.NDim() > 1:
			return 0, errors.Wrapf(errors.ErrShapeMismatch,
				"csv supports scalar or one-dimensional data, field %s has shape %v",
				f.name, f.values.Shape())
		case f.values.NDim() == 1:
			n = f.values.Size()
		}
		if rows == -1 {
			rows = n
		} else if rows != n {
			return 0, errors.Wrapf(errors.ErrShapeMismatch,
				"all csv fields need the same number of elements, field %s has %d, expected %d",
				f.name, n, rows)
		}
	}
	return rows, nil
}

// readCSV loads any of the commented CSV layouts. v1 has three #-prefixed
// metadata rows, v2 adds the fenced file description, v3 moves the metadata
// into plain quoted rows and adds per-field descriptions.
func readCSV(g ontology.Graph, path string) (*entity.Collection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(raw)
	if strings.TrimSpace(text) == "" {
		return nil, errors.Wrap(errors.ErrFormat, "empty file")
	}

	sc := &lineScanner{text: text}
	header, _ := sc.next()
	m := csvVersion.FindStringSubmatch(header)
	if m == nil {
		return nil, errors.Wrapf(errors.ErrFormat, "missing version line, got %q", header)
	}

	var description string
	var labels, descriptions, iris, unitRow []string
	switch m[1] {
	case "v1":
		if labels, iris, unitRow, err = commentRows(sc); err != nil {
			return nil, err
		}
	case "v2":
		description = readFencedDescription(sc)
		if labels, iris, unitRow, err = commentRows(sc); err != nil {
			return nil, err
		}
	case "v3":
		description = readFencedDescription(sc)
	default:
		return nil, errors.Wrapf(errors.ErrFormat, "unsupported csv version %q", m[1])
	}

	records, err := csv.NewReader(strings.NewReader(sc.rest())).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrFormat, "malformed csv body: %v", err)
	}
	var names []string
	var data [][]string
	if m[1] == "v3" {
		if len(records) < 5 {
			return nil, errors.Wrap(errors.ErrFormat, "truncated csv header")
		}
		labels, descriptions, iris, unitRow = records[0], records[1], records[2], records[3]
		names, data = records[4], records[5:]
	} else {
		if len(records) < 1 {
			return nil, errors.Wrap(errors.ErrFormat, "missing column names")
		}
		names, data = records[0], records[1:]
	}
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrNoData, "no data rows")
	}

	c := entity.NewCollection(description)
	for i, name := range names {
		if name == "" {
			continue
		}
		f := field{
			name:        name,
			label:       at(labels, i),
			description: at(descriptions, i),
			iri:         at(iris, i),
			unit:        at(unitRow, i),
		}
		f.hasUnit = f.unit != ""
		value := columnCells(data, i)
		col, err := buildColumn(g, f, value)
		if err != nil {
			return nil, err
		}
		if err := c.Set(name, col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// columnCells extracts column i and converts it to its natural Go value:
// floats when every cell parses as a number (a single row collapses to a
// scalar), a string slice otherwise.
func columnCells(data [][]string, i int) any {
	cells := make([]string, len(data))
	floats := make([]float64, len(data))
	numeric := true
	for r, row := range data {
		cells[r] = at(row, i)
		v, ok := parseValue(cells[r])
		if !ok {
			numeric = false
		}
		floats[r] = v
	}
	switch {
	case !numeric:
		return cells
	case len(floats) == 1:
		return floats[0]
	default:
		return units.Vector(floats)
	}
}

// commentRows reads the v1/v2 metadata block: labels, IRIs and units, each
// on one #-prefixed line.
func commentRows(sc *lineScanner) (labels, iris, unitRow []string, err error) {
	rows := make([][]string, 3)
	for i := range rows {
		line, ok := sc.next()
		if !ok || !strings.HasPrefix(line, "#") {
			return nil, nil, nil, errors.Wrap(errors.ErrFormat, "truncated metadata header")
		}
		rows[i], err = csv.NewReader(strings.NewReader(strings.TrimPrefix(line, "#"))).Read()
		if err != nil {
			return nil, nil, nil, errors.Wrapf(errors.ErrFormat, "malformed metadata row: %v", err)
		}
	}
	return rows[0], rows[1], rows[2], nil
}

// readFencedDescription consumes an optional description block delimited by
// two fence lines, returning the joined text without the "# " prefixes.
func readFencedDescription(sc *lineScanner) string {
	if line, ok := sc.peek(); !ok || line != descriptionFence {
		return ""
	}
	sc.next()
	var lines []string
	for {
		line, ok := sc.next()
		if !ok || line == descriptionFence {
			break
		}
		lines = append(lines, strings.TrimPrefix(strings.TrimPrefix(line, "#"), " "))
	}
	return strings.Join(lines, "\n")
}

func at(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// lineScanner hands out lines one at a time while keeping the untouched
// remainder available for the CSV body parser.
type lineScanner struct {
	text string
	off  int
}

func (s *lineScanner) next() (string, bool) {
	if s.off >= len(s.text) {
		return "", false
	}
	line := s.text[s.off:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
		s.off += i + 1
	} else {
		s.off = len(s.text)
	}
	return strings.TrimSuffix(line, "\r"), true
}

func (s *lineScanner) peek() (string, bool) {
	off := s.off
	line, ok := s.next()
	s.off = off
	return line, ok
}

func (s *lineScanner) rest() string {
	return s.text[s.off:]
}
