// Package fileio reads and writes entity collections as self-describing
// text files. Two formats are supported, selected by file extension: a
// commented-header CSV (versions v1 to v3, always written as v3) and a
// structured YAML document (versions v1 and v2, always written as v2). Both
// record the concept label, description, IRI and unit per column so a file
// can be reconstructed without context.
package fileio

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MaMMoS-project/mammos-entity/entity"
	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/logger"
	"github.com/MaMMoS-project/mammos-entity/ontology"
)

// Write stores a collection under path. The format follows the extension:
// ".csv" or ".yaml"/".yml". Writing an empty collection is an error; all
// validation happens before any byte reaches the file.
func Write(path string, c *entity.Collection) error {
	if c == nil || c.Len() == 0 {
		return errors.Wrap(errors.ErrNoData, "no data to write")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err := writeCSV(path, c)
		if err == nil {
			logger.Logger.Debugw("wrote csv", "path", path, "fields", c.Len())
		}
		return err
	case ".yaml", ".yml":
		err := writeYAML(path, c)
		if err == nil {
			logger.Logger.Debugw("wrote yaml", "path", path, "fields", c.Len())
		}
		return err
	default:
		return errors.Newf("unsupported file type %q", filepath.Ext(path))
	}
}

// Read loads a collection from path, accepting all historical format
// versions. Concepts are resolved against g; a recorded IRI that does not
// match the resolved concept fails the read.
func Read(g ontology.Graph, path string) (*entity.Collection, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(g, path)
	case ".yaml", ".yml":
		return readYAML(g, path)
	default:
		return nil, errors.Newf("unsupported file type %q", filepath.Ext(path))
	}
}

// checkIRI verifies that the IRI recorded in a file still matches the
// concept resolved for the recorded label.
func checkIRI(e *entity.Entity, recorded string) error {
	if recorded != e.Ontology().IRI {
		return errors.Wrapf(errors.ErrIntegrity,
			"incompatible IRI for Entity %s: file has %q, ontology has %q",
			e.OntologyLabel(), recorded, e.Ontology().IRI)
	}
	return nil
}

// formatValue renders a float the way the files spell numbers: integral
// values keep one decimal ("600.0"), everything else uses the shortest
// exact representation.
func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == math.Trunc(v) && math.Abs(v) < 1e16:
		return strconv.FormatFloat(v, 'f', 1, 64)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// parseValue is the inverse of formatValue; the empty string reads as NaN.
func parseValue(s string) (float64, bool) {
	if s == "" {
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
