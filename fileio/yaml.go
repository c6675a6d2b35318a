package fileio

import (
	"bytes"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MaMMoS-project/mammos-entity/entity"
	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/ontology"
	"github.com/MaMMoS-project/mammos-entity/units"
)

// writeYAML stores the collection as a v2 document: a metadata mapping with
// version and optional file description, and a data mapping with one block
// per field (ontology_label, ontology_iri, unit, value, description). Unlike
// CSV, fields may have any shape; values nest as lists.
func writeYAML(path string, c *entity.Collection) error {
	data := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range collectFields(c) {
		entry := &yaml.Node{Kind: yaml.MappingNode}
		appendPair(entry, "ontology_label", optionalString(f.label))
		appendPair(entry, "ontology_iri", optionalString(f.iri))
		if f.hasUnit {
			appendPair(entry, "unit", stringNode(f.unit))
		} else {
			appendPair(entry, "unit", nullNode())
		}
		appendPair(entry, "value", valueNode(f))
		if f.label != "" {
			appendPair(entry, "description", stringNode(f.description))
		} else {
			appendPair(entry, "description", nullNode())
		}
		appendPair(data, f.name, entry)
	}

	meta := &yaml.Node{Kind: yaml.MappingNode}
	appendPair(meta, "version", stringNode("v2"))
	if desc := c.Description(); desc != "" {
		node := stringNode(desc)
		if strings.Contains(desc, "\n") {
			node.Style = yaml.LiteralStyle
		}
		appendPair(meta, "description", node)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	appendPair(root, "metadata", meta)
	appendPair(root, "data", data)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, stringNode(key), value)
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// optionalString renders the empty string as null; used for label and IRI
// where absence means "not an entity".
func optionalString(s string) *yaml.Node {
	if s == "" {
		return nullNode()
	}
	return stringNode(s)
}

func floatNode(v float64) *yaml.Node {
	var s string
	switch {
	case math.IsNaN(v):
		s = ".nan"
	case math.IsInf(v, 1):
		s = ".inf"
	case math.IsInf(v, -1):
		s = "-.inf"
	default:
		s = formatValue(v)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
}

// valueNode renders the field data: scalars inline, lists in flow style.
func valueNode(f field) *yaml.Node {
	if f.isText {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, s := range f.text {
			seq.Content = append(seq.Content, stringNode(s))
		}
		return seq
	}
	return nestedNode(f.values.Nested())
}

func nestedNode(v any) *yaml.Node {
	switch x := v.(type) {
	case float64:
		return floatNode(x)
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, item := range x {
			seq.Content = append(seq.Content, nestedNode(item))
		}
		return seq
	default:
		return nullNode()
	}
}

// readYAML loads a v1 or v2 document. The key sets are checked exactly:
// unknown keys anywhere in the document fail the read so that typos do not
// silently drop data.
func readYAML(g ontology.Graph, path string) (*entity.Collection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrFormat, "invalid yaml: %v", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, errors.Wrap(errors.ErrFormat, "empty file")
	}
	root := doc.Content[0]

	sections, err := mappingPairs(root, "document")
	if err != nil {
		return nil, err
	}
	var meta, data *yaml.Node
	for _, kv := range sections {
		switch kv.key {
		case "metadata":
			meta = kv.value
		case "data":
			data = kv.value
		default:
			return nil, errors.Wrapf(errors.ErrFormat, "unexpected top-level key %q", kv.key)
		}
	}
	if meta == nil || data == nil {
		return nil, errors.Wrap(errors.ErrFormat, "missing metadata or data section")
	}

	version, description, err := readMetadata(meta)
	if err != nil {
		return nil, err
	}
	if version != "v1" && version != "v2" {
		return nil, errors.Wrapf(errors.ErrFormat, "unsupported yaml version %q", version)
	}
	if data.Tag == "!!null" {
		return nil, errors.Wrap(errors.ErrNoData, "no data in file")
	}

	entries, err := mappingPairs(data, "data")
	if err != nil {
		return nil, err
	}
	c := entity.NewCollection(description)
	for _, kv := range entries {
		f, value, err := readField(kv.key, version, kv.value)
		if err != nil {
			return nil, err
		}
		col, err := buildColumn(g, f, value)
		if err != nil {
			return nil, err
		}
		if err := c.Set(kv.key, col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func readMetadata(meta *yaml.Node) (version, description string, err error) {
	pairs, err := mappingPairs(meta, "metadata")
	if err != nil {
		return "", "", err
	}
	for _, kv := range pairs {
		switch kv.key {
		case "version":
			version = kv.value.Value
		case "description":
			description, _ = scalarString(kv.value)
		default:
			return "", "", errors.Wrapf(errors.ErrFormat, "unexpected metadata key %q", kv.key)
		}
	}
	if version == "" {
		return "", "", errors.Wrap(errors.ErrFormat, "metadata is missing the version")
	}
	return version, description, nil
}

// readField decodes one data block into field metadata and its value. The
// key set must match the version's exactly: description exists only in v2.
func readField(name, version string, node *yaml.Node) (field, any, error) {
	pairs, err := mappingPairs(node, name)
	if err != nil {
		return field{}, nil, err
	}
	f := field{name: name}
	var valNode *yaml.Node
	seen := map[string]bool{}
	for _, kv := range pairs {
		seen[kv.key] = true
		switch kv.key {
		case "ontology_label":
			f.label, _ = scalarString(kv.value)
		case "ontology_iri":
			f.iri, _ = scalarString(kv.value)
		case "unit":
			var null bool
			f.unit, null = scalarString(kv.value)
			f.hasUnit = !null
		case "value":
			valNode = kv.value
		case "description":
			if version == "v1" {
				return field{}, nil, errors.Wrapf(errors.ErrFormat,
					"unexpected key %q in field %s", kv.key, name)
			}
			f.description, _ = scalarString(kv.value)
		default:
			return field{}, nil, errors.Wrapf(errors.ErrFormat,
				"unexpected key %q in field %s", kv.key, name)
		}
	}
	required := []string{"ontology_label", "ontology_iri", "unit", "value"}
	if version != "v1" {
		required = append(required, "description")
	}
	for _, key := range required {
		if !seen[key] {
			return field{}, nil, errors.Wrapf(errors.ErrFormat,
				"field %s is missing key %q", name, key)
		}
	}

	var decoded any
	if err := valNode.Decode(&decoded); err != nil {
		return field{}, nil, errors.Wrapf(errors.ErrFormat,
			"invalid value in field %s: %v", name, err)
	}
	value, isText, err := goValue(decoded)
	if err != nil {
		return field{}, nil, errors.Wrapf(err, "field %s", name)
	}
	f.isText = isText
	return f, value, nil
}

// goValue turns a decoded YAML value into the collection entry value:
// strings become a text column, everything else an array or scalar.
func goValue(decoded any) (any, bool, error) {
	switch v := decoded.(type) {
	case string:
		return []string{v}, true, nil
	case []any:
		if text, ok := stringSlice(v); ok {
			return text, true, nil
		}
	case nil:
		return nil, false, errors.Wrap(errors.ErrNoData, "null value")
	}
	arr, err := units.AsArray(decoded)
	if err != nil {
		return nil, false, err
	}
	if s, ok := arr.ScalarValue(); ok {
		return s, false, nil
	}
	return arr, false, nil
}

func stringSlice(items []any) ([]string, bool) {
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

type pair struct {
	key   string
	value *yaml.Node
}

func mappingPairs(node *yaml.Node, context string) ([]pair, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.Wrapf(errors.ErrFormat, "%s is not a mapping", context)
	}
	pairs := make([]pair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		pairs = append(pairs, pair{key: node.Content[i].Value, value: node.Content[i+1]})
	}
	return pairs, nil
}

// scalarString returns the node's string value and whether the node is null.
func scalarString(node *yaml.Node) (string, bool) {
	if node.Tag == "!!null" {
		return "", true
	}
	return node.Value, false
}
