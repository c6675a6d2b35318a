package ontology

import (
	"context"
	_ "embed"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-getter"
	"gopkg.in/yaml.v3"

	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/logger"
)

//go:embed snapshot.yaml
var snapshot []byte

type snapshotFile struct {
	Concepts []*Concept `yaml:"concepts"`
}

// Load reads an ontology snapshot (YAML) from r.
func Load(r io.Reader) (*Ontology, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading ontology snapshot")
	}
	return parse(data)
}

// LoadFile reads an ontology snapshot from a file.
func LoadFile(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading ontology snapshot %q", path)
	}
	return parse(data)
}

func parse(data []byte) (*Ontology, error) {
	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrFormat, err.Error())
	}
	if len(file.Concepts) == 0 {
		return nil, errors.Wrap(errors.ErrFormat, "ontology snapshot has no concepts")
	}
	o, err := New(file.Concepts)
	if err != nil {
		return nil, err
	}
	logger.Logger.Debugw("loaded ontology snapshot", "concepts", o.Len())
	return o, nil
}

var (
	defaultOnce sync.Once
	defaultOnto *Ontology
	defaultErr  error
)

// Default returns the ontology parsed from the embedded snapshot. The parse
// happens once per process.
func Default() (*Ontology, error) {
	defaultOnce.Do(func() {
		defaultOnto, defaultErr = parse(snapshot)
	})
	return defaultOnto, defaultErr
}

// MustDefault is Default for callers that treat a broken embedded snapshot
// as a programming error.
func MustDefault() *Ontology {
	o, err := Default()
	if err != nil {
		panic(err)
	}
	return o
}

// Fetch downloads an ontology snapshot from src (any go-getter source:
// http(s) URL, git, s3, local path) into a temporary directory and loads it.
func Fetch(ctx context.Context, src string) (*Ontology, error) {
	dir, err := os.MkdirTemp("", "mammos-ontology-*")
	if err != nil {
		return nil, errors.Wrap(err, "creating ontology download dir")
	}
	defer os.RemoveAll(dir)

	dst := filepath.Join(dir, "snapshot.yaml")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Mode: getter.ClientModeFile,
	}
	logger.Logger.Debugw("fetching ontology snapshot", "src", src)
	if err := client.Get(); err != nil {
		return nil, errors.Wrapf(err, "fetching ontology snapshot from %q", src)
	}
	return LoadFile(dst)
}
