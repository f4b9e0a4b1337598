// Package graph loads the workspace manifest and turns its dependency
// graph into the tree lines the report renders.
package graph

import (
	"os"
	"path/filepath"
	"strings"

	"geiger/internal/core/errors"

	"github.com/BurntSushi/toml"
)

// Package is one node of the workspace dependency graph.
type Package struct {
	ID                string   `toml:"id"`
	Name              string   `toml:"name"`
	Version           string   `toml:"version"`
	Path              string   `toml:"path"`
	Entry             string   `toml:"entry"`
	Dependencies      []string `toml:"dependencies"`
	BuildDependencies []string `toml:"build_dependencies"`
	DevDependencies   []string `toml:"dev_dependencies"`
}

// Label is the text shown in the dependency column.
func (p Package) Label() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + " " + p.Version
}

// Deps returns the dependency ids of the given kind.
func (p Package) Deps(kind DependencyKind) []string {
	switch kind {
	case KindBuild:
		return p.BuildDependencies
	case KindDev:
		return p.DevDependencies
	default:
		return p.Dependencies
	}
}

type Manifest struct {
	Root     string    `toml:"root"`
	Packages []Package `toml:"package"`

	// Dir is the directory relative package paths are resolved against.
	Dir string `toml:"-"`

	byID map[string]int
}

// LoadManifest decodes and validates a workspace manifest. Package paths
// are made absolute relative to the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.CodeInternal
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		return nil, errors.AddContext(errors.Wrap(err, code, "read manifest"), errors.CtxPath, path)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "resolve manifest directory")
	}
	m.Dir = dir
	return m, nil
}

// ParseManifest decodes and validates manifest TOML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, errors.Wrap(err, errors.CodeParseFailed, "decode manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that ids are unique, every dependency refers to a known
// package and the root exists. It also builds the id index.
func (m *Manifest) Validate() error {
	m.byID = make(map[string]int, len(m.Packages))
	for i := range m.Packages {
		p := &m.Packages[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			p.ID = strings.TrimSpace(p.Name + " " + p.Version)
		}
		if p.ID == "" {
			return errors.Newf(errors.CodeValidationError, "package %d has neither id nor name", i)
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		if _, dup := m.byID[p.ID]; dup {
			return errors.AddContext(errors.New(errors.CodeValidationError, "duplicate package id"), errors.CtxPackage, p.ID)
		}
		m.byID[p.ID] = i
	}

	for _, p := range m.Packages {
		for _, kind := range AllKinds {
			for _, dep := range p.Deps(kind) {
				if _, ok := m.byID[dep]; !ok {
					return errors.AddContext(
						errors.Newf(errors.CodeValidationError, "%s dependency %q is not declared", kind, dep),
						errors.CtxPackage, p.ID)
				}
			}
		}
	}

	if m.Root == "" {
		if len(m.Packages) == 0 {
			return errors.New(errors.CodeValidationError, "manifest declares no packages")
		}
		m.Root = m.Packages[0].ID
	}
	if _, ok := m.byID[m.Root]; !ok {
		return errors.AddContext(errors.New(errors.CodeValidationError, "root package is not declared"), errors.CtxPackage, m.Root)
	}
	return nil
}

// Package looks up a package by id.
func (m *Manifest) Package(id string) (Package, bool) {
	i, ok := m.byID[id]
	if !ok {
		return Package{}, false
	}
	return m.Packages[i], true
}

// PackageDir returns the absolute source directory of a package.
func (m *Manifest) PackageDir(p Package) string {
	if filepath.IsAbs(p.Path) {
		return p.Path
	}
	return filepath.Join(m.Dir, filepath.FromSlash(p.Path))
}
