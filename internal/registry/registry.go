// Package registry gives Go consumers the read operations of the generated
// loader class: all packages, their names and a name to path mapping, each
// filterable by package type.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/jakoblorz/go-fixtures/internal/state"
	"github.com/tidwall/gjson"
)

// DefaultIntegrationTypes are adopted by AdoptInto when no types are given.
var DefaultIntegrationTypes = state.DefaultLoaderData().IntegrationTypes

// Registry reads the JSON state file written by an adopt run.
type Registry struct {
	fs       filesystem.FileSystem
	path     string
	packages []models.AdoptedPackage
	loaded   bool
}

// New creates a Registry for the state directory dir.
func New(fs filesystem.FileSystem, dir string) *Registry {
	return &Registry{fs: fs, path: filepath.Join(dir, state.JSONFileName)}
}

// Packages returns the adopted packages whose type is in types, or all of
// them for an empty filter. Paths are resolved to absolute paths. A missing
// state file yields no packages.
func (r *Registry) Packages(types ...string) ([]models.AdoptedPackage, error) {
	if err := r.load(); err != nil {
		return nil, err
	}

	filter := models.TypeFilter(types)
	var out []models.AdoptedPackage
	for _, pkg := range r.packages {
		if filter.Matches(pkg.Type) {
			out = append(out, pkg)
		}
	}
	return out, nil
}

// Names returns the names of the matching packages.
func (r *Registry) Names(types ...string) ([]string, error) {
	packages, err := r.Packages(types...)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(packages))
	for i, pkg := range packages {
		names[i] = pkg.Name
	}
	return names, nil
}

// NamedPath is one entry of the name to path mapping.
type NamedPath struct {
	Name string
	Path string
}

// Paths returns the name to path mapping of the matching packages, in
// adoption order.
func (r *Registry) Paths(types ...string) ([]NamedPath, error) {
	packages, err := r.Packages(types...)
	if err != nil {
		return nil, err
	}
	paths := make([]NamedPath, len(packages))
	for i, pkg := range packages {
		paths[i] = NamedPath{Name: pkg.Name, Path: pkg.Path}
	}
	return paths, nil
}

func (r *Registry) load() error {
	if r.loaded {
		return nil
	}

	data, err := r.fs.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	if !gjson.ValidBytes(data) {
		return fmt.Errorf("failed to parse %s: invalid JSON", r.path)
	}

	dir := filepath.Dir(r.path)
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		path := filepath.FromSlash(value.Get("path").String())
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		record := models.AdoptedPackage{
			Name:  key.String(),
			Type:  value.Get("type").String(),
			Path:  path,
			Extra: models.NewObject(),
		}
		if extra := value.Get("extra"); extra.IsObject() {
			record.Extra = models.ObjectFromJSON(extra)
		}
		r.packages = append(r.packages, record)
		return true
	})

	r.loaded = true
	return nil
}
