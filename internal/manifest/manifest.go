// Package manifest reads and writes composer.json manifests.
//
// Reading goes through gjson so that object key order survives: namespace
// declaration order drives merge order and ends up in generated files.
package manifest

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/tidwall/gjson"
)

const (
	// FileName is the manifest file looked up in every package directory.
	FileName = "composer.json"

	// DefaultVendorDir is used when the root manifest does not set config.vendor-dir.
	DefaultVendorDir = "vendor"

	// RootName is the name given to a root manifest without one.
	RootName = "__root__"
)

var (
	// ErrInvalid is returned for documents that are not a JSON object.
	ErrInvalid = errors.New("manifest is not a valid JSON object")

	// ErrMissingName is returned for package manifests without a name.
	ErrMissingName = errors.New("manifest does not declare a name")
)

// Parse builds a package descriptor from manifest data. location is recorded
// as given and dir is the absolute directory holding the manifest.
func Parse(data []byte, location, dir string) (*models.Package, error) {
	doc, err := document(data)
	if err != nil {
		return nil, err
	}
	return parsePackage(doc, location, dir, "")
}

func document(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, ErrInvalid
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return gjson.Result{}, ErrInvalid
	}
	return doc, nil
}

// parsePackage reads the descriptor fields. Without a declared name the
// fallback is used, and an empty fallback makes the name mandatory.
func parsePackage(doc gjson.Result, location, dir, fallbackName string) (*models.Package, error) {
	name := fallbackName
	if n := doc.Get("name"); n.Type == gjson.String && n.String() != "" {
		name = n.String()
	}
	if name == "" {
		return nil, ErrMissingName
	}

	pkg := models.NewPackage(name, packageType(doc))
	pkg.Location = location
	pkg.Dir = dir

	doc.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case "autoload":
			pkg.Autoload = parseAutoload(value)
		case "autoload-dev":
			pkg.DevAutoload = parseAutoload(value)
		case "extra":
			if value.IsObject() {
				pkg.Extra = models.ObjectFromJSON(value)
			}
		case "require":
			pkg.Requires = objectKeys(value)
		case "require-dev":
			pkg.DevRequires = objectKeys(value)
		}
		return true
	})

	return pkg, nil
}

// Read loads the manifest in dir.
func Read(fs filesystem.FileSystem, dir, location string) (*models.Package, error) {
	manifestPath := filepath.Join(dir, FileName)
	data, err := fs.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	pkg, err := Parse(data, location, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", manifestPath, err)
	}

	return pkg, nil
}

// packageType defaults to "library" like the package manager does.
func packageType(doc gjson.Result) string {
	if t := doc.Get("type"); t.Type == gjson.String && t.String() != "" {
		return t.String()
	}
	return "library"
}

// parseAutoload reads one autoload block. Malformed sections and entries are
// skipped individually.
func parseAutoload(value gjson.Result) models.Autoload {
	var autoload models.Autoload
	if !value.IsObject() {
		return autoload
	}

	value.ForEach(func(key, section gjson.Result) bool {
		kind := models.AutoloadKind(key.String())
		switch {
		case kind.IsNamespaceMapping():
			if !section.IsObject() {
				return true
			}
			namespaces := autoload.EnsureNamespaces(kind)
			section.ForEach(func(ns, paths gjson.Result) bool {
				switch {
				case paths.Type == gjson.String:
					namespaces.Set(ns.String(), models.NewLocation(paths.String()))
				case paths.IsArray():
					if list := stringItems(paths); len(list) > 0 {
						namespaces.Set(ns.String(), models.NewLocationList(list...))
					}
				}
				return true
			})
		case kind.IsList():
			if !section.IsArray() {
				return true
			}
			list := stringItems(section)
			if list == nil {
				list = []string{}
			}
			switch kind {
			case models.AutoloadFiles:
				autoload.Files = list
			case models.AutoloadClassmap:
				autoload.Classmap = list
			}
		}
		return true
	})

	return autoload
}

func stringItems(value gjson.Result) []string {
	var out []string
	for _, item := range value.Array() {
		if item.Type == gjson.String {
			out = append(out, item.String())
		}
	}
	return out
}

func objectKeys(value gjson.Result) []string {
	if !value.IsObject() {
		return nil
	}
	var keys []string
	value.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}
