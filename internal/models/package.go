package models

import "slices"

// Package describes a manifest-backed package: either the root project or a
// fixture package discovered on disk.
type Package struct {
	// Name is the package identifier, e.g. "vendor/name"
	Name string

	// Type is the package classification, e.g. "library"
	Type string

	// Location is where the package lives as recorded by its source: relative
	// to the project root for relative patterns, absolute otherwise.
	Location string

	// Dir is the absolute directory containing the manifest
	Dir string

	// Autoload and DevAutoload are the manifest's autoload blocks
	Autoload    Autoload
	DevAutoload Autoload

	// Extra is the manifest's extra block, passed through verbatim
	Extra *Object

	// Modes lists the autoload sections eligible for adoption (fixtures only)
	Modes []Mode

	// Requires and DevRequires hold the declared dependency names (root only)
	Requires    []string
	DevRequires []string
}

// NewPackage creates a Package with an empty extra block
func NewPackage(name, packageType string) *Package {
	return &Package{
		Name:  name,
		Type:  packageType,
		Extra: NewObject(),
	}
}

// Adopts reports whether the autoload section for mode is eligible for adoption.
func (p *Package) Adopts(mode Mode) bool {
	return slices.Contains(p.Modes, mode)
}

// AutoloadFor returns the autoload block that corresponds to mode.
func (p *Package) AutoloadFor(mode Mode) *Autoload {
	if mode == ModeAutoloadDev {
		return &p.DevAutoload
	}
	return &p.Autoload
}

// RequiresPackage reports whether name is a direct or development dependency.
func (p *Package) RequiresPackage(name string) bool {
	return slices.Contains(p.Requires, name) || slices.Contains(p.DevRequires, name)
}
