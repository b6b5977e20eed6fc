package registry

import (
	"errors"
	"fmt"
)

// PathAdder is implemented by package managers that register packages by path.
type PathAdder interface {
	AddFromPath(path string) error
}

// InfoLookup is implemented by package managers that resolve package
// information from a path. A nil info means the path is unknown.
type InfoLookup interface {
	PackageInfo(path string) (*PackageInfo, error)
}

// PackageInfo is the subset of package information checked by AdoptInto.
type PackageInfo struct {
	Name string
	Type string
}

// ErrNoCapability is returned by AdoptInto for targets implementing neither
// PathAdder nor InfoLookup.
var ErrNoCapability = errors.New("target provides neither AddFromPath nor PackageInfo")

// AdoptInto registers the packages of the given types (DefaultIntegrationTypes
// when empty) with target. A PathAdder receives every path; an InfoLookup must
// know every path and report one of the requested types for it.
func (r *Registry) AdoptInto(target any, types ...string) error {
	if len(types) == 0 {
		types = DefaultIntegrationTypes
	}

	paths, err := r.Paths(types...)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	switch t := target.(type) {
	case PathAdder:
		for _, entry := range paths {
			if err := t.AddFromPath(entry.Path); err != nil {
				return fmt.Errorf("failed to add %q from %q: %w", entry.Name, entry.Path, err)
			}
		}
		return nil
	case InfoLookup:
		allowed := make(map[string]struct{}, len(types))
		for _, typ := range types {
			allowed[typ] = struct{}{}
		}
		for _, entry := range paths {
			info, err := t.PackageInfo(entry.Path)
			if err != nil {
				return fmt.Errorf("failed to load package info for %q in %q: %w", entry.Name, entry.Path, err)
			}
			if info == nil {
				return fmt.Errorf("failed to load package info for %q in %q", entry.Name, entry.Path)
			}
			if _, ok := allowed[info.Type]; !ok {
				return fmt.Errorf("invalid package type for %q in %q: %q", entry.Name, entry.Path, info.Type)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrNoCapability, target)
	}
}
