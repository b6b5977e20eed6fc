package models

import (
	"slices"
	"strings"
)

// AdoptedPackage is the exported record of one adopted fixture package.
type AdoptedPackage struct {
	// Name is the package name
	Name string `json:"name"`

	// Type is the package classification
	Type string `json:"type"`

	// Path is the package location relative to the state file's directory,
	// or absolute when no relative path exists
	Path string `json:"path"`

	// Extra is copied verbatim from the package manifest
	Extra *Object `json:"extra"`
}

// TypeFilter selects adopted packages by exact type. An empty filter matches
// every package.
type TypeFilter []string

// ParseTypeFilter splits comma separated type lists and drops empty entries.
func ParseTypeFilter(values []string) TypeFilter {
	var filter TypeFilter
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter = append(filter, part)
			}
		}
	}
	return filter
}

// Matches checks if a package type passes this filter
func (f TypeFilter) Matches(packageType string) bool {
	if len(f) == 0 {
		return true
	}
	return slices.Contains(f, packageType)
}
