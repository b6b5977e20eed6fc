// Package autoload merges the autoload declarations of fixture packages into
// the root project's autoload-dev block.
package autoload

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/go-fixtures/internal/config"
	"github.com/jakoblorz/go-fixtures/internal/logging"
	"github.com/jakoblorz/go-fixtures/internal/models"
)

// Merger rewrites package-relative autoload paths and adds them to a target
// autoload block. It performs no filesystem access.
type Merger struct {
	logger *log.Logger
}

// NewMerger creates a Merger reporting adopted entries to logger.
func NewMerger(logger *log.Logger) *Merger {
	return &Merger{logger: logging.OrDiscard(logger)}
}

// Merge adds the sections of pkg selected by its modes to target.
//
// Sections are processed kind by kind (psr-0, psr-4, files, classmap) and,
// within each kind, autoload before autoload-dev.
func (m *Merger) Merge(target *models.Autoload, pkg *models.Package) {
	for _, kind := range models.AutoloadKinds {
		for _, mode := range models.Modes {
			if !pkg.Adopts(mode) {
				continue
			}
			source := pkg.AutoloadFor(mode)
			if !source.Has(kind) {
				m.logger.Debugf("Package %q does not have a %q %s section. Nothing to merge.", pkg.Name, kind, mode)
				continue
			}

			if kind.IsNamespaceMapping() {
				namespaces := source.Namespaces(kind)
				for _, ns := range namespaces.Namespaces() {
					locations, _ := namespaces.Get(ns)
					for _, declared := range locations.Paths() {
						m.MergeNamespace(target, pkg, kind, ns, declared)
					}
				}
				continue
			}

			for _, declared := range source.List(kind) {
				m.MergeList(target, pkg, kind, declared)
			}
		}
	}
}

// MergeNamespace adds one namespace location. A new namespace is stored as a
// single path; a second distinct path turns it into a list. Paths already
// present are left alone.
func (m *Merger) MergeNamespace(target *models.Autoload, pkg *models.Package, kind models.AutoloadKind, namespace, declared string) {
	if !kind.IsNamespaceMapping() {
		return
	}

	rewritten := RewritePath(pkg.Location, declared)
	namespaces := target.EnsureNamespaces(kind)

	current, exists := namespaces.Get(namespace)
	if exists && current.Contains(rewritten) {
		m.logger.Debugf("Package %q namespace %q path %q already exists in root package. Skipped.", pkg.Name, namespace, rewritten)
		return
	}

	namespaces.Set(namespace, current.Add(rewritten))
	m.adopted(pkg.Name, kind, namespace, rewritten)
}

// MergeList appends one files or classmap entry unless it is already listed.
func (m *Merger) MergeList(target *models.Autoload, pkg *models.Package, kind models.AutoloadKind, declared string) {
	if !kind.IsList() {
		return
	}

	rewritten := RewritePath(pkg.Location, declared)
	if !target.AppendList(kind, rewritten) {
		m.logger.Debugf("Package %q %s path %q already exists in root package. Skipped.", pkg.Name, kind, rewritten)
		return
	}
	m.adopted(pkg.Name, kind, "", rewritten)
}

func (m *Merger) adopted(name string, kind models.AutoloadKind, namespace, path string) {
	m.logger.Infof(">> [%s][%s][%s] = %s adopted.", name, kind, namespace, path)
}

// RewritePath anchors a package-relative declared path at the package
// location. "." and ".." segments of the declared path are resolved; a
// declared path that normalizes to nothing yields the location itself.
func RewritePath(location, declared string) string {
	base := strings.TrimRight(location, "/")
	if base == "" && strings.HasPrefix(location, "/") {
		base = "/"
	}

	normalized := config.NormalizePath(declared)
	switch {
	case normalized == "" && base == "":
		return "."
	case normalized == "":
		return base
	case base == "":
		return normalized
	case base == "/":
		return "/" + normalized
	}
	return base + "/" + normalized
}
