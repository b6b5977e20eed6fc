// Package adopter ties configuration, discovery, merging and persistence
// together into one adopt run.
package adopter

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/go-fixtures/internal/autoload"
	"github.com/jakoblorz/go-fixtures/internal/config"
	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/logging"
	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/jakoblorz/go-fixtures/internal/state"
	"github.com/jakoblorz/go-fixtures/internal/workspace"
)

// Adopter adopts the fixture packages of one workspace into its root
// manifest's autoload-dev block.
type Adopter struct {
	fs     filesystem.FileSystem
	ws     *workspace.Workspace
	logger *log.Logger
	cfg    *config.PathConfig
}

// New creates an Adopter for a detected workspace.
func New(fs filesystem.FileSystem, ws *workspace.Workspace, logger *log.Logger) *Adopter {
	return &Adopter{
		fs:     fs,
		ws:     ws,
		logger: logging.OrDiscard(logger),
	}
}

// Config returns the path configuration, loading it on first use.
func (a *Adopter) Config() *config.PathConfig {
	if a.cfg == nil {
		a.cfg = a.ws.Config()
	}
	return a.cfg
}

// Reset drops the loaded configuration so the next run reads it again.
func (a *Adopter) Reset() {
	a.cfg = nil
}

// Result describes one adopt run.
type Result struct {
	// Adopted lists the merged packages in discovery order
	Adopted []*models.Package

	// Skipped lists packages that are already regular dependencies
	Skipped []*models.Package

	// Export is the persisted name-keyed record set
	Export *state.Export

	// Written reports which artifacts changed on disk
	Written *state.Result
}

// Adopt discovers the configured fixture packages, merges their autoload
// sections into the root autoload-dev block and persists the export. Outside
// development mode nothing happens and a nil result is returned.
func (a *Adopter) Adopt(devMode bool) (*Result, error) {
	if !devMode {
		a.logger.Debug("Not in development mode, fixture packages are not adopted")
		return nil, nil
	}

	root := a.ws.Root
	cfg := a.Config()
	merger := autoload.NewMerger(a.logger)
	store := state.NewStore(a.fs, root.VendorPath(), a.logger)

	result := &Result{Export: state.NewExport()}
	for _, pkg := range a.ws.Fixtures(cfg) {
		if root.RequiresPackage(pkg.Name) {
			a.logger.Warnf(">> Skipping autoload adopt for package %q in %q, already installed.", pkg.Name, pkg.Location)
			result.Skipped = append(result.Skipped, pkg)
			continue
		}
		merger.Merge(&root.DevAutoload, pkg)
		result.Adopted = append(result.Adopted, pkg)
	}

	for _, pkg := range result.Adopted {
		record := state.NewRecord(pkg, a.ws.RootPath, store.Dir())
		if result.Export.Put(record) {
			a.logger.Warnf(">> Fixture package %q in %q replaces an earlier package with the same name.", pkg.Name, pkg.Location)
		}
	}

	written, err := store.Write(result.Export)
	if err != nil {
		return nil, fmt.Errorf("failed to write fixture package state: %w", err)
	}
	result.Written = written

	root.DevAutoload.AppendList(models.AutoloadClassmap, a.loaderClassFile(store))

	return result, nil
}

// loaderClassFile returns the loader path as registered in the classmap:
// relative to the project root when possible.
func (a *Adopter) loaderClassFile(store *state.Store) string {
	return state.ShortestPath(a.ws.RootPath, store.LoaderPath())
}
