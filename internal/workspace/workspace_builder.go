package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-fixtures/internal/filesystem"
)

// WorkspaceBuilder helps create test workspaces
type WorkspaceBuilder struct {
	fs       *filesystem.MockFileSystem
	root     string
	manifest string
}

// NewWorkspaceBuilder creates a new WorkspaceBuilder
func NewWorkspaceBuilder(root string) *WorkspaceBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	return &WorkspaceBuilder{
		fs:       fs,
		root:     root,
		manifest: `{"name": "acme/project"}`,
	}
}

// WithRootManifest sets the content of the root composer.json
func (wb *WorkspaceBuilder) WithRootManifest(content string) *WorkspaceBuilder {
	wb.manifest = content
	return wb
}

// WithPaths sets the root manifest to a project configuring the given
// pattern to modes entries, each given as `"pattern": ["mode", ...]`.
func (wb *WorkspaceBuilder) WithPaths(entries ...string) *WorkspaceBuilder {
	wb.manifest = fmt.Sprintf(`{
    "name": "acme/project",
    "extra": {
        "fixture-packages": {
            "paths": {%s}
        }
    }
}`, strings.Join(entries, ", "))
	return wb
}

// AddPackage adds a directory with the given composer.json
func (wb *WorkspaceBuilder) AddPackage(path, manifest string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, path, "composer.json"), []byte(manifest))
	return wb
}

// AddFixture adds a package mapping one PSR-4 namespace to Classes/
func (wb *WorkspaceBuilder) AddFixture(path, name, namespace string) *WorkspaceBuilder {
	manifest := fmt.Sprintf(`{
    "name": %q,
    "type": "library",
    "autoload": {
        "psr-4": {%q: "Classes/"}
    }
}`, name, namespace)
	wb.fs.AddDir(filepath.Join(wb.root, path, "Classes"))
	return wb.AddPackage(path, manifest)
}

// AddDir adds a directory without a manifest
func (wb *WorkspaceBuilder) AddDir(path string) *WorkspaceBuilder {
	wb.fs.AddDir(filepath.Join(wb.root, path))
	return wb
}

// Build finalizes the workspace and returns the filesystem
func (wb *WorkspaceBuilder) Build() *filesystem.MockFileSystem {
	wb.fs.AddFile(filepath.Join(wb.root, "composer.json"), []byte(wb.manifest))
	return wb.fs
}

// FileSystem returns the mock filesystem
func (wb *WorkspaceBuilder) FileSystem() *filesystem.MockFileSystem {
	return wb.fs
}
