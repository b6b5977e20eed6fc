package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/go-fixtures/internal/config"
	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/logging"
	"github.com/jakoblorz/go-fixtures/internal/manifest"
	"github.com/jakoblorz/go-fixtures/internal/models"
)

// ErrRootNotFound is returned when no root manifest exists in or above the
// working directory.
var ErrRootNotFound = errors.New("composer.json not found in working directory or any parent")

// Workspace represents a project rooted at a composer.json and the fixture
// packages found below it.
type Workspace struct {
	fs         filesystem.FileSystem
	RootPath   string
	Root       *manifest.Root
	workingDir string
	logger     *log.Logger
	ignore     gitignore.GitIgnore
}

// Option configures workspace behavior.
type Option func(*Workspace)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *log.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// WithWorkingDir starts root detection at dir instead of the process working directory.
func WithWorkingDir(dir string) Option {
	return func(w *Workspace) {
		w.workingDir = dir
	}
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem, options ...Option) *Workspace {
	ws := &Workspace{fs: fs}

	for _, option := range options {
		option(ws)
	}
	ws.logger = logging.OrDiscard(ws.logger)

	return ws
}

// Detect finds and loads the root manifest, starting at the working directory.
func (w *Workspace) Detect() error {
	root, err := w.findWorkspaceRoot()
	if err != nil {
		return err
	}

	rootManifest, err := manifest.ReadRoot(w.fs, root)
	if err != nil {
		return fmt.Errorf("failed to load root manifest: %w", err)
	}

	w.RootPath = root
	w.Root = rootManifest
	return nil
}

// findWorkspaceRoot walks up the directory tree looking for composer.json.
func (w *Workspace) findWorkspaceRoot() (string, error) {
	start := w.workingDir
	if start == "" {
		cwd, err := w.fs.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		start = cwd
	}

	manifestPath, ok := findFileUp(w.fs, start, manifest.FileName)
	if !ok {
		return "", ErrRootNotFound
	}
	return filepath.Dir(manifestPath), nil
}

// Config validates the root manifest's plugin configuration. Exclude
// patterns found there are applied to later expansions.
func (w *Workspace) Config() *config.PathConfig {
	cfg := config.Load(filepath.ToSlash(w.RootPath), w.Root.Extra, w.logger)
	w.SetExcludes(cfg.Excludes())
	return cfg
}

// SetExcludes replaces the gitignore-style patterns that prune candidate
// directories. Patterns are relative to the project root.
func (w *Workspace) SetExcludes(patterns []string) {
	if len(patterns) == 0 {
		w.ignore = nil
		return
	}
	w.ignore = gitignore.New(strings.NewReader(strings.Join(patterns, "\n")), w.RootPath, func(err gitignore.Error) bool {
		w.logger.Warnf("Ignoring invalid exclude pattern: %v", err)
		return true
	})
}

// Fixtures expands every configured pattern, in configuration order, and
// returns the discovered packages. A directory reached through more than one
// pattern is registered once, for the first pattern that reached it.
func (w *Workspace) Fixtures(cfg *config.PathConfig) []*models.Package {
	var packages []*models.Package
	seen := make(map[string]struct{})

	for _, entry := range cfg.Paths(true) {
		for _, pkg := range w.Expand(entry.Pattern, entry.Modes) {
			if _, exists := seen[pkg.Dir]; exists {
				w.logger.Debugf("Package %q in %q already registered by an earlier pattern", pkg.Name, pkg.Location)
				continue
			}
			seen[pkg.Dir] = struct{}{}
			packages = append(packages, pkg)
		}
	}

	return packages
}

// Expand turns one directory pattern into the packages it matches. Each
// segment containing glob syntax matches one level of subdirectories; all
// other segments must exist literally. Matches are produced depth-first in
// directory listing order. Directories without a manifest are skipped and a
// manifest that cannot be parsed is skipped with a warning.
func (w *Workspace) Expand(pattern string, modes []models.Mode) []*models.Package {
	normalized := config.NormalizePath(pattern)
	absolute := config.IsAbsolutePath(normalized)

	start := w.RootPath
	rest := normalized
	if absolute {
		start, rest = splitRoot(normalized)
	}

	var segments []string
	if rest != "" {
		segments = strings.Split(rest, "/")
	}

	var dirs []string
	w.match(filepath.FromSlash(start), segments, &dirs)

	var packages []*models.Package
	for _, dir := range dirs {
		if !w.fs.Exists(filepath.Join(dir, manifest.FileName)) {
			w.logger.Debugf("No %s in %q, skipped", manifest.FileName, dir)
			continue
		}

		location := filepath.ToSlash(dir)
		if !absolute {
			location = w.relative(dir)
		}

		pkg, err := manifest.Read(w.fs, dir, location)
		if err != nil {
			w.logger.Warnf("Skipping fixture package in %q: %v", location, err)
			continue
		}
		pkg.Modes = append([]models.Mode(nil), modes...)
		packages = append(packages, pkg)
	}

	return packages
}

func (w *Workspace) match(dir string, segments []string, out *[]string) {
	if len(segments) == 0 {
		*out = append(*out, dir)
		return
	}

	segment, rest := segments[0], segments[1:]
	if !hasMeta(segment) {
		next := filepath.Join(dir, segment)
		if w.fs.IsDir(next) && !w.excluded(next) {
			w.match(next, rest, out)
		}
		return
	}

	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(segment, ".") {
			continue
		}
		if ok, err := matchSegment(segment, name); err != nil || !ok {
			continue
		}

		next := filepath.Join(dir, name)
		if !w.fs.IsDir(next) || w.excluded(next) {
			continue
		}
		w.match(next, rest, out)
	}
}

func (w *Workspace) excluded(dir string) bool {
	if w.ignore == nil {
		return false
	}

	rel := w.relative(dir)
	if rel == "" || rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}

	if match := w.ignore.Relative(rel, true); match != nil && match.Ignore() {
		w.logger.Debugf("Directory %q excluded", rel)
		return true
	}
	return false
}

// relative returns dir relative to the root as a slash path, falling back to
// the absolute path when no relative form exists.
func (w *Workspace) relative(dir string) string {
	rel, err := filepath.Rel(w.RootPath, dir)
	if err != nil {
		return filepath.ToSlash(dir)
	}
	if rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

// splitRoot separates the filesystem root ("/" or a drive) from the rest of
// a normalized absolute path.
func splitRoot(p string) (string, string) {
	if strings.HasPrefix(p, "/") {
		return "/", strings.TrimPrefix(p, "/")
	}
	drive, rest, _ := strings.Cut(p, "/")
	return drive + "/", rest
}
