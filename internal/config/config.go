// Package config parses and validates the fixture path configuration found in
// the root manifest's extra block.
//
// The block looks like this:
//
//	"extra": {
//	    "fixture-packages": {
//	        "paths": {
//	            "Fixtures/Extensions/*": ["autoload"],
//	            "Packages/*/Tests/Fixtures/*": ["autoload", "autoload-dev"]
//	        },
//	        "exclude": ["Fixtures/Extensions/broken_*"]
//	    }
//	}
//
// "paths" may also be a plain list of patterns, each adopting "autoload".
package config

import (
	"slices"

	"github.com/jakoblorz/go-fixtures/internal/models"
)

const (
	// ExtraKey is the key of the plugin block inside the manifest's extra block.
	ExtraKey = "fixture-packages"

	pathsKey   = "paths"
	excludeKey = "exclude"
)

// PathEntry is one configured directory pattern and its adoption modes.
type PathEntry struct {
	Pattern string
	Modes   []models.Mode
}

// PathConfig holds the validated fixture path configuration for one project.
type PathConfig struct {
	baseDir  string
	paths    []PathEntry
	excludes []string
}

// New creates an empty PathConfig rooted at baseDir.
func New(baseDir string) *PathConfig {
	return &PathConfig{baseDir: NormalizePath(baseDir)}
}

// BaseDir returns the normalized project root.
func (c *PathConfig) BaseDir() string {
	return c.baseDir
}

// Merge reads the plugin block of an already filtered extra block (see
// FilterExtra) and replaces the configured paths and excludes.
func (c *PathConfig) Merge(extra *models.Object) *PathConfig {
	block, ok := pluginBlock(extra)
	if !ok {
		return c
	}

	if raw, ok := block.Get(pathsKey); ok {
		if paths, ok := raw.(*models.Object); ok {
			c.paths = nil
			for _, pattern := range paths.Keys() {
				value, _ := paths.Get(pattern)
				modes := parseModes(value)
				if len(modes) == 0 {
					continue
				}
				c.paths = append(c.paths, PathEntry{Pattern: pattern, Modes: modes})
			}
		}
	}

	if raw, ok := block.Get(excludeKey); ok {
		c.excludes = stringList(raw)
	}

	return c
}

// Paths returns the configured patterns in declaration order. With relative
// set the patterns are returned as configured, otherwise each is resolved
// against the base directory.
func (c *PathConfig) Paths(relative bool) []PathEntry {
	out := make([]PathEntry, 0, len(c.paths))
	for _, entry := range c.paths {
		pattern := entry.Pattern
		if !relative {
			pattern = c.Resolve(pattern)
		}
		out = append(out, PathEntry{Pattern: pattern, Modes: slices.Clone(entry.Modes)})
	}
	return out
}

// Excludes returns the gitignore-style exclude patterns.
func (c *PathConfig) Excludes() []string {
	return slices.Clone(c.excludes)
}

// Resolve turns p into an absolute path without touching the filesystem;
// configured directories may not exist yet.
func (c *PathConfig) Resolve(p string) string {
	if p == "" {
		return c.baseDir
	}

	normalized := NormalizePath(p)
	if normalized == "" {
		return c.baseDir
	}
	if IsAbsolutePath(normalized) {
		return normalized
	}

	if c.baseDir == "/" {
		return "/" + normalized
	}
	return c.baseDir + "/" + normalized
}

func pluginBlock(extra *models.Object) (*models.Object, bool) {
	raw, ok := extra.Get(ExtraKey)
	if !ok {
		return nil, false
	}
	block, ok := raw.(*models.Object)
	return block, ok
}

func parseModes(value any) []models.Mode {
	list, _ := value.([]any)

	var modes []models.Mode
	for _, item := range stringList(list) {
		mode, err := models.ParseMode(item)
		if err != nil || slices.Contains(modes, mode) {
			continue
		}
		modes = append(modes, mode)
	}
	return modes
}

func stringList(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
