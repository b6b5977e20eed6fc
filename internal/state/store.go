// Package state persists the adopted fixture packages for consumers: a PHP
// file returning the export array, its JSON twin and a loader class reading
// the PHP file.
package state

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/logging"
	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/tidwall/pretty"
)

const (
	// DirName is the directory below the vendor directory holding all artifacts.
	DirName = "fixture-packages"

	StateFileName  = "fixture-packages.php"
	JSONFileName   = "fixture-packages.json"
	LoaderFileName = "AvailableFixturePackages.php"
)

var prettyOptions = &pretty.Options{Indent: "    "}

// Store writes the state artifacts into one directory.
type Store struct {
	fs     filesystem.FileSystem
	dir    string
	loader LoaderData
	logger *log.Logger
}

// NewStore creates a Store for <vendorPath>/fixture-packages.
func NewStore(fs filesystem.FileSystem, vendorPath string, logger *log.Logger) *Store {
	return &Store{
		fs:     fs,
		dir:    filepath.Join(vendorPath, DirName),
		loader: DefaultLoaderData(),
		logger: logging.OrDiscard(logger),
	}
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

// StatePath returns the path of the PHP state file.
func (s *Store) StatePath() string {
	return filepath.Join(s.dir, StateFileName)
}

// JSONPath returns the path of the JSON state file.
func (s *Store) JSONPath() string {
	return filepath.Join(s.dir, JSONFileName)
}

// LoaderPath returns the path of the loader class file.
func (s *Store) LoaderPath() string {
	return filepath.Join(s.dir, LoaderFileName)
}

// Result reports which artifacts were touched by Write.
type Result struct {
	StateWritten bool
	JSONWritten  bool
	Loader       LoaderStatus
}

// Write persists export. State files are only rewritten when their content
// changes, and the loader only when its checksum differs from the bundled one.
func (s *Store) Write(export *Export) (*Result, error) {
	php, err := DumpPHP(export)
	if err != nil {
		return nil, fmt.Errorf("failed to render state file: %w", err)
	}

	data, err := models.EncodeJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state file: %w", err)
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.dir, err)
	}

	result := &Result{}

	result.StateWritten, err = filesystem.WriteFileIfModified(s.fs, s.StatePath(), php, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to write state file: %w", err)
	}

	result.JSONWritten, err = filesystem.WriteFileIfModified(s.fs, s.JSONPath(), pretty.PrettyOptions(data, prettyOptions), 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to write state file: %w", err)
	}

	result.Loader, err = s.EnsureLoader()
	if err != nil {
		return nil, err
	}

	return result, nil
}

// EnsureLoader creates the loader class file if it is missing and replaces it
// if its checksum differs from the bundled template.
func (s *Store) EnsureLoader() (LoaderStatus, error) {
	want, err := RenderLoader(s.loader)
	if err != nil {
		return "", err
	}

	path := s.LoaderPath()
	status := LoaderCreated
	if s.fs.Exists(path) {
		current, err := s.fs.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		if Checksum(current) == Checksum(want) {
			return LoaderUnchanged, nil
		}
		s.logger.Infof(">> %s exists, but content changed. Replacing it.", LoaderFileName)
		status = LoaderReplaced
	} else {
		s.logger.Infof(">> Provide %s", LoaderFileName)
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", s.dir, err)
	}
	if err := filesystem.WriteFileAtomic(s.fs, path, want, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", LoaderFileName, err)
	}

	return status, nil
}
