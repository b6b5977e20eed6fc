package filesystem

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const tempAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// WriteFileAtomic writes data next to path under a temporary name and renames
// it into place, so readers never observe a half-written file.
func WriteFileAtomic(fsys FileSystem, path string, data []byte, perm fs.FileMode) error {
	suffix, err := gonanoid.Generate(tempAlphabet, 10)
	if err != nil {
		return fmt.Errorf("failed to generate temp name: %w", err)
	}

	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp-"+suffix)
	if err := fsys.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		_ = fsys.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}

// WriteFileIfModified writes data only when the file is missing or its content
// differs. It reports whether a write happened.
func WriteFileIfModified(fsys FileSystem, path string, data []byte, perm fs.FileMode) (bool, error) {
	if fsys.Exists(path) {
		current, err := fsys.ReadFile(path)
		if err == nil && bytes.Equal(current, data) {
			return false, nil
		}
	}

	if err := WriteFileAtomic(fsys, path, data, perm); err != nil {
		return false, err
	}

	return true, nil
}
