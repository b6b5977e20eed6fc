package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// PrettyOptions formats JSON the way the package manager writes its files:
// four space indentation with every array element on its own line.
var PrettyOptions = &pretty.Options{Indent: "    "}

// Root is the manifest of the project being worked on.
type Root struct {
	*models.Package

	// Path is the absolute path of the manifest file
	Path string

	// VendorDir is config.vendor-dir as declared, relative to Dir unless absolute
	VendorDir string

	raw []byte
}

// ParseRoot parses the root manifest located in dir.
func ParseRoot(data []byte, dir string) (*Root, error) {
	doc, err := document(data)
	if err != nil {
		return nil, err
	}

	pkg, err := parsePackage(doc, "", dir, RootName)
	if err != nil {
		return nil, err
	}

	vendorDir := DefaultVendorDir
	if v := doc.Get("config.vendor-dir"); v.Type == gjson.String && v.String() != "" {
		vendorDir = filepath.ToSlash(v.String())
	}

	return &Root{
		Package:   pkg,
		Path:      filepath.Join(dir, FileName),
		VendorDir: vendorDir,
		raw:       data,
	}, nil
}

// ReadRoot loads the root manifest in dir.
func ReadRoot(fs filesystem.FileSystem, dir string) (*Root, error) {
	manifestPath := filepath.Join(dir, FileName)
	data, err := fs.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	root, err := ParseRoot(data, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", manifestPath, err)
	}

	return root, nil
}

// VendorPath returns the absolute vendor directory.
func (r *Root) VendorPath() string {
	if filepath.IsAbs(r.VendorDir) {
		return filepath.Clean(r.VendorDir)
	}
	return filepath.Join(r.Dir, r.VendorDir)
}

// Render returns the original manifest with its autoload-dev block replaced
// by the current in-memory one. Every other key keeps its position.
func (r *Root) Render() ([]byte, error) {
	devAutoload, err := models.EncodeJSON(r.DevAutoload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode autoload-dev: %w", err)
	}

	out, err := sjson.SetRawBytes(r.raw, "autoload-dev", devAutoload)
	if err != nil {
		return nil, fmt.Errorf("failed to update autoload-dev: %w", err)
	}

	return pretty.PrettyOptions(out, PrettyOptions), nil
}
