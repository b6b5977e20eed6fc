package state

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/AvailableFixturePackages.php.tmpl
var templates embed.FS

const loaderTemplate = "templates/AvailableFixturePackages.php.tmpl"

// LoaderData parameterizes the generated loader class.
type LoaderData struct {
	Namespace        string
	ClassName        string
	DataFile         string
	IntegrationTypes []string
	ErrorCode        int
}

// DefaultLoaderData describes the loader written next to the state file.
func DefaultLoaderData() LoaderData {
	return LoaderData{
		Namespace:        "FixturePackages",
		ClassName:        "AvailableFixturePackages",
		DataFile:         StateFileName,
		IntegrationTypes: []string{"typo3-cms-framework", "typo3-cms-extension"},
		ErrorCode:        1739709225,
	}
}

// RenderLoader renders the loader class. Equal data yields identical bytes.
func RenderLoader(data LoaderData) ([]byte, error) {
	tmpl, err := template.New("AvailableFixturePackages.php.tmpl").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templates, loaderTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse loader template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render loader template: %w", err)
	}
	return buf.Bytes(), nil
}

// LoaderStatus tells what happened to the loader file.
type LoaderStatus string

const (
	LoaderCreated   LoaderStatus = "created"
	LoaderReplaced  LoaderStatus = "replaced"
	LoaderUnchanged LoaderStatus = "unchanged"
)

// Checksum returns the SHA-256 digest of data.
func Checksum(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}
