package manifest

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/stretchr/testify/require"
)

const extensionManifest = `{
    "name": "fixtures/extension-one",
    "type": "typo3-cms-extension",
    "autoload": {
        "psr-4": {
            "Fixtures\\ExtensionOne\\": "Classes/",
            "Fixtures\\ExtensionOne\\Legacy\\": ["Legacy/", 7, "Compat/"]
        },
        "psr-0": {"Old_": "lib/", "Broken_": 3},
        "classmap": ["Resources/Private/Php/", {"nope": true}],
        "files": "not-a-list"
    },
    "autoload-dev": {
        "psr-4": {"Fixtures\\ExtensionOne\\Tests\\": "Tests/"}
    },
    "extra": {
        "typo3/cms": {"extension-key": "extension_one", "weight": 10, "flag": true, "none": null},
        "list": [1, "two"]
    }
}`

func TestParse(t *testing.T) {
	pkg, err := Parse([]byte(extensionManifest), "Fixtures/Extensions/extension_one", "/project/Fixtures/Extensions/extension_one")
	require.NoError(t, err)

	require.Equal(t, "fixtures/extension-one", pkg.Name)
	require.Equal(t, "typo3-cms-extension", pkg.Type)
	require.Equal(t, "Fixtures/Extensions/extension_one", pkg.Location)
	require.Equal(t, "/project/Fixtures/Extensions/extension_one", pkg.Dir)

	require.Equal(t, []string{`Fixtures\ExtensionOne\`, `Fixtures\ExtensionOne\Legacy\`}, pkg.Autoload.PSR4.Namespaces())
	loc, ok := pkg.Autoload.PSR4.Get(`Fixtures\ExtensionOne\Legacy\`)
	require.True(t, ok)
	require.True(t, loc.IsList())
	require.Equal(t, []string{"Legacy/", "Compat/"}, loc.Paths())

	require.Equal(t, []string{"Old_"}, pkg.Autoload.PSR0.Namespaces())
	require.Equal(t, []string{"Resources/Private/Php/"}, pkg.Autoload.Classmap)
	require.Nil(t, pkg.Autoload.Files)

	require.Equal(t, []string{`Fixtures\ExtensionOne\Tests\`}, pkg.DevAutoload.PSR4.Namespaces())

	extra, err := json.Marshal(pkg.Extra)
	require.NoError(t, err)
	require.JSONEq(t, `{"typo3/cms": {"extension-key": "extension_one", "weight": 10, "flag": true, "none": null}, "list": [1, "two"]}`, string(extra))
	require.Equal(t, []string{"typo3/cms", "list"}, pkg.Extra.Keys())
}

func TestParse_Defaults(t *testing.T) {
	pkg, err := Parse([]byte(`{"name": "fixtures/plain"}`), "Fixtures/plain", "/project/Fixtures/plain")
	require.NoError(t, err)
	require.Equal(t, "library", pkg.Type)
	require.True(t, pkg.Autoload.IsEmpty())
	require.Equal(t, 0, pkg.Extra.Len())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "invalid json", data: `{"name": `, want: ErrInvalid},
		{name: "not an object", data: `["a"]`, want: ErrInvalid},
		{name: "missing name", data: `{"type": "library"}`, want: ErrMissingName},
		{name: "name not a string", data: `{"name": 5}`, want: ErrMissingName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "x", "/x")
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestRead(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/Fixtures/one/composer.json", []byte(`{"name": "fixtures/one"}`))

	pkg, err := Read(fs, "/project/Fixtures/one", "Fixtures/one")
	require.NoError(t, err)
	require.Equal(t, "fixtures/one", pkg.Name)

	_, err = Read(fs, "/project/Fixtures/two", "Fixtures/two")
	require.Error(t, err)
}

func TestParseRoot(t *testing.T) {
	data := []byte(`{
    "require": {"php": "^8.2", "typo3/cms-core": "^13.4"},
    "require-dev": {"fixtures/already-required": "@dev"},
    "config": {"vendor-dir": ".Build/vendor"}
}`)

	root, err := ParseRoot(data, "/project")
	require.NoError(t, err)

	require.Equal(t, RootName, root.Name)
	require.Equal(t, "/project/composer.json", root.Path)
	require.Equal(t, ".Build/vendor", root.VendorDir)
	require.Equal(t, "/project/.Build/vendor", root.VendorPath())
	require.True(t, root.RequiresPackage("typo3/cms-core"))
	require.True(t, root.RequiresPackage("fixtures/already-required"))
	require.False(t, root.RequiresPackage("fixtures/other"))
}

func TestParseRoot_DefaultVendorDir(t *testing.T) {
	root, err := ParseRoot([]byte(`{"name": "acme/project"}`), "/project")
	require.NoError(t, err)
	require.Equal(t, "acme/project", root.Name)
	require.Equal(t, DefaultVendorDir, root.VendorDir)
	require.Equal(t, "/project/vendor", root.VendorPath())
}

func TestRoot_Render(t *testing.T) {
	data := []byte(`{"name":"acme/project","autoload-dev":{"psr-4":{"Acme\\Tests\\":"Tests/"}},"config":{"sort-packages":true}}`)

	root, err := ParseRoot(data, "/project")
	require.NoError(t, err)

	root.DevAutoload.PSR4.Set(`Fixtures\One\`, models.NewLocation("Fixtures/one/Classes"))
	root.DevAutoload.AppendList(models.AutoloadClassmap, "vendor/fixture-packages/AvailableFixturePackages.php")

	out, err := root.Render()
	require.NoError(t, err)

	want := `{
    "name": "acme/project",
    "autoload-dev": {
        "psr-4": {
            "Acme\\Tests\\": "Tests/",
            "Fixtures\\One\\": "Fixtures/one/Classes"
        },
        "classmap": [
            "vendor/fixture-packages/AvailableFixturePackages.php"
        ]
    },
    "config": {
        "sort-packages": true
    }
}
`
	require.Equal(t, want, string(out))
}

func TestSetFixturePath(t *testing.T) {
	out, err := SetFixturePath([]byte(`{"name": "acme/project"}`), "Fixtures/Extensions/*", []models.Mode{models.ModeAutoload, models.ModeAutoloadDev})
	require.NoError(t, err)
	require.Equal(t, `{
    "name": "acme/project",
    "extra": {
        "fixture-packages": {
            "paths": {
                "Fixtures/Extensions/*": [
                    "autoload",
                    "autoload-dev"
                ]
            }
        }
    }
}
`, string(out))

	root, err := ParseRoot(out, "/project")
	require.NoError(t, err)
	_, ok := root.Extra.Get("fixture-packages")
	require.True(t, ok)
}

func TestSetFixturePath_ConvertsListForm(t *testing.T) {
	data := []byte(`{"extra": {"fixture-packages": {"paths": ["Fixtures/*"], "exclude": ["Fixtures/old"]}}}`)

	out, err := SetFixturePath(data, "Fixtures/*", []models.Mode{models.ModeAutoloadDev})
	require.NoError(t, err)
	require.JSONEq(t, `{"extra": {"fixture-packages": {"paths": {"Fixtures/*": ["autoload-dev"]}, "exclude": ["Fixtures/old"]}}}`, string(out))

	out, err = SetFixturePath(data, "Tests/*", []models.Mode{models.ModeAutoload})
	require.NoError(t, err)
	require.JSONEq(t, `{"extra": {"fixture-packages": {"paths": {"Fixtures/*": ["autoload"], "Tests/*": ["autoload"]}, "exclude": ["Fixtures/old"]}}}`, string(out))
}

func TestSetFixturePath_InvalidManifest(t *testing.T) {
	_, err := SetFixturePath([]byte(`[]`), "x", nil)
	require.ErrorIs(t, err, ErrInvalid)
}
