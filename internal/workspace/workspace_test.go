package workspace

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/go-fixtures/internal/config"
	"github.com/jakoblorz/go-fixtures/internal/filesystem"
	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/stretchr/testify/require"
)

var autoloadOnly = []models.Mode{models.ModeAutoload}

func names(packages []*models.Package) []string {
	out := make([]string, len(packages))
	for i, pkg := range packages {
		out[i] = pkg.Name
	}
	return out
}

func detect(t *testing.T, fs filesystem.FileSystem, options ...Option) *Workspace {
	t.Helper()
	ws := New(fs, options...)
	if err := ws.Detect(); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	return ws
}

func TestWorkspaceDetect_WalksUpToRootManifest(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddFixture("Fixtures/Extensions/ext_one", "fixtures/ext-one", `Fixtures\ExtOne\`).
		Build()
	fs.SetCurrentDir("/workspace/Fixtures/Extensions")

	ws := detect(t, fs)

	// the fixture's own manifest must not be mistaken for the root
	if ws.RootPath != "/workspace" {
		t.Fatalf("unexpected root path: %s", ws.RootPath)
	}
	if ws.Root.Name != "acme/project" {
		t.Fatalf("unexpected root name: %s", ws.Root.Name)
	}
}

func TestWorkspaceDetect_WorkingDirOption(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").Build()
	fs.AddFile("/other/composer.json", []byte(`{"name": "acme/other"}`))

	ws := detect(t, fs, WithWorkingDir("/other"))
	require.Equal(t, "/other", ws.RootPath)
	require.Equal(t, "acme/other", ws.Root.Name)
}

func TestWorkspaceDetect_NotFound(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/workspace")

	err := New(fs).Detect()
	if !errors.Is(err, ErrRootNotFound) {
		t.Fatalf("expected ErrRootNotFound, got %v", err)
	}
}

func TestWorkspaceDetect_InvalidRootManifest(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").WithRootManifest(`{"name": `).Build()

	err := New(fs).Detect()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load root manifest")
}

func TestExpand_SingleWildcard(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddFixture("Fixtures/Extensions/ext_two", "fixtures/ext-two", `Fixtures\ExtTwo\`).
		AddFixture("Fixtures/Extensions/ext_one", "fixtures/ext-one", `Fixtures\ExtOne\`).
		AddDir("Fixtures/Extensions/no_manifest").
		Build()
	fs.AddFile("/workspace/Fixtures/Extensions/README.md", []byte("# fixtures\n"))

	ws := detect(t, fs)
	packages := ws.Expand("Fixtures/Extensions/*", autoloadOnly)

	require.Equal(t, []string{"fixtures/ext-one", "fixtures/ext-two"}, names(packages))
	require.Equal(t, "Fixtures/Extensions/ext_one", packages[0].Location)
	require.Equal(t, "/workspace/Fixtures/Extensions/ext_one", packages[0].Dir)
	require.Equal(t, autoloadOnly, packages[0].Modes)
}

func TestExpand_MultipleWildcards(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddFixture("Packages/alpha/Fixtures/Extensions/first", "fixtures/alpha-first", `Alpha\First\`).
		AddFixture("Packages/alpha/Fixtures/Extensions/second", "fixtures/alpha-second", `Alpha\Second\`).
		AddFixture("Packages/beta/Fixtures/Extensions/first", "fixtures/beta-first", `Beta\First\`).
		AddDir("Packages/gamma/Fixtures").
		AddFixture("Packages/delta/Other/Extensions/ignored", "fixtures/ignored", `Ignored\`).
		Build()

	ws := detect(t, fs)
	packages := ws.Expand("Packages/*/Fixtures/Extensions/*", autoloadOnly)

	require.Equal(t, []string{"fixtures/alpha-first", "fixtures/alpha-second", "fixtures/beta-first"}, names(packages))
	require.Equal(t, "Packages/beta/Fixtures/Extensions/first", packages[2].Location)
}

func TestExpand_PartialSegmentPattern(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddFixture("Fixtures/ext_one", "fixtures/ext-one", `One\`).
		AddFixture("Fixtures/lib_two", "fixtures/lib-two", `Two\`).
		Build()

	ws := detect(t, fs)
	require.Equal(t, []string{"fixtures/ext-one"}, names(ws.Expand("Fixtures/ext_*", autoloadOnly)))
}

func TestExpand_NoMatchesIsNotAnError(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").Build()

	ws := detect(t, fs)
	require.Empty(t, ws.Expand("Fixtures/does-not-exist/*", autoloadOnly))
	require.Empty(t, ws.Expand("Fixtures/does-not-exist", autoloadOnly))
}

func TestExpand_LiteralPattern(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddFixture("Fixtures/single", "fixtures/single", `Single\`).
		Build()

	ws := detect(t, fs)
	packages := ws.Expand("Fixtures/single/", autoloadOnly)
	require.Equal(t, []string{"fixtures/single"}, names(packages))
	require.Equal(t, "Fixtures/single", packages[0].Location)
}

func TestExpand_SkipsHiddenDirectories(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddFixture("Fixtures/.cache", "fixtures/cache", `Cache\`).
		AddFixture("Fixtures/visible", "fixtures/visible", `Visible\`).
		Build()

	ws := detect(t, fs)
	require.Equal(t, []string{"fixtures/visible"}, names(ws.Expand("Fixtures/*", autoloadOnly)))
	require.Equal(t, []string{"fixtures/cache"}, names(ws.Expand("Fixtures/.*", autoloadOnly)))
}

func TestExpand_AbsolutePattern(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").Build()
	fs.AddFile("/shared/fixtures/one/composer.json", []byte(`{"name": "shared/one"}`))

	ws := detect(t, fs)
	packages := ws.Expand("/shared/fixtures/*", autoloadOnly)

	require.Equal(t, []string{"shared/one"}, names(packages))
	require.Equal(t, "/shared/fixtures/one", packages[0].Location)
}

func TestExpand_InvalidManifestIsSkippedWithWarning(t *testing.T) {
	var buf bytes.Buffer
	fs := NewWorkspaceBuilder("/workspace").
		AddPackage("Fixtures/broken", `{"name": `).
		AddPackage("Fixtures/nameless", `{"type": "library"}`).
		AddFixture("Fixtures/valid", "fixtures/valid", `Valid\`).
		Build()

	ws := detect(t, fs, WithLogger(log.New(&buf)))
	packages := ws.Expand("Fixtures/*", autoloadOnly)

	require.Equal(t, []string{"fixtures/valid"}, names(packages))
	require.Contains(t, buf.String(), `Skipping fixture package in "Fixtures/broken"`)
	require.Contains(t, buf.String(), `Skipping fixture package in "Fixtures/nameless"`)
}

func TestExpand_Excludes(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddFixture("Fixtures/Extensions/broken_one", "fixtures/broken-one", `BrokenOne\`).
		AddFixture("Fixtures/Extensions/good", "fixtures/good", `Good\`).
		AddFixture("Packages/legacy/Fixtures/thing", "fixtures/legacy-thing", `Legacy\`).
		AddFixture("Packages/modern/Fixtures/thing", "fixtures/modern-thing", `Modern\`).
		Build()

	ws := detect(t, fs)
	ws.SetExcludes([]string{"Fixtures/Extensions/broken_*", "Packages/legacy"})

	require.Equal(t, []string{"fixtures/good"}, names(ws.Expand("Fixtures/Extensions/*", autoloadOnly)))
	require.Equal(t, []string{"fixtures/modern-thing"}, names(ws.Expand("Packages/*/Fixtures/*", autoloadOnly)))
}

func TestFixtures_DeduplicatesByDirectory(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		WithPaths(
			`"Fixtures/Extensions/*": ["autoload"]`,
			`"Fixtures/*/ext_one": ["autoload-dev"]`,
			`"Tests/Fixtures/*": ["autoload", "autoload-dev"]`,
		).
		AddFixture("Fixtures/Extensions/ext_one", "fixtures/ext-one", `One\`).
		AddFixture("Fixtures/Extensions/ext_two", "fixtures/ext-two", `Two\`).
		AddFixture("Tests/Fixtures/ext_three", "fixtures/ext-three", `Three\`).
		Build()

	ws := detect(t, fs)
	packages := ws.Fixtures(ws.Config())

	require.Equal(t, []string{"fixtures/ext-one", "fixtures/ext-two", "fixtures/ext-three"}, names(packages))
	// first pattern wins
	require.Equal(t, autoloadOnly, packages[0].Modes)
	require.Equal(t, []models.Mode{models.ModeAutoload, models.ModeAutoloadDev}, packages[2].Modes)
}

func TestFixtures_SameNameInDifferentDirectoriesIsKept(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddFixture("Fixtures/a/twin", "fixtures/twin", `TwinA\`).
		AddFixture("Fixtures/b/twin", "fixtures/twin", `TwinB\`).
		Build()

	ws := detect(t, fs)
	cfg := config.New("/workspace").Merge(config.FilterExtra(ws.Root.Extra, nil))
	require.Empty(t, ws.Fixtures(cfg))

	ws = detect(t, NewWorkspaceBuilder("/workspace").
		WithPaths(`"Fixtures/*/twin": ["autoload"]`).
		AddFixture("Fixtures/a/twin", "fixtures/twin", `TwinA\`).
		AddFixture("Fixtures/b/twin", "fixtures/twin", `TwinB\`).
		Build())

	packages := ws.Fixtures(ws.Config())
	require.Len(t, packages, 2)
	require.Equal(t, "Fixtures/a/twin", packages[0].Location)
	require.Equal(t, "Fixtures/b/twin", packages[1].Location)
}

func TestConfig_AppliesExcludes(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		WithRootManifest(`{
    "name": "acme/project",
    "extra": {
        "fixture-packages": {
            "paths": ["Fixtures/*"],
            "exclude": ["Fixtures/skip"]
        }
    }
}`).
		AddFixture("Fixtures/keep", "fixtures/keep", `Keep\`).
		AddFixture("Fixtures/skip", "fixtures/skip", `Skip\`).
		Build()

	ws := detect(t, fs)
	require.Equal(t, []string{"fixtures/keep"}, names(ws.Fixtures(ws.Config())))
}
