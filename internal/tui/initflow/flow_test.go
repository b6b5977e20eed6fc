package initflow

import (
	"testing"

	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/stretchr/testify/require"
)

func TestNewResult(t *testing.T) {
	result, err := NewResult(`Fixtures\Extensions\*\`, []string{"Autoload", "autoload-dev", "autoload"})
	require.NoError(t, err)
	require.Equal(t, "Fixtures/Extensions/*", result.Pattern)
	require.Equal(t, []models.Mode{models.ModeAutoload, models.ModeAutoloadDev}, result.Modes)
}

func TestNewResult_Invalid(t *testing.T) {
	_, err := NewResult("", []string{"autoload"})
	require.Error(t, err)

	_, err = NewResult("./", []string{"autoload"})
	require.Error(t, err)

	_, err = NewResult("Fixtures/*", []string{"classmap"})
	require.Error(t, err)

	_, err = NewResult("Fixtures/*", nil)
	require.Error(t, err)
}

func TestRenderSnippet(t *testing.T) {
	snippet, err := RenderSnippet(&Result{Pattern: "Fixtures/*", Modes: []models.Mode{models.ModeAutoloadDev}})
	require.NoError(t, err)
	require.Equal(t, `"extra": {
    "fixture-packages": {
        "paths": {"Fixtures/*":["autoload-dev"]}
    }
}`, snippet)
}

func TestRenderSuccess(t *testing.T) {
	out := RenderSuccess(&Result{Pattern: "Fixtures/*", Modes: []models.Mode{models.ModeAutoload, models.ModeAutoloadDev}}, "/project/composer.json")
	require.Contains(t, out, "Fixture path configured")
	require.Contains(t, out, "Adopts:  autoload, autoload-dev\n")
	require.Contains(t, out, "Updated: /project/composer.json\n")
}
