package initflow

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/jakoblorz/go-fixtures/internal/tui"
)

// RenderSnippet renders the manifest block configuring result.
func RenderSnippet(result *Result) (string, error) {
	paths := models.NewObject()
	values := make([]any, len(result.Modes))
	for i, mode := range result.Modes {
		values[i] = string(mode)
	}
	paths.Set(result.Pattern, values)

	encoded, err := models.EncodeJSON(paths)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("\"extra\": {\n")
	b.WriteString("    \"fixture-packages\": {\n")
	b.WriteString(fmt.Sprintf("        \"paths\": %s\n", encoded))
	b.WriteString("    }\n")
	b.WriteString("}")
	return b.String(), nil
}

// RenderSuccess renders a summary after the manifest was updated.
func RenderSuccess(result *Result, manifestPath string) string {
	var b strings.Builder

	b.WriteString(tui.SuccessStyle.Render("✓ Fixture path configured"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Pattern: %s\n", result.Pattern))
	b.WriteString(fmt.Sprintf("Adopts:  %s\n", joinModes(result.Modes)))
	b.WriteString(fmt.Sprintf("Updated: %s\n", manifestPath))

	return b.String()
}

func joinModes(modes []models.Mode) string {
	names := make([]string, len(modes))
	for i, mode := range modes {
		names[i] = string(mode)
	}
	return strings.Join(names, ", ")
}
