package manifest

import (
	"fmt"

	"github.com/jakoblorz/go-fixtures/internal/models"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const pathsPath = "extra.fixture-packages.paths"

// SetFixturePath adds or replaces one configured pattern in a manifest and
// returns the reformatted document. A list-form paths block is converted to
// the object form, each listed pattern adopting "autoload".
func SetFixturePath(data []byte, pattern string, modes []models.Mode) ([]byte, error) {
	if _, err := document(data); err != nil {
		return nil, err
	}

	paths := models.NewObject()
	current := gjson.GetBytes(data, pathsPath)
	switch {
	case current.IsObject():
		paths = models.ObjectFromJSON(current)
	case current.IsArray():
		for _, item := range current.Array() {
			if item.Type == gjson.String && item.String() != "" {
				paths.Set(item.String(), []any{string(models.ModeAutoload)})
			}
		}
	}

	values := make([]any, len(modes))
	for i, mode := range modes {
		values[i] = string(mode)
	}
	paths.Set(pattern, values)

	raw, err := models.EncodeJSON(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to encode paths: %w", err)
	}

	out, err := sjson.SetRawBytes(data, pathsPath, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", pathsPath, err)
	}

	return pretty.PrettyOptions(out, PrettyOptions), nil
}
