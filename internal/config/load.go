package config

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/go-fixtures/internal/logging"
	"github.com/jakoblorz/go-fixtures/internal/models"
)

// Load validates the root manifest's extra block and builds the PathConfig
// for baseDir. Shape problems are reported to logger and never fail the load.
func Load(baseDir string, extra *models.Object, logger *log.Logger) *PathConfig {
	return New(baseDir).Merge(FilterExtra(extra, logger))
}

// FilterExtra returns a copy of extra with the plugin block validated:
//
//   - a missing or non-object plugin block passes through unchanged
//   - a "paths" value that is neither object nor list is dropped with a warning
//   - list entries become patterns adopting "autoload"
//   - object entries keep their pattern key; a list value is the mode list,
//     any other value (a bare string included) defaults to "autoload"
//   - modes are lowercased, deduplicated and limited to autoload/autoload-dev
//   - entries with an empty pattern are dropped; entries without any usable
//     mode are dropped with an informational message
//
// The result is normalized to an object of pattern to mode list, so filtering
// an already filtered block yields the same block.
func FilterExtra(extra *models.Object, logger *log.Logger) *models.Object {
	logger = logging.OrDiscard(logger)
	filtered := extra.Clone()

	block, ok := pluginBlock(filtered)
	if !ok {
		return filtered
	}

	if raw, ok := block.Get(excludeKey); ok {
		switch raw.(type) {
		case string, []any:
		default:
			logger.Warnf("extra.%s.%s must be a list, %q given", ExtraKey, excludeKey, typeName(raw))
			block.Delete(excludeKey)
		}
	}

	raw, ok := block.Get(pathsKey)
	if !ok {
		return filtered
	}

	var entries []rawEntry
	switch paths := raw.(type) {
	case *models.Object:
		for _, pattern := range paths.Keys() {
			value, _ := paths.Get(pattern)
			entries = append(entries, rawEntry{pattern: pattern, modes: entryModes(value)})
		}
	case []any:
		for _, item := range paths {
			pattern, ok := item.(string)
			if !ok {
				continue
			}
			entries = append(entries, rawEntry{pattern: pattern, modes: []any{string(models.ModeAutoload)}})
		}
	default:
		logger.Warnf("extra.%s.%s must be an object or a list, %q given", ExtraKey, pathsKey, typeName(raw))
		block.Delete(pathsKey)
		return filtered
	}

	valid := models.NewObject()
	for _, entry := range entries {
		if entry.pattern == "" {
			continue
		}
		modes := parseModes(entry.modes)
		if len(modes) == 0 {
			logger.Infof("No adopt mode selected for %q which means that none will be adopted, but package still taken as fixture package.", entry.pattern)
			continue
		}
		values := make([]any, len(modes))
		for i, mode := range modes {
			values[i] = string(mode)
		}
		valid.Set(entry.pattern, values)
	}

	block.Set(pathsKey, valid)
	return filtered
}

type rawEntry struct {
	pattern string
	modes   any
}

// entryModes returns the mode list of an object-form entry. Only a list is a
// mode selection; any other value adopts "autoload".
func entryModes(value any) any {
	if list, ok := value.([]any); ok {
		return list
	}
	return []any{string(models.ModeAutoload)}
}

// typeName names the JSON value type the way the manifest's ecosystem does.
func typeName(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number:
		if strings.ContainsAny(v.String(), ".eE") {
			return "double"
		}
		return "integer"
	case *models.Object, []any:
		return "array"
	default:
		return "unknown type"
	}
}
