package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jakoblorz/go-fixtures/internal/config"
	"github.com/jakoblorz/go-fixtures/internal/models"
)

// ErrUnsupportedValue is returned when a value has no PHP literal form.
var ErrUnsupportedValue = errors.New("unsupported value in state data")

const phpIndent = "    "

// DumpPHP renders the export as a PHP file returning a nested array.
//
// The path of every record is written relative to the directory of the
// generated file via __DIR__, unless it is absolute.
func DumpPHP(export *Export) ([]byte, error) {
	root := models.NewObject()
	for _, record := range export.Records() {
		entry := models.NewObject()
		entry.Set("name", record.Name)
		entry.Set("type", record.Type)
		entry.Set("path", record.Path)
		entry.Set("extra", record.Extra)
		root.Set(record.Name, entry)
	}

	var buf bytes.Buffer
	buf.WriteString("<?php return ")
	if err := dumpObject(&buf, root, 0); err != nil {
		return nil, err
	}
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

type phpEntry struct {
	key   string
	value any
}

func dumpObject(buf *bytes.Buffer, obj *models.Object, level int) error {
	entries := make([]phpEntry, 0, obj.Len())
	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		entries = append(entries, phpEntry{key: phpString(key), value: value})
	}
	return dumpArray(buf, entries, level)
}

func dumpList(buf *bytes.Buffer, list []any, level int) error {
	entries := make([]phpEntry, 0, len(list))
	for i, value := range list {
		entries = append(entries, phpEntry{key: strconv.Itoa(i), value: value})
	}
	return dumpArray(buf, entries, level)
}

func dumpArray(buf *bytes.Buffer, entries []phpEntry, level int) error {
	buf.WriteString("array(\n")
	level++

	for _, entry := range entries {
		buf.WriteString(strings.Repeat(phpIndent, level))
		buf.WriteString(entry.key)
		buf.WriteString(" => ")

		// records live at level 2; only their own path is anchored
		anchor := level == 2 && entry.key == "'path'"
		if err := dumpValue(buf, entry.value, level, anchor); err != nil {
			return err
		}
	}

	buf.WriteString(strings.Repeat(phpIndent, level-1))
	buf.WriteString(")")
	if level > 1 {
		buf.WriteString(",\n")
	}
	return nil
}

func dumpValue(buf *bytes.Buffer, value any, level int, anchor bool) error {
	switch v := value.(type) {
	case *models.Object:
		if v.Len() == 0 {
			buf.WriteString("array(),\n")
			return nil
		}
		return dumpObject(buf, v, level)
	case []any:
		if len(v) == 0 {
			buf.WriteString("array(),\n")
			return nil
		}
		return dumpList(buf, v, level)
	case string:
		if anchor && !config.IsAbsolutePath(v) {
			buf.WriteString("__DIR__ . ")
			buf.WriteString(phpString("/" + v))
		} else {
			buf.WriteString(phpString(v))
		}
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case nil:
		buf.WriteString("null")
	case int:
		buf.WriteString(strconv.Itoa(v))
	case json.Number:
		if !isNumberLiteral(v.String()) {
			return fmt.Errorf("%w: malformed number %q", ErrUnsupportedValue, v.String())
		}
		buf.WriteString(v.String())
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}

	buf.WriteString(",\n")
	return nil
}

// isNumberLiteral reports whether s is a JSON number literal. Range is not
// checked; PHP reads literals beyond float64 as INF.
func isNumberLiteral(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	return json.Valid([]byte(s))
}

// phpString quotes s as a single-quoted PHP string literal.
func phpString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
