package models

import (
	"bytes"
	"encoding/json"
)

// EncodeJSON marshals v without HTML escaping; paths and namespaces are
// written as-is.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
