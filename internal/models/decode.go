package models

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// ObjectFromJSON converts a parsed JSON object into an Object, keeping key
// order. Numbers are kept as json.Number.
func ObjectFromJSON(value gjson.Result) *Object {
	obj := NewObject()
	value.ForEach(func(key, item gjson.Result) bool {
		obj.Set(key.String(), ValueFromJSON(item))
		return true
	})
	return obj
}

// ValueFromJSON converts any parsed JSON value into its Object representation.
func ValueFromJSON(value gjson.Result) any {
	switch {
	case value.IsObject():
		return ObjectFromJSON(value)
	case value.IsArray():
		items := value.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = ValueFromJSON(item)
		}
		return out
	}

	switch value.Type {
	case gjson.String:
		return value.String()
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return json.Number(value.Raw)
	default:
		return nil
	}
}
