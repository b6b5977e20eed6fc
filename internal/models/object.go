package models

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Object is a JSON object that remembers key insertion order.
//
// Values are *Object, []any, string, bool, nil or json.Number.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty Object
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores value under key. An existing key keeps its position.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Delete removes key.
func (o *Object) Delete(key string) {
	if o == nil {
		return
	}
	if _, exists := o.values[key]; !exists {
		return
	}
	delete(o.values, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	clone := NewObject()
	if o == nil {
		return clone
	}
	for _, key := range o.keys {
		clone.Set(key, cloneValue(o.values[key]))
	}
	return clone
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case *Object:
		return value.Clone()
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}

// MarshalJSON writes the keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := EncodeJSON(key)
		if err != nil {
			return nil, err
		}
		v, err := EncodeJSON(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var _ json.Marshaler = (*Object)(nil)
