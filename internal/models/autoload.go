package models

import (
	"bytes"
	"slices"
)

// Locations holds the directories registered for one namespace prefix.
//
// A namespace with a single location serializes as a bare string; once a
// second location is added it becomes a list. Consumers of the generated
// autoload configuration rely on that distinction.
type Locations struct {
	paths []string
	list  bool
}

// NewLocation creates a single-location value
func NewLocation(path string) Locations {
	return Locations{paths: []string{path}}
}

// NewLocationList creates a list value, even for one path.
func NewLocationList(paths ...string) Locations {
	return Locations{paths: slices.Clone(paths), list: true}
}

// Paths returns the locations in insertion order.
func (l Locations) Paths() []string {
	return slices.Clone(l.paths)
}

// IsList reports whether the value is stored as a list.
func (l Locations) IsList() bool {
	return l.list
}

// Contains reports whether path is one of the locations.
func (l Locations) Contains(path string) bool {
	return slices.Contains(l.paths, path)
}

// Add returns a copy with path appended; a single value is promoted to a list.
// Adding a path that is already present is a no-op.
func (l Locations) Add(path string) Locations {
	if l.Contains(path) {
		return l
	}
	if len(l.paths) == 0 && !l.list {
		return NewLocation(path)
	}
	return Locations{paths: append(slices.Clone(l.paths), path), list: true}
}

// MarshalJSON writes a string for single values and an array otherwise.
func (l Locations) MarshalJSON() ([]byte, error) {
	if !l.list && len(l.paths) == 1 {
		return EncodeJSON(l.paths[0])
	}
	if l.paths == nil {
		return []byte("[]"), nil
	}
	return EncodeJSON(l.paths)
}

// NamespaceMap maps namespace prefixes to locations, keeping declaration order.
type NamespaceMap struct {
	order   []string
	entries map[string]Locations
}

// NewNamespaceMap creates an empty NamespaceMap
func NewNamespaceMap() *NamespaceMap {
	return &NamespaceMap{entries: make(map[string]Locations)}
}

// Get returns the locations registered for namespace.
func (m *NamespaceMap) Get(namespace string) (Locations, bool) {
	if m == nil {
		return Locations{}, false
	}
	loc, ok := m.entries[namespace]
	return loc, ok
}

// Set stores the locations for namespace. An existing namespace keeps its position.
func (m *NamespaceMap) Set(namespace string, loc Locations) {
	if m.entries == nil {
		m.entries = make(map[string]Locations)
	}
	if _, exists := m.entries[namespace]; !exists {
		m.order = append(m.order, namespace)
	}
	m.entries[namespace] = loc
}

// Namespaces returns the prefixes in insertion order.
func (m *NamespaceMap) Namespaces() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.order)
}

// Len returns the number of prefixes.
func (m *NamespaceMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Clone returns an independent copy.
func (m *NamespaceMap) Clone() *NamespaceMap {
	if m == nil {
		return nil
	}
	clone := NewNamespaceMap()
	for _, ns := range m.order {
		clone.Set(ns, Locations{paths: slices.Clone(m.entries[ns].paths), list: m.entries[ns].list})
	}
	return clone
}

// MarshalJSON writes the prefixes in insertion order.
func (m *NamespaceMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ns := range m.Namespaces() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := EncodeJSON(ns)
		if err != nil {
			return nil, err
		}
		v, err := m.entries[ns].MarshalJSON()
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

// Autoload is one autoload block of a manifest. A nil field means the section
// is absent, which is different from an empty section.
type Autoload struct {
	PSR0     *NamespaceMap
	PSR4     *NamespaceMap
	Classmap []string
	Files    []string
}

// Namespaces returns the namespace mapping for a psr-0/psr-4 kind, or nil.
func (a *Autoload) Namespaces(kind AutoloadKind) *NamespaceMap {
	switch kind {
	case AutoloadPSR0:
		return a.PSR0
	case AutoloadPSR4:
		return a.PSR4
	default:
		return nil
	}
}

// EnsureNamespaces returns the namespace mapping for kind, creating it if absent.
func (a *Autoload) EnsureNamespaces(kind AutoloadKind) *NamespaceMap {
	switch kind {
	case AutoloadPSR0:
		if a.PSR0 == nil {
			a.PSR0 = NewNamespaceMap()
		}
		return a.PSR0
	case AutoloadPSR4:
		if a.PSR4 == nil {
			a.PSR4 = NewNamespaceMap()
		}
		return a.PSR4
	default:
		return nil
	}
}

// List returns the path list for a files/classmap kind.
func (a *Autoload) List(kind AutoloadKind) []string {
	switch kind {
	case AutoloadFiles:
		return a.Files
	case AutoloadClassmap:
		return a.Classmap
	default:
		return nil
	}
}

// AppendList appends path to the list for kind unless it is already present.
// It reports whether the list changed.
func (a *Autoload) AppendList(kind AutoloadKind, path string) bool {
	var list *[]string
	switch kind {
	case AutoloadFiles:
		list = &a.Files
	case AutoloadClassmap:
		list = &a.Classmap
	default:
		return false
	}
	if slices.Contains(*list, path) {
		return false
	}
	*list = append(*list, path)
	return true
}

// Has reports whether the section for kind is declared and non-empty.
func (a *Autoload) Has(kind AutoloadKind) bool {
	if kind.IsNamespaceMapping() {
		return a.Namespaces(kind).Len() > 0
	}
	return len(a.List(kind)) > 0
}

// IsEmpty reports whether no section is present at all.
func (a *Autoload) IsEmpty() bool {
	return a.PSR0 == nil && a.PSR4 == nil && a.Classmap == nil && a.Files == nil
}

// Clone returns an independent copy.
func (a *Autoload) Clone() Autoload {
	return Autoload{
		PSR0:     a.PSR0.Clone(),
		PSR4:     a.PSR4.Clone(),
		Classmap: slices.Clone(a.Classmap),
		Files:    slices.Clone(a.Files),
	}
}

// MarshalJSON writes the present sections as psr-0, psr-4, classmap, files.
func (a Autoload) MarshalJSON() ([]byte, error) {
	obj := NewObject()
	if a.PSR0 != nil {
		obj.Set(string(AutoloadPSR0), a.PSR0)
	}
	if a.PSR4 != nil {
		obj.Set(string(AutoloadPSR4), a.PSR4)
	}
	if a.Classmap != nil {
		obj.Set(string(AutoloadClassmap), a.Classmap)
	}
	if a.Files != nil {
		obj.Set(string(AutoloadFiles), a.Files)
	}
	return obj.MarshalJSON()
}
