package models

import (
	"fmt"
	"strings"
)

// Mode selects which autoload section of a fixture package is adopted.
type Mode string

const (
	ModeAutoload    Mode = "autoload"
	ModeAutoloadDev Mode = "autoload-dev"
)

// Modes lists all adoption modes in the order they are applied.
var Modes = []Mode{ModeAutoload, ModeAutoloadDev}

// IsValid checks if the mode is valid
func (m Mode) IsValid() bool {
	switch m {
	case ModeAutoload, ModeAutoloadDev:
		return true
	default:
		return false
	}
}

// String returns the string representation of Mode
func (m Mode) String() string {
	return string(m)
}

// ParseMode parses a case-insensitive mode name.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid adoption mode: %s (must be autoload or autoload-dev)", s)
	}
	return mode, nil
}

// AutoloadKind names one section of an autoload block.
type AutoloadKind string

const (
	AutoloadPSR0     AutoloadKind = "psr-0"
	AutoloadPSR4     AutoloadKind = "psr-4"
	AutoloadFiles    AutoloadKind = "files"
	AutoloadClassmap AutoloadKind = "classmap"
)

// AutoloadKinds lists the sections in merge order.
var AutoloadKinds = []AutoloadKind{AutoloadPSR0, AutoloadPSR4, AutoloadFiles, AutoloadClassmap}

// IsNamespaceMapping reports whether the kind maps namespace prefixes to paths.
func (k AutoloadKind) IsNamespaceMapping() bool {
	return k == AutoloadPSR0 || k == AutoloadPSR4
}

// IsList reports whether the kind is a plain list of paths.
func (k AutoloadKind) IsList() bool {
	return k == AutoloadFiles || k == AutoloadClassmap
}

// String returns the string representation of AutoloadKind
func (k AutoloadKind) String() string {
	return string(k)
}
