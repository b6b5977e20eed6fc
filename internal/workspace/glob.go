package workspace

import (
	"strings"

	"github.com/bmatcuk/doublestar"
)

// hasMeta reports whether a pattern segment needs matching against directory entries.
func hasMeta(segment string) bool {
	return strings.ContainsAny(segment, "*?[{")
}

// matchSegment matches one directory name against one pattern segment. A
// "**" segment behaves like "*": patterns never recurse.
func matchSegment(segment, name string) (bool, error) {
	if segment == "**" {
		segment = "*"
	}
	return doublestar.Match(segment, name)
}
