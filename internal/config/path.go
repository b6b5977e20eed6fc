package config

import (
	"path"
	"strings"
)

// NormalizePath converts backslashes to slashes, resolves "." and ".."
// segments and strips trailing slashes. The empty string stays empty, any
// all-slash input collapses to "/" and a drive prefix such as "C:" is kept;
// "C:/" normalizes to "C:".
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	p = strings.ReplaceAll(p, `\`, "/")

	drive := ""
	if hasDrivePrefix(p) {
		drive, p = p[:2], p[2:]
	}

	cleaned := ""
	if p != "" {
		cleaned = path.Clean(p)
		if cleaned == "." {
			cleaned = ""
		}
	}

	if drive != "" {
		if cleaned == "/" {
			return drive
		}
		return drive + cleaned
	}

	return cleaned
}

// IsAbsolutePath reports whether a normalized path starts at the unix root
// or carries a drive prefix. UNC paths normalize to the unix form.
func IsAbsolutePath(p string) bool {
	return strings.HasPrefix(p, "/") || hasDrivePrefix(p)
}

func hasDrivePrefix(p string) bool {
	return len(p) >= 2 && p[1] == ':' && isLetter(p[0])
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
