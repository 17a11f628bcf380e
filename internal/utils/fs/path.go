package fs

import (
	"path/filepath"
	"strings"
)

// IsUnsafePath reports whether path must never be trashed: anything whose
// last element is "." or "..", the root itself, or a path starting with "//"
func IsUnsafePath(path string) bool {
	switch filepath.Base(path) {
	case ".", "..":
		return true
	}
	return filepath.Clean(path) == string(filepath.Separator) || strings.HasPrefix(path, "//")
}

// IsWithin reports whether path equals dir or lies below it
func IsWithin(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
