// Package pathutil holds the path comparisons shared by the tree, the
// editor invalidation logic, and the UI.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Normalize converts Windows-style separators to the current platform's
// separator and cleans the resulting path.
func Normalize(p string) string {
	if p == "" {
		return ""
	}
	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// IsWithin reports whether path is root itself or lies below it.
func IsWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(Normalize(root), Normalize(path))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// Relative returns target relative to root using forward slashes, or "/"
// for the root itself.
func Relative(root, target string) string {
	rel, err := filepath.Rel(Normalize(root), Normalize(target))
	if err != nil || rel == "." {
		return "/"
	}
	return filepath.ToSlash(rel)
}

// ReplacePrefix swaps oldPrefix for newPrefix at the start of path.
// If path equals oldPrefix exactly, newPrefix is returned. If path is a
// descendant (starts with oldPrefix + separator), only the prefix portion
// is replaced. Otherwise, path is returned unchanged.
func ReplacePrefix(path, oldPrefix, newPrefix string) string {
	if path == "" || oldPrefix == "" || newPrefix == "" {
		return path
	}
	if path == oldPrefix {
		return newPrefix
	}
	withSep := oldPrefix + string(os.PathSeparator)
	if !strings.HasPrefix(path, withSep) {
		return path
	}
	return newPrefix + path[len(oldPrefix):]
}
