// Package fsutil provides file system utility functions for glob
// expansion and file filtering.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob expands a pattern into the list of matching paths. Patterns may use
// `**` to match any number of directories. A pattern with no matches yields
// an empty slice and no error; only a malformed pattern is an error.
func Glob(pattern string) ([]string, error) {
	return doublestar.FilepathGlob(pattern)
}

// SourcesPattern builds the recursive glob covering every file with the
// given extension under dir. The extension includes its leading dot.
func SourcesPattern(dir, ext string) string {
	return filepath.Join(dir, "**", "*"+ext)
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsRegular reports whether path names an existing regular file.
func IsRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Dedupe returns paths with duplicates removed, keeping first occurrences
// in their original order.
func Dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var out []string
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// RegularFiles filters paths down to existing regular files, preserving order.
func RegularFiles(paths []string) []string {
	var out []string
	for _, p := range paths {
		if IsRegular(p) {
			out = append(out, p)
		}
	}
	return out
}
