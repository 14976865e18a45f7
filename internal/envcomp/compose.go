// Package envcomp assembles the colon-delimited search-path variables the
// simulator and flight-stack tools read: plugin paths, resource paths, PATH.
package envcomp

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Separator joins search-path entries.
const Separator = ":"

// Compose joins the non-empty fragments in first-seen order, each appearing
// once, with no leading or trailing separator. Composing an already-composed
// value again yields the same string.
func Compose(fragments ...string) string {
	seen := make(map[string]struct{}, len(fragments))
	out := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		if _, dup := seen[fragment]; dup {
			continue
		}
		seen[fragment] = struct{}{}
		out = append(out, fragment)
	}
	return strings.Join(out, Separator)
}

// Merge composes fragments ahead of the entries already present in current.
// New fragments take priority; prior entries keep their relative order.
func Merge(current string, fragments ...string) string {
	parts := make([]string, 0, len(fragments)+4)
	parts = append(parts, fragments...)
	for _, entry := range strings.Split(current, Separator) {
		parts = append(parts, entry)
	}
	return Compose(parts...)
}

// ScanLibDirs returns every directory named "lib" under root, in walk order.
// The scan happens at composition time and is never cached. A missing or
// unreadable root yields no fragments; that is not an error here, it only
// surfaces later as a preflight diagnostic.
func ScanLibDirs(root string) []string {
	if strings.TrimSpace(root) == "" {
		return nil
	}
	var dirs []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && d.Name() == "lib" {
			dirs = append(dirs, path)
			return filepath.SkipDir
		}
		return nil
	})
	return dirs
}
