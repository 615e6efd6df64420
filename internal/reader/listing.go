package reader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ListFiles returns the candidate source files in dir, sorted by name.
// It keeps only allow-listed extensions and skips hidden files (dot
// prefix, which also covers .DS_Store), AppleDouble shadows ("._" prefix),
// platform metadata files, and anything matching an exclude glob.
// A missing directory yields an empty listing, not an error.
func ListFiles(dir string, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if isMetadataFile(name) {
			continue
		}
		if !IsAllowed(name) {
			continue
		}
		if matchesAny(name, exclude) {
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// isMetadataFile reports whether the name is a hidden or platform metadata
// file that must never enter a comparison run.
func isMetadataFile(name string) bool {
	// Dot prefix covers hidden files, .DS_Store, and AppleDouble
	// resource-fork shadows ("._name") from macOS archives.
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "Thumbs.db", "desktop.ini":
		return true
	}
	return false
}

// matchesAny checks name against the given glob patterns, with ** support.
func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.PathMatch(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
