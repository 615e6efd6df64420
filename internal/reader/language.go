package reader

import (
	"path/filepath"
	"strings"
)

// allowedExtensions is the allow-list of source file extensions that may
// take part in a comparison run.
var allowedExtensions = map[string]bool{
	".py":    true,
	".go":    true,
	".js":    true,
	".jsx":   true,
	".ts":    true,
	".tsx":   true,
	".java":  true,
	".c":     true,
	".h":     true,
	".cpp":   true,
	".cc":    true,
	".hpp":   true,
	".cs":    true,
	".rb":    true,
	".php":   true,
	".kt":    true,
	".swift": true,
	".rs":    true,
	".sql":   true,
	".sh":    true,
}

// extensionToComment maps file extensions to their single-line comment marker.
// Used by the match analyzer to skip comment lines.
var extensionToComment = map[string]string{
	".py":    "#",
	".rb":    "#",
	".sh":    "#",
	".go":    "//",
	".js":    "//",
	".jsx":   "//",
	".ts":    "//",
	".tsx":   "//",
	".java":  "//",
	".c":     "//",
	".h":     "//",
	".cpp":   "//",
	".cc":    "//",
	".hpp":   "//",
	".cs":    "//",
	".php":   "//",
	".kt":    "//",
	".swift": "//",
	".rs":    "//",
	".sql":   "--",
}

// IsAllowed reports whether the file name carries an allow-listed source
// extension.
func IsAllowed(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// CommentMarker returns the single-line comment marker for the given file
// name's extension. Files with an unknown extension default to "#".
func CommentMarker(name string) string {
	if m, ok := extensionToComment[strings.ToLower(filepath.Ext(name))]; ok {
		return m
	}
	return "#"
}
