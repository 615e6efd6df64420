// Package matcher explains similarity verdicts by listing the lines two
// files share. It is a deliberately simple trimmed-line exact comparator:
// renamed identifiers, reordered statements, and formatting changes beyond
// leading/trailing whitespace are not detected.
package matcher

import "strings"

// minMatchLength is the stripped-line length a match must exceed. It
// suppresses trivial hits such as lone braces, "else:", or single tokens.
const minMatchLength = 5

// Match records one shared line: A's line index, B's line index (both
// zero-based), and the matched text after whitespace trimming.
type Match struct {
	LineA int    `json:"line_a"`
	LineB int    `json:"line_b"`
	Text  string `json:"text"`
}

// FindMatches compares two file texts line by line. Every non-empty,
// non-comment line of A is checked against every line of B for exact
// equality after trimming. A line of A may match several lines of B and
// vice versa; no deduplication or block merging is performed.
// commentMarker identifies single-line comments (e.g. "#" or "//").
func FindMatches(textA, textB, commentMarker string) []Match {
	linesA := strings.Split(textA, "\n")
	linesB := strings.Split(textB, "\n")

	// Pre-trim B once; A is scanned in a single pass.
	trimmedB := make([]string, len(linesB))
	for j, line := range linesB {
		trimmedB[j] = strings.TrimSpace(line)
	}

	var matches []Match
	for i, line := range linesA {
		a := strings.TrimSpace(line)
		if a == "" || strings.HasPrefix(a, commentMarker) {
			continue
		}
		if len(a) <= minMatchLength {
			continue
		}

		for j, b := range trimmedB {
			if b == a {
				matches = append(matches, Match{LineA: i, LineB: j, Text: a})
			}
		}
	}
	return matches
}
