// Package diff implements the comparison engine primitives: text
// normalization, exclusion filtering, and content-set line diffing.
// Everything here is pure and deterministic; callers own all I/O.
package diff

import (
	"sort"
	"strings"

	"doccompare/internal/types"
)

// Normalize turns raw extracted text into a canonical comparable form:
// lines are trimmed, blank lines dropped, and the remainder sorted
// lexicographically and rejoined with newlines. Sorting tolerates the
// line-reordering noise PDF re-rendering introduces while still surfacing
// true content differences. Normalize is idempotent and maps empty input
// to the empty string.
func Normalize(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	sort.Strings(kept)
	return strings.Join(kept, "\n")
}

// Filter keeps a line iff none of the exclusion substrings occurs anywhere
// in its content. Plain substring search, not regex and not anchored. An
// empty exclusion list keeps every line.
func Filter(lines []types.NumberedLine, exclusions []string) []types.NumberedLine {
	if len(exclusions) == 0 {
		return lines
	}
	kept := make([]types.NumberedLine, 0, len(lines))
	for _, line := range lines {
		if !containsAny(line.Content, exclusions) {
			kept = append(kept, line)
		}
	}
	return kept
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Unique returns the lines of a whose content appears nowhere in b, and
// vice versa, both preserving input order. Membership is by content set:
// a line duplicated on one side and present at least once on the other is
// not reported at all. Runs in O(|a|+|b|).
func Unique(a, b []types.NumberedLine) (uniqueA, uniqueB []types.NumberedLine) {
	setA := contentSet(a)
	setB := contentSet(b)
	for _, line := range a {
		if _, ok := setB[line.Content]; !ok {
			uniqueA = append(uniqueA, line)
		}
	}
	for _, line := range b {
		if _, ok := setA[line.Content]; !ok {
			uniqueB = append(uniqueB, line)
		}
	}
	return uniqueA, uniqueB
}

func contentSet(lines []types.NumberedLine) map[string]struct{} {
	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		set[line.Content] = struct{}{}
	}
	return set
}

// UniqueLines is the string-level counterpart of Unique used for per-page
// PDF text: it returns the lines of text that do not occur in other,
// newline-joined in original order.
func UniqueLines(text, other string) string {
	otherSet := make(map[string]struct{})
	for _, line := range strings.Split(other, "\n") {
		otherSet[line] = struct{}{}
	}
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if _, ok := otherSet[line]; !ok {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
