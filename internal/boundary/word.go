// Package boundary resolves the word a reader pointed at.
//
// The word algorithm works on flattened plain text and a rune offset. The
// DOM side (html.go, layout.go) only turns a pointer position into that
// offset, so inline highlight markup never changes the result.
package boundary

import (
	"strings"
	"unicode"
)

// DefaultMaxWordLength is the longest candidate accepted as a word.
const DefaultMaxWordLength = 30

// Limits configure which candidates callers accept.
type Limits struct {
	MaxLength int
}

// DefaultLimits returns the acceptance limits used by the reading view.
func DefaultLimits() Limits {
	return Limits{MaxLength: DefaultMaxWordLength}
}

// isBoundary reports whether r separates words. Hyphens join compounds and
// are not boundaries; em-dashes are.
func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '—'
}

// WordAt expands left and right from offset over non-boundary runes and
// strips surrounding punctuation. It returns "" when offset is outside text
// or no word touches it.
func WordAt(text string, offset int) string {
	runes := []rune(text)
	if offset < 0 || offset > len(runes) {
		return ""
	}

	start := offset
	for start > 0 && !isBoundary(runes[start-1]) {
		start--
	}
	end := offset
	for end < len(runes) && !isBoundary(runes[end]) {
		end++
	}
	if start >= end {
		return ""
	}
	return TrimPunctuation(string(runes[start:end]))
}

// Span returns the rune bounds [start, end) of the word WordAt would
// return, punctuation excluded.
func Span(text string, offset int) (start, end int, ok bool) {
	runes := []rune(text)
	if offset < 0 || offset > len(runes) {
		return 0, 0, false
	}
	start = offset
	for start > 0 && !isBoundary(runes[start-1]) {
		start--
	}
	end = offset
	for end < len(runes) && !isBoundary(runes[end]) {
		end++
	}
	for start < end && isEdgePunct(runes[start]) {
		start++
	}
	for end > start && isEdgePunct(runes[end-1]) {
		end--
	}
	return start, end, start < end
}

// TrimPunctuation removes leading and trailing punctuation and symbols.
// Internal hyphens and apostrophes are kept.
func TrimPunctuation(s string) string {
	return strings.TrimFunc(s, isEdgePunct)
}

func isEdgePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Accept reports whether a candidate is usable as a lookup word: non-empty,
// at most MaxLength runes, and free of whitespace unless hyphen-joined.
func Accept(word string, limits Limits) bool {
	if word == "" {
		return false
	}
	if limits.MaxLength > 0 && len([]rune(word)) > limits.MaxLength {
		return false
	}
	if strings.IndexFunc(word, unicode.IsSpace) >= 0 && !strings.Contains(word, "-") {
		return false
	}
	return true
}
