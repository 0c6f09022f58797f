package textindex

import (
	"strings"
	"unicode"
)

const (
	minLead = 1
	maxLead = 5
)

// Segment is one token of a quick-read paragraph. Whitespace tokens carry
// their text in Rest with an empty Lead.
type Segment struct {
	Lead string `json:"lead"`
	Rest string `json:"rest"`
}

// LeadCount returns how many leading characters of an n-character word are
// emphasized in quick-read mode.
func LeadCount(n int) int {
	if n <= 0 {
		return 0
	}
	return max(minLead, min(maxLead, n/2))
}

// QuickRead splits a paragraph into emphasized word segments. Concatenating
// Lead and Rest over the result reproduces the paragraph exactly.
func QuickRead(paragraph string) []Segment {
	segments := []Segment{}
	for _, tok := range tokens(paragraph) {
		runes := []rune(tok)
		if unicode.IsSpace(runes[0]) {
			segments = append(segments, Segment{Rest: tok})
			continue
		}
		lead := LeadCount(len(runes))
		segments = append(segments, Segment{
			Lead: string(runes[:lead]),
			Rest: string(runes[lead:]),
		})
	}
	return segments
}

// Plain restores the paragraph text from its segments.
func Plain(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Lead)
		sb.WriteString(s.Rest)
	}
	return sb.String()
}

// tokens splits s into alternating runs of space and non-space runes.
func tokens(s string) []string {
	var out []string
	var cur []rune
	curSpace := false
	for _, r := range s {
		space := unicode.IsSpace(r)
		if len(cur) > 0 && space != curSpace {
			out = append(out, string(cur))
			cur = cur[:0]
		}
		cur = append(cur, r)
		curSpace = space
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}
