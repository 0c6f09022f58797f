package textindex

import (
	"strconv"
	"unicode"
)

// WordRef addresses one word: its paragraph and its position among the
// paragraph's non-space tokens.
type WordRef struct {
	Paragraph int `json:"paragraphIndex"`
	Word      int `json:"wordIndex"`
}

// CharacterWordMap resolves a narrated character to the word it belongs to.
// Keys combine the character glyph with its global index so that drift
// between the narration stream and the paragraph text misses instead of
// resolving to the wrong word.
type CharacterWordMap struct {
	entries map[string]WordRef
}

// CharKey builds the composite lookup key.
func CharKey(glyph string, global int) string {
	return glyph + "-" + strconv.Itoa(global)
}

// BuildCharacterWordMap builds the map with DefaultBreakWidth.
func BuildCharacterWordMap(paragraphs []string, audioChars []string) *CharacterWordMap {
	return BuildCharacterWordMapWithBreak(paragraphs, audioChars, DefaultBreakWidth)
}

// BuildCharacterWordMapWithBreak walks every non-space token of every
// paragraph and records each of its characters. The glyph part of the key
// comes from audioChars when it covers the index, else from the text.
// An empty audioChars yields an empty map.
func BuildCharacterWordMapWithBreak(paragraphs []string, audioChars []string, breakWidth int) *CharacterWordMap {
	m := &CharacterWordMap{entries: map[string]WordRef{}}
	if len(audioChars) == 0 {
		return m
	}
	if breakWidth < 0 {
		breakWidth = 0
	}

	running := 0
	for p, para := range paragraphs {
		runes := []rune(para)
		word := -1
		inWord := false
		for local, r := range runes {
			if unicode.IsSpace(r) {
				inWord = false
				continue
			}
			if !inWord {
				word++
				inWord = true
			}
			global := running + local
			glyph := string(r)
			if global < len(audioChars) {
				glyph = audioChars[global]
			}
			m.entries[CharKey(glyph, global)] = WordRef{Paragraph: p, Word: word}
		}
		running += len(runes) + breakWidth
	}
	return m
}

// Len returns the number of mapped characters.
func (m *CharacterWordMap) Len() int { return len(m.entries) }

// Lookup resolves a glyph at a global index.
func (m *CharacterWordMap) Lookup(glyph string, global int) (WordRef, bool) {
	ref, ok := m.entries[CharKey(glyph, global)]
	return ref, ok
}

// Resolve looks up the narrated character at global, taking its glyph from
// audioChars.
func (m *CharacterWordMap) Resolve(audioChars []string, global int) (WordRef, bool) {
	if global < 0 || global >= len(audioChars) {
		return WordRef{}, false
	}
	return m.Lookup(audioChars[global], global)
}

// Coverage returns the fraction of narrated, non-space characters that
// resolve to a word.
func (m *CharacterWordMap) Coverage(audioChars []string) float64 {
	total, hit := 0, 0
	for i, ch := range audioChars {
		if ch == "" || isSpaceGlyph(ch) {
			continue
		}
		total++
		if _, ok := m.Lookup(ch, i); ok {
			hit++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hit) / float64(total)
}

func isSpaceGlyph(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
