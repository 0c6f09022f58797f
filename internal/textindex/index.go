// Package textindex derives the character geometry of an article's English
// paragraphs and resolves narration time to on-screen words.
//
// All lengths and indexes count runes. Global character indexes address the
// conceptual concatenation of every paragraph with BreakWidth break
// characters between consecutive paragraphs.
package textindex

import (
	"encoding/json"
	"unicode"

	"github.com/highshore/one-cup-eng-sub002/models"
)

// DefaultBreakWidth is the number of conceptual characters separating two
// paragraphs in the narration stream. Both the offset table and the
// character-word map use it.
const DefaultBreakWidth = 1

// Range is an inclusive [Start, End] pair of global character indexes.
type Range struct {
	Start int
	End   int
}

// Contains reports whether i lies inside the range.
func (r Range) Contains(i int) bool {
	return r.Start <= i && i <= r.End
}

// MarshalJSON encodes the range as a two-element array.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Start, r.End})
}

// UnmarshalJSON decodes a two-element array.
func (r *Range) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	r.Start, r.End = pair[0], pair[1]
	return nil
}

// Index holds the paragraph offset table, the per-paragraph word ranges and
// the raw timestamp track. It is built once per article and never mutated.
type Index struct {
	paragraphs [][]rune
	offsets    []int
	wordRanges [][]Range
	timestamps []models.Timestamp
	breakWidth int
}

// Build derives the tables with DefaultBreakWidth.
func Build(paragraphs []string, timestamps []models.Timestamp) *Index {
	return BuildWithBreak(paragraphs, timestamps, DefaultBreakWidth)
}

// BuildWithBreak derives the tables with an explicit paragraph break width.
// A width of 0 accumulates bare paragraph lengths.
func BuildWithBreak(paragraphs []string, timestamps []models.Timestamp, breakWidth int) *Index {
	if breakWidth < 0 {
		breakWidth = 0
	}
	ix := &Index{
		paragraphs: make([][]rune, len(paragraphs)),
		offsets:    make([]int, len(paragraphs)),
		wordRanges: make([][]Range, len(paragraphs)),
		timestamps: timestamps,
		breakWidth: breakWidth,
	}

	offset := 0
	for i, p := range paragraphs {
		runes := []rune(p)
		ix.paragraphs[i] = runes
		ix.offsets[i] = offset
		ix.wordRanges[i] = scanWords(runes, offset)
		offset += len(runes) + breakWidth
	}
	return ix
}

// scanWords emits one inclusive range per maximal run of non-space runes.
func scanWords(runes []rune, offset int) []Range {
	ranges := []Range{}
	start := -1
	for i, r := range runes {
		if unicode.IsSpace(r) {
			if start >= 0 {
				ranges = append(ranges, Range{Start: offset + start, End: offset + i - 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		ranges = append(ranges, Range{Start: offset + start, End: offset + len(runes) - 1})
	}
	return ranges
}

// BreakWidth returns the paragraph break width the index was built with.
func (ix *Index) BreakWidth() int { return ix.breakWidth }

// Offsets returns a copy of the paragraph offset table.
func (ix *Index) Offsets() []int {
	return append([]int(nil), ix.offsets...)
}

// WordRanges returns a copy of the word range table.
func (ix *Index) WordRanges() [][]Range {
	out := make([][]Range, len(ix.wordRanges))
	for i, ranges := range ix.wordRanges {
		out[i] = append([]Range(nil), ranges...)
	}
	return out
}

// Timestamps returns the timestamp track the index was built with.
func (ix *Index) Timestamps() []models.Timestamp { return ix.timestamps }

// ParagraphCount returns the number of paragraphs.
func (ix *Index) ParagraphCount() int { return len(ix.paragraphs) }

// TextLength returns the sum of paragraph lengths, breaks excluded.
func (ix *Index) TextLength() int {
	n := 0
	for _, p := range ix.paragraphs {
		n += len(p)
	}
	return n
}

// StreamLength returns the length of the global coordinate space, breaks
// between paragraphs included.
func (ix *Index) StreamLength() int {
	if len(ix.paragraphs) == 0 {
		return 0
	}
	last := len(ix.paragraphs) - 1
	return ix.offsets[last] + len(ix.paragraphs[last])
}

// ActiveRangeForChar returns the word range of paragraph that contains the
// global index.
func (ix *Index) ActiveRangeForChar(global, paragraph int) (Range, bool) {
	if paragraph < 0 || paragraph >= len(ix.wordRanges) {
		return Range{}, false
	}
	for _, r := range ix.wordRanges[paragraph] {
		if r.Contains(global) {
			return r, true
		}
	}
	return Range{}, false
}

// ActiveTimestampForTime returns the index of the first entry whose bounds
// contain t, or -1 when t falls in a gap.
func (ix *Index) ActiveTimestampForTime(t float64) int {
	for i, ts := range ix.timestamps {
		if ts.Contains(t) {
			return i
		}
	}
	return -1
}

// Locate converts a global index to a paragraph and a local rune index.
// Indexes that land on a paragraph break or outside the text report false.
func (ix *Index) Locate(global int) (paragraph, local int, ok bool) {
	for i := len(ix.offsets) - 1; i >= 0; i-- {
		if global < ix.offsets[i] {
			continue
		}
		local = global - ix.offsets[i]
		if local >= len(ix.paragraphs[i]) {
			return 0, 0, false
		}
		return i, local, true
	}
	return 0, 0, false
}

// WordAt resolves a global index to the word containing it.
func (ix *Index) WordAt(global int) (WordRef, Range, bool) {
	p, _, ok := ix.Locate(global)
	if !ok {
		return WordRef{}, Range{}, false
	}
	for w, r := range ix.wordRanges[p] {
		if r.Contains(global) {
			return WordRef{Paragraph: p, Word: w}, r, true
		}
	}
	return WordRef{}, Range{}, false
}

// Range returns the word range for ref.
func (ix *Index) Range(ref WordRef) (Range, bool) {
	if ref.Paragraph < 0 || ref.Paragraph >= len(ix.wordRanges) {
		return Range{}, false
	}
	words := ix.wordRanges[ref.Paragraph]
	if ref.Word < 0 || ref.Word >= len(words) {
		return Range{}, false
	}
	return words[ref.Word], true
}

// Word returns the text of the word at ref.
func (ix *Index) Word(ref WordRef) string {
	r, ok := ix.Range(ref)
	if !ok {
		return ""
	}
	off := ix.offsets[ref.Paragraph]
	return string(ix.paragraphs[ref.Paragraph][r.Start-off : r.End-off+1])
}
