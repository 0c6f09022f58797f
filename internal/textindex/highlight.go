package textindex

import "github.com/highshore/one-cup-eng-sub002/models"

// Highlight is the word active at one instant of playback.
type Highlight struct {
	TimestampIndex int     `json:"timestampIndex"`
	Word           WordRef `json:"word"`
	Range          Range   `json:"range"`
	Estimated      bool    `json:"estimated"`
	Active         bool    `json:"active"`
}

// Alignment describes how well the narration characters line up with the
// paragraph text.
type Alignment struct {
	Exact        bool `json:"exact"`
	StreamLength int  `json:"streamLength"`
	AudioLength  int  `json:"audioLength"`
	Delta        int  `json:"delta"`
}

// Highlighter resolves playback time to the active word for one article.
type Highlighter struct {
	index      *Index
	chars      *CharacterWordMap
	audioChars []string
	alignment  Alignment
}

// NewHighlighter builds the index and character map for an article. Exact
// character alignment is used when the narration stream length is within
// one break per paragraph of the text stream; otherwise time is mapped
// proportionally.
func NewHighlighter(article *models.Article, breakWidth int) *Highlighter {
	var track []models.Timestamp
	var audioChars []string
	if article.Audio != nil {
		track = article.Audio.Track()
		audioChars = article.Audio.CharacterStream()
	}
	paragraphs := article.Content.English

	ix := BuildWithBreak(paragraphs, track, breakWidth)
	h := &Highlighter{
		index:      ix,
		chars:      BuildCharacterWordMapWithBreak(paragraphs, audioChars, breakWidth),
		audioChars: audioChars,
	}
	h.alignment = Alignment{
		StreamLength: ix.StreamLength(),
		AudioLength:  len(audioChars),
		Delta:        len(audioChars) - ix.StreamLength(),
	}
	tolerance := len(paragraphs)
	delta := h.alignment.Delta
	if delta < 0 {
		delta = -delta
	}
	h.alignment.Exact = len(audioChars) > 0 && len(track) > 0 && delta <= tolerance
	return h
}

// Index returns the underlying text index.
func (h *Highlighter) Index() *Index { return h.index }

// CharacterMap returns the underlying character-word map.
func (h *Highlighter) CharacterMap() *CharacterWordMap { return h.chars }

// Alignment reports the alignment quality.
func (h *Highlighter) Alignment() Alignment { return h.alignment }

// At resolves the active word. In exact mode a time that falls in a gap of
// the track has no active word.
func (h *Highlighter) At(current, duration float64) Highlight {
	if !h.alignment.Exact {
		ref, ok := h.index.Estimate(current, duration)
		if !ok {
			return Highlight{TimestampIndex: -1}
		}
		r, _ := h.index.Range(ref)
		return Highlight{TimestampIndex: -1, Word: ref, Range: r, Estimated: true, Active: true}
	}

	ti := h.index.ActiveTimestampForTime(current)
	if ti < 0 {
		return Highlight{TimestampIndex: -1}
	}
	ref, ok := h.chars.Resolve(h.audioChars, ti)
	if !ok {
		return Highlight{TimestampIndex: ti}
	}
	r, ok := h.index.ActiveRangeForChar(ti, ref.Paragraph)
	if !ok {
		r, _ = h.index.Range(ref)
	}
	return Highlight{TimestampIndex: ti, Word: ref, Range: r, Active: true}
}

// SeekTime returns the narration start of the character at global, when the
// track covers it.
func (h *Highlighter) SeekTime(global int) (float64, bool) {
	track := h.index.Timestamps()
	if global < 0 || global >= len(track) {
		return 0, false
	}
	return track[global].Start, true
}
