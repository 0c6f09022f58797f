package textindex

import "math"

// Estimate maps a playback time to a word by spreading the duration over the
// text proportionally to character counts. It is the fallback when the
// narration characters do not line up with the paragraph text.
func (ix *Index) Estimate(current, duration float64) (WordRef, bool) {
	total := ix.TextLength()
	if total == 0 || duration <= 0 || math.IsNaN(duration) || math.IsNaN(current) || current < 0 {
		return WordRef{}, false
	}
	if current > duration {
		current = duration
	}

	target := int(current / duration * float64(total))
	if target >= total {
		target = total - 1
	}

	for p, para := range ix.paragraphs {
		if target >= len(para) {
			target -= len(para)
			continue
		}
		global := ix.offsets[p] + target
		words := ix.wordRanges[p]
		for w, r := range words {
			// A target inside trailing whitespace snaps to the next word.
			if global <= r.End {
				return WordRef{Paragraph: p, Word: w}, true
			}
		}
		if len(words) > 0 {
			return WordRef{Paragraph: p, Word: len(words) - 1}, true
		}
		return WordRef{}, false
	}
	return WordRef{}, false
}
