package boundary

import (
	"strings"
	"unicode"
)

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

// SentenceAt returns the sentence of text that contains the rune at offset,
// trimmed. A sentence ends after a run of terminal punctuation followed by
// whitespace or the end of text.
func SentenceAt(text string, offset int) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(runes) {
		offset = len(runes) - 1
	}

	start := 0
	for i := offset - 1; i > 0; i-- {
		if unicode.IsSpace(runes[i]) && isSentenceEnd(runes[i-1]) {
			start = i
			break
		}
	}
	end := len(runes)
	for i := offset; i < len(runes); i++ {
		if isSentenceEnd(runes[i]) && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])) {
			end = i + 1
			break
		}
	}
	return strings.TrimSpace(string(runes[start:end]))
}
