package reader

import (
	"sync"

	"github.com/highshore/one-cup-eng-sub002/internal/textindex"
)

// WindowViewport models a screen that shows a fixed number of consecutive
// paragraphs.
type WindowViewport struct {
	mu      sync.Mutex
	first   int
	size    int
	scrolls int
}

func NewWindowViewport(size int) *WindowViewport {
	if size <= 0 {
		size = 1
	}
	return &WindowViewport{size: size}
}

func (v *WindowViewport) Visible(word textindex.WordRef) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return word.Paragraph >= v.first && word.Paragraph < v.first+v.size
}

// ScrollIntoView moves the window so the word's paragraph is first.
func (v *WindowViewport) ScrollIntoView(word textindex.WordRef) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.first = word.Paragraph
	v.scrolls++
}

// Window returns the first visible paragraph and the number of scrolls so
// far.
func (v *WindowViewport) Window() (first, scrolls int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.first, v.scrolls
}
