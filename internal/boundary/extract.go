package boundary

import "golang.org/x/net/html"

// Result is the word under a pointer. An empty Word means nothing usable
// was hit.
type Result struct {
	Word      string     `json:"word"`
	Start     int        `json:"start"`
	Paragraph *html.Node `json:"-"`
	Bounds    *Rect      `json:"boundingRect,omitempty"`
}

// ExtractWordAtPoint resolves the word under (x, y) inside root. Every miss
// (no caret, caret outside root, no paragraph container, missing original
// text, unknown offset) yields an empty Result.
func ExtractWordAtPoint(root *html.Node, layout Layout, x, y float64) Result {
	if root == nil || layout == nil {
		return Result{}
	}
	caret, ok := layout.CaretAt(x, y)
	if !ok || caret.Node == nil || !contains(root, caret.Node) {
		return Result{}
	}
	container := NearestWithAttr(caret.Node, root, OriginalTextAttr)
	if container == nil {
		return Result{}
	}
	if v, _ := Attr(container, OriginalTextAttr); v == "" {
		return Result{}
	}

	text := FlattenText(container)
	offset, ok := FlatOffset(container, caret)
	if !ok {
		return Result{}
	}
	start, end, ok := Span(text, offset)
	if !ok {
		return Result{}
	}

	res := Result{Word: string([]rune(text)[start:end]), Start: start, Paragraph: container}
	if m, ok := layout.(Measurer); ok {
		res.Bounds = measure(m, container, start, end)
	}
	return res
}

// measure unions the glyph boxes covering flat offsets [start, end).
func measure(m Measurer, container *html.Node, start, end int) *Rect {
	var out *Rect
	pos := 0
	walkText(container, func(t *html.Node) bool {
		n := len([]rune(t.Data))
		for i := 0; i < n; i++ {
			flat := pos + i
			if flat < start || flat >= end {
				continue
			}
			r, ok := m.Bounds(t, i)
			if !ok {
				continue
			}
			if out == nil {
				box := r
				out = &box
			} else {
				box := out.Union(r)
				out = &box
			}
		}
		pos += n
		return pos < end
	})
	return out
}
