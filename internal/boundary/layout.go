package boundary

import "golang.org/x/net/html"

// Rect is an axis-aligned box in page coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point lies inside the box.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Union returns the smallest box covering r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.Width, o.X+o.Width), max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Layout resolves a pointer position to a caret. It is the platform-specific
// hit-testing step.
type Layout interface {
	CaretAt(x, y float64) (Caret, bool)
}

// Measurer is implemented by layouts that can box a run of characters.
type Measurer interface {
	Bounds(n *html.Node, offset int) (Rect, bool)
}

type glyph struct {
	node   *html.Node
	offset int
	rect   Rect
}

// GridLayout lays text out on a fixed character grid. Each paragraph
// container starts a new line and lines wrap at Columns.
type GridLayout struct {
	CharWidth  float64
	LineHeight float64
	Columns    int
	glyphs     []glyph
}

// NewGridLayout lays out every text node under root.
func NewGridLayout(root *html.Node, charWidth, lineHeight float64, columns int) *GridLayout {
	g := &GridLayout{CharWidth: charWidth, LineHeight: lineHeight, Columns: columns}
	line, col := 0, 0
	var lastContainer *html.Node
	walkText(root, func(t *html.Node) bool {
		container := NearestWithAttr(t, root, OriginalTextAttr)
		if container != lastContainer && (col > 0 || lastContainer != nil) {
			line++
			col = 0
		}
		lastContainer = container
		i := 0
		for range t.Data {
			if g.Columns > 0 && col >= g.Columns {
				line++
				col = 0
			}
			g.glyphs = append(g.glyphs, glyph{
				node:   t,
				offset: i,
				rect: Rect{
					X:      float64(col) * charWidth,
					Y:      float64(line) * lineHeight,
					Width:  charWidth,
					Height: lineHeight,
				},
			})
			col++
			i++
		}
		return true
	})
	return g
}

// CaretAt returns the caret before the glyph under the point, or after it
// when the point is on the glyph's right half.
func (g *GridLayout) CaretAt(x, y float64) (Caret, bool) {
	for _, gl := range g.glyphs {
		if !gl.rect.Contains(x, y) {
			continue
		}
		offset := gl.offset
		if x >= gl.rect.X+gl.rect.Width/2 {
			offset++
		}
		return Caret{Node: gl.node, Offset: offset}, true
	}
	return Caret{}, false
}

// Bounds returns the box of the glyph at offset within text node n.
func (g *GridLayout) Bounds(n *html.Node, offset int) (Rect, bool) {
	for _, gl := range g.glyphs {
		if gl.node == n && gl.offset == offset {
			return gl.rect, true
		}
	}
	return Rect{}, false
}
