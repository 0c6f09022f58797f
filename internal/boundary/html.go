package boundary

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// OriginalTextAttr marks a paragraph container and carries its canonical
// text.
const OriginalTextAttr = "data-original-text"

// Caret is a position inside a text node, in runes.
type Caret struct {
	Node   *html.Node
	Offset int
}

// FlattenText concatenates the text nodes under n in document order.
func FlattenText(n *html.Node) string {
	var sb strings.Builder
	walkText(n, func(t *html.Node) bool {
		sb.WriteString(t.Data)
		return true
	})
	return sb.String()
}

// FlatOffset converts a caret into a rune offset within the flattened text
// of container.
func FlatOffset(container *html.Node, caret Caret) (int, bool) {
	if caret.Node == nil || caret.Node.Type != html.TextNode {
		return 0, false
	}
	offset, found := 0, false
	walkText(container, func(t *html.Node) bool {
		if t == caret.Node {
			n := len([]rune(t.Data))
			if caret.Offset < 0 || caret.Offset > n {
				return false
			}
			offset += caret.Offset
			found = true
			return false
		}
		offset += len([]rune(t.Data))
		return true
	})
	return offset, found
}

// walkText visits text nodes depth-first until fn returns false.
func walkText(n *html.Node, fn func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if n.Type == html.TextNode {
		return fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walkText(c, fn) {
			return false
		}
	}
	return true
}

// Attr returns the value of key on an element node.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil || n.Type != html.ElementNode {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// NearestWithAttr returns n or its closest ancestor element carrying key,
// stopping at root.
func NearestWithAttr(n, root *html.Node, key string) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if _, ok := Attr(cur, key); ok {
			return cur
		}
		if cur == root {
			break
		}
	}
	return nil
}

// IntAttr reads an integer attribute from the closest ancestor carrying it.
func IntAttr(n, root *html.Node, key string) (int, bool) {
	el := NearestWithAttr(n, root, key)
	if el == nil {
		return 0, false
	}
	v, _ := Attr(el, key)
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

// contains reports whether n is root or a descendant of root.
func contains(root, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}
