package reader

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/highshore/one-cup-eng-sub002/internal/boundary"
	"github.com/highshore/one-cup-eng-sub002/internal/textindex"
)

const (
	// CharIndexAttr carries the global character index of an audio-mode
	// character span.
	CharIndexAttr = "data-char-index"
	ParagraphAttr = "data-paragraph"
	// TranslationAttr marks a Korean paragraph.
	TranslationAttr = "data-translation"
)

type viewInput struct {
	english   []string
	korean    []string
	mode      Mode
	index     *textindex.Index
	highlight textindex.Highlight
	visible   func(int) bool
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// render builds the article markup for the current mode. Every English
// paragraph carries its canonical text so hit testing can ignore the
// decoration inside it.
func render(in viewInput) *html.Node {
	root := element(atom.Div, attr("id", "article"))
	for i, para := range in.english {
		p := element(atom.P,
			attr(ParagraphAttr, strconv.Itoa(i)),
			attr(boundary.OriginalTextAttr, para),
		)
		switch in.mode {
		case ModeQuickRead:
			renderQuickRead(p, para)
		case ModeAudio:
			renderCharacters(p, para, i, in.index, in.highlight)
		default:
			if para != "" {
				p.AppendChild(text(para))
			}
		}
		root.AppendChild(p)

		if in.visible != nil && in.visible(i) && i < len(in.korean) && in.korean[i] != "" {
			k := element(atom.P, attr(TranslationAttr, strconv.Itoa(i)), attr("lang", "ko"))
			k.AppendChild(text(in.korean[i]))
			root.AppendChild(k)
		}
	}
	return root
}

func renderQuickRead(p *html.Node, para string) {
	for _, seg := range textindex.QuickRead(para) {
		if seg.Lead != "" {
			b := element(atom.B)
			b.AppendChild(text(seg.Lead))
			p.AppendChild(b)
		}
		if seg.Rest != "" {
			p.AppendChild(text(seg.Rest))
		}
	}
}

func renderCharacters(p *html.Node, para string, paragraph int, ix *textindex.Index, hl textindex.Highlight) {
	offset := 0
	if offsets := ix.Offsets(); paragraph < len(offsets) {
		offset = offsets[paragraph]
	}
	local := 0
	for _, r := range para {
		global := offset + local
		attrs := []html.Attribute{attr(CharIndexAttr, strconv.Itoa(global))}
		if hl.Active && hl.Word.Paragraph == paragraph && hl.Range.Contains(global) {
			attrs = append(attrs, attr("class", "active"))
		}
		span := element(atom.Span, attrs...)
		span.AppendChild(text(string(r)))
		p.AppendChild(span)
		local++
	}
}

// RenderHTML serializes a rendered view.
func RenderHTML(root *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}
