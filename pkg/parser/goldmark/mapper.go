package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// mapper converts the inline children of goldmark paragraphs into a flat
// list of inline tokens.
type mapper struct {
	content []byte
	tokens  []mdast.Token
	level   int
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument returns the inline tokens of every paragraph in the document.
// Paragraphs are joined by a softbreak.
func (m *mapper) mapDocument(gmDoc ast.Node) []mdast.Token {
	m.tokens = []mdast.Token{}
	for block := gmDoc.FirstChild(); block != nil; block = block.NextSibling() {
		if block != gmDoc.FirstChild() {
			m.push(mdast.TypeSoftbreak, "br", mdast.NestingSelf)
		}
		m.mapChildren(block)
	}
	return m.tokens
}

// push appends a token at the current level and adjusts the level the same
// way the block state does.
func (m *mapper) push(typ mdast.TokenType, tag string, nesting mdast.Nesting) *mdast.Token {
	if nesting < 0 {
		m.level--
	}

	m.tokens = append(m.tokens, mdast.Token{
		Type:    typ,
		Tag:     tag,
		Nesting: nesting,
		Level:   m.level,
	})

	if nesting > 0 {
		m.level++
	}

	return &m.tokens[len(m.tokens)-1]
}

// mapChildren maps all children of a goldmark node in order.
func (m *mapper) mapChildren(gmParent ast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapNode(child)
	}
}

// mapNode converts a single goldmark inline node.
func (m *mapper) mapNode(gmNode ast.Node) {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		m.mapText(gmn)

	case *ast.String:
		m.appendText(gmn.Value)

	case *ast.Emphasis:
		m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		tok := m.push(mdast.TypeCodeInline, "code", mdast.NestingSelf)
		tok.Content = string(bytes.ReplaceAll(m.plainText(gmn), []byte("\n"), []byte(" ")))
		tok.Markup = "`"

	case *ast.Link:
		m.mapLink(gmn)

	case *ast.Image:
		m.mapImage(gmn)

	case *ast.AutoLink:
		m.mapAutoLink(gmn)

	case *ast.RawHTML:
		m.mapRawHTML(gmn)

	case *east.Strikethrough:
		m.push(mdast.TypeSOpen, "s", mdast.NestingOpen).Markup = "~~"
		m.mapChildren(gmn)
		m.push(mdast.TypeSClose, "s", mdast.NestingClose).Markup = "~~"

	default:
		// Unknown inline nodes contribute their children.
		m.mapChildren(gmNode)
	}
}

// mapText emits a text token followed by the line break it ends with, if any.
func (m *mapper) mapText(textNode *ast.Text) {
	m.appendText(textNode.Segment.Value(m.content))

	switch {
	case textNode.HardLineBreak():
		m.push(mdast.TypeHardbreak, "br", mdast.NestingSelf)
	case textNode.SoftLineBreak():
		m.push(mdast.TypeSoftbreak, "br", mdast.NestingSelf)
	}
}

// appendText extends the previous text token when it sits at the same level,
// so delimiters goldmark splits into separate segments stay one run of text.
func (m *mapper) appendText(value []byte) {
	if len(value) == 0 {
		return
	}
	if n := len(m.tokens); n > 0 {
		last := &m.tokens[n-1]
		if last.Type == mdast.TypeText && last.Level == m.level {
			last.Content += string(value)
			return
		}
	}
	m.push(mdast.TypeText, "", mdast.NestingSelf).Content = string(value)
}

// mapEmphasis emits em or strong depending on the delimiter run length.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) {
	openType, closeType, tag := mdast.TypeEmOpen, mdast.TypeEmClose, "em"
	if emphasis.Level == 2 {
		openType, closeType, tag = mdast.TypeStrongOpen, mdast.TypeStrongClose, "strong"
	}

	m.push(openType, tag, mdast.NestingOpen)
	m.mapChildren(emphasis)
	m.push(closeType, tag, mdast.NestingClose)
}

// mapLink emits link_open with href and optional title attributes.
func (m *mapper) mapLink(link *ast.Link) {
	open := m.push(mdast.TypeLinkOpen, "a", mdast.NestingOpen)
	open.AttrSet("href", string(link.Destination))
	if len(link.Title) > 0 {
		open.AttrSet("title", string(link.Title))
	}

	m.mapChildren(link)
	m.push(mdast.TypeLinkClose, "a", mdast.NestingClose)
}

// mapImage emits a single image token. Its alt text is the plain text of
// the description, and the description itself becomes the token's children.
func (m *mapper) mapImage(img *ast.Image) {
	sub := newMapper(m.content)
	sub.tokens = []mdast.Token{}
	sub.mapChildren(img)

	tok := m.push(mdast.TypeImage, "img", mdast.NestingSelf)
	tok.AttrSet("src", string(img.Destination))
	tok.AttrSet("alt", "")
	if len(img.Title) > 0 {
		tok.AttrSet("title", string(img.Title))
	}
	tok.Content = string(m.plainText(img))
	tok.Children = sub.tokens
}

// mapAutoLink emits a link around its label. Bare URLs found by linkify
// are marked "linkify", angle-bracket autolinks "autolink".
func (m *mapper) mapAutoLink(al *ast.AutoLink) {
	url := string(al.URL(m.content))
	markup := "autolink"
	if !m.isAngleAutoLink(al) {
		markup = "linkify"
	}

	open := m.push(mdast.TypeLinkOpen, "a", mdast.NestingOpen)
	open.AttrSet("href", url)
	open.Markup = markup
	open.Info = "auto"

	m.push(mdast.TypeText, "", mdast.NestingSelf).Content = string(al.Label(m.content))

	closeTok := m.push(mdast.TypeLinkClose, "a", mdast.NestingClose)
	closeTok.Markup = markup
	closeTok.Info = "auto"
}

// isAngleAutoLink reports whether the autolink label was written as <...>.
func (m *mapper) isAngleAutoLink(al *ast.AutoLink) bool {
	label := al.Label(m.content)
	angled := make([]byte, 0, len(label)+2)
	angled = append(angled, '<')
	angled = append(angled, label...)
	angled = append(angled, '>')
	return bytes.Contains(m.content, angled)
}

// mapRawHTML emits the raw HTML text verbatim.
func (m *mapper) mapRawHTML(raw *ast.RawHTML) {
	var buf bytes.Buffer
	segs := raw.Segments
	for i := range segs.Len() {
		seg := segs.At(i)
		buf.Write(seg.Value(m.content))
	}
	m.push(mdast.TypeHTMLInline, "", mdast.NestingSelf).Content = buf.String()
}

// plainText concatenates the text of every descendant of n.
func (m *mapper) plainText(n ast.Node) []byte {
	var buf bytes.Buffer

	//nolint:errcheck // the walker never returns an error
	ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(m.content))
			if c.SoftLineBreak() || c.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})

	return buf.Bytes()
}
