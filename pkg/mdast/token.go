package mdast

import "strings"

// TokenType names what a token represents (e.g. "paragraph_open", "inline").
// Extensions define their own types; the core only relies on the suffix
// convention "_open"/"_close" for paired tokens.
type TokenType string

// Token types emitted by the core block and inline rules.
const (
	TypeInline         TokenType = "inline"
	TypeParagraphOpen  TokenType = "paragraph_open"
	TypeParagraphClose TokenType = "paragraph_close"
	TypeHeadingOpen    TokenType = "heading_open"
	TypeHeadingClose   TokenType = "heading_close"
	TypeCodeBlock      TokenType = "code_block"
	TypeFence          TokenType = "fence"
	TypeHR             TokenType = "hr"

	TypeText        TokenType = "text"
	TypeSoftbreak   TokenType = "softbreak"
	TypeHardbreak   TokenType = "hardbreak"
	TypeCodeInline  TokenType = "code_inline"
	TypeEmOpen      TokenType = "em_open"
	TypeEmClose     TokenType = "em_close"
	TypeStrongOpen  TokenType = "strong_open"
	TypeStrongClose TokenType = "strong_close"
	TypeSOpen       TokenType = "s_open"
	TypeSClose      TokenType = "s_close"
	TypeLinkOpen    TokenType = "link_open"
	TypeLinkClose   TokenType = "link_close"
	TypeImage       TokenType = "image"
	TypeHTMLInline  TokenType = "html_inline"
)

// Base strips the "_open"/"_close" suffix, so paired tokens share a base name.
func (t TokenType) Base() string {
	s := string(t)
	if base, ok := strings.CutSuffix(s, "_open"); ok {
		return base
	}
	if base, ok := strings.CutSuffix(s, "_close"); ok {
		return base
	}
	return s
}

// Nesting is the level change a token causes.
type Nesting int8

const (
	// NestingClose closes the innermost open token.
	NestingClose Nesting = -1

	// NestingSelf is a self-contained token.
	NestingSelf Nesting = 0

	// NestingOpen opens a new level.
	NestingOpen Nesting = 1
)

// LineRange is a half-open [Start, End) range of 0-based source lines.
type LineRange struct {
	Start int
	End   int
}

// Len returns the number of lines covered.
func (r LineRange) Len() int {
	return r.End - r.Start
}

// Contains reports whether line falls inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line < r.End
}

// Attr is a single name/value attribute on a token.
type Attr struct {
	Name  string
	Value string
}

// Token is one element of the block token stream.
type Token struct {
	// Type identifies the token, e.g. "dl_open".
	Type TokenType

	// Tag is the HTML tag name a renderer would use ("dl", "p", ...).
	Tag string

	// Nesting is +1 for openers, -1 for closers, 0 for self-contained tokens.
	Nesting Nesting

	// Level is the nesting depth the token sits at.
	Level int

	// Map is the source line span, nil for tokens without one (closers).
	Map *LineRange

	// Attrs holds optional attributes (href, title, ...).
	Attrs []Attr

	// Content is the raw content for inline, code and fence tokens.
	Content string

	// Info is the fence info string.
	Info string

	// Markup is the marker text that produced the token ("```", "#", ...).
	Markup string

	// Children holds inline tokens for "inline" and "image" tokens.
	Children []Token

	// Block is true for tokens emitted by the block tokenizer.
	Block bool

	// Hidden tokens keep their place in the stream but are not rendered.
	Hidden bool

	// Meta holds optional rule-specific data and must be treated as opaque.
	Meta any
}

// IsOpen reports whether the token opens a level.
func (t *Token) IsOpen() bool {
	return t.Nesting == NestingOpen
}

// IsClose reports whether the token closes a level.
func (t *Token) IsClose() bool {
	return t.Nesting == NestingClose
}

// AttrGet returns the value of the named attribute.
func (t *Token) AttrGet(name string) (string, bool) {
	for _, attr := range t.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// AttrSet sets the named attribute, replacing any previous value.
func (t *Token) AttrSet(name, value string) {
	for i := range t.Attrs {
		if t.Attrs[i].Name == name {
			t.Attrs[i].Value = value
			return
		}
	}
	t.Attrs = append(t.Attrs, Attr{Name: name, Value: value})
}

// SetMap sets the line span of the token.
func (t *Token) SetMap(start, end int) {
	t.Map = &LineRange{Start: start, End: end}
}
