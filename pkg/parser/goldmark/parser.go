// Package goldmark fills inline tokens with children parsed by goldmark.
//
// The block tokenizer leaves the text of paragraphs, headings and
// definition terms in the Content of "inline" tokens. Parser runs goldmark's
// inline parsers over that text and maps the resulting nodes to inline
// tokens (text, em, strong, code_inline, link, image, ...). Block syntax is
// switched off, so content is never re-split into blocks.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// paragraphPriority is the priority of the only block parser.
const paragraphPriority = 1000

// Parser implements block.InlineParser using goldmark.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

var _ block.InlineParser = (*Parser)(nil)

// New creates a new goldmark-based inline parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// IsValidFlavor reports whether flavor names a supported flavor.
func IsValidFlavor(flavor string) bool {
	return flavor == FlavorCommonMark || flavor == FlavorGFM
}

// ParseInline replaces the children of tok with the inline tokens of its
// content.
func (p *Parser) ParseInline(ctx context.Context, tok *mdast.Token, _ block.Env) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("parse cancelled: %w", err)
	}

	if tok.Content == "" {
		tok.Children = []mdast.Token{}
		return nil
	}

	content := []byte(tok.Content)
	reader := text.NewReader(content)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	tok.Children = newMapper(content).mapDocument(gmDoc)
	return nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	if IsValidFlavor(flavor) {
		return flavor
	}
	return FlavorCommonMark
}

// newGoldmarkInstance creates a goldmark.Markdown whose only block parser is
// the paragraph parser.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	inlineOnly := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), paragraphPriority)),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
	)

	opts := []goldmark.Option{goldmark.WithParser(inlineOnly)}

	// Configure extensions based on flavor.
	switch flavor {
	case FlavorGFM:
		opts = append(opts,
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.Linkify,
			),
		)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}
