// Package block implements a line-oriented Markdown block tokenizer.
//
// The tokenizer walks source lines and offers each position to an ordered
// list of rules (see Ruler). A rule that matches pushes tokens into the
// shared State and advances the line cursor; container rules tokenize their
// content by calling Parser.Tokenize recursively on a narrower line range
// with adjusted indentation.
package block

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// DefaultMaxNesting bounds the token level the tokenizer descends to.
const DefaultMaxNesting = 100

// Core rule names.
const (
	RuleCode      = "code"
	RuleFence     = "fence"
	RuleHR        = "hr"
	RuleHeading   = "heading"
	RuleParagraph = "paragraph"
)

// ErrParagraphRequired is returned when configuration tries to disable the
// paragraph rule, the fallback every non-empty line relies on.
var ErrParagraphRequired = errors.New("the paragraph rule cannot be disabled")

// InlineParser fills the Children of an inline token from its Content.
type InlineParser interface {
	ParseInline(ctx context.Context, tok *mdast.Token, env Env) error
}

// LanguageDetector guesses the language of fenced code without an info string.
type LanguageDetector func(code []byte) string

// Extension adds rules to a parser.
type Extension interface {
	Extend(p *Parser) error
}

// ExtensionFunc adapts a function to the Extension interface.
type ExtensionFunc func(p *Parser) error

// Extend calls f(p).
func (f ExtensionFunc) Extend(p *Parser) error {
	return f(p)
}

// Option configures a Parser.
type Option func(p *Parser)

// WithExtensions registers extensions in order.
func WithExtensions(exts ...Extension) Option {
	return func(p *Parser) {
		p.extensions = append(p.extensions, exts...)
	}
}

// WithMaxNesting overrides DefaultMaxNesting.
func WithMaxNesting(n int) Option {
	return func(p *Parser) {
		p.maxNesting = n
	}
}

// WithInline sets the inline parser run after block tokenization.
func WithInline(inline InlineParser) Option {
	return func(p *Parser) {
		p.inline = inline
	}
}

// WithLanguageDetector enables language detection for bare fences.
func WithLanguageDetector(detect LanguageDetector) Option {
	return func(p *Parser) {
		p.detectLanguage = detect
	}
}

// WithDisabled disables the named rules after extensions are registered.
func WithDisabled(names ...string) Option {
	return func(p *Parser) {
		p.disabled = append(p.disabled, names...)
	}
}

// Parser tokenizes Markdown blocks. Once built it is read-only and can be
// shared by concurrent Parse calls.
type Parser struct {
	ruler          *Ruler
	maxNesting     int
	inline         InlineParser
	detectLanguage LanguageDetector
	extensions     []Extension
	disabled       []string
}

// New builds a parser with the core rules, then applies extensions.
func New(opts ...Option) (*Parser, error) {
	p := &Parser{
		ruler:      NewRuler(),
		maxNesting: DefaultMaxNesting,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := registerCoreRules(p.ruler); err != nil {
		return nil, fmt.Errorf("register core rules: %w", err)
	}

	for _, ext := range p.extensions {
		if err := ext.Extend(p); err != nil {
			return nil, fmt.Errorf("extend parser: %w", err)
		}
	}

	if err := p.Disable(p.disabled...); err != nil {
		return nil, err
	}

	return p, nil
}

func registerCoreRules(ruler *Ruler) error {
	interrupts := []string{RuleParagraph, "reference", "blockquote", "list"}

	return errors.Join(
		ruler.Push(RuleCode, Code, RuleOptions{}),
		ruler.Push(RuleFence, Fence, RuleOptions{Alt: interrupts}),
		ruler.Push(RuleHR, HR, RuleOptions{Alt: interrupts}),
		ruler.Push(RuleHeading, Heading, RuleOptions{Alt: []string{RuleParagraph, "reference", "blockquote"}}),
		ruler.Push(RuleParagraph, Paragraph, RuleOptions{}),
	)
}

// Ruler exposes the rule registry so extensions can insert their rules.
func (p *Parser) Ruler() *Ruler {
	return p.ruler
}

// MaxNesting returns the configured nesting limit.
func (p *Parser) MaxNesting() int {
	return p.maxNesting
}

// Disable turns rules off. The paragraph rule is always required.
func (p *Parser) Disable(names ...string) error {
	for _, name := range names {
		if name == RuleParagraph {
			return ErrParagraphRequired
		}
	}
	if err := p.ruler.Disable(names...); err != nil {
		return fmt.Errorf("disable rules: %w", err)
	}
	return nil
}

// Parse tokenizes src into a new stream and, if configured, fills the
// children of its inline tokens.
func (p *Parser) Parse(ctx context.Context, src string, env Env) (*mdast.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	if env == nil {
		env = Env{}
	}

	stream := mdast.NewStream()
	src = Normalize(src)
	if src == "" {
		return stream, nil
	}

	state := NewState(src, p, env, stream)
	p.Tokenize(state, state.Line, state.LineMax)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	if p.inline != nil {
		for _, tok := range stream.All() {
			if tok.Type != mdast.TypeInline {
				continue
			}
			if err := p.inline.ParseInline(ctx, tok, env); err != nil {
				return nil, fmt.Errorf("parse inline content: %w", err)
			}
		}
	}

	return stream, nil
}

// Tokenize runs the block rules over [startLine, endLine). Every non-empty
// line must be claimed by some rule; the paragraph rule guarantees that,
// so a line nobody matches, or a rule that matches without consuming
// anything, is a programming error and panics.
func (p *Parser) Tokenize(state *State, startLine, endLine int) {
	rules := p.ruler.Rules("")
	line := startLine
	hasEmptyLines := false

	for line < endLine {
		line = state.SkipEmptyLines(line)
		state.Line = line
		if line >= endLine {
			break
		}

		// Content indented less than the block belongs to an outer container.
		if state.SCount[line] < state.BlkIndent {
			break
		}

		if state.Level >= p.maxNesting {
			state.Line = endLine
			break
		}

		prevLine := state.Line
		matched := false

		for _, rule := range rules {
			if !rule.Fn(state, line, endLine, false) {
				continue
			}
			if prevLine >= state.Line {
				panic(fmt.Sprintf("block: rule %q matched at line %d without advancing", rule.Name, line))
			}
			matched = true
			break
		}

		if !matched {
			panic(fmt.Sprintf("block: no rule matched line %d", line))
		}

		// A blank line before the last block makes the content loose;
		// one after it does not.
		state.Tight = !hasEmptyLines
		line = state.Line

		// Paragraphs may swallow one trailing blank line in nested content.
		if line-1 < endLine && state.IsEmpty(line-1) {
			hasEmptyLines = true
		}

		if line < endLine && state.IsEmpty(line) {
			hasEmptyLines = true
			line++
			state.Line = line
		}
	}
}

// terminates reports whether some rule of the chain can start at line.
func terminates(state *State, chain string, line, endLine int) bool {
	for _, rule := range state.Parser.ruler.Rules(chain) {
		if rule.Fn(state, line, endLine, true) {
			return true
		}
	}
	return false
}
