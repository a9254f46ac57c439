package block_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/mdast"
)

func parse(t *testing.T, src string, opts ...block.Option) *mdast.Stream {
	t.Helper()

	p, err := block.New(opts...)
	require.NoError(t, err)

	stream, err := p.Parse(context.Background(), src, nil)
	require.NoError(t, err)
	require.NoError(t, mdast.Validate(stream))
	return stream
}

func find(stream *mdast.Stream, typ mdast.TokenType) *mdast.Token {
	for _, tok := range stream.All() {
		if tok.Type == typ {
			return tok
		}
	}
	return nil
}

func TestParse_CoreRules(t *testing.T) {
	t.Parallel()

	src := "# Title\n\nSome *text*\n\n---\n\n```go\nx\n```\n\n    indented\n"
	stream := parse(t, src)

	assert.Equal(t, []mdast.TokenType{
		mdast.TypeHeadingOpen, mdast.TypeInline, mdast.TypeHeadingClose,
		mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose,
		mdast.TypeHR,
		mdast.TypeFence,
		mdast.TypeCodeBlock,
	}, stream.Types())

	heading := stream.At(0)
	assert.Equal(t, "h1", heading.Tag)
	assert.Equal(t, "#", heading.Markup)
	assert.Equal(t, "Title", stream.At(1).Content)
	assert.Equal(t, "Some *text*", stream.At(4).Content)
	assert.Equal(t, "---", stream.At(6).Markup)

	fence := stream.At(7)
	assert.Equal(t, "go", fence.Info)
	assert.Equal(t, "x\n", fence.Content)
	assert.Equal(t, "```", fence.Markup)
	assert.Equal(t, mdast.LineRange{Start: 6, End: 9}, *fence.Map)
	assert.Nil(t, fence.Meta)

	code := stream.At(8)
	assert.Equal(t, "indented\n", code.Content)
	assert.Equal(t, mdast.LineRange{Start: 10, End: 11}, *code.Map)
}

func TestParse_Headings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src     string
		tag     string
		content string
	}{
		{src: "## Title ##", tag: "h2", content: "Title"},
		{src: "###### Six", tag: "h6", content: "Six"},
		{src: "#", tag: "h1", content: ""},
		{src: "# Title#", tag: "h1", content: "Title#"},
		{src: "   # Indented", tag: "h1", content: "Indented"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			stream := parse(t, tt.src)
			require.Equal(t, mdast.TypeHeadingOpen, stream.At(0).Type)
			assert.Equal(t, tt.tag, stream.At(0).Tag)
			assert.Equal(t, tt.content, stream.At(1).Content)
		})
	}

	for _, src := range []string{"####### Seven", "#hashtag"} {
		assert.Nil(t, find(parse(t, src), mdast.TypeHeadingOpen), src)
	}
}

func TestParse_ThematicBreaks(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"***", "- - -", "___", " **  * ** * ** * **"} {
		stream := parse(t, src)
		assert.Equal(t, []mdast.TokenType{mdast.TypeHR}, stream.Types(), src)
	}

	for _, src := range []string{"**", "--a", "*-*"} {
		assert.Nil(t, find(parse(t, src), mdast.TypeHR), src)
	}
}

func TestParse_Fences(t *testing.T) {
	t.Parallel()

	t.Run("unclosed runs to the end", func(t *testing.T) {
		t.Parallel()

		fence := find(parse(t, "```\na\nb"), mdast.TypeFence)
		require.NotNil(t, fence)
		assert.Equal(t, "a\nb", fence.Content)
		assert.Equal(t, mdast.LineRange{Start: 0, End: 3}, *fence.Map)
	})

	t.Run("shorter closer does not close", func(t *testing.T) {
		t.Parallel()

		fence := find(parse(t, "````\na\n```\n````\nafter"), mdast.TypeFence)
		require.NotNil(t, fence)
		assert.Equal(t, "a\n```\n", fence.Content)
		assert.Equal(t, "````", fence.Markup)
	})

	t.Run("indent removed from content", func(t *testing.T) {
		t.Parallel()

		fence := find(parse(t, "  ~~~\n    a\n  b\n  ~~~"), mdast.TypeFence)
		require.NotNil(t, fence)
		assert.Equal(t, "  a\nb\n", fence.Content)
	})

	t.Run("backtick in backtick info", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, find(parse(t, "``` a`b\ntext"), mdast.TypeFence))
	})

	t.Run("backtick in tilde info", func(t *testing.T) {
		t.Parallel()

		fence := find(parse(t, "~~~ a`b\n~~~"), mdast.TypeFence)
		require.NotNil(t, fence)
		assert.Equal(t, " a`b", fence.Info)
	})
}

func TestParse_ParagraphInterruptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []mdast.TokenType
	}{
		{
			name: "heading",
			src:  "text\n# Head",
			want: []mdast.TokenType{
				mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose,
				mdast.TypeHeadingOpen, mdast.TypeInline, mdast.TypeHeadingClose,
			},
		},
		{
			name: "fence",
			src:  "text\n```\ncode\n```",
			want: []mdast.TokenType{
				mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose,
				mdast.TypeFence,
			},
		},
		{
			name: "thematic break",
			src:  "text\n***",
			want: []mdast.TokenType{
				mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose,
				mdast.TypeHR,
			},
		},
		{
			name: "indented code does not interrupt",
			src:  "text\n    more",
			want: []mdast.TokenType{
				mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, parse(t, tt.src).Types())
		})
	}

	assert.Equal(t, "text\n    more", find(parse(t, "text\n    more"), mdast.TypeInline).Content)
}

func TestParse_Normalizes(t *testing.T) {
	t.Parallel()

	stream := parse(t, "a\r\nb\x00")
	assert.Equal(t, "a\nb�", find(stream, mdast.TypeInline).Content)

	assert.Zero(t, parse(t, "").Len())
	assert.Zero(t, parse(t, "\n\n").Len())
}

func TestParse_Tight(t *testing.T) {
	t.Parallel()

	p, err := block.New()
	require.NoError(t, err)

	state := block.NewState("a\n\nb\n", p, block.Env{}, nil)
	p.Tokenize(state, 0, state.LineMax)
	assert.False(t, state.Tight, "blank line before the last block")

	state = block.NewState("a\nb\n\n", p, block.Env{}, nil)
	p.Tokenize(state, 0, state.LineMax)
	assert.True(t, state.Tight, "blank line after the last block")
	assert.Equal(t, state.LineMax, state.Line)
}

func TestNew_Disabled(t *testing.T) {
	t.Parallel()

	stream := parse(t, "# not a heading", block.WithDisabled(block.RuleHeading))
	assert.Equal(t, []mdast.TokenType{
		mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose,
	}, stream.Types())

	_, err := block.New(block.WithDisabled(block.RuleParagraph))
	require.ErrorIs(t, err, block.ErrParagraphRequired)

	_, err = block.New(block.WithDisabled("table"))
	require.ErrorIs(t, err, block.ErrUnknownRule)
}

func TestNew_CoreRuleOrder(t *testing.T) {
	t.Parallel()

	p, err := block.New()
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "fence", "hr", "heading", "paragraph"}, p.Ruler().Names())
	assert.Equal(t, []string{"fence", "hr", "heading"}, names(p.Ruler().Rules(block.RuleParagraph)))
	assert.Equal(t, block.DefaultMaxNesting, p.MaxNesting())
}

func TestNew_ExtensionError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := block.New(block.WithExtensions(block.ExtensionFunc(func(*block.Parser) error {
		return boom
	})))
	require.ErrorIs(t, err, boom)
}

func TestParse_MaxNesting(t *testing.T) {
	t.Parallel()

	stream := parse(t, "text", block.WithMaxNesting(0))
	assert.Zero(t, stream.Len())
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	p, err := block.New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Parse(ctx, "text", nil)
	require.ErrorIs(t, err, context.Canceled)
}

type recordingInline struct {
	contents []string
	err      error
}

func (r *recordingInline) ParseInline(_ context.Context, tok *mdast.Token, _ block.Env) error {
	r.contents = append(r.contents, tok.Content)
	tok.Children = append(tok.Children, mdast.Token{Type: mdast.TypeText, Content: tok.Content})
	return r.err
}

func TestParse_Inline(t *testing.T) {
	t.Parallel()

	inline := &recordingInline{}
	stream := parse(t, "# Head\n\nbody", block.WithInline(inline))

	assert.Equal(t, []string{"Head", "body"}, inline.contents)
	require.Len(t, stream.At(1).Children, 1)
	assert.Equal(t, mdast.TypeText, stream.At(1).Children[0].Type)

	failing := &recordingInline{err: errors.New("bad inline")}
	p, err := block.New(block.WithInline(failing))
	require.NoError(t, err)

	_, err = p.Parse(context.Background(), "body", nil)
	require.ErrorIs(t, err, failing.err)
}

func TestParse_LanguageDetector(t *testing.T) {
	t.Parallel()

	detect := func(code []byte) string {
		if len(code) == 0 {
			return ""
		}
		return "Go"
	}

	stream := parse(t, "```\npackage main\n```\n\n```python\nx = 1\n```", block.WithLanguageDetector(detect))

	fences := make([]*mdast.Token, 0, 2)
	for _, tok := range stream.All() {
		if tok.Type == mdast.TypeFence {
			fences = append(fences, tok)
		}
	}
	require.Len(t, fences, 2)

	assert.Equal(t, block.FenceMeta{DetectedLanguage: "Go"}, fences[0].Meta)
	assert.Nil(t, fences[1].Meta)
}

func TestParse_LanguageDetectorBlankInfo(t *testing.T) {
	t.Parallel()

	detect := func([]byte) string { return "Go" }

	stream := parse(t, "```  \t\npackage main\n```", block.WithLanguageDetector(detect))

	var fence *mdast.Token
	for _, tok := range stream.All() {
		if tok.Type == mdast.TypeFence {
			fence = tok
		}
	}
	require.NotNil(t, fence)
	assert.Equal(t, block.FenceMeta{DetectedLanguage: "Go"}, fence.Meta)
}

func TestTokenize_PanicsOnRuleWithoutProgress(t *testing.T) {
	t.Parallel()

	stuck := block.ExtensionFunc(func(p *block.Parser) error {
		return p.Ruler().Before(block.RuleParagraph, "stuck", func(*block.State, int, int, bool) bool {
			return true
		}, block.RuleOptions{})
	})

	p, err := block.New(block.WithExtensions(stuck))
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = p.Parse(context.Background(), "text", nil)
	})
}
