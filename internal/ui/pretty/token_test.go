package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtok/internal/ui/pretty"
	"github.com/yaklabco/gomdtok/pkg/mdast"
)

func TestFormatToken_Open(t *testing.T) {
	styles := pretty.NewStyles(false)

	tok := &mdast.Token{Type: "dd_open", Tag: "dd", Nesting: mdast.NestingOpen, Level: 1}
	tok.SetMap(2, 5)

	result := styles.FormatToken(tok, tok.Level, "")

	assert.Equal(t, "  dd_open <dd> 3-5\n", result)
}

func TestFormatToken_Content(t *testing.T) {
	styles := pretty.NewStyles(false)

	tok := &mdast.Token{Type: mdast.TypeInline, Content: "Term\nline"}
	tok.SetMap(0, 1)

	result := styles.FormatToken(tok, 0, "")

	assert.Contains(t, result, "inline 1")
	assert.Contains(t, result, `"Term\nline"`)
}

func TestFormatToken_Hidden(t *testing.T) {
	styles := pretty.NewStyles(false)

	tok := &mdast.Token{Type: mdast.TypeParagraphOpen, Tag: "p", Nesting: mdast.NestingOpen, Hidden: true}

	result := styles.FormatToken(tok, 2, "")

	assert.True(t, strings.HasPrefix(result, "    paragraph_open"))
	assert.Contains(t, result, "[hidden]")
}

func TestFormatToken_FenceAndMeta(t *testing.T) {
	styles := pretty.NewStyles(false)

	tok := &mdast.Token{Type: mdast.TypeFence, Tag: "code", Markup: "```", Info: "go", Content: "x := 1\n"}
	tok.AttrSet("data-x", "y")

	result := styles.FormatToken(tok, 0, "language: go")

	assert.Contains(t, result, "\"```\"")
	assert.Contains(t, result, "info=go")
	assert.Contains(t, result, `data-x="y"`)
	assert.Contains(t, result, "(language: go)")
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "doc.md", styles.FormatFileHeader("doc.md", 0, 0))
	assert.Equal(t, "doc.md (12 tokens)", styles.FormatFileHeader("doc.md", 12, 0))
	assert.Equal(t, "doc.md (12 tokens, 1 definition list)", styles.FormatFileHeader("doc.md", 12, 1))
	assert.Equal(t, "doc.md (30 tokens, 2 definition lists)", styles.FormatFileHeader("doc.md", 30, 2))
}

func TestFormatFileError(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatFileError("gone.md", errors.New("file not found"))

	assert.Equal(t, "gone.md: error: file not found\n", result)
}

func TestFormatLines(t *testing.T) {
	tests := []struct {
		name string
		in   *mdast.LineRange
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "empty", in: &mdast.LineRange{Start: 3, End: 3}, want: "4"},
		{name: "single", in: &mdast.LineRange{Start: 0, End: 1}, want: "1"},
		{name: "span", in: &mdast.LineRange{Start: 2, End: 5}, want: "3-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pretty.FormatLines(tt.in))
		})
	}
}

func TestQuoteContent(t *testing.T) {
	assert.Equal(t, `"short"`, pretty.QuoteContent("short", 10))
	assert.Equal(t, `"abc"...`, pretty.QuoteContent("abcdef", 3))
	assert.Equal(t, `"défini"...`, pretty.QuoteContent("définition", 6))
	assert.Equal(t, `"no limit"`, pretty.QuoteContent("no limit", 0))
}
