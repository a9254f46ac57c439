package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// maxContentWidth bounds the quoted content shown on a token line.
const maxContentWidth = 60

// indentUnit is the indent added per nesting level.
const indentUnit = "  "

// FormatToken formats a token as one line of the indented tree view.
// Depth is the indent in levels; meta is an optional annotation such as
// "tight" or a detected language.
//
// Example: "  dd_open <dd> 3-5".
func (s *Styles) FormatToken(tok *mdast.Token, depth int, meta string) string {
	var builder strings.Builder

	builder.WriteString(strings.Repeat(indentUnit, depth))
	builder.WriteString(s.TokenStyle(tok).Render(string(tok.Type)))

	if tok.Tag != "" {
		builder.WriteString(" " + s.Tag.Render("<"+tok.Tag+">"))
	}
	if lines := FormatLines(tok.Map); lines != "" {
		builder.WriteString(" " + s.Location.Render(lines))
	}
	if tok.Markup != "" {
		builder.WriteString(" " + s.Markup.Render(strconv.Quote(tok.Markup)))
	}
	if tok.Info != "" {
		builder.WriteString(" " + s.Meta.Render("info="+tok.Info))
	}
	for _, attr := range tok.Attrs {
		builder.WriteString(" " + s.Dim.Render(attr.Name+"="+strconv.Quote(attr.Value)))
	}
	if tok.Content != "" {
		builder.WriteString(" " + s.Content.Render(QuoteContent(tok.Content, maxContentWidth)))
	}
	if meta != "" {
		builder.WriteString(" " + s.Meta.Render("("+meta+")"))
	}
	if tok.Hidden {
		builder.WriteString(" " + s.Hidden.Render("[hidden]"))
	}

	builder.WriteString("\n")
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, tokens, lists int) string {
	header := s.FilePath.Render(path)
	if tokens > 0 {
		detail := fmt.Sprintf(" (%d tokens", tokens)
		if lists > 0 {
			detail += fmt.Sprintf(", %d %s", lists, plural(lists, "definition list", "definition lists"))
		}
		header += s.Dim.Render(detail + ")")
	}
	return header
}

// FormatFileError formats a file that could not be tokenized.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// FormatLines renders a 0-based half-open line range as 1-based
// inclusive lines, "3" or "3-5". An empty range, as on a definition term,
// renders as its start line. Nil renders as "".
func FormatLines(r *mdast.LineRange) string {
	if r == nil {
		return ""
	}
	if r.Len() <= 1 {
		return strconv.Itoa(r.Start + 1)
	}
	return fmt.Sprintf("%d-%d", r.Start+1, r.End)
}

// QuoteContent quotes content for single-line display, truncating it to
// about maxLen runes.
func QuoteContent(content string, maxLen int) string {
	runes := []rune(content)
	if maxLen > 0 && len(runes) > maxLen {
		return strconv.Quote(string(runes[:maxLen])) + "..."
	}
	return strconv.Quote(content)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
