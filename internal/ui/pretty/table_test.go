package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtok/internal/ui/pretty"
	"github.com/yaklabco/gomdtok/pkg/mdast"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

// tightList builds the stream of "Term\n: Definition\n".
func tightList() *mdast.Stream {
	stream := mdast.NewStream()
	push := func(tok mdast.Token) {
		tok.Block = true
		stream.Push(tok)
	}
	lines := func(start, end int) *mdast.LineRange {
		return &mdast.LineRange{Start: start, End: end}
	}

	push(mdast.Token{Type: "dl_open", Tag: "dl", Nesting: mdast.NestingOpen, Map: lines(0, 2)})
	push(mdast.Token{Type: "dt_open", Tag: "dt", Nesting: mdast.NestingOpen, Level: 1, Map: lines(0, 0)})
	push(mdast.Token{Type: mdast.TypeInline, Level: 2, Content: "Term", Map: lines(0, 0)})
	push(mdast.Token{Type: "dt_close", Tag: "dt", Nesting: mdast.NestingClose, Level: 1})
	push(mdast.Token{Type: "dd_open", Tag: "dd", Nesting: mdast.NestingOpen, Level: 1, Map: lines(1, 2)})
	push(mdast.Token{Type: mdast.TypeParagraphOpen, Tag: "p", Nesting: mdast.NestingOpen, Level: 2, Hidden: true, Map: lines(1, 2)})
	push(mdast.Token{Type: mdast.TypeInline, Level: 3, Content: "Definition", Map: lines(1, 2)})
	push(mdast.Token{Type: mdast.TypeParagraphClose, Tag: "p", Nesting: mdast.NestingClose, Level: 2, Hidden: true})
	push(mdast.Token{Type: "dd_close", Tag: "dd", Nesting: mdast.NestingClose, Level: 1})
	push(mdast.Token{Type: "dl_close", Tag: "dl", Nesting: mdast.NestingClose})

	return stream
}

func outcome(path string) runner.FileOutcome {
	stream := tightList()
	return runner.FileOutcome{Path: path, Tokens: stream, Stats: runner.Summarize(stream)}
}

func TestTableFormatter_FormatFileTable(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 100, false)

	result := formatter.FormatFileTable(outcome("glossary.md"))

	assert.Contains(t, result, "LINES")
	assert.Contains(t, result, "TYPE")
	assert.Contains(t, result, "CONTENT")
	assert.Contains(t, result, "dl_open")
	assert.Contains(t, result, `"Definition"`)
	assert.NotContains(t, result, "paragraph_open", "hidden tokens are omitted by default")
	assert.Contains(t, result, "10 tokens | 2 hidden")
}

func TestTableFormatter_ShowHidden(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 100, true)

	result := formatter.FormatFileTable(outcome("glossary.md"))

	assert.Contains(t, result, "paragraph_open")
	assert.Contains(t, result, "paragraph_close")
}

func TestTableFormatter_FormatTable(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 120, false)

	result := formatter.FormatTable(&runner.Result{
		Files: []runner.FileOutcome{
			outcome("a.md"),
			{Path: "broken.md", Error: errors.New("boom")},
			outcome("b.md"),
		},
	})

	assert.Contains(t, result, "FILE")
	assert.Contains(t, result, "a.md")
	assert.Contains(t, result, "b.md")
	assert.NotContains(t, result, "broken.md")
	assert.Contains(t, result, "Legend:")

	// Each file group after the first is preceded by a light separator.
	assert.Equal(t, 1, strings.Count(result, "\n-"))
}

func TestTableFormatter_Empty(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0, false)

	assert.Empty(t, formatter.FormatTable(nil))
	assert.Empty(t, formatter.FormatTable(&runner.Result{}))
	assert.Empty(t, formatter.FormatFileTable(runner.FileOutcome{Path: "x.md", Error: errors.New("boom")}))
}

func TestTableFormatter_FormatTableSummary(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 100, false)

	result := formatter.FormatTableSummary(runner.Stats{
		FilesProcessed: 3,
		FilesErrored:   1,
		Tokens:         42,
		Lists:          2,
	}, "12ms")

	assert.Equal(t, " 3 files tokenized | 1 failed | 42 tokens | 2 definition lists | 12ms", result)
}
