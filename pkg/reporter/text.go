package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdtok/internal/ui/pretty"
	"github.com/yaklabco/gomdtok/pkg/mdast"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

// TextReporter formats token streams as an indented tree.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to tokenize."))
		}
		return 0, nil
	}

	var total int

	for i, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}

		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}

		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, file.Stats.Tokens, file.Stats.Lists))
		total += r.writeTokens(file.Tokens)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// writeTokens writes one line per block token, followed by the inline
// children of inline tokens one level deeper.
func (r *TextReporter) writeTokens(stream *mdast.Stream) int {
	if stream == nil {
		return 0
	}

	var written int
	for _, tok := range stream.All() {
		if tok.Hidden && !r.opts.ShowHidden {
			continue
		}

		fmt.Fprint(r.bw, r.styles.FormatToken(tok, tok.Level+1, describeMeta(tok)))
		written++

		if r.opts.ShowInline && tok.Type == mdast.TypeInline {
			written += r.writeChildren(tok.Children, tok.Level+2)
		}
	}

	return written
}

func (r *TextReporter) writeChildren(children []mdast.Token, depth int) int {
	var written int
	for i := range children {
		child := &children[i]
		fmt.Fprint(r.bw, r.styles.FormatToken(child, depth+child.Level, ""))
		written++

		if len(child.Children) > 0 {
			written += r.writeChildren(child.Children, depth+child.Level+1)
		}
	}
	return written
}
