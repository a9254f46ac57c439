package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/gomdtok/internal/ui/pretty"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats token streams as a styled table.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer), opts.ShowHidden),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	rel := r.relativize(result)

	if r.opts.PerFile {
		r.reportPerFile(rel)
	} else {
		fmt.Fprint(r.bw, r.formatter.FormatTable(rel))
	}

	for _, file := range rel.Files {
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(file.Path, file.Error))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
	}

	return countRows(result, r.opts.ShowHidden), nil
}

// reportPerFile outputs a separate table for each tokenized file.
func (r *TableReporter) reportPerFile(result *runner.Result) {
	for _, file := range result.Files {
		table := r.formatter.FormatFileTable(file)
		if table == "" {
			continue
		}

		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render(file.Path))
		fmt.Fprint(r.bw, table)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.TableSeparator.Render("════════════════════════════════════════════════════════════════════════════════"))
		fmt.Fprintln(r.bw, r.styles.Bold.Render("Overall Summary"))
	}
}

// relativize returns a shallow copy of result with display paths.
func (r *TableReporter) relativize(result *runner.Result) *runner.Result {
	out := &runner.Result{Stats: result.Stats, Files: make([]runner.FileOutcome, len(result.Files))}
	for i, file := range result.Files {
		file.Path = r.opts.displayPath(file.Path)
		out.Files[i] = file
	}
	return out
}

// countRows counts the block tokens a table lists.
func countRows(result *runner.Result, showHidden bool) int {
	var total int
	for _, file := range result.Files {
		if file.Error != nil || file.Tokens == nil {
			continue
		}
		total += file.Stats.Tokens
		if !showHidden {
			total -= file.Stats.Hidden
		}
	}
	return total
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
