package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtok/internal/ui/pretty"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	typeColWidth      = 30 // Width of the token type column.
	fileColWidth      = 50 // Width of the file path column.
	numColWidth       = 9  // Width of numeric columns.
	maxTypeNameLength = 28 // Maximum characters for a type name before truncation.
	maxFilePathLength = 48 // Maximum characters for a file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// typeCount is one row of the token type table.
type typeCount struct {
	Type  string
	Count int
}

// SummaryReporter formats results as aggregated tables: token counts by
// type, then per-file definition list counts.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || result.Stats.Tokens == 0 && result.Stats.FilesErrored == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No tokens produced"))
		return 0, nil
	}

	r.renderTypeTable(sortedTypeCounts(result.Stats.TokensByType))
	fmt.Fprintln(r.bw)
	r.renderFileTable(result.Files)
	fmt.Fprintln(r.bw)
	fmt.Fprint(r.bw, r.styles.Bold.Render("Total: ")+r.styles.FormatSummaryOneLine(result.Stats))

	return result.Stats.Tokens, nil
}

// sortedTypeCounts orders types by count, most frequent first, then by name.
func sortedTypeCounts(byType map[string]int) []typeCount {
	counts := make([]typeCount, 0, len(byType))
	for typ, n := range byType {
		counts = append(counts, typeCount{Type: typ, Count: n})
	}
	slices.SortFunc(counts, func(a, b typeCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Type, b.Type)
	})
	return counts
}

func (r *SummaryReporter) renderTypeTable(counts []typeCount) {
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Token Types"))
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.bw, "%s %s\n",
		r.styles.TableHeader.Render(padRight("Type", typeColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, row := range counts {
		name := row.Type
		if len(name) > maxTypeNameLength {
			name = name[:maxTypeNameLength] + "…"
		}

		fmt.Fprintf(r.bw, "%s %s\n",
			padRight(name, typeColWidth),
			padLeft(strconv.Itoa(row.Count), numColWidth),
		)
	}
}

func (r *SummaryReporter) renderFileTable(files []runner.FileOutcome) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Files"))
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.bw, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Tokens", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Lists", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Terms", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Descs", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := r.opts.displayPath(file.Path)
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		paddedPath := padRight(path, fileColWidth)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s %s\n", r.styles.Failure.Render(paddedPath), r.styles.Error.Render("error"))
			continue
		}

		if file.Stats.Lists > 0 {
			paddedPath = r.styles.Success.Render(paddedPath)
		}

		fmt.Fprintf(r.bw, "%s %s %s %s %s\n",
			paddedPath,
			padLeft(strconv.Itoa(file.Stats.Tokens), numColWidth),
			padLeft(strconv.Itoa(file.Stats.Lists), numColWidth),
			padLeft(strconv.Itoa(file.Stats.Terms), numColWidth),
			padLeft(strconv.Itoa(file.Stats.Descriptions), numColWidth),
		)
	}
}
