package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomdtok/pkg/mdast"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

// Table formatting constants.
const (
	hiddenSymbol      = "h"
	tablePadding      = 2
	tableColumnCount  = 5 // FILE, LINES, TYPE, TAG, CONTENT
	perFileColumns    = 4 // LINES, TYPE, TAG, CONTENT (no FILE column)
	hiddenColumnWidth = 3 // width for hidden indicator column
	minFileWidth      = 20
	minLinesWidth     = 6
	minTypeWidth      = 16
	minTagWidth       = 4
	minContentWidth   = 30
	heavySeparator    = "="
	lightSeparator    = "-"
	defaultTermWidth  = 100
)

// TableRow represents a single token row.
type TableRow struct {
	File    string
	Lines   string
	Type    string
	Tag     string
	Content string
	Nesting mdast.Nesting
	Hidden  bool
}

// TableFormatter formats token streams as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	showHidden   bool
}

// NewTableFormatter creates a new table formatter. Hidden tokens are only
// listed when showHidden is set.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, showHidden bool) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		showHidden:   showHidden,
	}
}

// FormatTable formats the tokens of every file as one table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	fileGroups := t.collectRows(result)
	if len(fileGroups) == 0 {
		return ""
	}

	colWidths := t.calculateColumnWidths(fileGroups)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(colWidths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	for i, group := range fileGroups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(colWidths, lightSeparator))
			builder.WriteString("\n")
		}

		for _, row := range group {
			builder.WriteString(t.formatRow(row, colWidths))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileTable formats a single file's tokens as a standalone table.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	rows := t.fileRows(file)
	if len(rows) == 0 {
		return ""
	}

	colWidths := t.calculateColumnWidthsForRows(rows)

	var builder strings.Builder

	builder.WriteString(t.formatPerFileHeader(colWidths))
	builder.WriteString("\n")
	builder.WriteString(t.formatPerFileSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatPerFileRow(row, colWidths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatPerFileSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	builder.WriteString(t.formatFileSummary(file.Stats))
	builder.WriteString("\n")

	return builder.String()
}

// fileRows converts the block tokens of a file to rows. The type column
// is indented by the token's level so the nesting stays visible.
func (t *TableFormatter) fileRows(file runner.FileOutcome) []TableRow {
	if file.Error != nil || file.Tokens == nil {
		return nil
	}

	rows := make([]TableRow, 0, file.Tokens.Len())
	for _, tok := range file.Tokens.All() {
		if tok.Hidden && !t.showHidden {
			continue
		}

		row := TableRow{
			File:    file.Path,
			Lines:   FormatLines(tok.Map),
			Type:    strings.Repeat(" ", tok.Level) + string(tok.Type),
			Tag:     tok.Tag,
			Nesting: tok.Nesting,
			Hidden:  tok.Hidden,
		}
		if tok.Content != "" {
			row.Content = QuoteContent(tok.Content, 0)
		}
		rows = append(rows, row)
	}

	return rows
}

type perFileColumnWidths struct {
	lines   int
	typ     int
	tag     int
	content int
}

// calculateColumnWidthsForRows calculates widths for per-file table (no FILE column).
func (t *TableFormatter) calculateColumnWidthsForRows(rows []TableRow) perFileColumnWidths {
	widths := perFileColumnWidths{
		lines:   minLinesWidth,
		typ:     minTypeWidth,
		tag:     minTagWidth,
		content: minContentWidth,
	}

	for _, row := range rows {
		widths.lines = max(widths.lines, len(row.Lines))
		widths.typ = max(widths.typ, len(row.Type))
		widths.tag = max(widths.tag, len(row.Tag))
		widths.content = max(widths.content, len(row.Content))
	}

	totalWidth := widths.lines + widths.typ + widths.tag + widths.content +
		(tablePadding * perFileColumns) + hiddenColumnWidth
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.content = max(minContentWidth, widths.content-excess)
	}

	return widths
}

// formatPerFileHeader formats the header for per-file tables.
func (t *TableFormatter) formatPerFileHeader(widths perFileColumnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s   ",
		widths.lines, "LINES",
		widths.typ, "TYPE",
		widths.tag, "TAG",
		widths.content, "CONTENT",
	)
	return t.styles.TableHeader.Render(header)
}

// formatPerFileSeparator formats a separator line for per-file tables.
func (t *TableFormatter) formatPerFileSeparator(widths perFileColumnWidths, char string) string {
	totalWidth := widths.lines + widths.typ + widths.tag + widths.content +
		(tablePadding * perFileColumns) + hiddenColumnWidth
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth))
}

// formatPerFileRow formats a single row in the per-file table.
func (t *TableFormatter) formatPerFileRow(row TableRow, widths perFileColumnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %s",
		widths.lines, row.Lines,
		widths.typ, truncateString(row.Type, widths.typ),
		widths.tag, truncateString(row.Tag, widths.tag),
		widths.content, truncateString(row.Content, widths.content),
		t.hiddenMarker(row),
	)

	return t.getRowStyle(row).Render(content)
}

// formatFileSummary formats a summary line for a single file.
func (t *TableFormatter) formatFileSummary(stats runner.FileStats) string {
	parts := []string{fmt.Sprintf("%d tokens", stats.Tokens)}

	if stats.Hidden > 0 {
		parts = append(parts, t.styles.Dim.Render(fmt.Sprintf("%d hidden", stats.Hidden)))
	}
	if stats.Lists > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d definition lists", stats.Lists)))
	}
	if stats.TightLists > 0 {
		parts = append(parts, t.styles.Success.Render(fmt.Sprintf("%d tight", stats.TightLists)))
	}

	return " " + strings.Join(parts, " | ")
}

// collectRows collects token rows grouped by file.
func (t *TableFormatter) collectRows(result *runner.Result) [][]TableRow {
	var groups [][]TableRow

	for _, file := range result.Files {
		if rows := t.fileRows(file); len(rows) > 0 {
			groups = append(groups, rows)
		}
	}

	return groups
}

type columnWidths struct {
	file    int
	lines   int
	typ     int
	tag     int
	content int
}

// calculateColumnWidths determines optimal column widths based on content.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		lines:   minLinesWidth,
		typ:     minTypeWidth,
		tag:     minTagWidth,
		content: minContentWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, len(row.File))
			widths.lines = max(widths.lines, len(row.Lines))
			widths.typ = max(widths.typ, len(row.Type))
			widths.tag = max(widths.tag, len(row.Tag))
			widths.content = max(widths.content, len(row.Content))
		}
	}

	// Constrain to terminal width
	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		// Content gives way first, then the file path.
		excess := totalWidth - t.termWidth
		widths.content = max(minContentWidth, widths.content-excess)

		totalWidth = t.calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s   ",
		widths.file, "FILE",
		widths.lines, "LINES",
		widths.typ, "TYPE",
		widths.tag, "TAG",
		widths.content, "CONTENT",
	)
	return t.styles.TableHeader.Render(header)
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.lines + widths.typ + widths.tag + widths.content +
		(tablePadding * tableColumnCount) + hiddenColumnWidth
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

// formatRow formats a single table row styled by its nesting.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s  %s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.lines, row.Lines,
		widths.typ, truncateString(row.Type, widths.typ),
		widths.tag, truncateString(row.Tag, widths.tag),
		widths.content, truncateString(row.Content, widths.content),
		t.hiddenMarker(row),
	)

	return t.getRowStyle(row).Render(content)
}

func (t *TableFormatter) hiddenMarker(row TableRow) string {
	if row.Hidden {
		return hiddenSymbol
	}
	return " "
}

// getRowStyle returns the row style for a token.
func (t *TableFormatter) getRowStyle(row TableRow) lipgloss.Style {
	switch {
	case row.Hidden:
		return t.styles.TableHiddenRow
	case row.Nesting == mdast.NestingOpen:
		return t.styles.TableOpenRow
	case row.Nesting == mdast.NestingClose:
		return t.styles.TableCloseRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend formats the legend explaining the table symbols and colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: %s = hidden | lines are 1-based and inclusive", hiddenSymbol),
		)
	}

	openSample := t.styles.TableOpenRow.Render(" open ")
	closeSample := t.styles.TableCloseRow.Render(" close ")
	hiddenSample := t.styles.TableHiddenRow.Render(" hidden ")

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s  %s  %s", openSample, closeSample, hiddenSample),
	)
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d files tokenized", stats.FilesProcessed)}

	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	parts = append(parts, fmt.Sprintf("%d tokens", stats.Tokens))

	if stats.Lists > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d definition lists", stats.Lists)))
	}

	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
