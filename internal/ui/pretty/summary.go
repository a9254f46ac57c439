package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtok/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files, 412 tokens, 2 definition lists (1 tight), 5 terms, 7 descriptions".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesProcessed == 0 && stats.FilesErrored == 0 {
		return s.Dim.Render("No files tokenized") + "\n"
	}

	parts := []string{
		fmt.Sprintf("%d %s", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)),
		fmt.Sprintf("%d %s", stats.Tokens, plural(stats.Tokens, "token", "tokens")),
	}

	if stats.Lists > 0 {
		lists := fmt.Sprintf("%d %s", stats.Lists, plural(stats.Lists, "definition list", "definition lists"))
		if stats.TightLists > 0 {
			lists += s.Dim.Render(fmt.Sprintf(" (%d tight)", stats.TightLists))
		}
		parts = append(parts,
			s.Success.Render(lists),
			fmt.Sprintf("%d %s", stats.Terms, plural(stats.Terms, "term", "terms")),
			fmt.Sprintf("%d %s", stats.Descriptions, plural(stats.Descriptions, "description", "descriptions")),
		)
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files tokenized:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	if stats.FilesWithLists > 0 {
		builder.WriteString("  Files with lists:  " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesWithLists)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Block tokens:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.Tokens)) + "\n")

	if stats.Lists > 0 {
		builder.WriteString("  Definition lists:  " +
			s.SummaryValue.Render(strconv.Itoa(stats.Lists)) + "\n")
		builder.WriteString("    Tight:           " +
			s.SummaryValue.Render(strconv.Itoa(stats.TightLists)) + "\n")
		builder.WriteString("    Loose:           " +
			s.SummaryValue.Render(strconv.Itoa(stats.Lists-stats.TightLists)) + "\n")
		builder.WriteString("    Terms:           " +
			s.SummaryValue.Render(strconv.Itoa(stats.Terms)) + "\n")
		builder.WriteString("    Descriptions:    " +
			s.SummaryValue.Render(strconv.Itoa(stats.Descriptions)) + "\n")
		builder.WriteString("    Nested:          " +
			s.SummaryValue.Render(strconv.Itoa(stats.NestedLists)) + "\n")
	}

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Tokenization failed for some files"))
	} else {
		builder.WriteString(s.Success.Render("Tokenization complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
