package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtok/internal/ui/pretty"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 10,
		FilesWithLists: 3,
		Tokens:         240,
		Lists:          4,
		TightLists:     3,
		Terms:          9,
		Descriptions:   12,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files tokenized:   10")
	assert.Contains(t, result, "Files with lists:  3")
	assert.Contains(t, result, "Block tokens:      240")
	assert.Contains(t, result, "Definition lists:  4")
	assert.Contains(t, result, "Tight:           3")
	assert.Contains(t, result, "Loose:           1")
	assert.Contains(t, result, "Terms:           9")
	assert.Contains(t, result, "Descriptions:    12")
	assert.Contains(t, result, "Tokenization complete")
	assert.NotContains(t, result, "Files failed:")
}

func TestFormatSummary_NoLists(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesProcessed: 2, Tokens: 8})

	assert.NotContains(t, result, "Definition lists:")
	assert.NotContains(t, result, "Files with lists:")
	assert.Contains(t, result, "Tokenization complete")
}

func TestFormatSummary_WithErrors(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesProcessed: 4, FilesErrored: 1})

	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Tokenization failed for some files")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no files",
			stats: runner.Stats{},
			want:  "No files tokenized\n",
		},
		{
			name:  "no lists",
			stats: runner.Stats{FilesProcessed: 1, Tokens: 3},
			want:  "1 file, 3 tokens\n",
		},
		{
			name: "lists",
			stats: runner.Stats{
				FilesProcessed: 3, Tokens: 412, Lists: 2, TightLists: 1, Terms: 5, Descriptions: 7,
			},
			want: "3 files, 412 tokens, 2 definition lists (1 tight), 5 terms, 7 descriptions\n",
		},
		{
			name:  "single list all loose",
			stats: runner.Stats{FilesProcessed: 1, Tokens: 1, Lists: 1, Terms: 1, Descriptions: 1},
			want:  "1 file, 1 token, 1 definition list, 1 term, 1 description\n",
		},
		{
			name:  "failures",
			stats: runner.Stats{FilesProcessed: 2, FilesErrored: 1, Tokens: 6},
			want:  "2 files, 6 tokens, 1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummaryOneLine_SingleLine(t *testing.T) {
	styles := pretty.NewStyles(true)

	result := styles.FormatSummaryOneLine(runner.Stats{FilesProcessed: 3, Tokens: 9, Lists: 1, TightLists: 1})

	assert.Equal(t, 1, strings.Count(result, "\n"))
}
