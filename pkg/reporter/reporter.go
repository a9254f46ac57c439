// Package reporter writes token streams in text, table, JSON and summary
// formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/deflist"
	"github.com/yaklabco/gomdtok/pkg/mdast"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

// Reporter formats and writes tokenizer results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of tokens reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// describeMeta renders the rule-specific metadata of a token, or "".
func describeMeta(tok *mdast.Token) string {
	switch meta := tok.Meta.(type) {
	case deflist.ListMeta:
		if meta.Tight {
			return "tight"
		}
		return "loose"
	case block.FenceMeta:
		if meta.DetectedLanguage != "" {
			return "language: " + meta.DetectedLanguage
		}
	}
	return ""
}
