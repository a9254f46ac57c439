package runner

import (
	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/deflist"
	"github.com/yaklabco/gomdtok/pkg/fsutil"
	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// FileOutcome is the result of tokenizing one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Info describes the file as it was read. Nil for stdin and on read errors.
	Info *fsutil.FileInfo

	// Tokens is the token stream. Nil if the file could not be processed.
	Tokens *mdast.Stream

	// Stats summarizes Tokens.
	Stats FileStats

	// Error is set if the file could not be processed.
	Error error
}

// FileStats summarizes the token stream of one file.
type FileStats struct {
	Tokens        int
	Hidden        int
	InlineTokens  int
	MaxLevel      int
	Lists         int
	TightLists    int
	Terms         int
	Descriptions  int
	Fences        int
	FenceLanguage map[string]int

	// NestedLists counts definition lists inside a description.
	NestedLists int
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files tokenized successfully.
	FilesProcessed int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesWithLists is the number of files containing a definition list.
	FilesWithLists int

	// Tokens is the total number of block tokens.
	Tokens int

	// Lists, TightLists, Terms and Descriptions count definition list parts.
	Lists        int
	TightLists   int
	Terms        int
	Descriptions int

	// NestedLists counts lists inside a description of another list.
	NestedLists int

	// TokensByType maps token types to counts.
	TokensByType map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{TokensByType: make(map[string]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Tokens += outcome.Stats.Tokens
	r.Stats.Lists += outcome.Stats.Lists
	r.Stats.TightLists += outcome.Stats.TightLists
	r.Stats.Terms += outcome.Stats.Terms
	r.Stats.Descriptions += outcome.Stats.Descriptions
	r.Stats.NestedLists += outcome.Stats.NestedLists

	if outcome.Stats.Lists > 0 {
		r.Stats.FilesWithLists++
	}

	if outcome.Tokens != nil {
		for _, tok := range outcome.Tokens.All() {
			r.Stats.TokensByType[string(tok.Type)]++
		}
	}
}

// Summarize computes FileStats for a token stream.
func Summarize(stream *mdast.Stream) FileStats {
	stats := FileStats{}
	if stream == nil {
		return stats
	}

	for _, tok := range stream.All() {
		stats.Tokens++
		stats.MaxLevel = max(stats.MaxLevel, tok.Level)

		if tok.Hidden {
			stats.Hidden++
		}

		switch tok.Type {
		case mdast.TypeInline:
			stats.InlineTokens += len(tok.Children)
		case mdast.TypeFence:
			stats.Fences++
			if meta, ok := tok.Meta.(block.FenceMeta); ok && meta.DetectedLanguage != "" {
				if stats.FenceLanguage == nil {
					stats.FenceLanguage = make(map[string]int)
				}
				stats.FenceLanguage[meta.DetectedLanguage]++
			}
		case deflist.TypeListOpen:
			stats.Lists++
			if meta, ok := tok.Meta.(deflist.ListMeta); ok && meta.Tight {
				stats.TightLists++
			}
		case deflist.TypeTermOpen:
			stats.Terms++
		case deflist.TypeDescriptionOpen:
			stats.Descriptions++
		}
	}

	return stats
}

// CountNestedLists returns the number of definition lists in the tree that
// sit inside a description of another list.
func CountNestedLists(root *mdast.Node) int {
	var nested int
	for _, list := range mdast.FindByType(root, deflist.TypeListOpen.Base()) {
		for _, ancestor := range mdast.Ancestors(list) {
			if ancestor.Type == deflist.TypeDescriptionOpen.Base() {
				nested++
				break
			}
		}
	}
	return nested
}
