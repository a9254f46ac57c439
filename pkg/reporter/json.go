package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/deflist"
	"github.com/yaklabco/gomdtok/pkg/mdast"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

// jsonVersion is the schema version of JSONOutput.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's token stream.
type JSONFileResult struct {
	Path   string      `json:"path"`
	Size   int64       `json:"size,omitempty"`
	SHA256 string      `json:"sha256,omitempty"`
	Tokens []JSONToken `json:"tokens"`
	Error  string      `json:"error,omitempty"`
}

// JSONToken represents a single token. Map holds 0-based [start, end)
// source lines.
type JSONToken struct {
	Type     string            `json:"type"`
	Tag      string            `json:"tag,omitempty"`
	Nesting  int               `json:"nesting"`
	Level    int               `json:"level"`
	Map      []int             `json:"map,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Content  string            `json:"content,omitempty"`
	Info     string            `json:"info,omitempty"`
	Markup   string            `json:"markup,omitempty"`
	Block    bool              `json:"block"`
	Hidden   bool              `json:"hidden"`
	Tight    *bool             `json:"tight,omitempty"`
	Language string            `json:"language,omitempty"`
	Children []JSONToken       `json:"children,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesTokenized int            `json:"filesTokenized"`
	FilesErrored   int            `json:"filesErrored"`
	FilesWithLists int            `json:"filesWithLists"`
	Tokens         int            `json:"tokens"`
	Lists          int            `json:"definitionLists"`
	TightLists     int            `json:"tightLists"`
	Terms          int            `json:"terms"`
	Descriptions   int            `json:"descriptions"`
	NestedLists    int            `json:"nestedLists"`
	ByType         map[string]int `json:"byType"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Tokens, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{ByType: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:   r.opts.displayPath(file.Path),
			Tokens: make([]JSONToken, 0),
		}

		if file.Info != nil {
			fileResult.Size = file.Info.Size
			fileResult.SHA256 = file.Info.HashHex()
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if file.Tokens != nil {
			fileResult.Tokens = make([]JSONToken, 0, file.Tokens.Len())
			for _, tok := range file.Tokens.All() {
				fileResult.Tokens = append(fileResult.Tokens, toJSONToken(tok))
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesTokenized = stats.FilesProcessed
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.FilesWithLists = stats.FilesWithLists
	output.Summary.Tokens = stats.Tokens
	output.Summary.Lists = stats.Lists
	output.Summary.TightLists = stats.TightLists
	output.Summary.Terms = stats.Terms
	output.Summary.Descriptions = stats.Descriptions
	output.Summary.NestedLists = stats.NestedLists
	for typ, n := range stats.TokensByType {
		output.Summary.ByType[typ] = n
	}

	return output
}

func toJSONToken(tok *mdast.Token) JSONToken {
	out := JSONToken{
		Type:    string(tok.Type),
		Tag:     tok.Tag,
		Nesting: int(tok.Nesting),
		Level:   tok.Level,
		Content: tok.Content,
		Info:    tok.Info,
		Markup:  tok.Markup,
		Block:   tok.Block,
		Hidden:  tok.Hidden,
	}

	if tok.Map != nil {
		out.Map = []int{tok.Map.Start, tok.Map.End}
	}

	if len(tok.Attrs) > 0 {
		out.Attrs = make(map[string]string, len(tok.Attrs))
		for _, attr := range tok.Attrs {
			out.Attrs[attr.Name] = attr.Value
		}
	}

	switch meta := tok.Meta.(type) {
	case deflist.ListMeta:
		tight := meta.Tight
		out.Tight = &tight
	case block.FenceMeta:
		out.Language = meta.DetectedLanguage
	}

	for i := range tok.Children {
		out.Children = append(out.Children, toJSONToken(&tok.Children[i]))
	}

	return out
}
