package block

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// minFenceLength is the shortest run of backticks or tildes that opens a fence.
const minFenceLength = 3

// FenceMeta is attached to fence tokens without an info string when
// language detection is enabled.
type FenceMeta struct {
	DetectedLanguage string
}

// Fence recognizes a fenced code block opened by ``` or ~~~.
func Fence(state *State, startLine, endLine int, silent bool) bool {
	pos := state.BMarks[startLine] + state.TShift[startLine]
	limit := state.EMarks[startLine]

	if state.SCount[startLine]-state.BlkIndent >= codeIndent {
		return false
	}

	if pos+minFenceLength > limit {
		return false
	}

	marker := state.Src[pos]
	if marker != '~' && marker != '`' {
		return false
	}

	mem := pos
	pos = state.SkipChars(pos, marker)
	length := pos - mem
	if length < minFenceLength {
		return false
	}

	markup := state.Src[mem:pos]
	params := state.Src[pos:limit]

	if marker == '`' && strings.IndexByte(params, marker) >= 0 {
		return false
	}

	if silent {
		return true
	}

	nextLine := startLine
	haveEndMarker := false

	for {
		nextLine++
		if nextLine >= endLine {
			// Unclosed fences run to the end of the block.
			break
		}

		pos = state.BMarks[nextLine] + state.TShift[nextLine]
		mem = pos
		limit = state.EMarks[nextLine]

		if pos < limit && state.SCount[nextLine] < state.BlkIndent {
			// A non-empty line with less indent ends the enclosing container.
			break
		}

		if pos >= len(state.Src) || state.Src[pos] != marker {
			continue
		}

		if state.SCount[nextLine]-state.BlkIndent >= codeIndent {
			continue
		}

		pos = state.SkipChars(pos, marker)

		// The closing fence must be at least as long as the opening one.
		if pos-mem < length {
			continue
		}

		pos = state.SkipSpaces(pos)
		if pos < limit {
			continue
		}

		haveEndMarker = true
		break
	}

	// Leading spaces of the opening fence are removed from every content line.
	indent := state.SCount[startLine]

	state.Line = nextLine
	if haveEndMarker {
		state.Line++
	}

	handle := state.Push(mdast.TypeFence, "code", mdast.NestingSelf)
	tok := state.Token(handle)
	tok.Info = params
	tok.Content = state.GetLines(startLine+1, nextLine, indent, true)
	tok.Markup = markup
	tok.SetMap(startLine, state.Line)

	if detect := state.Parser.detectLanguage; detect != nil && util.IsBlank([]byte(params)) {
		tok.Meta = FenceMeta{DetectedLanguage: detect([]byte(tok.Content))}
	}

	return true
}
