package block

import (
	"strings"

	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// HR recognizes a thematic break: three or more '*', '-' or '_' with
// optional spaces between them.
func HR(state *State, startLine, _ int, silent bool) bool {
	if state.SCount[startLine]-state.BlkIndent >= codeIndent {
		return false
	}

	pos := state.BMarks[startLine] + state.TShift[startLine]
	limit := state.EMarks[startLine]

	marker := state.Src[pos]
	pos++
	if marker != '*' && marker != '-' && marker != '_' {
		return false
	}

	count := 1
	for pos < limit {
		ch := state.Src[pos]
		pos++
		if ch != marker && !IsSpace(ch) {
			return false
		}
		if ch == marker {
			count++
		}
	}

	if count < 3 {
		return false
	}

	if silent {
		return true
	}

	state.Line = startLine + 1

	handle := state.Push(mdast.TypeHR, "hr", mdast.NestingSelf)
	tok := state.Token(handle)
	tok.SetMap(startLine, state.Line)
	tok.Markup = strings.Repeat(string(marker), count)

	return true
}
