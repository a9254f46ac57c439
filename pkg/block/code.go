package block

import "github.com/yaklabco/gomdtok/pkg/mdast"

// codeIndent is the column width that turns a line into indented code.
const codeIndent = 4

// Code recognizes an indented code block.
func Code(state *State, startLine, endLine int, _ bool) bool {
	if state.SCount[startLine]-state.BlkIndent < codeIndent {
		return false
	}

	nextLine := startLine + 1
	last := nextLine

	for nextLine < endLine {
		if state.IsEmpty(nextLine) {
			nextLine++
			continue
		}

		if state.SCount[nextLine]-state.BlkIndent >= codeIndent {
			nextLine++
			last = nextLine
			continue
		}

		break
	}

	state.Line = last

	handle := state.Push(mdast.TypeCodeBlock, "code", mdast.NestingSelf)
	tok := state.Token(handle)
	tok.Content = state.GetLines(startLine, last, codeIndent+state.BlkIndent, false) + "\n"
	tok.SetMap(startLine, state.Line)

	return true
}
