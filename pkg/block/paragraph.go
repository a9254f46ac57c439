package block

import "github.com/yaklabco/gomdtok/pkg/mdast"

// Paragraph consumes lines up to the next blank line or the next line some
// rule of the "paragraph" chain can start at. It always matches.
func Paragraph(state *State, startLine, endLine int, _ bool) bool {
	oldParentType := state.ParentType
	state.ParentType = RuleParagraph

	nextLine := startLine + 1
	for ; nextLine < endLine && !state.IsEmpty(nextLine); nextLine++ {
		// Would be an indented code block, but a paragraph continues lazily.
		if state.SCount[nextLine]-state.BlkIndent > 3 {
			continue
		}

		// Lines already claimed by an enclosing blockquote.
		if state.SCount[nextLine] < 0 {
			continue
		}

		if terminates(state, RuleParagraph, nextLine, endLine) {
			break
		}
	}

	content := trimSpace(state.GetLines(startLine, nextLine, state.BlkIndent, false))

	state.Line = nextLine

	open := state.Push(mdast.TypeParagraphOpen, "p", mdast.NestingOpen)
	state.Token(open).SetMap(startLine, state.Line)

	inline := state.Push(mdast.TypeInline, "", mdast.NestingSelf)
	tok := state.Token(inline)
	tok.Content = content
	tok.SetMap(startLine, state.Line)
	tok.Children = []mdast.Token{}

	state.Push(mdast.TypeParagraphClose, "p", mdast.NestingClose)

	state.ParentType = oldParentType
	return true
}
