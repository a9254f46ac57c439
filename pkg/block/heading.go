package block

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// maxHeadingLevel is the deepest ATX heading.
const maxHeadingLevel = 6

// Heading recognizes an ATX heading ("# Title", "## Title ##").
func Heading(state *State, startLine, _ int, silent bool) bool {
	pos := state.BMarks[startLine] + state.TShift[startLine]
	limit := state.EMarks[startLine]

	if state.SCount[startLine]-state.BlkIndent >= codeIndent {
		return false
	}

	if pos >= limit || state.Src[pos] != '#' {
		return false
	}

	level := 1
	pos++
	for pos < limit && state.Src[pos] == '#' && level <= maxHeadingLevel {
		level++
		pos++
	}

	if level > maxHeadingLevel || (pos < limit && !IsSpace(state.Src[pos])) {
		return false
	}

	if silent {
		return true
	}

	// Cut a closing sequence like '    ###  ' from the end of the line.
	limit = state.SkipSpacesBack(limit, pos)
	tmp := state.SkipCharsBack(limit, '#', pos)
	if tmp > pos && IsSpace(state.Src[tmp-1]) {
		limit = tmp
	}

	state.Line = startLine + 1

	tag := "h" + strconv.Itoa(level)
	markup := strings.Repeat("#", level)

	open := state.Push(mdast.TypeHeadingOpen, tag, mdast.NestingOpen)
	tok := state.Token(open)
	tok.Markup = markup
	tok.SetMap(startLine, state.Line)

	inline := state.Push(mdast.TypeInline, "", mdast.NestingSelf)
	tok = state.Token(inline)
	tok.Content = trimSpace(state.Src[pos:max(pos, limit)])
	tok.SetMap(startLine, state.Line)
	tok.Children = []mdast.Token{}

	closeTok := state.Token(state.Push(mdast.TypeHeadingClose, tag, mdast.NestingClose))
	closeTok.Markup = markup

	return true
}
