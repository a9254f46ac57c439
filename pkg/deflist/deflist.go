// Package deflist adds definition lists to the block tokenizer.
//
// A definition list is a one-line term followed by one or more descriptions,
// each introduced by ':' or '~' and at least one space:
//
//	Term
//	: First description
//	: Second description
//
//	Another term
//
//	:   Description with
//
//	    two paragraphs.
//
// Descriptions are block content and may hold anything, including nested
// definition lists. A list is tight unless a description body contains a
// blank line or a blank line separates two descriptions; in a tight list the
// paragraph wrappers directly inside descriptions are hidden.
package deflist

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// Token types emitted for a definition list.
const (
	TypeListOpen         mdast.TokenType = "dl_open"
	TypeListClose        mdast.TokenType = "dl_close"
	TypeTermOpen         mdast.TokenType = "dt_open"
	TypeTermClose        mdast.TokenType = "dt_close"
	TypeDescriptionOpen  mdast.TokenType = "dd_open"
	TypeDescriptionClose mdast.TokenType = "dd_close"
)

// ParentType is the State.ParentType set while a description body is
// tokenized.
const ParentType = "deflist"

// ListMeta is attached to every dl_open token.
type ListMeta struct {
	// Tight reports whether the paragraphs directly inside the list's
	// descriptions were hidden.
	Tight bool
}

// descriptionIndent is added to the marker line's indent to get the block
// indent of the description body.
const descriptionIndent = 2

type scanState int

const (
	stateTerm scanState = iota
	stateDescription
	stateNextTerm
	stateDone
)

// list carries the bookkeeping of one definition list across states.
type list struct {
	state   *block.State
	endLine int

	// dtLine and ddLine are the current term and description lines;
	// contentStart is the offset right after the description's marker.
	dtLine       int
	ddLine       int
	contentStart int

	// next is the first line after the last consumed description.
	next int

	tight        bool
	prevEmptyEnd bool
}

// Rule is the block rule for definition lists.
//
// In silent mode it only answers whether a description line may interrupt
// a paragraph, which is the case inside another description. Otherwise it
// declines without side effects unless startLine is followed (after at most
// one blank line) by a marker line indented to the current block, and once
// it has opened a list it always ends it cleanly where recognition stops.
func Rule(state *block.State, startLine, endLine int, silent bool) bool {
	if silent {
		if state.DDIndent < 0 {
			return false
		}
		return SkipMarker(state, startLine) >= 0
	}

	ddLine, contentStart, ok := findDescription(state, startLine, endLine)
	if !ok {
		return false
	}

	l := &list{
		state:        state,
		endLine:      endLine,
		dtLine:       startLine,
		ddLine:       ddLine,
		contentStart: contentStart,
		tight:        true,
	}

	listHandle := state.Push(TypeListOpen, "dl", mdast.NestingOpen)

	for current := stateTerm; current != stateDone; {
		switch current {
		case stateTerm:
			current = l.term()
		case stateDescription:
			current = l.description()
		case stateNextTerm:
			current = l.nextTerm()
		}
	}

	state.Push(TypeListClose, "dl", mdast.NestingClose)
	listOpen := state.Token(listHandle)
	listOpen.SetMap(startLine, l.next)
	listOpen.Meta = ListMeta{Tight: l.tight}

	state.Line = l.next

	if l.tight {
		MarkTightParagraphs(state, listHandle)
	}

	return true
}

// findDescription looks for the first description of the term on dtLine:
// the next line, or the one after if the next is blank, indented to the
// block and starting with a marker.
func findDescription(state *block.State, dtLine, endLine int) (ddLine, contentStart int, ok bool) {
	ddLine = dtLine + 1
	if ddLine >= endLine {
		return 0, 0, false
	}

	if state.IsEmpty(ddLine) {
		ddLine++
		if ddLine >= endLine {
			return 0, 0, false
		}
	}

	if state.SCount[ddLine] < state.BlkIndent {
		return 0, 0, false
	}

	contentStart = SkipMarker(state, ddLine)
	if contentStart < 0 {
		return 0, 0, false
	}

	return ddLine, contentStart, true
}

// term emits the term on dtLine. Terms are a single line of inline content.
func (l *list) term() scanState {
	state := l.state
	l.prevEmptyEnd = false

	open := state.Push(TypeTermOpen, "dt", mdast.NestingOpen)
	state.Token(open).SetMap(l.dtLine, l.dtLine)

	inline := state.Push(mdast.TypeInline, "", mdast.NestingSelf)
	tok := state.Token(inline)
	tok.SetMap(l.dtLine, l.dtLine)
	tok.Content = strings.TrimSpace(state.GetLines(l.dtLine, l.dtLine+1, state.BlkIndent, false))
	tok.Children = []mdast.Token{}

	state.Push(TypeTermClose, "dt", mdast.NestingClose)

	return stateDescription
}

// description tokenizes the body that starts on ddLine and decides what
// follows it.
func (l *list) description() scanState {
	state := l.state
	ddLine := l.ddLine

	open := state.Push(TypeDescriptionOpen, "dd", mdast.NestingOpen)

	// Column of the body's first character, with tabs expanded.
	pos := l.contentStart
	limit := state.EMarks[ddLine]
	offset := state.SCount[ddLine] + pos - (state.BMarks[ddLine] + state.TShift[ddLine])

	for ; pos < limit; pos++ {
		ch := state.Src[pos]
		if !block.IsSpace(ch) {
			break
		}
		if ch == '\t' {
			offset += util.TabWidth(offset)
		} else {
			offset++
		}
	}

	snap := state.Save(ddLine)

	state.BlkIndent = state.SCount[ddLine] + descriptionIndent
	state.DDIndent = state.BlkIndent
	state.TShift[ddLine] = pos - state.BMarks[ddLine]
	state.SCount[ddLine] = offset
	state.Tight = true
	state.ParentType = ParentType

	// The body owns every following line that is blank or indented at
	// least as far as its first character.
	bodyEnd := ddLine + 1
	for bodyEnd < l.endLine && (state.SCount[bodyEnd] >= state.SCount[ddLine] || state.IsEmpty(bodyEnd)) {
		bodyEnd++
	}

	state.LineMax = bodyEnd
	state.Parser.Tokenize(state, ddLine, bodyEnd)

	// A loose body, or a blank line ending the previous description,
	// makes the whole list loose.
	if !state.Tight || l.prevEmptyEnd {
		l.tight = false
	}
	l.prevEmptyEnd = state.Line-ddLine > 1 && state.IsEmpty(state.Line-1)

	state.Restore(snap)

	state.Push(TypeDescriptionClose, "dd", mdast.NestingClose)

	l.next = state.Line
	state.Token(open).SetMap(ddLine, l.next)

	if l.next >= l.endLine || state.SCount[l.next] < state.BlkIndent {
		return stateDone
	}

	contentStart := SkipMarker(state, l.next)
	if contentStart < 0 {
		return stateNextTerm
	}

	l.ddLine = l.next
	l.contentStart = contentStart
	return stateDescription
}

// nextTerm checks whether the line after the last description starts
// another term of the same list.
func (l *list) nextTerm() scanState {
	state := l.state

	if l.next >= l.endLine {
		return stateDone
	}

	dtLine := l.next
	if state.IsEmpty(dtLine) || state.SCount[dtLine] < state.BlkIndent {
		return stateDone
	}

	ddLine, contentStart, ok := findDescription(state, dtLine, l.endLine)
	if !ok {
		return stateDone
	}

	l.dtLine = dtLine
	l.ddLine = ddLine
	l.contentStart = contentStart
	return stateTerm
}
