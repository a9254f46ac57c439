package deflist

import (
	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// MarkTightParagraphs hides the paragraph wrappers directly inside the
// descriptions of the list opened at list. It must run right after the list
// is closed, while state.Level is the list's own level.
//
// Only paragraphs at description content depth are touched; the inline
// token between a hidden opener and closer stays visible.
func MarkTightParagraphs(state *block.State, list mdast.Handle) {
	level := state.Level + 2
	last := mdast.Handle(state.Tokens.Len() - 2)

	for h := list + 2; h < last; h++ {
		tok := state.Token(h)
		if tok.Level != level || tok.Type != mdast.TypeParagraphOpen {
			continue
		}

		tok.Hidden = true
		state.Token(h + 2).Hidden = true
		h += 2
	}
}
