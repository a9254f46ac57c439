package deflist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/deflist"
	"github.com/yaklabco/gomdtok/pkg/mdast"
)

func TestMarkTightParagraphs(t *testing.T) {
	t.Parallel()

	state := block.NewState("", nil, block.Env{}, nil)

	push := func(typ mdast.TokenType, nesting mdast.Nesting) mdast.Handle {
		return state.Push(typ, "", nesting)
	}

	list := push(deflist.TypeListOpen, mdast.NestingOpen)
	push(deflist.TypeTermOpen, mdast.NestingOpen)
	push(mdast.TypeInline, mdast.NestingSelf)
	push(deflist.TypeTermClose, mdast.NestingClose)
	push(deflist.TypeDescriptionOpen, mdast.NestingOpen)
	para := push(mdast.TypeParagraphOpen, mdast.NestingOpen)
	push(mdast.TypeInline, mdast.NestingSelf)
	push(mdast.TypeParagraphClose, mdast.NestingClose)

	// A paragraph two levels further down belongs to a nested container.
	push(deflist.TypeListOpen, mdast.NestingOpen)
	push(deflist.TypeDescriptionOpen, mdast.NestingOpen)
	nested := push(mdast.TypeParagraphOpen, mdast.NestingOpen)
	push(mdast.TypeInline, mdast.NestingSelf)
	push(mdast.TypeParagraphClose, mdast.NestingClose)
	push(deflist.TypeDescriptionClose, mdast.NestingClose)
	push(deflist.TypeListClose, mdast.NestingClose)

	push(deflist.TypeDescriptionClose, mdast.NestingClose)
	push(deflist.TypeListClose, mdast.NestingClose)

	assert.NoError(t, mdast.Validate(state.Tokens))
	assert.Zero(t, state.Level)

	deflist.MarkTightParagraphs(state, list)

	hidden := map[mdast.Handle]bool{para: true, para + 2: true}
	for h, tok := range state.Tokens.All() {
		assert.Equal(t, hidden[h], tok.Hidden, "token %d (%s)", h, tok.Type)
	}
	assert.False(t, state.Token(nested).Hidden)
}
