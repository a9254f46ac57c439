package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtok/pkg/block"
)

func TestNewState_LineTables(t *testing.T) {
	t.Parallel()

	state := block.NewState("a\n  b\n\tc\n\n", nil, nil, nil)

	require.Equal(t, 4, state.LineMax)
	assert.Equal(t, []int{0, 2, 6, 9, 10}, state.BMarks)
	assert.Equal(t, []int{1, 5, 8, 9, 10}, state.EMarks)
	assert.Equal(t, []int{0, 2, 1, 0, 0}, state.TShift)
	assert.Equal(t, []int{0, 2, 4, 0, 0}, state.SCount)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, state.BSCount)

	assert.Equal(t, -1, state.DDIndent)
	assert.Equal(t, -1, state.ListIndent)
	assert.Equal(t, block.ParentRoot, state.ParentType)
	assert.NotNil(t, state.Tokens)
}

func TestNewState_TabStops(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		shift  int
		column int
	}{
		{name: "tab", src: "\tx", shift: 1, column: 4},
		{name: "space then tab", src: " \tx", shift: 2, column: 4},
		{name: "three spaces then tab", src: "   \tx", shift: 4, column: 4},
		{name: "four spaces then tab", src: "    \tx", shift: 5, column: 8},
		{name: "two tabs", src: "\t\tx", shift: 2, column: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := block.NewState(tt.src, nil, nil, nil)
			assert.Equal(t, tt.shift, state.TShift[0])
			assert.Equal(t, tt.column, state.SCount[0])
		})
	}
}

func TestState_IsEmptyAndSkipEmptyLines(t *testing.T) {
	t.Parallel()

	state := block.NewState("a\n\n   \nb", nil, nil, nil)

	assert.False(t, state.IsEmpty(0))
	assert.True(t, state.IsEmpty(1))
	assert.True(t, state.IsEmpty(2))
	assert.False(t, state.IsEmpty(3))

	assert.Equal(t, 0, state.SkipEmptyLines(0))
	assert.Equal(t, 3, state.SkipEmptyLines(1))
}

func TestState_Skips(t *testing.T) {
	t.Parallel()

	state := block.NewState("##  x  ##", nil, nil, nil)

	assert.Equal(t, 2, state.SkipChars(0, '#'))
	assert.Equal(t, 4, state.SkipSpaces(2))
	assert.Equal(t, 7, state.SkipCharsBack(9, '#', 4))
	assert.Equal(t, 5, state.SkipSpacesBack(7, 4))
	assert.Equal(t, 3, state.SkipSpacesBack(3, 3))
}

func TestState_GetLines(t *testing.T) {
	t.Parallel()

	state := block.NewState("  a\n    b\n\tc\n", nil, nil, nil)

	assert.Equal(t, "a\n  b", state.GetLines(0, 2, 2, false))
	assert.Equal(t, "a\n  b\n", state.GetLines(0, 2, 2, true))
	assert.Equal(t, "  c", state.GetLines(2, 3, 2, false))
	assert.Equal(t, "  a", state.GetLines(0, 1, 0, false))
	assert.Empty(t, state.GetLines(1, 1, 0, false))
}

func TestState_GetLinesMasksRewrittenShift(t *testing.T) {
	t.Parallel()

	state := block.NewState(": body", nil, nil, nil)

	// A container that consumed ": " reports it as indentation.
	state.TShift[0] = 2
	state.SCount[0] = 2

	assert.Equal(t, "body", state.GetLines(0, 1, 2, false))
}

func TestState_SaveRestore(t *testing.T) {
	t.Parallel()

	state := block.NewState("a\nb", nil, nil, nil)
	state.Tight = true

	snap := state.Save(1)

	state.BlkIndent = 4
	state.DDIndent = 4
	state.TShift[1] = 3
	state.SCount[1] = 7
	state.LineMax = 1
	state.Tight = false
	state.ParentType = "other"
	state.Line = 2

	state.Restore(snap)

	assert.Zero(t, state.BlkIndent)
	assert.Equal(t, -1, state.DDIndent)
	assert.Zero(t, state.TShift[1])
	assert.Zero(t, state.SCount[1])
	assert.Equal(t, 2, state.LineMax)
	assert.True(t, state.Tight)
	assert.Equal(t, block.ParentRoot, state.ParentType)
	assert.Equal(t, 2, state.Line, "the cursor is not restored")
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb\nc", block.Normalize("a\r\nb\rc"))
	assert.Equal(t, "a�b", block.Normalize("a\x00b"))
}

func TestIsSpace(t *testing.T) {
	t.Parallel()

	assert.True(t, block.IsSpace(' '))
	assert.True(t, block.IsSpace('\t'))
	assert.False(t, block.IsSpace('\n'))
	assert.False(t, block.IsSpace('\v'))
	assert.False(t, block.IsSpace('a'))
}
