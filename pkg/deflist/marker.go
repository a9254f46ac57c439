package deflist

import "github.com/yaklabco/gomdtok/pkg/block"

// Description markers.
const (
	MarkerColon = ':'
	MarkerTilde = '~'
)

// SkipMarker checks whether line starts with a description marker followed
// by at least one space or tab. It returns the offset right after the
// marker, or -1. Whitespace after the marker is left to the caller, which
// needs its column width rather than its byte length.
func SkipMarker(state *block.State, line int) int {
	start := state.BMarks[line] + state.TShift[line]
	limit := state.EMarks[line]

	if start >= limit {
		return -1
	}

	marker := state.Src[start]
	start++
	if marker != MarkerColon && marker != MarkerTilde {
		return -1
	}

	if state.SkipSpaces(start) == start {
		return -1
	}

	return start
}
