package block

import (
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// Env carries caller data through a parse; rules may read and write it.
type Env map[string]any

// ParentRoot is the ParentType of the top-level tokenizer call.
const ParentRoot = "root"

// State is the shared, mutable parse state of one block tokenization.
//
// Line tables are indexed by 0-based line number and carry one extra fake
// line at LineMax so that lookahead never needs a bounds check:
//   - BMarks: byte offset where the line begins
//   - EMarks: byte offset of the line's newline (or end of input)
//   - TShift: bytes of leading whitespace (tabs count as one byte)
//   - SCount: columns of leading whitespace (tabs expanded to stops of 4)
//   - BSCount: column offset of the line start inside an enclosing container
//
// Rules may rewrite TShift and SCount of a line while they delegate to a
// nested Tokenize call, but must put the original values back afterwards
// (see Save and Restore).
type State struct {
	Src    string
	Parser *Parser
	Env    Env
	Tokens *mdast.Stream

	BMarks  []int
	EMarks  []int
	TShift  []int
	SCount  []int
	BSCount []int

	// BlkIndent is the column a line must reach to belong to the current block.
	BlkIndent int

	// Line is the cursor: the first line not yet consumed.
	Line int

	// LineMax is the number of real lines (the fake line's index).
	LineMax int

	// Tight is false when the last block tokenized was preceded by a blank line.
	Tight bool

	// DDIndent is the indent of the enclosing definition list description,
	// or -1 outside of one.
	DDIndent int

	// ListIndent is the indent of the enclosing list item, or -1.
	ListIndent int

	// ParentType names the construct whose content is being tokenized.
	ParentType string

	// Level is the nesting level of the next pushed token.
	Level int
}

// NewState builds the line tables for src.
func NewState(src string, parser *Parser, env Env, tokens *mdast.Stream) *State {
	if tokens == nil {
		tokens = mdast.NewStream()
	}

	state := &State{
		Src:        src,
		Parser:     parser,
		Env:        env,
		Tokens:     tokens,
		DDIndent:   -1,
		ListIndent: -1,
		ParentType: ParentRoot,
	}

	var (
		start       int
		indent      int
		offset      int
		indentFound bool
	)

	for pos := 0; pos < len(src); pos++ {
		ch := src[pos]

		if !indentFound {
			if IsSpace(ch) {
				indent++
				if ch == '\t' {
					offset += util.TabWidth(offset)
				} else {
					offset++
				}
				continue
			}
			indentFound = true
		}

		if ch == '\n' || pos == len(src)-1 {
			if ch != '\n' {
				pos++
			}
			state.pushLine(start, pos, indent, offset)

			indentFound = false
			indent = 0
			offset = 0
			start = pos + 1
		}
	}

	// Fake entry to simplify bounds checks.
	state.pushLine(len(src), len(src), 0, 0)
	state.LineMax = len(state.BMarks) - 1

	return state
}

func (s *State) pushLine(begin, end, shift, count int) {
	s.BMarks = append(s.BMarks, begin)
	s.EMarks = append(s.EMarks, end)
	s.TShift = append(s.TShift, shift)
	s.SCount = append(s.SCount, count)
	s.BSCount = append(s.BSCount, 0)
}

// Push appends a block token at the current level and adjusts the level
// for its nesting.
func (s *State) Push(typ mdast.TokenType, tag string, nesting mdast.Nesting) mdast.Handle {
	if nesting < 0 {
		s.Level--
	}

	handle := s.Tokens.Push(mdast.Token{
		Type:    typ,
		Tag:     tag,
		Nesting: nesting,
		Level:   s.Level,
		Block:   true,
	})

	if nesting > 0 {
		s.Level++
	}

	return handle
}

// Token returns the token behind h. The pointer is valid until the next Push.
func (s *State) Token(h mdast.Handle) *mdast.Token {
	return s.Tokens.At(h)
}

// IsEmpty reports whether line holds nothing but whitespace.
func (s *State) IsEmpty(line int) bool {
	return s.BMarks[line]+s.TShift[line] >= s.EMarks[line]
}

// SkipEmptyLines returns the first non-empty line at or after from.
func (s *State) SkipEmptyLines(from int) int {
	for ; from < s.LineMax; from++ {
		if s.BMarks[from]+s.TShift[from] < s.EMarks[from] {
			break
		}
	}
	return from
}

// SkipSpaces returns the first offset at or after pos that is not a space or tab.
func (s *State) SkipSpaces(pos int) int {
	for ; pos < len(s.Src); pos++ {
		if !IsSpace(s.Src[pos]) {
			break
		}
	}
	return pos
}

// SkipSpacesBack walks back from pos over spaces, stopping at limit.
func (s *State) SkipSpacesBack(pos, limit int) int {
	if pos <= limit {
		return pos
	}
	for pos > limit {
		pos--
		if !IsSpace(s.Src[pos]) {
			return pos + 1
		}
	}
	return pos
}

// SkipChars returns the first offset at or after pos that is not ch.
func (s *State) SkipChars(pos int, ch byte) int {
	for ; pos < len(s.Src); pos++ {
		if s.Src[pos] != ch {
			break
		}
	}
	return pos
}

// SkipCharsBack walks back from pos over ch, stopping at limit.
func (s *State) SkipCharsBack(pos int, ch byte, limit int) int {
	if pos <= limit {
		return pos
	}
	for pos > limit {
		pos--
		if s.Src[pos] != ch {
			return pos + 1
		}
	}
	return pos
}

// GetLines returns the raw text of lines [begin, end), removing up to indent
// columns of leading whitespace from each. Tabs that straddle the cut are
// partially expanded into spaces.
func (s *State) GetLines(begin, end, indent int, keepLastLF bool) string {
	if begin >= end {
		return ""
	}

	queue := make([]string, 0, end-begin)

	for line := begin; line < end; line++ {
		lineIndent := 0
		lineStart := s.BMarks[line]
		first := lineStart

		last := s.EMarks[line]
		if line+1 < end || keepLastLF {
			last = min(s.EMarks[line]+1, len(s.Src))
		}

		for first < last && lineIndent < indent {
			ch := s.Src[first]

			if IsSpace(ch) {
				if ch == '\t' {
					lineIndent += util.TabWidth(lineIndent + s.BSCount[line])
				} else {
					lineIndent++
				}
			} else if first-lineStart < s.TShift[line] {
				// Patched TShift masks marker characters as indentation.
				lineIndent++
			} else {
				break
			}

			first++
		}

		if lineIndent > indent {
			queue = append(queue, spaces(lineIndent-indent)+s.Src[first:last])
		} else {
			queue = append(queue, s.Src[first:last])
		}
	}

	return joinStrings(queue)
}

// Snapshot records the state fields a container rule mutates around a
// nested Tokenize call, including the indentation of the line it rewrites.
type Snapshot struct {
	line       int
	tShift     int
	sCount     int
	blkIndent  int
	ddIndent   int
	lineMax    int
	tight      bool
	parentType string
}

// Save captures the fields Restore puts back. line is the line whose
// TShift/SCount the caller is about to rewrite.
func (s *State) Save(line int) Snapshot {
	return Snapshot{
		line:       line,
		tShift:     s.TShift[line],
		sCount:     s.SCount[line],
		blkIndent:  s.BlkIndent,
		ddIndent:   s.DDIndent,
		lineMax:    s.LineMax,
		tight:      s.Tight,
		parentType: s.ParentType,
	}
}

// Restore puts back every field recorded by Save. The line cursor is left
// alone: advancing it is how a nested call reports what it consumed.
func (s *State) Restore(snap Snapshot) {
	s.TShift[snap.line] = snap.tShift
	s.SCount[snap.line] = snap.sCount
	s.BlkIndent = snap.blkIndent
	s.DDIndent = snap.ddIndent
	s.LineMax = snap.lineMax
	s.Tight = snap.tight
	s.ParentType = snap.parentType
}
