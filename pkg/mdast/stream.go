// Package mdast provides the token model shared by the block tokenizer,
// its extensions and the reporters:
//   - Token: one element of the flat token stream
//   - Stream: an arena of tokens addressed by stable handles
//   - Node: a tree view over a balanced stream
package mdast

import "iter"

// Handle addresses a token in a Stream. Handles stay valid for the lifetime
// of the stream; pointers returned by At do not survive a later Push.
type Handle int

// NoHandle is the zero-value sentinel for "no token".
const NoHandle Handle = -1

// Stream is an append-only arena of tokens.
type Stream struct {
	tokens []Token
}

// NewStream creates an empty stream.
func NewStream() *Stream {
	return &Stream{}
}

// Push appends a token and returns its handle.
func (s *Stream) Push(tok Token) Handle {
	s.tokens = append(s.tokens, tok)
	return Handle(len(s.tokens) - 1)
}

// At returns the token for h, or nil if h is out of range.
// The pointer is only valid until the next Push.
func (s *Stream) At(h Handle) *Token {
	if h < 0 || int(h) >= len(s.tokens) {
		return nil
	}
	return &s.tokens[h]
}

// Len returns the number of tokens in the stream.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// Next returns the handle the next Push will return.
func (s *Stream) Next() Handle {
	return Handle(len(s.tokens))
}

// Last returns the handle of the most recently pushed token.
func (s *Stream) Last() Handle {
	return Handle(len(s.tokens) - 1)
}

// Tokens returns the underlying tokens. Callers must not append to it.
func (s *Stream) Tokens() []Token {
	return s.tokens
}

// Slice returns the tokens in [from, to).
func (s *Stream) Slice(from, to Handle) []Token {
	from = max(from, 0)
	to = min(to, Handle(len(s.tokens)))
	if from >= to {
		return nil
	}
	return s.tokens[from:to]
}

// All iterates over every token with its handle.
func (s *Stream) All() iter.Seq2[Handle, *Token] {
	return func(yield func(Handle, *Token) bool) {
		for i := range s.tokens {
			if !yield(Handle(i), &s.tokens[i]) {
				return
			}
		}
	}
}

// Visible returns a copy of the stream without hidden tokens.
func (s *Stream) Visible() []Token {
	out := make([]Token, 0, len(s.tokens))
	for _, tok := range s.tokens {
		if !tok.Hidden {
			out = append(out, tok)
		}
	}
	return out
}

// Types returns the type of every token, in order.
func (s *Stream) Types() []TokenType {
	types := make([]TokenType, len(s.tokens))
	for i, tok := range s.tokens {
		types[i] = tok.Type
	}
	return types
}

// Count returns how many tokens have the given type.
func (s *Stream) Count(typ TokenType) int {
	n := 0
	for _, tok := range s.tokens {
		if tok.Type == typ {
			n++
		}
	}
	return n
}
