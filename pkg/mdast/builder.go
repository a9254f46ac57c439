package mdast

import (
	"errors"
	"fmt"
)

// ErrUnbalanced is returned when openers and closers in a stream do not pair up.
var ErrUnbalanced = errors.New("unbalanced token stream")

// newNode creates a detached node for the token at h.
func newNode(stream *Stream, typ string, open Handle) *Node {
	return &Node{
		Type:   typ,
		Open:   open,
		Close:  NoHandle,
		Stream: stream,
	}
}

// appendChild appends a child node to a parent.
func appendChild(parent, child *Node) {
	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// Build turns a stream into a node tree rooted at a document node.
// It fails with ErrUnbalanced if a closer does not match the innermost
// opener, or if openers are left unclosed.
func Build(stream *Stream) (*Node, error) {
	root := newNode(stream, NodeDocument, NoHandle)
	stack := []*Node{root}

	for handle, tok := range stream.All() {
		top := stack[len(stack)-1]

		switch tok.Nesting {
		case NestingOpen:
			node := newNode(stream, tok.Type.Base(), handle)
			appendChild(top, node)
			stack = append(stack, node)

		case NestingClose:
			if top == root {
				return nil, fmt.Errorf("%w: %s at %d has no opener", ErrUnbalanced, tok.Type, handle)
			}
			if top.Type != tok.Type.Base() {
				return nil, fmt.Errorf("%w: %s at %d closes %s", ErrUnbalanced, tok.Type, handle, top.Type)
			}
			top.Close = handle
			stack = stack[:len(stack)-1]

		default:
			appendChild(top, newNode(stream, string(tok.Type), handle))
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1]
		return nil, fmt.Errorf("%w: %s at %d is never closed", ErrUnbalanced, open.Type, open.Open)
	}

	return root, nil
}

// Validate checks that every opener has a matching closer and that token
// levels agree with the nesting they sit at.
func Validate(stream *Stream) error {
	_, err := BuildValid(stream)
	return err
}

// BuildValid is Build preceded by the level checks of Validate.
func BuildValid(stream *Stream) (*Node, error) {
	level := 0
	for handle, tok := range stream.All() {
		if tok.Nesting == NestingClose {
			level--
		}
		if level < 0 {
			return nil, fmt.Errorf("%w: %s at %d closes below level 0", ErrUnbalanced, tok.Type, handle)
		}
		if tok.Level != level {
			return nil, fmt.Errorf("%w: %s at %d has level %d, want %d", ErrUnbalanced, tok.Type, handle, tok.Level, level)
		}
		if tok.Nesting == NestingOpen {
			level++
		}
	}

	return Build(stream)
}
