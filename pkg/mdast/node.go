package mdast

// NodeDocument is the Type of the root node returned by Build.
const NodeDocument = "document"

// Node is a tree view over a balanced token stream. A paired opener/closer
// becomes one node; self-contained tokens become leaves.
type Node struct {
	// Type is the base token type ("dl", "paragraph", "inline", ...).
	Type string

	// Open is the handle of the opening (or self-contained) token.
	// NoHandle for the document root.
	Open Handle

	// Close is the handle of the closing token, NoHandle for leaves.
	Close Handle

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Stream is a back-reference to the token arena.
	Stream *Stream
}

// Token returns the opening token of the node, nil for the document root.
func (n *Node) Token() *Token {
	if n.Stream == nil {
		return nil
	}
	return n.Stream.At(n.Open)
}

// Hidden reports whether the node's opening token is hidden.
func (n *Node) Hidden() bool {
	tok := n.Token()
	return tok != nil && tok.Hidden
}

// Lines returns the source span of the node, or false if none is recorded.
func (n *Node) Lines() (LineRange, bool) {
	tok := n.Token()
	if tok == nil || tok.Map == nil {
		return LineRange{}, false
	}
	return *tok.Map, true
}

// IsLeaf returns true if this node came from a self-contained token.
func (n *Node) IsLeaf() bool {
	return n.Open != NoHandle && n.Close == NoHandle
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// ChildTypes returns the Type of each direct child, in order.
func (n *Node) ChildTypes() []string {
	var types []string
	for child := n.FirstChild; child != nil; child = child.Next {
		types = append(types, child.Type)
	}
	return types
}
