package syntax

import "github.com/vippsas/icumark/source"

// Element is either a *Token or a *Node; it is the unit children are stored
// as, matching original_source's SyntaxElement (intl_markdown_syntax crate)
// expressed as a Go interface instead of a Rust enum.
type Element interface {
	Kind() Kind
	Span() source.Span
	FullText() string
	isElement()
}

// Node is an interior CST node: a kind tag plus an ordered list of children
// that are each either tokens or further nodes. Nodes are built bottom-up by
// the tree builder (tree.go) and are immutable once constructed; there is no
// supported mutation API after Finish.
type Node struct {
	kind     Kind
	span     source.Span
	children []Element
}

// NewNode constructs a node directly from a completed child list. Used by
// the tree builder's bottom-up assembly pass.
func NewNode(kind Kind, children []Element) *Node {
	n := &Node{kind: kind, children: children}
	if len(children) > 0 {
		n.span = children[0].Span().Cover(children[len(children)-1].Span())
	}
	return n
}

func (n *Node) Kind() Kind            { return n.kind }
func (n *Node) Span() source.Span     { return n.span }
func (n *Node) Children() []Element   { return n.children }

// FullText concatenates the full text (including trivia) of every child in
// order; this is the function spec.md §3.2's lossless invariant is checked
// against at the DOCUMENT root.
func (n *Node) FullText() string {
	var b []byte
	for _, c := range n.children {
		b = append(b, c.FullText()...)
	}
	return string(b)
}

func (n *Node) isElement() {}

// Tokens returns only the token children of n, skipping subnodes. Useful
// for leaf-oriented passes (e.g. a validator that only cares about raw
// token spans).
func (n *Node) Tokens() []*Token {
	var out []*Token
	for _, c := range n.children {
		if t, ok := c.(*Token); ok {
			out = append(out, t)
		}
	}
	return out
}

// NodeChildren returns only the node children of n, skipping tokens.
func (n *Node) NodeChildren() []*Node {
	var out []*Node
	for _, c := range n.children {
		if sub, ok := c.(*Node); ok {
			out = append(out, sub)
		}
	}
	return out
}

// FirstChildOfKind returns the first child node with the given kind, or nil.
func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for _, c := range n.children {
		if sub, ok := c.(*Node); ok && sub.kind == kind {
			return sub
		}
	}
	return nil
}
