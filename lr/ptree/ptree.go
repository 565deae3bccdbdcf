/*
Package ptree implements parse trees and textual renderings of parse trees.

A parse tree mirrors a derivation: interior nodes correspond to
non-terminals, one child per symbol of the production that was reduced,
and leaves hold the input tokens in input order. Reductions of
epsilon-productions yield interior nodes without children.

Trees are usually not constructed directly, but by the parse-tree listener
of an SLR(1) parser (see package lr/slr).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ptree

import (
	slr1 "github.com/vxnquish/Compiler-SLR1"
	"github.com/vxnquish/Compiler-SLR1/lr"
)

// Node is a node of a parse tree. A node is a leaf iff Token is non-nil.
type Node struct {
	Sym      *lr.Symbol // grammar symbol this node derives
	Token    slr1.Token // input token, nil for interior nodes
	Children []*Node    // subtrees, nil for leaves
	Extent   slr1.Span  // input positions covered by this node
}

// Leaf creates a leaf node for an input token.
func Leaf(sym *lr.Symbol, token slr1.Token) *Node {
	return &Node{
		Sym:    sym,
		Token:  token,
		Extent: token.Span(),
	}
}

// IsLeaf returns true for nodes holding an input token.
func (n *Node) IsLeaf() bool {
	return n.Token != nil
}

// Label returns the text a rendering shows for this node: the lexeme for
// leaves, the non-terminal's name otherwise.
func (n *Node) Label() string {
	if n.IsLeaf() {
		return n.Token.Lexeme()
	}
	if n.Sym == nil {
		return "?"
	}
	return n.Sym.Name
}

func (n *Node) String() string {
	return n.Label()
}

// AddChild appends a subtree and extends the node's extent by the subtree's.
func (n *Node) AddChild(ch *Node) *Node {
	if ch == nil {
		return n
	}
	n.Children = append(n.Children, ch)
	if n.Extent.IsNull() {
		n.Extent = ch.Extent
	} else {
		n.Extent = n.Extent.Extend(ch.Extent)
	}
	return n
}

// Walk visits the tree in depth-first pre-order, passing each node's
// nesting depth, with 0 for the root.
func (n *Node) Walk(visit func(node *Node, depth int)) {
	n.walk(visit, 0)
}

func (n *Node) walk(visit func(node *Node, depth int), depth int) {
	visit(n, depth)
	for _, ch := range n.Children {
		ch.walk(visit, depth+1)
	}
}

// Leaves returns the tokens at the leaves of the tree, in input order.
func (n *Node) Leaves() []slr1.Token {
	var toks []slr1.Token
	n.Walk(func(node *Node, depth int) {
		if node.IsLeaf() {
			toks = append(toks, node.Token)
		}
	})
	return toks
}

// TokenAt returns the token of the leaf whose span covers the given byte
// position, nil if no leaf covers it (epsilon nodes cover nothing).
func (n *Node) TokenAt(pos uint64) slr1.Token {
	if n.IsLeaf() {
		if span := n.Token.Span(); span.From() <= pos && pos < span.To() {
			return n.Token
		}
		return nil
	}
	for _, ch := range n.Children {
		if token := ch.TokenAt(pos); token != nil {
			return token
		}
	}
	return nil
}

// TokenRetriever wraps TokenAt for clients which hand token lookup around
// as a function value.
func (n *Node) TokenRetriever() slr1.TokenRetriever {
	return func(pos uint64) slr1.Token {
		return n.TokenAt(pos)
	}
}

// Equal compares two trees structurally: same shape, same symbol names, and
// for leaves the same token category and lexeme. Extents do not take part in
// the comparison.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.IsLeaf() != other.IsLeaf() {
		return false
	}
	if n.IsLeaf() {
		return n.Token.TokType() == other.Token.TokType() &&
			n.Token.Lexeme() == other.Token.Lexeme()
	}
	if n.Sym.Name != other.Sym.Name {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i, ch := range n.Children {
		if !ch.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
