package slr

import (
	slr1 "github.com/vxnquish/Compiler-SLR1"

	"github.com/vxnquish/Compiler-SLR1/lr"
	"github.com/vxnquish/Compiler-SLR1/lr/ptree"
)

// --- Parse listener ----------------------------------------------------

// Listener is a type for building semantic values during a parse. The parser
// calls Terminal for every shifted token and Reduce for every rule reduction,
// bottom-up and in input order. The values returned from the callbacks are
// handed back as the rhs arguments of enclosing reductions. The value for the
// start symbol is available as parser.Result() after an accepting parse.
type Listener interface {
	Terminal(tokval int, token slr1.Token, span slr1.Span) interface{}
	Reduce(lhs *lr.Symbol, rule *lr.Rule, rhs []interface{}, span slr1.Span) interface{}
}

// --- Tree building listener --------------------------------------------

// TreeBuilder is a Listener which builds a parse tree during the parse.
// Every parser uses one unless the client replaces it with WithListener.
type TreeBuilder struct {
	grammar *lr.Grammar
}

// NewTreeBuilder creates a TreeBuilder given an input grammar. This should
// be the same grammar as the one used for parsing, but this is not enforced.
//
// The TreeBuilder uses the grammar for access to terminal symbols, which
// label the leaf nodes of the tree.
func NewTreeBuilder(g *lr.Grammar) *TreeBuilder {
	return &TreeBuilder{grammar: g}
}

// Terminal is a listener method, called for every shifted token.
func (tb *TreeBuilder) Terminal(tokval int, token slr1.Token, span slr1.Span) interface{} {
	t := tb.grammar.Terminal(tokval)
	return ptree.Leaf(t, token)
}

// Reduce is a listener method, called for every reduction. An epsilon
// reduction produces an interior node without children.
func (tb *TreeBuilder) Reduce(lhs *lr.Symbol, rule *lr.Rule, rhs []interface{}, span slr1.Span) interface{} {
	node := &ptree.Node{Sym: lhs, Extent: span}
	for _, r := range rhs {
		if child, ok := r.(*ptree.Node); ok {
			node.AddChild(child)
		}
	}
	return node
}

var _ Listener = &TreeBuilder{}
