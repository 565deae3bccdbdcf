package ptree

import "strings"

// Renderer is a type for producing a textual rendering of a parse tree.
type Renderer interface {
	Render(root *Node) string
}

// --- S-expression rendering -------------------------------------------

// SExprRenderer renders a parse tree as a fully parenthesized S-expression:
// a leaf renders as its lexeme, an interior node as the non-terminal's name
// followed by the renderings of its children, space separated and wrapped in
// parentheses. An interior node without children renders as "(Name)".
type SExprRenderer struct{}

func (r SExprRenderer) Render(root *Node) string {
	var b strings.Builder
	r.render(&b, root)
	return b.String()
}

func (r SExprRenderer) render(b *strings.Builder, n *Node) {
	if n.IsLeaf() {
		b.WriteString(n.Token.Lexeme())
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Label())
	for _, ch := range n.Children {
		b.WriteByte(' ')
		r.render(b, ch)
	}
	b.WriteByte(')')
}

// --- Indented rendering -------------------------------------------------

// DefaultIndent is the indentation width IndentRenderer uses when none is
// configured.
const DefaultIndent = 2

// IndentRenderer renders a parse tree with one node per line: a node at
// nesting depth d is indented by d*Width spaces. Interior lines show the
// non-terminal's name, leaf lines the lexeme.
type IndentRenderer struct {
	Width int // spaces per nesting level; <= 0 selects DefaultIndent
}

func (r IndentRenderer) Render(root *Node) string {
	width := r.Width
	if width <= 0 {
		width = DefaultIndent
	}
	var b strings.Builder
	root.Walk(func(n *Node, depth int) {
		for i := 0; i < depth*width; i++ {
			b.WriteByte(' ')
		}
		b.WriteString(n.Label())
		b.WriteByte('\n')
	})
	return strings.TrimSuffix(b.String(), "\n")
}
