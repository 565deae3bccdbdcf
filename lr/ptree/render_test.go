package ptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSExpr(t *testing.T) {
	assert := assert.New(t)
	cases := []struct {
		name string
		tree *Node
		want string
	}{
		{"single leaf", leaf("a", 0, 1), "a"},
		{"interior with children", sampleTree(), "(E (T a) + (T b))"},
		{"childless interior", &Node{Sym: symT}, "(T)"},
		{"nested childless interior",
			(&Node{Sym: symE}).AddChild(&Node{Sym: symT}).AddChild(leaf("a", 0, 1)),
			"(E (T) a)"},
	}
	for _, c := range cases {
		assert.Equal(c.want, SExprRenderer{}.Render(c.tree), c.name)
	}
}

func TestRenderIndent(t *testing.T) {
	assert := assert.New(t)
	tree := sampleTree()
	assert.Equal("E\n  T\n    a\n  +\n  T\n    b",
		IndentRenderer{}.Render(tree), "default indentation should be 2 spaces per level")
	assert.Equal("E\n    T\n        a\n    +\n    T\n        b",
		IndentRenderer{Width: 4}.Render(tree))
	assert.Equal(IndentRenderer{Width: DefaultIndent}.Render(tree), IndentRenderer{}.Render(tree))
}

func TestRenderIndentSingleNode(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("T", IndentRenderer{}.Render(&Node{Sym: symT}),
		"a single node should render without trailing newline")
}
