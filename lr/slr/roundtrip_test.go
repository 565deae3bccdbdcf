package slr

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"

	"github.com/vxnquish/Compiler-SLR1/lr"
	"github.com/vxnquish/Compiler-SLR1/lr/ptree"
	sc "github.com/vxnquish/Compiler-SLR1/lr/scanner"
	"github.com/vxnquish/Compiler-SLR1/lr/scanner/lexmach"
)

// A tiny S-expression language:
//
//	Sexp ::= atom | ( Seq )
//	Seq  ::= Seq Sexp | ε
func sexpTables(t *testing.T) (*lr.Grammar, *lr.TableGenerator) {
	b := lr.NewGrammarBuilder("S-Expressions")
	b.LHS("Sexp").T("atom", sc.Ident).End()
	b.LHS("Sexp").T("(", '(').N("Seq").T(")", ')').End()
	b.LHS("Seq").N("Seq").N("Sexp").End()
	b.LHS("Seq").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar could not be created: %v", err)
	}
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatalf("table creation failed: %v", err)
	}
	return g, lrgen
}

func sexpScanner(t *testing.T) *lexmach.LMAdapter {
	literals := []string{"(", ")"}
	tokenIds := map[string]int{"(": '(', ")": ')', "ATOM": sc.Ident}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[a-zA-Z][a-zA-Z0-9]*`), lexmach.MakeToken("ATOM", tokenIds["ATOM"]))
		lexer.Add([]byte(`\+`), lexmach.MakeToken("ATOM", tokenIds["ATOM"]))
		lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	}
	LM, err := lexmach.NewLMAdapter(init, literals, nil, tokenIds)
	if err != nil {
		t.Fatalf("scanner could not be created: %v", err)
	}
	return LM
}

// TestLeavesRoundTrip checks that the leaves of a parse tree reproduce the
// input token stream: re-parsing the joined leaf lexemes must yield a tree
// equal to the first one.
func TestLeavesRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, lrgen := sexpTables(t)
	LM := sexpScanner(t)
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	parse := func(input string) *ptree.Node {
		tokenizer, err := LM.Scanner(input)
		if err != nil {
			t.Fatalf("scanner could not be created: %v", err)
		}
		accepted, err := p.Parse(lrgen.CFSM().S0, tokenizer)
		if err != nil || !accepted {
			t.Fatalf("parser did not accept input %q: %v", input, err)
		}
		return p.Tree()
	}
	inputs := []string{
		"a",
		"( )",
		"(a (b c) d)",
		"((x) y)",
		"(lambda (x) (add x one))",
	}
	for _, input := range inputs {
		tree := parse(input)
		leaves := tree.Leaves()
		lexemes := make([]string, len(leaves))
		for i, token := range leaves {
			lexemes[i] = token.Lexeme()
		}
		rejoined := strings.Join(lexemes, " ")
		if !tree.Equal(parse(rejoined)) {
			t.Errorf("re-parsing %q (from input %q) produced a different tree", rejoined, input)
		}
	}
}

// TestRenderRoundTrip feeds the paren rendering of a parse tree to a second
// grammar which covers that textual form. The S-expression parse of the
// rendering must encode the original tree: folding it back into paren form
// reproduces the rendering.
func TestRenderRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	gE, lrgenE := exprTables(t)
	pE := NewParser(gE, lrgenE.GotoTable(), lrgenE.ActionTable())
	tokenizer := sc.GoTokenizer("test", strings.NewReader("a+b"))
	accepted, err := pE.Parse(lrgenE.CFSM().S0, tokenizer)
	if err != nil || !accepted {
		t.Fatalf("parser did not accept input 'a+b': %v", err)
	}
	rendering := (ptree.SExprRenderer{}).Render(pE.Tree())
	//
	g, lrgen := sexpTables(t)
	LM := sexpScanner(t)
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	sexpTokens, err := LM.Scanner(rendering)
	if err != nil {
		t.Fatalf("scanner could not be created: %v", err)
	}
	accepted, err = p.Parse(lrgen.CFSM().S0, sexpTokens)
	if err != nil || !accepted {
		t.Fatalf("parser did not accept the rendering %q: %v", rendering, err)
	}
	sexpTree := p.Tree()
	leaves := sexpTree.Leaves()
	lexemes := make([]string, len(leaves))
	for i, token := range leaves {
		lexemes[i] = token.Lexeme()
	}
	if rejoined := strings.Join(lexemes, " "); rejoined != "( E ( E ( T a ) ) + ( T b ) )" {
		t.Errorf("leaves of the S-expression tree should spell out the rendering, spell %q", rejoined)
	}
	if folded := foldSexp(t, sexpTree); folded != rendering {
		t.Errorf("folded S-expression should reproduce the rendering %q, is %q", rendering, folded)
	}
}

// foldSexp folds the parse tree of a paren rendering back into paren form.
// The first atom of a parenthesized group names the node, the remaining
// elements are its children.
func foldSexp(t *testing.T, n *ptree.Node) string {
	if n.IsLeaf() {
		return n.Token.Lexeme()
	}
	if n.Sym.Name != "Sexp" {
		t.Fatalf("unexpected node %v in S-expression tree", n.Sym)
	}
	if len(n.Children) == 1 { // Sexp ::= atom
		return foldSexp(t, n.Children[0])
	}
	elems := flattenSeq(t, n.Children[1]) // Sexp ::= ( Seq )
	parts := make([]string, len(elems))
	for i, elem := range elems {
		parts[i] = foldSexp(t, elem)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// flattenSeq unrolls the left-recursive Seq spine into its element nodes.
func flattenSeq(t *testing.T, n *ptree.Node) []*ptree.Node {
	if n.Sym.Name != "Seq" {
		t.Fatalf("unexpected node %v in S-expression tree", n.Sym)
	}
	if len(n.Children) == 0 { // Seq ::= epsilon
		return nil
	}
	return append(flattenSeq(t, n.Children[0]), n.Children[1])
}

func TestSexpTrees(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, lrgen := sexpTables(t)
	LM := sexpScanner(t)
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	inputs := []struct {
		input string
		sexpr string
	}{
		{"a", "(Sexp a)"},
		{"()", "(Sexp ( (Seq) ))"}, // empty sequence reduced from epsilon
		{"(a)", "(Sexp ( (Seq (Seq) (Sexp a)) ))"},
	}
	for _, inp := range inputs {
		tokenizer, err := LM.Scanner(inp.input)
		if err != nil {
			t.Fatalf("scanner could not be created: %v", err)
		}
		accepted, err := p.Parse(lrgen.CFSM().S0, tokenizer)
		if err != nil || !accepted {
			t.Errorf("parser did not accept input %q: %v", inp.input, err)
			continue
		}
		if sexpr := (ptree.SExprRenderer{}).Render(p.Tree()); sexpr != inp.sexpr {
			t.Errorf("input %q: expected tree %s, have %s", inp.input, inp.sexpr, sexpr)
		}
	}
}
