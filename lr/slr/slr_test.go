package slr

import (
	"errors"
	"strings"
	"testing"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	slr1 "github.com/vxnquish/Compiler-SLR1"

	"github.com/vxnquish/Compiler-SLR1/lr"
	"github.com/vxnquish/Compiler-SLR1/lr/ptree"
	sc "github.com/vxnquish/Compiler-SLR1/lr/scanner"
)

// The canonical expression grammar:
//
//	E ::= E + T
//	E ::= T
//	T ::= id
func exprTables(t *testing.T) (*lr.Grammar, *lr.TableGenerator) {
	b := lr.NewGrammarBuilder("Expressions")
	b.LHS("E").N("E").T("+", '+').N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("id", scanner.Ident).End()
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

func TestParseExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, lrgen := exprTables(t)
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	tokenizer := sc.GoTokenizer("test", strings.NewReader("a+b"))
	accepted, err := p.Parse(lrgen.CFSM().S0, tokenizer)
	if err != nil {
		t.Fatalf("parser returned error: %v", err)
	}
	if !accepted {
		t.Fatalf("parser did not accept input 'a+b'")
	}
	tree := p.Tree()
	if tree == nil {
		t.Fatalf("accepting parse should have produced a parse tree")
	}
	if tree.Sym.Name != "E" {
		t.Errorf("root of the parse tree should be E, is %v", tree.Sym)
	}
	if sexpr := (ptree.SExprRenderer{}).Render(tree); sexpr != "(E (E (T a)) + (T b))" {
		t.Errorf("unexpected parse tree: %s", sexpr)
	}
	leaves := tree.Leaves()
	if len(leaves) != 3 {
		t.Fatalf("parse tree should have 3 leaves, has %d", len(leaves))
	}
	for i, lexeme := range []string{"a", "+", "b"} {
		if leaves[i].Lexeme() != lexeme {
			t.Errorf("leaf #%d should be %q, is %q", i, lexeme, leaves[i].Lexeme())
		}
	}
	if tree.Extent.From() != 0 || tree.Extent.To() != 3 {
		t.Errorf("root should span the whole input, spans %s", tree.Extent)
	}
}

// TestParseWordStream parses a stream of pre-tokenized token words.
func TestParseWordStream(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, lrgen := exprTables(t)
	classify := func(word string) (slr1.TokType, bool) {
		switch word {
		case "id":
			return sc.Ident, true
		case "+":
			return '+', true
		}
		return 0, false
	}
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	tokenizer := sc.NewWordTokenizer(strings.NewReader("id + id"), classify)
	accepted, err := p.Parse(lrgen.CFSM().S0, tokenizer)
	if err != nil {
		t.Fatalf("parser returned error: %v", err)
	}
	if !accepted {
		t.Fatalf("parser did not accept token words 'id + id'")
	}
	if sexpr := (ptree.SExprRenderer{}).Render(p.Tree()); sexpr != "(E (E (T id)) + (T id))" {
		t.Errorf("expected tree (E (E (T id)) + (T id)), have %s", sexpr)
	}
}

func TestParseSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, lrgen := exprTables(t)
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	tokenizer := sc.GoTokenizer("test", strings.NewReader("a+"))
	accepted, err := p.Parse(lrgen.CFSM().S0, tokenizer)
	if accepted || err == nil {
		t.Fatalf("parser should have rejected input 'a+'")
	}
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected a *SyntaxError, have %T", err)
	}
	if syntaxErr.Index != 2 {
		t.Errorf("error should point at token #2, points at #%d", syntaxErr.Index)
	}
	if len(syntaxErr.Expected) != 1 || syntaxErr.Expected[0] != "id" {
		t.Errorf("parser should have expected [id], expected %v", syntaxErr.Expected)
	}
	if !strings.Contains(err.Error(), "unexpected end of input") {
		t.Errorf("error message should report end of input: %v", err)
	}
}

func TestParseUnknownToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, lrgen := exprTables(t)
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	tokenizer := sc.GoTokenizer("test", strings.NewReader("a ? b"))
	accepted, err := p.Parse(lrgen.CFSM().S0, tokenizer)
	if accepted || err == nil {
		t.Fatalf("parser should have rejected input 'a ? b'")
	}
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected a *SyntaxError, have %T", err)
	}
	if syntaxErr.Token.Lexeme() != "?" {
		t.Errorf("offending token should be '?', is %q", syntaxErr.Token.Lexeme())
	}
	if syntaxErr.Index != 1 {
		t.Errorf("error should point at token #1, points at #%d", syntaxErr.Index)
	}
	if !strings.Contains(err.Error(), `unexpected "?"`) {
		t.Errorf("error message should name the offending token: %v", err)
	}
}

func TestParseEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Signed Variables")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()
	b.LHS("Sign").T("+", '+').End()
	b.LHS("Sign").T("-", '-').End()
	b.LHS("Sign").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar could not be created: %v", err)
	}
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatalf("table creation failed: %v", err)
	}
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	inputs := []struct {
		input string
		sexpr string
	}{
		{"a", "(Var (Sign) a)"}, // Sign reduced from epsilon
		{"+a", "(Var (Sign +) a)"},
		{"-a", "(Var (Sign -) a)"},
	}
	for _, inp := range inputs {
		tokenizer := sc.GoTokenizer("test", strings.NewReader(inp.input))
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

func TestParseEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Empty")
	b.LHS("S").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar could not be created: %v", err)
	}
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatalf("table creation failed: %v", err)
	}
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	tokenizer := sc.GoTokenizer("test", strings.NewReader(""))
	accepted, err := p.Parse(lrgen.CFSM().S0, tokenizer)
	if err != nil || !accepted {
		t.Fatalf("parser did not accept the empty input: %v", err)
	}
	if sexpr := (ptree.SExprRenderer{}).Render(p.Tree()); sexpr != "(S)" {
		t.Errorf("expected tree (S), have %s", sexpr)
	}
}

func TestParserReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, lrgen := exprTables(t)
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	parse := func(input string) (bool, *ptree.Node, error) {
		tokenizer := sc.GoTokenizer("test", strings.NewReader(input))
		ok, err := p.Parse(lrgen.CFSM().S0, tokenizer)
		return ok, p.Tree(), err
	}
	ok1, tree1, err1 := parse("a+b")
	if err1 != nil || !ok1 {
		t.Fatalf("parser did not accept input 'a+b': %v", err1)
	}
	ok2, tree2, err2 := parse("a+b")
	if err2 != nil || !ok2 {
		t.Fatalf("parser did not accept input 'a+b' a second time: %v", err2)
	}
	if !tree1.Equal(tree2) {
		t.Errorf("re-parsing the same input should produce an equal tree")
	}
	if ok, _, _ := parse("a+"); ok {
		t.Fatalf("parser should have rejected input 'a+'")
	}
	ok3, tree3, err3 := parse("a") // parser state must have been reset
	if err3 != nil || !ok3 {
		t.Fatalf("parser did not recover from a rejected input: %v", err3)
	}
	if sexpr := (ptree.SExprRenderer{}).Render(tree3); sexpr != "(E (T a))" {
		t.Errorf("expected tree (E (T a)), have %s", sexpr)
	}
}

// countingListener replaces tree building by event counting.
type countingListener struct {
	terminals  int
	reductions int
}

func (l *countingListener) Terminal(tokval int, token slr1.Token, span slr1.Span) interface{} {
	l.terminals++
	return token.Lexeme()
}

func (l *countingListener) Reduce(lhs *lr.Symbol, rule *lr.Rule, rhs []interface{}, span slr1.Span) interface{} {
	l.reductions++
	return lhs.Name
}

func TestParseWithListener(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, lrgen := exprTables(t)
	listener := &countingListener{}
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable(), WithListener(listener))
	tokenizer := sc.GoTokenizer("test", strings.NewReader("a+b"))
	accepted, err := p.Parse(lrgen.CFSM().S0, tokenizer)
	if err != nil || !accepted {
		t.Fatalf("parser did not accept input 'a+b': %v", err)
	}
	if listener.terminals != 3 {
		t.Errorf("listener should have seen 3 terminals, saw %d", listener.terminals)
	}
	if listener.reductions != 4 { // T(a), E(T), T(b), E(E+T)
		t.Errorf("listener should have seen 4 reductions, saw %d", listener.reductions)
	}
	if p.Result() != "E" {
		t.Errorf("parser result should be the listener's value for E, is %v", p.Result())
	}
	if p.Tree() != nil {
		t.Errorf("no parse tree should be built with a custom listener")
	}
}
