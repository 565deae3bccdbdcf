package lr

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCFSMExprGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatalf("table creation failed: %v", err)
	}
	cfsm := lrgen.CFSM()
	if cfsm.S0 == nil {
		t.Fatalf("CFSM has no start state")
	}
	if cfsm.States() != 6 {
		t.Errorf("expected CFSM to have 6 states, has %d", cfsm.States())
	}
	acc := lrgen.AcceptingStates()
	if len(acc) != 1 {
		t.Errorf("expected exactly 1 accepting state, have %v", acc)
	}
}

// TestTablesExprGrammar walks the GOTO and ACTION tables of the expression
// grammar along the derivation for "id + id".
func TestTablesExprGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatalf("table creation failed: %v", err)
	}
	gotoT, actionT := lrgen.GotoTable(), lrgen.ActionTable()
	null := actionT.NullValue()
	s0 := lrgen.CFSM().S0.ID
	E, T := g.SymbolByName("E"), g.SymbolByName("T")
	//
	if actionT.Value(s0, scanner.Ident) != ShiftAction {
		t.Errorf("state %d should shift on id", s0)
	}
	if actionT.Value(s0, '+') != null {
		t.Errorf("state %d should have no action on '+'", s0)
	}
	sid := uint(gotoT.Value(s0, scanner.Ident)) // state for T ::= id •
	ruleT := g.Rule(3)                          // T ::= id
	if a := actionT.Value(sid, '+'); a != int32(ruleT.Serial) {
		t.Errorf("state %d should reduce rule %d on '+', action is %d", sid, ruleT.Serial, a)
	}
	if a := actionT.Value(sid, EOFType); a != int32(ruleT.Serial) {
		t.Errorf("state %d should reduce rule %d on end of input, action is %d", sid, ruleT.Serial, a)
	}
	sE := uint(gotoT.Value(s0, E.TokenType())) // state for S' ::= E •, E ::= E • + T
	if actionT.Value(sE, EOFType) != AcceptAction {
		t.Errorf("state %d should accept on end of input", sE)
	}
	if actionT.Value(sE, '+') != ShiftAction {
		t.Errorf("state %d should shift on '+'", sE)
	}
	sPlus := uint(gotoT.Value(sE, '+')) // state for E ::= E + • T
	if actionT.Value(sPlus, scanner.Ident) != ShiftAction {
		t.Errorf("state %d should shift on id", sPlus)
	}
	if uint(gotoT.Value(sPlus, scanner.Ident)) != sid {
		t.Errorf("shifting id should reuse state %d", sid)
	}
	sT := uint(gotoT.Value(sPlus, T.TokenType())) // state for E ::= E + T •
	ruleE := g.Rule(1)                            // E ::= E + T
	if a := actionT.Value(sT, EOFType); a != int32(ruleE.Serial) {
		t.Errorf("state %d should reduce rule %d on end of input, action is %d", sT, ruleE.Serial, a)
	}
	//
	cols := actionT.Columns(s0)
	if len(cols) != 1 || cols[0] != scanner.Ident {
		t.Errorf("start state should accept only id, columns are %v", cols)
	}
}

func TestShiftReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Ambiguous Sums")
	b.LHS("E").N("E").T("+", '+').N("E").End()
	b.LHS("E").T("id", scanner.Ident).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar could not be created: %v", err)
	}
	lrgen := NewTableGenerator(Analysis(g))
	err = lrgen.CreateTables()
	if err == nil {
		t.Fatalf("ambiguous grammar should have been rejected")
	}
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected a *ConflictError, have %T", err)
	}
	if !lrgen.HasConflicts || len(lrgen.Conflicts()) == 0 {
		t.Fatalf("conflicts should have been recorded")
	}
	c := lrgen.Conflicts()[0]
	if c.Kind() != "shift/reduce" {
		t.Errorf("expected a shift/reduce conflict, have %s", c.Kind())
	}
	if c.LAName != "+" {
		t.Errorf("conflict should arise on lookahead '+', is %q", c.LAName)
	}
	if !strings.Contains(err.Error(), "not SLR(1)") {
		t.Errorf("error message should name the rejected property: %v", err)
	}
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Twins")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("a", 'a').End()
	b.LHS("B").T("a", 'a').End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar could not be created: %v", err)
	}
	lrgen := NewTableGenerator(Analysis(g))
	err = lrgen.CreateTables()
	if err == nil {
		t.Fatalf("grammar with a reduce/reduce conflict should have been rejected")
	}
	found := false
	for _, c := range lrgen.Conflicts() {
		if c.Kind() == "reduce/reduce" && c.LA == EOFType {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a reduce/reduce conflict on end of input, have %v", lrgen.Conflicts())
	}
}

func TestTableExports(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatalf("table creation failed: %v", err)
	}
	var buf bytes.Buffer
	GotoTableAsHTML(lrgen, &buf)
	if !strings.Contains(buf.String(), "<table") || !strings.Contains(buf.String(), "GOTO") {
		t.Errorf("GOTO table export does not look like an HTML table")
	}
	buf.Reset()
	ActionTableAsHTML(lrgen, &buf)
	if !strings.Contains(buf.String(), "ACTION") {
		t.Errorf("ACTION table export does not look like an HTML table")
	}
	buf.Reset()
	lrgen.CFSM().CFSM2GraphViz(&buf)
	dot := buf.String()
	if !strings.HasPrefix(dot, "digraph") || !strings.Contains(dot, "->") {
		t.Errorf("CFSM export does not look like a GraphViz digraph")
	}
}
