/*
Package slr provides an SLR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The SLR parser
utilizes these tables to create a rightmost derivation for a given input,
provided through a scanner interface.

This parser is intended for small to moderate grammars, e.g. for configuration
input or small domain-specific languages. It is *not* intended for full-fledged
programming languages (there are superb other tools around for these kinds of
usages, usually creating LALR(1)-parsers, which are able to recognize a super-set
of SLR-languages).

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step. If you want, you
can create a grammar from user input and use a parser for it in a couple of
lines of code.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()  // Var  --> Sign Id
	b.LHS("Sign").T("+", '+').End()                     // Sign --> +
	b.LHS("Sign").T("-", '-').End()                     // Sign --> -
	b.LHS("Sign").Epsilon()                             // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation. Grammars
which are not SLR(1) are rejected at this point:

	ga := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	if err := lrgen.CreateTables(); err != nil {
	    …                              // cannot use an SLR parser
	}

Finally parse some input:

	p := slr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	tokenizer := … // a scanner.Tokenizer for "+a"
	accepted, err := p.Parse(lrgen.CFSM().S0, tokenizer)

By default the parser builds a parse tree, available as p.Tree() after an
accepting parse. Clients may replace tree building by their own semantic
operations with option WithListener. If the input is rejected, the returned
error is a *SyntaxError holding the offending token and the set of terminals
the parser would have accepted instead.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package slr

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	slr1 "github.com/vxnquish/Compiler-SLR1"
	"golang.org/x/exp/slices"

	"github.com/vxnquish/Compiler-SLR1/lr"
	"github.com/vxnquish/Compiler-SLR1/lr/ptree"
	"github.com/vxnquish/Compiler-SLR1/lr/scanner"
)

// tracer traces with key 'slr1.lr'.
func tracer() tracing.Trace {
	return tracing.Select("slr1.lr")
}

// Parser is an SLR(1)-parser type. Create and initialize one with slr.NewParser(...)
//
// The parse tables are read-only during parsing and may be shared between
// parsers running concurrently. A single Parser holds a parse stack and must
// not be used from more than one goroutine at a time.
type Parser struct {
	G        *lr.Grammar
	stack    []stackitem // parser stack
	gotoT    *lr.Table   // GOTO table
	actionT  *lr.Table   // ACTION table
	listener Listener    // receives terminal/reduce events
	root     interface{} // listener value for the start symbol after accept
}

// We store quadruplets of state-IDs, symbol-IDs, spans and listener values
// on the parse stack.
type stackitem struct {
	stateID uint        // ID of a CFSM state
	symID   int         // ID of a grammar symbol (terminal or non-terminal)
	span    slr1.Span   // input span over which this symbol reaches
	value   interface{} // value the listener produced for this symbol
}

// Option is a type to configure a Parser at construction time.
type Option func(p *Parser)

// WithListener replaces the parser's default tree-building listener.
func WithListener(l Listener) Option {
	return func(p *Parser) {
		p.listener = l
	}
}

// NewParser creates an SLR(1) parser. Unless overridden with WithListener,
// it builds a parse tree during the parse.
func NewParser(g *lr.Grammar, gotoTable *lr.Table, actionTable *lr.Table, opts ...Option) *Parser {
	parser := &Parser{
		G:       g,
		stack:   make([]stackitem, 0, 512),
		gotoT:   gotoTable,
		actionT: actionTable,
	}
	parser.listener = NewTreeBuilder(g)
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// Parse starts a new parse, given a start state and a scanner tokenizing the
// input. The parser must have been initialized. Parse resets any state left
// over from a previous run, so a parser may be reused for the same tables.
//
// The parser returns true if the input string has been accepted. Rejection
// comes with a *SyntaxError describing the offending token and the set of
// terminals the parser would have accepted in its place.
func (p *Parser) Parse(S *lr.CFSMState, scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.gotoT == nil || p.actionT == nil {
		tracer().Errorf("SLR(1)-parser not initialized")
		return false, fmt.Errorf("SLR(1)-parser not initialized")
	}
	var accepting bool
	p.stack = p.stack[:0]
	p.root = nil
	p.stack = append(p.stack, stackitem{S.ID, 0, slr1.Span{}, nil}) // push S, never popped
	// http://www.cse.unt.edu/~sweany/CSCE3650/HANDOUTS/LRParseAlg.pdf
	token := scan.NextToken()
	tokval := token.TokType()
	inx := 0 // running index of token in the input
	done := false
	for !done {
		tracer().Debugf("got token %q/%d from scanner", token.Lexeme(), tokval)
		state := p.stack[len(p.stack)-1] // TOS
		action := p.actionT.NullValue()
		if p.G.Terminal(int(tokval)) != nil { // token categories outside the grammar cannot be shifted
			action = p.actionT.Value(state.stateID, tokval)
		}
		tracer().Debugf("action(%d,%d)=%s", state.stateID, tokval, valstring(action, p.actionT))
		switch {
		case action == p.actionT.NullValue(): // no legal action: reject
			err := p.syntaxError(state.stateID, token, inx)
			tracer().Errorf(err.Error())
			return false, err
		case action == lr.AcceptAction:
			p.root = p.stack[len(p.stack)-1].value
			accepting, done = true, true
		case action == lr.ShiftAction:
			nextstate := uint(p.gotoT.Value(state.stateID, tokval))
			tracer().Debugf("shifting, next state = %d", nextstate)
			var value interface{}
			if p.listener != nil {
				value = p.listener.Terminal(int(tokval), token, token.Span())
			}
			p.stack = append(p.stack, // push a terminal state onto stack
				stackitem{nextstate, int(tokval), token.Span(), value})
			token = scan.NextToken()
			tokval = token.TokType()
			inx++
		case action > 0: // reduce action
			rule := p.G.Rule(int(action))
			nextstate, handlespan, value := p.reduce(rule, token)
			tracer().Debugf("reduced to next state = %d", nextstate)
			p.stack = append(p.stack, // push a non-terminal state onto stack
				stackitem{nextstate, rule.LHS.Value, handlespan, value})
		default: // impossible action value
			return false, fmt.Errorf("internal parser error: action %d", action)
		}
	}
	return accepting, nil
}

// reduce performs a reduce action for a rule
//
//	LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// popping the states for Xn ... X1 off the stack and consulting the GOTO
// table with the then-exposed state and LHS. The values the listener
// produced for X1 ... Xn are passed to the listener's Reduce callback; its
// result becomes the value for LHS.
func (p *Parser) reduce(rule *lr.Rule, lookahead slr1.Token) (uint, slr1.Span, interface{}) {
	tracer().Infof("reduce %v", rule)
	rhs := rule.RHS()
	rhsvals := make([]interface{}, len(rhs))
	var handlespan slr1.Span
	for k := len(rhs) - 1; k >= 0; k-- { // pop reversed handle off the stack
		tos := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		if tos.symID != rhs[k].Value {
			stuck(fmt.Sprintf("expected %v on top of stack, got %d", rhs[k], tos.symID))
		}
		rhsvals[k] = tos.value
		if handlespan.IsNull() {
			handlespan = tos.span
		} else {
			handlespan = handlespan.Extend(tos.span)
		}
	}
	if handlespan.IsNull() { // resulted from an epsilon production
		pos := lookahead.Span().From() // epsilon sits just before the lookahead
		if pos > 0 {
			pos--
		}
		handlespan = slr1.Span{pos, pos}
	}
	state := p.stack[len(p.stack)-1] // exposed TOS
	nextstate := uint(p.gotoT.Value(state.stateID, rule.LHS.TokenType()))
	var value interface{}
	if p.listener != nil {
		value = p.listener.Reduce(rule.LHS, rule, rhsvals, handlespan)
	}
	return nextstate, handlespan, value
}

// Result returns the value the parser's listener produced for the start
// symbol, nil unless a previous Parse accepted the input.
func (p *Parser) Result() interface{} {
	return p.root
}

// Tree returns the parse tree of the last accepting parse. It is nil if no
// input has been accepted yet, or if the default tree-building listener has
// been replaced by WithListener.
func (p *Parser) Tree() *ptree.Node {
	if root, ok := p.root.(*ptree.Node); ok {
		return root
	}
	return nil
}

// --- Syntax errors ------------------------------------------------------

// SyntaxError describes the rejection of an input: in some parser state an
// input token arrived for which the ACTION table holds no entry. The error
// keeps the offending token and the set of terminals which the state would
// have accepted instead.
type SyntaxError struct {
	Token    slr1.Token // offending token
	Index    int        // 0-based position of the token in the input stream
	State    uint       // parser state the token arrived in
	Expected []string   // names of the acceptable terminals, sorted
}

func (e *SyntaxError) Error() string {
	what := fmt.Sprintf("unexpected %q", e.Token.Lexeme())
	if e.Token.TokType() == lr.EOFType {
		what = "unexpected end of input"
	}
	at := ""
	if pos := e.Token.Pos(); pos.IsKnown() {
		at = " at " + pos.String()
	}
	return fmt.Sprintf("syntax error%s: %s, expected one of %v", at, what, e.Expected)
}

// syntaxError assembles the rejection report for a state and an offending
// token. The expected-set is read off the state's row of the ACTION table:
// every terminal with a non-error entry would have been acceptable.
func (p *Parser) syntaxError(stateID uint, token slr1.Token, inx int) *SyntaxError {
	var expected []string
	for _, tokval := range p.actionT.Columns(stateID) {
		name := fmt.Sprintf("%d", tokval)
		if t := p.G.Terminal(int(tokval)); t != nil {
			name = t.Name
		}
		expected = append(expected, name)
	}
	slices.Sort(expected)
	return &SyntaxError{
		Token:    token,
		Index:    inx,
		State:    stateID,
		Expected: expected,
	}
}

func stuck(msg string) bool {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`SLR(1)-parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + msg)
	}
	return true
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *lr.Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == lr.AcceptAction {
		return "<accept>"
	} else if v == lr.ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("%d", v)
}
