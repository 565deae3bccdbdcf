package lr

import (
	"errors"
	"fmt"

	slr1 "github.com/vxnquish/Compiler-SLR1"
	"github.com/vxnquish/Compiler-SLR1/lr/iteratable"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Token values reserved by the grammar model. Token value 0 denotes epsilon,
// the end-of-input marker mirrors the EOF of text/scanner.
const (
	EpsilonType = 0
	EOFType     = -1
)

// NonTermType is the lowest symbol value the grammar model assigns to
// non-terminal symbols. Terminals and non-terminals share one value space,
// as both label columns of the parse tables, so terminal token values have
// to stay below it.
const NonTermType = 1 << 12

// ErrMalformedGrammar flags grammars which cannot be finalized. Errors
// returned by GrammarBuilder.Grammar() wrap it.
var ErrMalformedGrammar = errors.New("malformed grammar")

// --- Symbols ----------------------------------------------------------

// A Symbol is a terminal or non-terminal of a grammar. Symbols are interned
// per grammar, so they may be compared by pointer identity.
type Symbol struct {
	Name  string // visual representation
	Value int    // token value of terminals, generated value of non-terminals
}

// IsTerminal returns true for a terminal symbol.
func (s *Symbol) IsTerminal() bool {
	return s.Value < NonTermType
}

// TokenType returns the symbol's value as a token type.
func (s *Symbol) TokenType() slr1.TokType {
	return slr1.TokType(s.Value)
}

func (s *Symbol) String() string {
	return s.Name
}

// --- Rules ------------------------------------------------------------

// A Rule is a production of a grammar, with a stable serial number.
// The right-hand side of an epsilon-production is empty.
type Rule struct {
	Serial int     // order of rules in the grammar; 0 is the synthetic start rule
	LHS    *Symbol // left-hand side symbol
	rhs    []*Symbol
}

func newRule(lhs *Symbol, rhs []*Symbol) *Rule {
	return &Rule{LHS: lhs, rhs: rhs}
}

// RHS returns the right-hand side of the rule. Callers must not modify the
// returned slice.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// IsEps returns true for epsilon-productions.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	return fmt.Sprintf("[%s] ::= [%s]", r.LHS, symsString(r.rhs))
}

func (r *Rule) hasIdenticalRHS(other *Rule) bool {
	if len(r.rhs) != len(other.rhs) {
		return false
	}
	for i, sym := range r.rhs {
		if other.rhs[i] != sym {
			return false
		}
	}
	return true
}

func symsString(syms []*Symbol) string {
	s := ""
	for i, sym := range syms {
		if i > 0 {
			s += " "
		}
		s += sym.Name
	}
	return s
}

// --- Grammars ---------------------------------------------------------

// Grammar is an immutable set of rules for a language, together with the
// interned symbols the rules are built from. Grammars are created with a
// GrammarBuilder; finalizing the builder augments the grammar with a
// synthetic start rule S' ::= S, where S is the LHS of the first rule
// the client declared.
type Grammar struct {
	Name         string
	rules        []*Rule
	epsilon      *Symbol
	eof          *Symbol
	terminals    map[string]*Symbol
	nonterminals map[string]*Symbol
	termsByValue map[int]*Symbol
	termsOrdered []*Symbol // terminals in order of first use, EOF last
	ntsOrdered   []*Symbol // non-terminals in order of first use, S' last
}

func newGrammar(name string) *Grammar {
	g := &Grammar{
		Name:         name,
		terminals:    map[string]*Symbol{},
		nonterminals: map[string]*Symbol{},
		termsByValue: map[int]*Symbol{},
	}
	g.epsilon = &Symbol{Name: "ε", Value: EpsilonType}
	g.eof = &Symbol{Name: "#eof", Value: EOFType}
	g.termsByValue[EOFType] = g.eof // EOF is a terminal for table lookups
	return g
}

// Rule returns the rule with the given serial, nil for an out-of-range serial.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Size returns the number of rules, including the synthetic start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// EpsilonSymbol returns the grammar's epsilon pseudo-symbol.
func (g *Grammar) EpsilonSymbol() *Symbol {
	return g.epsilon
}

// EOFSymbol returns the grammar's end-of-input pseudo-terminal.
func (g *Grammar) EOFSymbol() *Symbol {
	return g.eof
}

// Terminal returns the terminal symbol carrying a given token value, or nil.
// If more than one terminal name carries the value, the first one declared
// wins.
func (g *Grammar) Terminal(tokval int) *Symbol {
	if tokval == EOFType {
		return g.eof
	}
	return g.termsByValue[tokval]
}

// SymbolByName returns the symbol with the given name, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	if sym, ok := g.nonterminals[name]; ok {
		return sym
	}
	return g.terminals[name]
}

// EachSymbol applies a mapper function to all symbols of the grammar,
// terminals first (end-of-input marker included, epsilon excluded).
// The order of symbols is stable.
func (g *Grammar) EachSymbol(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.termsOrdered {
		if v := mapper(A); v != nil {
			r = append(r, v)
		}
	}
	for _, A := range g.ntsOrdered {
		if v := mapper(A); v != nil {
			r = append(r, v)
		}
	}
	return r
}

// EachTerminal applies a mapper function to all terminals of the grammar,
// end-of-input marker included.
func (g *Grammar) EachTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.termsOrdered {
		if v := mapper(A); v != nil {
			r = append(r, v)
		}
	}
	return r
}

// EachNonTerminal applies a mapper function to all non-terminals of the
// grammar, the synthetic start symbol included.
func (g *Grammar) EachNonTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.ntsOrdered {
		if v := mapper(A); v != nil {
			r = append(r, v)
		}
	}
	return r
}

// FindNonTermRules returns a set of items for all rules having the given
// non-terminal as LHS. With initial=true the items have their dot at the
// start of the RHS.
func (g *Grammar) FindNonTermRules(sym *Symbol, initial bool) *iteratable.Set {
	S := newItemSet()
	for _, r := range g.rules {
		if r.LHS != sym {
			continue
		}
		i, _ := StartItem(r)
		if !initial {
			i = i.Advance()
		}
		S.Add(i)
	}
	return S
}

// Dump logs the rules and symbols of the grammar, for debugging purposes.
func (g *Grammar) Dump() {
	tracer().Debugf("grammar %q:", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%d: %s", r.Serial, r)
	}
	for _, t := range g.termsOrdered {
		tracer().Debugf("terminal %s = %d", t, t.Value)
	}
}

// --- Grammar builder ----------------------------------------------------

// GrammarBuilder is a builder type for grammars. Clients declare rules with
// chained calls:
//
//	b := lr.NewGrammarBuilder("G")
//	b.LHS("S").N("A").T("a", 1).End()
//	b.LHS("A").Epsilon()
//	g, err := b.Grammar()
//
// The LHS of the first declared rule becomes the grammar's start symbol.
type GrammarBuilder struct {
	g    *Grammar
	errs []error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar
// to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{g: newGrammar(gname)}
}

func (gb *GrammarBuilder) error(format string, args ...interface{}) {
	args = append([]interface{}{ErrMalformedGrammar}, args...)
	gb.errs = append(gb.errs, fmt.Errorf("%w: "+format, args...))
}

func (gb *GrammarBuilder) nonterminal(name string) *Symbol {
	if sym, ok := gb.g.nonterminals[name]; ok {
		return sym
	}
	if _, ok := gb.g.terminals[name]; ok {
		gb.error("symbol %q is used as terminal and as non-terminal", name)
	}
	sym := &Symbol{Name: name} // value assigned when the grammar is finalized
	gb.g.nonterminals[name] = sym
	gb.g.ntsOrdered = append(gb.g.ntsOrdered, sym)
	return sym
}

func (gb *GrammarBuilder) terminal(name string, tokval int) *Symbol {
	if sym, ok := gb.g.terminals[name]; ok {
		if sym.Value != tokval {
			gb.error("terminal %q redeclared with token value %d (was %d)",
				name, tokval, sym.Value)
		}
		return sym
	}
	if _, ok := gb.g.nonterminals[name]; ok {
		gb.error("symbol %q is used as terminal and as non-terminal", name)
	}
	switch {
	case tokval == EpsilonType:
		gb.error("terminal %q declared with token value 0, which is reserved for epsilon", name)
	case tokval == EOFType:
		gb.error("terminal %q declared with token value %d, which is reserved for end-of-input", name, EOFType)
	case tokval >= NonTermType:
		gb.error("terminal %q declared with token value %d, exceeding %d", name, tokval, NonTermType-1)
	}
	sym := &Symbol{Name: name, Value: tokval}
	gb.g.terminals[name] = sym
	gb.g.termsOrdered = append(gb.g.termsOrdered, sym)
	if _, ok := gb.g.termsByValue[tokval]; !ok {
		gb.g.termsByValue[tokval] = sym
	}
	return sym
}

// LHS starts a rule given the left-hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	rb := &RuleBuilder{gb: gb}
	rb.lhs = gb.nonterminal(name)
	return rb
}

func (gb *GrammarBuilder) appendRule(lhs *Symbol, rhs []*Symbol) *Rule {
	r := newRule(lhs, rhs)
	for _, old := range gb.g.rules {
		if old.LHS == lhs && old.hasIdenticalRHS(r) {
			tracer().Infof("dropping duplicate rule %s", r)
			return old
		}
	}
	gb.g.rules = append(gb.g.rules, r)
	return r
}

// Grammar finalizes the grammar under construction.
//
// The grammar is augmented with a synthetic start rule S' ::= S and checked
// for well-formedness. An error wrapping ErrMalformedGrammar is returned if
// no rule has been declared, if a non-terminal is used on a right-hand side
// but never declared by a rule, or if a terminal declaration was invalid.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	g := gb.g
	if len(g.rules) == 0 {
		gb.error("grammar %q has no rules, start symbol unknown", g.Name)
		return nil, errors.Join(gb.errs...)
	}
	names := maps.Keys(g.nonterminals)
	slices.Sort(names) // deterministic error listing
	for _, name := range names {
		sym := g.nonterminals[name]
		declared := false
		for _, r := range g.rules {
			if r.LHS == sym {
				declared = true
				break
			}
		}
		if !declared {
			gb.error("non-terminal %q is used but has no rule", name)
		}
	}
	if len(gb.errs) > 0 {
		return nil, errors.Join(gb.errs...)
	}
	gb.augment()
	for i, sym := range g.ntsOrdered { // assign stable non-terminal values
		sym.Value = NonTermType + i
	}
	g.termsOrdered = append(g.termsOrdered, g.eof)
	for no, r := range g.rules {
		r.Serial = no
	}
	tracer().Infof("grammar %q has %d rules and %d symbols", g.Name,
		len(g.rules), len(g.termsOrdered)+len(g.ntsOrdered))
	return g, nil
}

// augment prepends the synthetic start rule S' ::= S.
func (gb *GrammarBuilder) augment() {
	g := gb.g
	start := g.rules[0].LHS
	name := start.Name + "'"
	for g.SymbolByName(name) != nil {
		name += "'"
	}
	super := gb.nonterminal(name)
	r := newRule(super, []*Symbol{start})
	g.rules = append([]*Rule{r}, g.rules...)
}

// RuleBuilder is a builder type for a single grammar rule. Clients do not
// construct it directly, but get one from GrammarBuilder.LHS().
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs *Symbol
	rhs []*Symbol
}

// N appends a non-terminal to the rule's RHS.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.nonterminal(name))
	return rb
}

// T appends a terminal with a token value to the rule's RHS.
// The token value must not be 0 (reserved for epsilon), -1 (reserved for
// end-of-input) and must be below NonTermType.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.terminal(name, tokval))
	return rb
}

// AppendSymbol appends a previously interned symbol to the rule's RHS.
func (rb *RuleBuilder) AppendSymbol(sym *Symbol) *RuleBuilder {
	rb.rhs = append(rb.rhs, sym)
	return rb
}

// End finishes a rule and hands it over to the grammar builder.
func (rb *RuleBuilder) End() *Rule {
	return rb.gb.appendRule(rb.lhs, rb.rhs)
}

// Epsilon finishes a rule as an epsilon-production, i.e. with an empty RHS.
// Any symbols appended to the RHS so far are discarded.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rhs = nil
	return rb.gb.appendRule(rb.lhs, rb.rhs)
}
