package lr

import (
	"fmt"
	"sort"
)

// LRAnalysis is a static analysis of a grammar: it finds the
// epsilon-derivable non-terminals and computes the FIRST and FOLLOW sets
// for all symbols. All three are fixpoint computations, iterated until no
// set grows any further. An LRAnalysis is the input for parse table
// generation.
type LRAnalysis struct {
	g          *Grammar
	derivesEps map[*Symbol]bool
	first      map[*Symbol]*TerminalSet
	follow     map[*Symbol]*TerminalSet
}

// Analysis analyses a grammar. The grammar must have been finalized by its
// builder.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:          g,
		derivesEps: map[*Symbol]bool{},
		first:      map[*Symbol]*TerminalSet{},
		follow:     map[*Symbol]*TerminalSet{},
	}
	ga.markEpsilon()
	ga.computeFirstSets()
	ga.computeFollowSets()
	ga.dump()
	return ga
}

// Grammar returns the analysed grammar.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// DerivesEpsilon returns true if the given symbol is nullable, i.e. derives
// the empty string.
func (ga *LRAnalysis) DerivesEpsilon(sym *Symbol) bool {
	return ga.derivesEps[sym]
}

// First returns the FIRST set for a symbol. For a terminal this is the
// terminal itself. Epsilon membership is represented by token value 0.
func (ga *LRAnalysis) First(sym *Symbol) *TerminalSet {
	if f, ok := ga.first[sym]; ok {
		return f
	}
	f := newTerminalSet()
	if sym.IsTerminal() {
		f.Add(sym.Value)
	}
	return f
}

// Follow returns the FOLLOW set for a non-terminal.
func (ga *LRAnalysis) Follow(sym *Symbol) *TerminalSet {
	if f, ok := ga.follow[sym]; ok {
		return f
	}
	return newTerminalSet()
}

// markEpsilon finds all non-terminals deriving the empty string: fixpoint
// over "some rule for N has an all-nullable RHS".
func (ga *LRAnalysis) markEpsilon() {
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			if ga.derivesEps[r.LHS] {
				continue
			}
			nullable := true
			for _, sym := range r.rhs {
				if sym.IsTerminal() || !ga.derivesEps[sym] {
					nullable = false
					break
				}
			}
			if nullable {
				ga.derivesEps[r.LHS] = true
				changed = true
			}
		}
	}
}

func (ga *LRAnalysis) computeFirstSets() {
	ga.g.EachTerminal(func(A *Symbol) interface{} {
		ga.first[A] = newTerminalSet()
		ga.first[A].Add(A.Value)
		return nil
	})
	ga.g.EachNonTerminal(func(A *Symbol) interface{} {
		ga.first[A] = newTerminalSet()
		return nil
	})
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			if ga.firstOfSequence(r.rhs, ga.first[r.LHS]) {
				changed = true
			}
		}
	}
}

// firstOfSequence adds FIRST(syms) to the target set and reports whether the
// set grew. Epsilon (0) is added when the whole sequence is nullable.
func (ga *LRAnalysis) firstOfSequence(syms []*Symbol, into *TerminalSet) bool {
	changed := false
	for _, sym := range syms {
		if into.AddAll(ga.First(sym), true) {
			changed = true
		}
		if sym.IsTerminal() || !ga.derivesEps[sym] {
			return changed
		}
	}
	if into.Add(EpsilonType) {
		changed = true
	}
	return changed
}

func (ga *LRAnalysis) computeFollowSets() {
	ga.g.EachNonTerminal(func(A *Symbol) interface{} {
		ga.follow[A] = newTerminalSet()
		return nil
	})
	super := ga.g.Rule(0).LHS
	ga.follow[super].Add(EOFType)
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			for k, B := range r.rhs {
				if B.IsTerminal() {
					continue
				}
				fb := ga.follow[B]
				rest := ga.sequenceFirst(r.rhs[k+1:])
				if fb.AddAll(rest, true) {
					changed = true
				}
				if rest.ContainsEps() { // B may be rightmost, inherit FOLLOW(LHS)
					if fb.AddAll(ga.follow[r.LHS], false) {
						changed = true
					}
				}
			}
		}
	}
}

// sequenceFirst computes FIRST for a sequence of symbols, epsilon included
// when the sequence is nullable or empty.
func (ga *LRAnalysis) sequenceFirst(syms []*Symbol) *TerminalSet {
	f := newTerminalSet()
	ga.firstOfSequence(syms, f)
	if len(syms) == 0 {
		f.Add(EpsilonType)
	}
	return f
}

func (ga *LRAnalysis) dump() {
	ga.g.EachNonTerminal(func(A *Symbol) interface{} {
		tracer().Debugf("FIRST(%s) = %v", A, ga.first[A])
		return nil
	})
	ga.g.EachNonTerminal(func(A *Symbol) interface{} {
		tracer().Debugf("FOLLOW(%s) = %v", A, ga.follow[A])
		return nil
	})
}

// --- Terminal sets ------------------------------------------------------

// TerminalSet is a set of terminal token values, kept sorted. FIRST and
// FOLLOW sets are terminal sets; epsilon membership is encoded as value 0.
type TerminalSet struct {
	vals []int
}

func newTerminalSet() *TerminalSet {
	return &TerminalSet{}
}

// Add inserts a token value. It returns true if the set grew, which drives
// the analysis fixpoints.
func (ts *TerminalSet) Add(tokval int) bool {
	at := sort.SearchInts(ts.vals, tokval)
	if at < len(ts.vals) && ts.vals[at] == tokval {
		return false
	}
	ts.vals = append(ts.vals, 0)
	copy(ts.vals[at+1:], ts.vals[at:])
	ts.vals[at] = tokval
	return true
}

// AddAll inserts all values of another set, optionally skipping epsilon.
// It returns true if the set grew.
func (ts *TerminalSet) AddAll(other *TerminalSet, skipEps bool) bool {
	changed := false
	for _, v := range other.vals {
		if skipEps && v == EpsilonType {
			continue
		}
		if ts.Add(v) {
			changed = true
		}
	}
	return changed
}

// Contains returns true if the token value is in the set.
func (ts *TerminalSet) Contains(tokval int) bool {
	at := sort.SearchInts(ts.vals, tokval)
	return at < len(ts.vals) && ts.vals[at] == tokval
}

// ContainsEps returns true if epsilon is in the set.
func (ts *TerminalSet) ContainsEps() bool {
	return ts.Contains(EpsilonType)
}

// Size returns the number of token values in the set.
func (ts *TerminalSet) Size() int {
	return len(ts.vals)
}

// AppendTo appends the token values of the set to a slice, in ascending
// order.
func (ts *TerminalSet) AppendTo(vals []int) []int {
	return append(vals, ts.vals...)
}

func (ts *TerminalSet) String() string {
	return fmt.Sprintf("%v", ts.vals)
}
