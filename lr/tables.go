package lr

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	slr1 "github.com/vxnquish/Compiler-SLR1"
	"github.com/vxnquish/Compiler-SLR1/lr/iteratable"
	"github.com/vxnquish/Compiler-SLR1/lr/sparse"
	"golang.org/x/exp/slices"
)

// Actions for parser action tables. Reduce actions are encoded as the serial
// of the grammar rule to reduce, all other actions as negative pseudo-rules.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// closure computes the closure of a single LR(0) item.
func (ga *LRAnalysis) closure(i Item, A *Symbol) *iteratable.Set {
	S := newItemSet()
	S.Add(i)
	return ga.closureSet(S)
}

// closureSet computes the closure of an LR(0) item set: for every item with
// a non-terminal N after the dot, the start items of all rules for N join
// the set, iterated until the set is saturated.
func (ga *LRAnalysis) closureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		A := item.PeekSymbol()          // get symbol A after dot
		if A != nil && !A.IsTerminal() { // A is non-terminal
			R := ga.g.FindNonTermRules(A, true)
			if New := R.Difference(C); !New.Empty() {
				C.Union(New)
			}
		}
	}
	return C
}

func (ga *LRAnalysis) gotoSet(closure *iteratable.Set, A *Symbol) (*iteratable.Set, *Symbol) {
	// for every item in closure C
	// if item in C:  N -> ... *A ...
	//     advance N -> ... A * ...
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			ii := i.Advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	}
	return gotoset, A
}

func (ga *LRAnalysis) gotoSetClosure(i *iteratable.Set, A *Symbol) (*iteratable.Set, *Symbol) {
	gotoset, _ := ga.gotoSet(i, A)
	gclosure := ga.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(i), A, itemSetString(gclosure))
	return gclosure, A
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar. State identity is
// defined by item set content, not by the order states were discovered in.
type CFSMState struct {
	ID     uint            // serial ID of this state
	items  *iteratable.Set // configuration items within this state
	Accept bool            // does this state contain the completed start rule?
}

// CFSM edge between 2 states, directed and with a symbol label.
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Dump is a debugging helper.
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule.Serial == 0 && i.PeekSymbol() == nil {
			return true
		}
	}
	return false
}

// Create a state from an item set.
func state(id uint, iset *iteratable.Set) *CFSMState {
	s := &CFSMState{ID: id}
	if iset == nil {
		s.items = newItemSet()
	} else {
		s.items = iset
	}
	return s
}

// Create an edge.
func edge(from, to *CFSMState, label *Symbol) *cfsmEdge {
	return &cfsmEdge{
		from:  from,
		to:    to,
		label: label,
	}
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(int(c1.ID), int(c2.ID))
}

// CFSM is the characteristic finite state machine for an LR grammar, i.e. the
// LR(0) state diagram. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
type CFSM struct {
	g       *Grammar              // this CFSM is for Grammar g
	states  *treeset.Set          // all the states
	edges   *arraylist.List       // all the edges between states
	index   map[string]*CFSMState // item-set fingerprint => state
	S0      *CFSMState            // start state
	cfsmIds uint                  // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = treeset.NewWith(stateComparator)
	c.edges = arraylist.New()
	c.index = map[string]*CFSMState{}
	return c
}

// Add a state to the CFSM. Checks first if an equal state is present.
func (c *CFSM) addState(iset *iteratable.Set) *CFSMState {
	s := c.findStateByItems(iset)
	if s == nil {
		s = state(c.cfsmIds, iset)
		c.cfsmIds++
		c.states.Add(s)
		c.index[fingerprintOf(iset)] = s
	}
	return s
}

// Find a CFSM state by the contained item set. The fingerprint index makes
// this a lookup instead of a pairwise comparison against every known state;
// the item sets are still compared for equality before a hit is trusted.
func (c *CFSM) findStateByItems(iset *iteratable.Set) *CFSMState {
	if s, ok := c.index[fingerprintOf(iset)]; ok && s.items.Equals(iset) {
		return s
	}
	return nil
}

// fingerprintOf hashes an item set, invariant over item order.
func fingerprintOf(iset *iteratable.Set) string {
	keys := make([]int, 0, iset.Size())
	for _, x := range iset.Values() {
		i := asItem(x)
		keys = append(keys, i.rule.Serial<<8|i.dot)
	}
	slices.Sort(keys)
	h, err := structhash.Hash(struct{ Items []int }{Items: keys}, 1)
	if err != nil {
		return fmt.Sprintf("%v", keys)
	}
	return h
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) *cfsmEdge {
	e := edge(s0, s1, sym)
	c.edges.Add(e)
	return e
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// States returns the number of states of the CFSM.
func (c *CFSM) States() int {
	return c.states.Size()
}

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then an LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *Table
	actiontable  *Table
	conflicts    []Conflict
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously (or a separate call to
// BuildGotoTable(...).)
func (lrgen *TableGenerator) GotoTable() *Table {
	if lrgen.gototable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously (or a separate call to
// BuildSLR1ActionTable(...).)
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// Conflicts returns the parse table conflicts found during table generation,
// nil for an SLR(1) grammar.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// CreateTables creates the necessary data structures for an SLR(1) parser.
// Grammars which are not SLR(1) are rejected: if any cell of the ACTION
// table is claimed by two competing actions, CreateTables returns a
// ConflictError listing every conflicting cell.
func (lrgen *TableGenerator) CreateTables() error {
	lrgen.dfa = lrgen.buildCFSM()
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable = lrgen.BuildSLR1ActionTable()
	if lrgen.HasConflicts {
		err := &ConflictError{Grammar: lrgen.g, Conflicts: lrgen.conflicts}
		tracer().Errorf(err.Error())
		return err
	}
	return nil
}

// AcceptingStates returns all states of the CFSM which contain the completed
// start rule, i.e. where the ACTION table tells the parser to accept.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []uint {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	acc := make([]uint, 0, 3)
	for _, x := range lrgen.dfa.states.Values() {
		state := x.(*CFSMState)
		if state.Accept {
			acc = append(acc, state.ID)
		}
	}
	slices.Sort(acc)
	return acc
}

// Construct the characteristic finite state machine CFSM for a grammar.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	closure0 := lrgen.ga.closure(StartItem(G.rules[0]))
	cfsm.S0 = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		G.EachSymbol(func(A *Symbol) interface{} {
			gotoset, _ := lrgen.ga.gotoSetClosure(s.items, A)
			if gotoset.Empty() { // no transition on A
				return nil
			}
			snew := cfsm.findStateByItems(gotoset)
			if snew == nil {
				snew = cfsm.addState(gotoset)
				if snew.containsCompletedStartRule() {
					snew.Accept = true
				}
				S.Add(snew)
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
			return nil
		})
	}
	tracer().Infof("CFSM has %d states", cfsm.states.Size())
	return cfsm
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, x := range c.states.Values() {
		s := x.(*CFSMState)
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID, edge.label)
	}
	io.WriteString(w, "}\n")
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

// ===========================================================================

// BuildGotoTable builds the GOTO table. This is normally not called directly, but rather
// via CreateTables(). The table covers terminals as well as non-terminals:
// shift targets and goto targets come from the same edge set of the CFSM.
func (lrgen *TableGenerator) BuildGotoTable() *Table {
	statescnt := uint(lrgen.dfa.states.Size())
	gototable := newTable(lrgen.g, statescnt)
	states := lrgen.dfa.states.Iterator()
	for states.Next() {
		state := states.Value().(*CFSMState)
		for _, e := range lrgen.dfa.allEdges(state) {
			tracer().Debugf("GOTO(%d, %v) = %d", state.ID, e.label, e.to.ID)
			gototable.set(state.ID, e.label.TokenType(), int32(e.to.ID))
		}
	}
	return gototable
}

// For building the ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry. If an item's dot is behind the complete RHS of its rule, we produce
// a reduce-entry for the rule for each terminal from FOLLOW(LHS); for the
// completed start rule we produce the accept entry instead, on end-of-input.
//
// The table is returned as a sparse matrix, where every entry may consist of
// up to 2 values, so that a conflicting second action survives long enough
// to be reported.
//
// Shift entries are represented as -1, accept as -2. Reduce entries are
// encoded as the serial no. of the grammar rule to reduce.

// BuildSLR1ActionTable constructs the SLR(1) ACTION table. This method is normally
// not called by clients, but rather via CreateTables(). It builds an action table
// including lookahead (using the FOLLOW-sets created by the grammar analyzer).
func (lrgen *TableGenerator) BuildSLR1ActionTable() *Table {
	statescnt := uint(lrgen.dfa.states.Size())
	actions := newTable(lrgen.g, statescnt)
	lrgen.conflicts = nil
	states := lrgen.dfa.states.Iterator()
	for states.Next() {
		state := states.Value().(*CFSMState)
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, v := range state.items.Values() {
			i := asItem(v)
			A := i.PeekSymbol()
			tracer().Debugf("item in s%d = %v, symbol at dot = %v", state.ID, i, A)
			if A != nil && A.IsTerminal() { // create a shift entry
				lrgen.insertAction(actions, state, A.Value, ShiftAction)
			}
			if A == nil { // dot is behind the RHS, create reduce entries
				if i.rule.Serial == 0 { // start rule completed, accept on eof
					lrgen.insertAction(actions, state, EOFType, AcceptAction)
					continue
				}
				lookaheads := lrgen.ga.Follow(i.rule.LHS)
				tracer().Debugf("    FOLLOW(%v) = %v", i.rule.LHS, lookaheads)
				for _, la := range lookaheads.AppendTo(nil) {
					lrgen.insertAction(actions, state, la, int32(i.rule.Serial))
					tracer().Debugf("    creating reduce_%d action entry @ %v for %v",
						i.rule.Serial, la, i.rule)
				}
			}
		}
	}
	lrgen.HasConflicts = len(lrgen.conflicts) > 0
	return actions
}

// insertAction puts an action into the ACTION table. A second, different
// action for an already filled cell is a conflict: it is recorded, and kept
// in the cell's secondary slot for diagnostics. Identical re-insertions
// (e.g. the same shift reached through two items) are not conflicts.
func (lrgen *TableGenerator) insertAction(actions *Table, state *CFSMState, la int, action int32) {
	a1, a2 := actions.Values(state.ID, slr1.TokType(la))
	if a1 == actions.NullValue() {
		actions.add(state.ID, slr1.TokType(la), action)
		return
	}
	if a1 == action || a2 == action {
		tracer().Debugf("    relax, %s already present", actionString(action))
		return
	}
	laName := fmt.Sprintf("%d", la)
	if t := lrgen.g.Terminal(la); t != nil {
		laName = t.Name
	}
	c := Conflict{
		State:    state.ID,
		Items:    itemSetString(state.items),
		LA:       la,
		LAName:   laName,
		Existing: a1,
		Incoming: action,
	}
	lrgen.conflicts = append(lrgen.conflicts, c)
	tracer().Debugf("    %s", c)
	actions.add(state.ID, slr1.TokType(la), action)
}

// --- Conflicts ----------------------------------------------------------

// Conflict describes a cell of the ACTION table which two competing actions
// claim: the input can neither be decided by one token of lookahead nor
// without it, so the grammar is not SLR(1).
type Conflict struct {
	State    uint   // CFSM state the conflict arises in
	Items    string // the state's item set, for diagnostics
	LA       int    // lookahead token value
	LAName   string // display name of the lookahead terminal
	Existing int32  // action already in the table
	Incoming int32  // second action competing for the cell
}

// Kind returns "shift/reduce" or "reduce/reduce".
func (c Conflict) Kind() string {
	if c.Existing == ShiftAction || c.Incoming == ShiftAction {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d %s on lookahead %q: %s vs %s",
		c.Kind(), c.State, c.Items, c.LAName, actionString(c.Existing), actionString(c.Incoming))
}

// ConflictError is the error CreateTables fails with for grammars which are
// not SLR(1). It lists every conflicting table cell.
type ConflictError struct {
	Grammar   *Grammar
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "grammar %q is not SLR(1), %d conflicting table cells:",
		e.Grammar.Name, len(e.Conflicts))
	for _, c := range e.Conflicts {
		b.WriteString("\n\t")
		b.WriteString(c.String())
	}
	return b.String()
}

// actionString is a short helper to stringify an action table entry.
func actionString(v int32) string {
	switch v {
	case AcceptAction:
		return "accept"
	case ShiftAction:
		return "shift"
	}
	return fmt.Sprintf("reduce %d", v)
}

// --- Parse tables ---------------------------------------------------------

// Table is a parse table (ACTION or GOTO), indexed by CFSM state and token
// value. Terminals and non-terminals share the column space; negative token
// values (end-of-input in particular) are offset by the lowest value in use.
type Table struct {
	matrix *sparse.IntMatrix
	mincol slr1.TokType // lowest value for index j => offset for access
}

// newTable sizes a table for all symbols of the grammar.
func newTable(g *Grammar, statescnt uint) *Table {
	var maxtok, mintok slr1.TokType
	g.EachSymbol(func(A *Symbol) interface{} {
		if A.TokenType() > maxtok { // find minimum and maximum token value
			maxtok = A.TokenType()
		} else if A.TokenType() < mintok {
			mintok = A.TokenType()
		}
		return nil
	})
	extent := uint(maxtok - mintok + 1)
	tracer().Debugf("table of size %d x (%d-%d=%d)", statescnt, maxtok, mintok, extent)
	return &Table{
		matrix: sparse.NewIntMatrix(statescnt, extent, sparse.DefaultNullValue),
		mincol: mintok,
	}
}

func (t *Table) add(i uint, tt slr1.TokType, val int32) {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.add() with index < 0: %d", j))
	}
	t.matrix.Add(i, uint(j), val)
}

func (t *Table) set(i uint, tt slr1.TokType, val int32) {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.set() with index < 0: %d", j))
	}
	t.matrix.Set(i, uint(j), val)
}

// NullValue is the value of empty table cells.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the primary entry at (state, token value), or NullValue.
func (t *Table) Value(i uint, tt slr1.TokType) int32 {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.Value() with index < 0: %d", j))
	}
	return t.matrix.Value(i, uint(j))
}

// Values returns the pair of entries at (state, token value). The secondary
// entry is NullValue except for conflicted cells.
func (t *Table) Values(i uint, tt slr1.TokType) (int32, int32) {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.Values() with index < 0: %d", j))
	}
	return t.matrix.Values(i, uint(j))
}

// Columns returns the token values of all columns holding an entry in the
// given state's row, in ascending order. For an ACTION table this is the set
// of terminals the parser would accept in that state.
func (t *Table) Columns(i uint) []slr1.TokType {
	cols := t.matrix.Columns(i)
	tokvals := make([]slr1.TokType, len(cols))
	for k, j := range cols {
		tokvals[k] = slr1.TokType(j) + t.mincol
	}
	return tokvals
}

// --- HTML export ------------------------------------------------------------

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "GOTO", lrgen.gototable, w)
}

// ActionTableAsHTML exports the SLR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "ACTION", lrgen.actiontable, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, table *Table, w io.Writer) {
	var symvec = make([]*Symbol, 0, len(lrgen.g.terminals)+len(lrgen.g.nonterminals)+1)
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table of size = %d<p>", tname, table.matrix.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	lrgen.g.EachSymbol(func(A *Symbol) interface{} {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", A))
		symvec = append(symvec, A)
		return nil
	})
	io.WriteString(w, "</tr>\n")
	states := lrgen.dfa.states.Iterator()
	var td string // table cell
	for states.Next() {
		state := states.Value().(*CFSMState)
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, A := range symvec {
			v1, v2 := table.Values(state.ID, A.TokenType())
			if v1 == table.NullValue() {
				td = "&nbsp;"
			} else if v2 == table.NullValue() {
				td = fmt.Sprintf("%d", v1)
			} else {
				td = fmt.Sprintf("%d/%d", v1, v2)
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

func itemSetString(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	S.IterateOnce()
	first := true
	for S.Next() {
		item := S.Item().(Item)
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteString(" }")
	return b.String()
}
