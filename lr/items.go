package lr

import (
	"fmt"
	"strings"

	"github.com/vxnquish/Compiler-SLR1/lr/iteratable"
)

// An Item is an LR(0) item for a grammar rule: the rule together with a dot
// position in its RHS, marking how much of the rule has been recognized.
// Items are value types and may be used as set members.
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns an item for a rule with the dot at the start of the RHS,
// plus the symbol after the dot. For epsilon-rules the symbol is nil.
func StartItem(r *Rule) (Item, *Symbol) {
	i := Item{rule: r}
	return i, i.PeekSymbol()
}

// Rule returns the rule this item is for.
func (i Item) Rule() *Rule {
	return i.rule
}

// PeekSymbol returns the symbol after the dot, or nil if the dot is past the
// end of the RHS.
func (i Item) PeekSymbol() *Symbol {
	if i.rule == nil || i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Prefix returns the symbols before the dot. Callers must not modify the
// returned slice.
func (i Item) Prefix() []*Symbol {
	if i.rule == nil {
		return nil
	}
	return i.rule.rhs[:i.dot]
}

// Advance returns an item with the dot moved one symbol to the right.
// Advancing past the end of the RHS returns the item unchanged.
func (i Item) Advance() Item {
	if i.rule == nil || i.dot >= len(i.rule.rhs) {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

func (i Item) String() string {
	if i.rule == nil {
		return "<none>"
	}
	s := fmt.Sprintf("%s ::=", i.rule.LHS)
	for k, sym := range i.rule.rhs {
		if k == i.dot {
			s += " ∙"
		}
		s += " " + sym.Name
	}
	if i.dot == len(i.rule.rhs) {
		s += " ∙"
	}
	return s
}

// newItemSet creates an empty set for items.
func newItemSet() *iteratable.Set {
	return iteratable.NewSet(0)
}

func asItem(x interface{}) Item {
	return x.(Item)
}

// Dump logs the items of an item set, for debugging purposes.
func Dump(S *iteratable.Set) {
	for k, x := range S.Values() {
		tracer().Debugf("  [%d] %s", k, asItem(x))
	}
}

// forGraphviz formats an item set as a Dot-format node label.
func forGraphviz(S *iteratable.Set) string {
	var b strings.Builder
	for _, x := range S.Values() {
		b.WriteString(escapeDot(asItem(x).String()))
		b.WriteString("\\l") // left-justified line break
	}
	return b.String()
}

var dotEscaper = strings.NewReplacer(
	"{", "\\{", "}", "\\}", "|", "\\|", "<", "\\<", ">", "\\>", `"`, `\"`)

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}
