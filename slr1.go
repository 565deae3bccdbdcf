package slr1

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to applications to define them. Package lr/scanner re-exports the
// categories of text/scanner for applications which have no need for custom ones.
type TokType int

// TokTypeStringer is a type to be provided by a scanner/parser combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for an integer literal:
//
//	TokType  = Int         // identifier for this kind of tokens (application specific)
//	Lexeme   = "4711"      // lexeme as it appeared in the input stream
//	Value    = 4711        // is an int64 value
//	Span     = 67…71       // occurred from position 67 in the input stream
//	Pos      = 3:12        // line 3, column 12
//
// Token.Value() could either have been set by the scanner, or converted from
// Token.Lexeme() by a parse-tree listener (see slr.Listener).
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
	Pos() Position
}

// TokenRetriever is a type for getting tokens at an input position.
// Most scanner/parser combinations will keep track of input tokens. However, this is not
// a must. Factoring it out into a type helps model this design-decision.
type TokenRetriever func(uint64) Token

// --- Positions --------------------------------------------------------

// Position locates a token in the input text for diagnostics. Line and Col
// are 1-based; the zero Position reads as "unknown".
type Position struct {
	Line int
	Col  int
}

func (p Position) IsKnown() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsKnown() {
		return "-:-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, a parse tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
