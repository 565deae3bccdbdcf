/*
Package scanner defines an interface for scanners to be used with parsers of
package lr.

Three implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', (2) a tokenizer for whitespace-separated token words, and
(3) an adapter for lexmachine, living in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package scanner

import (
	"errors"
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing"
	slr1 "github.com/vxnquish/Compiler-SLR1"
)

// tracer traces with key 'slr1.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("slr1.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Unknown is the category for input a tokenizer could not classify. No
// grammar terminal carries it, so a parser will stop at an Unknown token.
const Unknown = Comment - 1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() slr1.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(_ *scanner.Scanner, msg string) {
		t.Error(errors.New(msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() slr1.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   slr1.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   slr1.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
		pos:    slr1.Position{Line: t.Position.Line, Col: t.Position.Column},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by all the
// tokenizers of this package.
type DefaultToken struct {
	kind   slr1.TokType
	lexeme string
	Val    interface{}
	span   slr1.Span
	pos    slr1.Position
}

func MakeDefaultToken(typ slr1.TokType, lexeme string, span slr1.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// MakeDefaultTokenAt is MakeDefaultToken for tokenizers which track
// line/column positions.
func MakeDefaultTokenAt(typ slr1.TokType, lexeme string, span slr1.Span, pos slr1.Position) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
		pos:    pos,
	}
}

func (t DefaultToken) TokType() slr1.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() slr1.Span {
	return t.span
}

func (t DefaultToken) Pos() slr1.Position {
	return t.pos
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// Lexeme is a helper function to receive a string from a token.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
