package scanner

import (
	"fmt"
	"io"

	slr1 "github.com/vxnquish/Compiler-SLR1"
)

// Classifier maps a token word to its token type. The second return value
// is false if the word is not a valid token of the language.
type Classifier func(word string) (slr1.TokType, bool)

// WordTokenizer reads whitespace-separated token words, one token per word.
// This is the input format of pre-tokenized token streams: categories with
// optional lexeme payload, like
//
//	type id:main ( ) { id:x = num:1 ; }
//
// Words are classified by a Classifier; the word itself is kept verbatim as
// the token's lexeme. Every word carries its line/column position and its
// byte span within the input. After the last word a single EOF token is
// returned (and returned again for any further calls).
//
// Words the classifier rejects are reported through the error handler and
// passed on with category Unknown, leaving it to the parser to stop at them.
type WordTokenizer struct {
	input     []byte
	pos       int // byte offset of the reading position
	line, col int // 1-based position of the reading position
	classify  Classifier
	Error     func(error) // error handler
	readErr   error       // deferred error from reading the input
}

var _ Tokenizer = (*WordTokenizer)(nil)

// NewWordTokenizer creates a WordTokenizer, reading input in full.
func NewWordTokenizer(input io.Reader, classify Classifier) *WordTokenizer {
	t := &WordTokenizer{
		line:     1,
		col:      1,
		classify: classify,
		Error:    logError,
	}
	t.input, t.readErr = io.ReadAll(input)
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *WordTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *WordTokenizer) NextToken() slr1.Token {
	if t.readErr != nil {
		t.Error(t.readErr)
		t.readErr = nil
	}
	for t.pos < len(t.input) && isSpace(t.input[t.pos]) {
		if t.input[t.pos] == '\n' {
			t.line++
			t.col = 1
		} else {
			t.col++
		}
		t.pos++
	}
	if t.pos == len(t.input) {
		tracer().Debugf("WordTokenizer reached end of input")
		end := uint64(len(t.input))
		return MakeDefaultTokenAt(EOF, "", slr1.Span{end, end},
			slr1.Position{Line: t.line, Col: t.col})
	}
	start := t.pos
	pos := slr1.Position{Line: t.line, Col: t.col}
	for t.pos < len(t.input) && !isSpace(t.input[t.pos]) {
		t.pos++
		t.col++
	}
	word := string(t.input[start:t.pos])
	span := slr1.Span{uint64(start), uint64(t.pos)}
	typ, ok := t.classify(word)
	if !ok {
		t.Error(fmt.Errorf("unrecognized token word %q at %s", word, pos))
		typ = Unknown
	}
	tracer().Debugf("token word %q = %d at %s", word, typ, pos)
	return MakeDefaultTokenAt(typ, word, span, pos)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
