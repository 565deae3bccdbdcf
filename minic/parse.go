package minic

import (
	"fmt"
	"io"

	"github.com/vxnquish/Compiler-SLR1/lr/ptree"
	"github.com/vxnquish/Compiler-SLR1/lr/scanner"
	"github.com/vxnquish/Compiler-SLR1/lr/slr"
)

// Parse parses mini-C source text. It returns the parse tree, rooted at the
// Program node. Rejected input comes back as a *slr.SyntaxError.
func Parse(source string) (*ptree.Node, error) {
	if err := initParser(); err != nil {
		return nil, err
	}
	scan, err := lexer.Scanner(source)
	if err != nil {
		return nil, err
	}
	return parse(scan)
}

// ParseTokens parses a pre-tokenized token-word stream, e.g.
//
//	type id:main ( ) { type id:x ; id:x = num:1 ; }
//
// with one token per whitespace-separated word and an optional trailing "$".
// It returns the parse tree, rooted at the Program node.
func ParseTokens(input io.Reader) (*ptree.Node, error) {
	if err := initParser(); err != nil {
		return nil, err
	}
	return parse(scanner.NewWordTokenizer(input, ClassifyWord))
}

func parse(tokens scanner.Tokenizer) (*ptree.Node, error) {
	p := slr.NewParser(grammar.Grammar(), tables.GotoTable(), tables.ActionTable())
	accept, err := p.Parse(tables.CFSM().S0, tokens)
	if err != nil {
		return nil, err
	}
	if !accept {
		return nil, fmt.Errorf("input is not a mini-C program")
	}
	return p.Tree(), nil
}
