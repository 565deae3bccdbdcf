package minic

import (
	"fmt"

	"github.com/timtadh/lexmachine"

	"github.com/vxnquish/Compiler-SLR1/lr/scanner/lexmach"
)

// Lexer creates a lexmachine lexer for mini-C source text. Keywords and
// literals win over identifiers of the same length; "==" wins over "=" by
// being the longer match. Whitespace and //-comments are skipped.
func Lexer() (*lexmach.LMAdapter, error) {
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), lexmach.Skip)
		lexer.Add([]byte(`==`), makeToken("=="))
		lexer.Add([]byte(`(int)|(float)|(bool)|(void)`), makeToken("type"))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken("id"))
		lexer.Add([]byte(`[0-9]+`), makeToken("num"))
		lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	}
	adapter, err := lexmach.NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		return nil, err
	}
	return adapter, nil
}

func makeToken(s string) lexmachine.Action {
	id, ok := tokenIds[s]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", s))
	}
	return lexmach.MakeToken(s, id)
}
