package minic

import (
	"fmt"
	"strings"
	"sync"

	slr1 "github.com/vxnquish/Compiler-SLR1"
	"github.com/vxnquish/Compiler-SLR1/lr"
	"github.com/vxnquish/Compiler-SLR1/lr/scanner"
)

// The tokens representing literal one-char lexemes
var literals = []string{";", "=", "(", ")", ",", "{", "}", "+", "*", "-"}

// The keyword tokens
var keywords = []string{"if", "else", "while", "for", "return"}

// The type keywords; all of them lex as the single terminal "type"
var typeWords = []string{"int", "float", "bool", "void"}

// tokenIds will be set in initTokens()
var tokenIds map[string]int // a map from token names to their token values

var initOnce sync.Once // monitors one-time initialization

func initTokens() {
	initOnce.Do(func() {
		tokenIds = make(map[string]int)
		tokenIds["id"] = scanner.Ident
		tokenIds["num"] = scanner.Int
		tokenIds["type"] = 1
		tokenIds["=="] = 2
		for i, kw := range keywords {
			tokenIds[kw] = 3 + i
		}
		for _, lit := range literals {
			tokenIds[lit] = int(lit[0])
		}
	})
}

// Token returns a token name and its value.
func Token(t string) (string, int) {
	initTokens()
	id, ok := tokenIds[t]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", t))
	}
	return t, id
}

// ClassifyWord maps one word of a pre-tokenized token stream to its grammar
// terminal. This is the normalization the token-word format calls for:
//
//	▪︎ "$" is the explicit end-of-input marker
//	▪︎ type keywords (int, float, bool, void) and "type" count as type
//	▪︎ "id", "id:main", "identifier" count as id
//	▪︎ "num", "num:42", "number" and digit strings count as num
//	▪︎ other words (with an optional ":lexeme" payload stripped) must
//	  spell a keyword, operator or punctuation terminal
//
// The second return value is false for words which are no mini-C token.
func ClassifyWord(word string) (slr1.TokType, bool) {
	initTokens()
	if word == "$" {
		return lr.EOFType, true
	}
	for _, tw := range typeWords {
		if word == tw {
			return slr1.TokType(tokenIds["type"]), true
		}
	}
	switch {
	case strings.HasPrefix(word, "id") || word == "identifier":
		return slr1.TokType(tokenIds["id"]), true
	case strings.HasPrefix(word, "num") || word == "number" || isDigits(word):
		return slr1.TokType(tokenIds["num"]), true
	}
	base := word
	if i := strings.IndexByte(word, ':'); i >= 0 {
		base = word[:i]
	}
	if id, ok := tokenIds[base]; ok {
		return slr1.TokType(id), true
	}
	return 0, false
}

func isDigits(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
