/*
Package minic provides a front end for mini-C, a small C-like language with
declarations, functions, statements and expressions. The package carries a
fixed SLR(1) grammar together with two input paths:

▪︎ raw source text, tokenized by a lexmachine-backed lexer:

	tree, err := minic.Parse("int x = 1 + 2 ;")

▪︎ pre-tokenized token-word streams, one token per whitespace-separated word,
with an optional lexeme payload after a colon:

	tree, err := minic.ParseTokens(strings.NewReader("type id:x = num:1 ;"))

Both return the parse tree rooted at the Program node; renderings are
provided by package lr/ptree. The dangling else is resolved grammatically
(matched/unmatched statements), so parse table construction never reports a
conflict for this grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package minic

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slr1.minic'.
func tracer() tracing.Trace {
	return tracing.Select("slr1.minic")
}
