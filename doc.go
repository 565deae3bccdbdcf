/*
Package slr1 is an SLR(1) parsing toolbox.

It takes a context-free grammar, checks it for SLR(1)-suitability, and
produces a table-driven shift-reduce parser for it, together with parse
trees and textual renderings of those trees. Package structure is
as follows:

■ lr: Package lr implements the grammar model, FIRST/FOLLOW analysis, the
LR(0) item-set automaton and the SLR(1) parse tables, together with
supporting data structures like sparse parse-table matrices.

■ lr/slr: Package slr implements the shift-reduce engine driving the tables,
including parse-tree construction and syntax-error reporting.

■ lr/scanner: Package scanner defines the Tokenizer interface between
scanners and parsers, with implementations backed by text/scanner, by
pre-tokenized token-word streams, and by lexmachine (sub-package lexmach).

■ lr/ptree: Package ptree holds parse trees and renders them as fully
parenthesized S-expressions or as indented line listings.

■ minic: Package minic wires scanner, grammar and parser together for a
small C-like example language.

The base package contains data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package slr1
