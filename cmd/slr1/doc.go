/*
Command slr1 parses mini-C input with a table-driven SLR(1) parser and
prints the resulting parse tree. Input is mini-C source text, or a
pre-tokenized stream of token words when -t is set.

Usage:

	slr1 [flags] [FILE]

Input is read from FILE, or from stdin when no file is given. The flags are:

	-r, --render MODE
		Render accepted parse trees as "sexpr" (a fully parenthesized
		s-expression, the default), "indent" (one line per node, children
		indented), or "tree" (a box-drawing terminal tree).

	-t, --tokens
		Treat the input as a pre-tokenized token-word stream, e.g.
		"type id:main ( ) { } $", instead of mini-C source text.

	-c, --config FILE
		Read settings from a TOML config file with keys "render", "indent"
		(indentation width) and "trace". Command line flags take precedence
		over config file entries.

	--trace LEVEL
		Set the trace level [Debug|Info|Error].

	--tables FILE
		Write the generated ACTION and GOTO tables as HTML to FILE.

	--dot FILE
		Write the parser's characteristic finite-state machine in GraphViz
		DOT format to FILE.

	-i, --interactive
		Start an interactive session. Every line read is parsed and
		rendered. Meta commands: \render MODE switches the render mode,
		\tables and \dot print the parse tables resp. the state machine,
		\quit (or ctrl-D) exits.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slr1.cli'
func tracer() tracing.Trace {
	return tracing.Select("slr1.cli")
}
