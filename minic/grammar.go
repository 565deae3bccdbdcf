package minic

import (
	"sync"

	"github.com/vxnquish/Compiler-SLR1/lr"
	"github.com/vxnquish/Compiler-SLR1/lr/scanner/lexmach"
)

// --- Grammar ---------------------------------------------------------------

// Program    ::= DeclList
// DeclList   ::= Decl DeclList | ε
// Decl       ::= VarDecl | FuncDecl
// VarDecl    ::= type id ; | type id = Expr ;
// FuncDecl   ::= type id ( ParamList ) Block
// ParamList  ::= Param ParamRest | ε
// ParamRest  ::= , Param ParamRest | ε
// Param      ::= type id
// Block      ::= { StmtList }
// StmtList   ::= Stmt StmtList | ε
// Stmt       ::= MatchedStmt | UnmatchedStmt
// MatchedStmt   ::= if ( Expr ) MatchedStmt else MatchedStmt
//                 | while ( Expr ) MatchedStmt
//                 | for ( Expr ; Expr ; Expr ) MatchedStmt
//                 | return Expr ; | VarDecl | ExprStmt | Block
// UnmatchedStmt ::= if ( Expr ) Stmt
//                 | if ( Expr ) MatchedStmt else UnmatchedStmt
//                 | while ( Expr ) UnmatchedStmt
//                 | for ( Expr ; Expr ; Expr ) UnmatchedStmt
// ExprStmt   ::= id = Expr ;
// Expr       ::= EqlExpr
// EqlExpr    ::= EqlExpr == AddExpr | AddExpr
// AddExpr    ::= AddExpr + MulExpr | MulExpr
// MulExpr    ::= MulExpr * UnaryExpr | UnaryExpr
// UnaryExpr  ::= - UnaryExpr | Primary
// Primary    ::= id ( ArgList ) | id | num | ( Expr )
// ArgList    ::= Expr ArgRest | ε
// ArgRest    ::= , Expr ArgRest | ε
//
// The matched/unmatched statement split binds each else to the nearest
// unmatched if, which keeps the grammar SLR(1).
func makeGrammar() (*lr.LRAnalysis, error) {
	b := lr.NewGrammarBuilder("mini-C")
	b.LHS("Program").N("DeclList").End()
	b.LHS("DeclList").N("Decl").N("DeclList").End()
	b.LHS("DeclList").Epsilon()
	b.LHS("Decl").N("VarDecl").End()
	b.LHS("Decl").N("FuncDecl").End()
	b.LHS("VarDecl").T(Token("type")).T(Token("id")).T(Token(";")).End()
	b.LHS("VarDecl").T(Token("type")).T(Token("id")).T(Token("=")).N("Expr").T(Token(";")).End()
	b.LHS("FuncDecl").T(Token("type")).T(Token("id")).T(Token("(")).N("ParamList").T(Token(")")).N("Block").End()
	b.LHS("ParamList").N("Param").N("ParamRest").End()
	b.LHS("ParamList").Epsilon()
	b.LHS("ParamRest").T(Token(",")).N("Param").N("ParamRest").End()
	b.LHS("ParamRest").Epsilon()
	b.LHS("Param").T(Token("type")).T(Token("id")).End()
	b.LHS("Block").T(Token("{")).N("StmtList").T(Token("}")).End()
	b.LHS("StmtList").N("Stmt").N("StmtList").End()
	b.LHS("StmtList").Epsilon()
	b.LHS("Stmt").N("MatchedStmt").End()
	b.LHS("Stmt").N("UnmatchedStmt").End()
	b.LHS("MatchedStmt").T(Token("if")).T(Token("(")).N("Expr").T(Token(")")).
		N("MatchedStmt").T(Token("else")).N("MatchedStmt").End()
	b.LHS("MatchedStmt").T(Token("while")).T(Token("(")).N("Expr").T(Token(")")).N("MatchedStmt").End()
	b.LHS("MatchedStmt").T(Token("for")).T(Token("(")).N("Expr").T(Token(";")).N("Expr").T(Token(";")).
		N("Expr").T(Token(")")).N("MatchedStmt").End()
	b.LHS("MatchedStmt").T(Token("return")).N("Expr").T(Token(";")).End()
	b.LHS("MatchedStmt").N("VarDecl").End()
	b.LHS("MatchedStmt").N("ExprStmt").End()
	b.LHS("MatchedStmt").N("Block").End()
	b.LHS("UnmatchedStmt").T(Token("if")).T(Token("(")).N("Expr").T(Token(")")).N("Stmt").End()
	b.LHS("UnmatchedStmt").T(Token("if")).T(Token("(")).N("Expr").T(Token(")")).
		N("MatchedStmt").T(Token("else")).N("UnmatchedStmt").End()
	b.LHS("UnmatchedStmt").T(Token("while")).T(Token("(")).N("Expr").T(Token(")")).N("UnmatchedStmt").End()
	b.LHS("UnmatchedStmt").T(Token("for")).T(Token("(")).N("Expr").T(Token(";")).N("Expr").T(Token(";")).
		N("Expr").T(Token(")")).N("UnmatchedStmt").End()
	b.LHS("ExprStmt").T(Token("id")).T(Token("=")).N("Expr").T(Token(";")).End()
	b.LHS("Expr").N("EqlExpr").End()
	b.LHS("EqlExpr").N("EqlExpr").T(Token("==")).N("AddExpr").End()
	b.LHS("EqlExpr").N("AddExpr").End()
	b.LHS("AddExpr").N("AddExpr").T(Token("+")).N("MulExpr").End()
	b.LHS("AddExpr").N("MulExpr").End()
	b.LHS("MulExpr").N("MulExpr").T(Token("*")).N("UnaryExpr").End()
	b.LHS("MulExpr").N("UnaryExpr").End()
	b.LHS("UnaryExpr").T(Token("-")).N("UnaryExpr").End()
	b.LHS("UnaryExpr").N("Primary").End()
	b.LHS("Primary").T(Token("id")).T(Token("(")).N("ArgList").T(Token(")")).End()
	b.LHS("Primary").T(Token("id")).End()
	b.LHS("Primary").T(Token("num")).End()
	b.LHS("Primary").T(Token("(")).N("Expr").T(Token(")")).End()
	b.LHS("ArgList").N("Expr").N("ArgRest").End()
	b.LHS("ArgList").Epsilon()
	b.LHS("ArgRest").T(Token(",")).N("Expr").N("ArgRest").End()
	b.LHS("ArgRest").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	return lr.Analysis(g), nil
}

// --- One-time construction ---------------------------------------------

var grammar *lr.LRAnalysis
var tables *lr.TableGenerator
var lexer *lexmach.LMAdapter

var startOnce sync.Once // monitors one-time creation of lexer, grammar and tables
var startErr error

func initParser() error {
	startOnce.Do(func() {
		tracer().Infof("creating mini-C lexer")
		if lexer, startErr = Lexer(); startErr != nil {
			return
		}
		tracer().Infof("creating mini-C grammar")
		if grammar, startErr = makeGrammar(); startErr != nil {
			return
		}
		tables = lr.NewTableGenerator(grammar)
		// the grammar is SLR(1); a conflict here is a programming error
		startErr = tables.CreateTables()
	})
	return startErr
}

// Grammar returns the mini-C grammar, analysed.
func Grammar() (*lr.LRAnalysis, error) {
	if err := initParser(); err != nil {
		return nil, err
	}
	return grammar, nil
}

// Tables returns the generated SLR(1) parse tables for the mini-C grammar.
func Tables() (*lr.TableGenerator, error) {
	if err := initParser(); err != nil {
		return nil, err
	}
	return tables, nil
}
