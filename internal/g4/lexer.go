// Package g4 implements the grammar loader: a hand-rolled
// recursive-descent reader for ANTLR4 `.g4` sources (lexer grammar, parser
// grammar, or combined grammar) that produces a core/grammar.Grammar,
// including `tokenVocab` sibling-lexer merging.
//
// Tokenizing is delegated to internal/g4lex; this file is the one place
// that knows what an ANTLR grammar file's lexical grammar actually looks
// like.
package g4

import "github.com/dekarrin/grammarforge/internal/g4lex"

func newLexer() g4lex.Lexer {
	lx := g4lex.NewLexer()

	classes := []g4lex.TokenClass{
		clGrammarKw, clLexerKw, clParserKw, clFragment, clOptions, clTokensKw, clImportKw,
		clIdent, clStrLit, clCharSet,
		clColon, clSemi, clPipe, clLParen, clRParen, clLBrace, clRBrace,
		clStarLazy, clPlusLazy, clOptLazy, clStar, clPlus, clQuestion,
		clArrow, clComma, clPlusAssign, clAssign, clHash, clTilde, clDot,
	}
	for _, cl := range classes {
		lx.RegisterClass(cl, "")
	}

	// Keywords are registered before the identifier pattern so the
	// first-defined tie-break picks them over a same-length ident match.
	must(lx.AddPattern(`grammar`, g4lex.LexAs(clGrammarKw.ID()), ""))
	must(lx.AddPattern(`lexer`, g4lex.LexAs(clLexerKw.ID()), ""))
	must(lx.AddPattern(`parser`, g4lex.LexAs(clParserKw.ID()), ""))
	must(lx.AddPattern(`fragment`, g4lex.LexAs(clFragment.ID()), ""))
	must(lx.AddPattern(`options`, g4lex.LexAs(clOptions.ID()), ""))
	must(lx.AddPattern(`tokens`, g4lex.LexAs(clTokensKw.ID()), ""))
	must(lx.AddPattern(`import`, g4lex.LexAs(clImportKw.ID()), ""))

	// Only non-capturing groups may appear inside a registered pattern: the
	// composed super-pattern maps capture group i back to pattern i, so a
	// capturing group inside one pattern would shift every later index.
	must(lx.AddPattern(`[a-zA-Z_][a-zA-Z0-9_]*`, g4lex.LexAs(clIdent.ID()), ""))
	must(lx.AddPattern(`'(?:\\.|[^'\\])*'`, g4lex.LexAs(clStrLit.ID()), ""))
	must(lx.AddPattern(`\[(?:\\.|[^\]\\])*\]`, g4lex.LexAs(clCharSet.ID()), ""))

	must(lx.AddPattern(`:`, g4lex.LexAs(clColon.ID()), ""))
	must(lx.AddPattern(`;`, g4lex.LexAs(clSemi.ID()), ""))
	must(lx.AddPattern(`\|`, g4lex.LexAs(clPipe.ID()), ""))
	must(lx.AddPattern(`\(`, g4lex.LexAs(clLParen.ID()), ""))
	must(lx.AddPattern(`\)`, g4lex.LexAs(clRParen.ID()), ""))
	must(lx.AddPattern(`\{`, g4lex.LexAs(clLBrace.ID()), ""))
	must(lx.AddPattern(`\}`, g4lex.LexAs(clRBrace.ID()), ""))
	must(lx.AddPattern(`\*\?`, g4lex.LexAs(clStarLazy.ID()), ""))
	must(lx.AddPattern(`\+\?`, g4lex.LexAs(clPlusLazy.ID()), ""))
	must(lx.AddPattern(`\?\?`, g4lex.LexAs(clOptLazy.ID()), ""))
	must(lx.AddPattern(`\*`, g4lex.LexAs(clStar.ID()), ""))
	must(lx.AddPattern(`\+`, g4lex.LexAs(clPlus.ID()), ""))
	must(lx.AddPattern(`\?`, g4lex.LexAs(clQuestion.ID()), ""))
	must(lx.AddPattern(`->`, g4lex.LexAs(clArrow.ID()), ""))
	must(lx.AddPattern(`,`, g4lex.LexAs(clComma.ID()), ""))
	must(lx.AddPattern(`\+=`, g4lex.LexAs(clPlusAssign.ID()), ""))
	must(lx.AddPattern(`=`, g4lex.LexAs(clAssign.ID()), ""))
	must(lx.AddPattern(`#`, g4lex.LexAs(clHash.ID()), ""))
	must(lx.AddPattern(`~`, g4lex.LexAs(clTilde.ID()), ""))
	must(lx.AddPattern(`\.`, g4lex.LexAs(clDot.ID()), ""))

	must(lx.AddPattern(`//[^\n]*`, g4lex.Discard(), ""))
	must(lx.AddPattern(`/\*(?:[^*]|\*[^/])*\*/`, g4lex.Discard(), ""))
	must(lx.AddPattern(`[ \t\r\n]+`, g4lex.Discard(), ""))

	return lx
}

// must panics on a pattern-registration error; every pattern here is a
// fixed literal regex known at compile time, so a failure means this file
// itself has a bug, not that input was malformed.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
