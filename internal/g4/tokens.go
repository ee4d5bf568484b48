package g4

import "github.com/dekarrin/grammarforge/internal/g4lex"

// Token classes for ANTLR4 `.g4` grammar source. CHARSET is matched whole
// (the bracket contents are reparsed by the charset decoder rather than
// tokenized element-by-element) so the g4lex composed regex never has to
// special-case what's inside the brackets.
var (
	clGrammarKw = g4lex.NewTokenClass("grammar", "'grammar'")
	clLexerKw   = g4lex.NewTokenClass("lexer", "'lexer'")
	clParserKw  = g4lex.NewTokenClass("parser", "'parser'")
	clFragment  = g4lex.NewTokenClass("fragment", "'fragment'")
	clOptions   = g4lex.NewTokenClass("options", "'options'")
	clTokensKw  = g4lex.NewTokenClass("tokens", "'tokens'")
	clImportKw  = g4lex.NewTokenClass("import", "'import'")

	clIdent   = g4lex.NewTokenClass("ident", "identifier")
	clStrLit  = g4lex.NewTokenClass("strlit", "string literal")
	clCharSet = g4lex.NewTokenClass("charset", "character set")

	clColon      = g4lex.NewTokenClass("colon", "':'")
	clSemi       = g4lex.NewTokenClass("semi", "';'")
	clPipe       = g4lex.NewTokenClass("pipe", "'|'")
	clLParen     = g4lex.NewTokenClass("lparen", "'('")
	clRParen     = g4lex.NewTokenClass("rparen", "')'")
	clLBrace     = g4lex.NewTokenClass("lbrace", "'{'")
	clRBrace     = g4lex.NewTokenClass("rbrace", "'}'")
	clStarLazy   = g4lex.NewTokenClass("starlazy", "'*?'")
	clPlusLazy   = g4lex.NewTokenClass("pluslazy", "'+?'")
	clOptLazy    = g4lex.NewTokenClass("optlazy", "'??'")
	clStar       = g4lex.NewTokenClass("star", "'*'")
	clPlus       = g4lex.NewTokenClass("plus", "'+'")
	clQuestion   = g4lex.NewTokenClass("question", "'?'")
	clArrow      = g4lex.NewTokenClass("arrow", "'->'")
	clComma      = g4lex.NewTokenClass("comma", "','")
	clPlusAssign = g4lex.NewTokenClass("plusassign", "'+='")
	clAssign     = g4lex.NewTokenClass("assign", "'='")
	clHash       = g4lex.NewTokenClass("hash", "'#'")
	clTilde      = g4lex.NewTokenClass("tilde", "'~'")
	clDot        = g4lex.NewTokenClass("dot", "'.'")
)
