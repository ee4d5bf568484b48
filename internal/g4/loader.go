package g4

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/grammarforge/internal/core/diag"
	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/dekarrin/grammarforge/internal/g4lex"
)

// LoadOptions configures Load. It is a struct (rather than Load taking no
// options at all) so a caller that wants to suppress tokenVocab merging
// (e.g. when loading the sibling lexer file itself, to avoid following a
// tokenVocab cycle back to the parser grammar) has a place to say so.
type LoadOptions struct {
	// SkipTokenVocab disables following a `tokenVocab` option to merge in
	// a sibling lexer grammar's rules.
	SkipTokenVocab bool
}

// Load reads and parses the `.g4` source at path into a grammar.Grammar,
// following a `tokenVocab` option (if present and not suppressed) to merge
// in the named sibling lexer grammar's rules. Diagnostics are collected
// into the returned Bag rather than returned as part of err; err is
// reserved for failures to even read the file.
func Load(path string, opts LoadOptions) (*grammar.Grammar, diag.Bag, error) {
	d := diag.NewBag()

	g, err := loadFile(path, d)
	if err != nil {
		return nil, *d, err
	}

	if !opts.SkipTokenVocab {
		if vocabName, ok := g.Options["tokenVocab"]; ok && vocabName != "" {
			mergeTokenVocab(g, path, vocabName, d)
		}
	}

	return g, *d, nil
}

func loadFile(path string, d *diag.Bag) (*grammar.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar file: %w", err)
	}

	stream, err := g4lex.LexImmediately(newLexer(), data)
	if err != nil {
		var lexErr *g4lex.LexError
		if errors.As(err, &lexErr) {
			pos := diag.Position{File: path, Line: lexErr.Tok.Line(), Col: lexErr.Tok.LinePos()}
			d.Add(diag.WrapInvalidGrammar(lexErr, pos, "%s", lexErr.Message))
			return &grammar.Grammar{}, nil
		}
		return nil, fmt.Errorf("tokenize grammar file: %w", err)
	}

	var toks []g4lex.Token
	for stream.HasNext() {
		toks = append(toks, stream.Next())
	}

	p := newParser(toks, path, d)
	return p.parse(), nil
}

// mergeTokenVocab loads the sibling lexer grammar tokenVocab names (a
// file named <vocabName>.g4 in the same directory as the parser grammar
// that declared the option) and appends its lexer rules to g, so a
// split lexer/parser grammar pair behaves as one Combined grammar for
// analysis and synthesis purposes.
func mergeTokenVocab(g *grammar.Grammar, parserPath, vocabName string, d *diag.Bag) {
	dir := filepath.Dir(parserPath)
	vocabPath := filepath.Join(dir, vocabName+".g4")

	vocabGrammar, err := loadFile(vocabPath, d)
	if err != nil {
		d.Add(diag.WrapInvalidGrammar(err, diag.Position{File: parserPath}, "tokenVocab %q: %s", vocabName, vocabPath))
		return
	}

	g.LexerRules = append(g.LexerRules, vocabGrammar.LexerRules...)
	if g.Kind == grammar.ParserOnly {
		g.Kind = grammar.Combined
	}
}
