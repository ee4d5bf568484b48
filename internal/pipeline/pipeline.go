// Package pipeline wires the core's stages together into the single
// end-to-end run a driver needs: load a .g4 source, analyze it, derive an
// AST model and/or synthesize a TextMate grammar, and render the chosen
// outputs through an emit.Emitter. Every collaborator is resolved from
// Options up front, then one Run call executes the whole pass.
package pipeline

import (
	"fmt"
	"os"

	"github.com/dekarrin/grammarforge/internal/core/astmodel"
	"github.com/dekarrin/grammarforge/internal/core/config"
	"github.com/dekarrin/grammarforge/internal/core/diag"
	"github.com/dekarrin/grammarforge/internal/core/emit"
	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/dekarrin/grammarforge/internal/core/textmate"
	"github.com/dekarrin/grammarforge/internal/g4"
)

// Options configures a Run.
type Options struct {
	// GrammarPath is the .g4 source to load.
	GrammarPath string

	// SkipTokenVocab suppresses following a tokenVocab option in the
	// loaded grammar (passed straight through to g4.LoadOptions).
	SkipTokenVocab bool

	// Config steers name derivation and syntax-highlighting. The zero
	// value uses built-in defaults.
	Config config.Config

	// Language names the TextMate grammar's target language, used only
	// when BuildSyntaxHighlighting is set.
	Language string

	BuildAstModel           bool
	BuildSyntaxHighlighting bool
}

// Result holds everything a Run produced: the loaded/analyzed grammar, the
// diagnostics accumulated across every stage that ran, and whichever of
// the two derived artifacts Options asked for (nil if not requested).
type Result struct {
	Grammar  *grammar.Grammar
	Analysis *grammar.Analysis
	Diags    diag.Bag

	AstModel         *astmodel.Model
	SyntaxHighlight *textmate.Document
}

// Run executes one Load -> Analyze -> {astmodel, textmate} pass. It returns
// an error only for a failure to even read the grammar file; malformed or
// semantically questionable grammar content is reported through
// Result.Diags instead.
func Run(opts Options) (*Result, error) {
	g, diags, err := g4.Load(opts.GrammarPath, g4.LoadOptions{SkipTokenVocab: opts.SkipTokenVocab})
	if err != nil {
		return nil, fmt.Errorf("load grammar: %w", err)
	}
	d := &diags

	analysis := grammar.Analyze(g)

	res := &Result{Grammar: g, Analysis: analysis}

	if opts.BuildAstModel {
		if g.Kind == grammar.LexerOnly {
			d.Add(diag.InvalidGrammar(diag.Position{File: opts.GrammarPath},
				"grammar %q declares no parser rules; an AST model cannot be derived from a lexer-only grammar", g.Name))
		} else {
			b := astmodel.NewBuilder(g, analysis, d, opts.Config.AstModelOptions())
			res.AstModel = b.Build()
		}
	}

	if opts.BuildSyntaxHighlighting {
		res.SyntaxHighlight = textmate.Synthesize(g, d, opts.Config.TextMateOptions(opts.Language))
	}

	res.Diags = *d
	return res, nil
}

// SaveDiagnostics persists d to a sidecar file at path via its
// MarshalBinary encoding, so a driver invocation can be replayed or
// inspected later without rerunning the pipeline.
func SaveDiagnostics(d diag.Bag, path string) error {
	data, err := d.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode diagnostics: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write diagnostics sidecar: %w", err)
	}
	return nil
}

// LoadDiagnostics restores a Bag previously persisted with SaveDiagnostics.
func LoadDiagnostics(path string) (diag.Bag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return diag.Bag{}, fmt.Errorf("read diagnostics sidecar: %w", err)
	}
	var d diag.Bag
	if err := d.UnmarshalBinary(data); err != nil {
		return diag.Bag{}, err
	}
	return d, nil
}

// EmitAstModel renders a built AST model through e into w. It is separated
// from Run so a caller can re-render the same
// built model through a different Emitter without re-running Load/Analyze.
func EmitAstModel(e emit.Emitter, w *emit.IndentedWriter, m *astmodel.Model) {
	emit.RenderModel(e, w, m)
}
