/*
Grammarforge derives an AST code model and/or a TextMate syntax-highlighting
grammar from an ANTLR4 (.g4) grammar description.

Usage:

	grammarforge [flags]

The flags are:

	-v, --version
		Give the current version of grammarforge and then exit.

	-g, --grammar FILE
		The .g4 grammar source to load. Required, including with --repl.

	-c, --config FILE
		A TOML configuration file steering name derivation and
		syntax-highlighting. Defaults are used when absent.

	--ast
		Build the AST code model and render it as Go source via the
		reference emitter (internal/goemit).

	--ast-out FILE
		Where to write the rendered AST Go source. Defaults to stdout.

	--ast-package NAME
		Package name for the rendered AST source. Defaults to "ast".

	--syntax
		Synthesize the TextMate syntax-highlighting grammar.

	--syntax-out FILE
		Where to write the TextMate grammar JSON. Defaults to stdout.

	--lang NAME
		Target language name embedded in the TextMate scope names.
		Defaults to the grammar's own name, lowercased.

	--skip-token-vocab
		Suppress following a tokenVocab option to merge in a sibling
		lexer grammar.

	--diag-out FILE
		Persist the run's diagnostics to a binary sidecar file for later
		replay (see internal/pipeline.SaveDiagnostics).

	-r, --repl
		After loading --grammar, start an interactive session
		re-synthesizing the TextMate regex for one lexer rule name at a
		time, for grammar authors iterating on a single rule. Requires
		--grammar.

Diagnostics are printed to stderr as a table; the process exits nonzero
if the highest collected severity is Error.
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dekarrin/grammarforge/internal/core/config"
	"github.com/dekarrin/grammarforge/internal/core/diag"
	"github.com/dekarrin/grammarforge/internal/core/textmate"
	"github.com/dekarrin/grammarforge/internal/g4"
	"github.com/dekarrin/grammarforge/internal/goemit"
	"github.com/dekarrin/grammarforge/internal/pipeline"
	"github.com/dekarrin/grammarforge/internal/version"
	"github.com/chzyer/readline"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue loading the grammar or its configuration.
	ExitInitError

	// ExitDiagError indicates the run completed but diagnostics reached
	// Error severity.
	ExitDiagError
)

var (
	returnCode int = ExitSuccess

	flagVersion    = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile    = pflag.StringP("grammar", "g", "", "The .g4 grammar source to load")
	configFile     = pflag.StringP("config", "c", "", "A TOML configuration file steering name derivation and syntax-highlighting")
	buildAst       = pflag.Bool("ast", false, "Build the AST code model")
	astOut         = pflag.String("ast-out", "", "Where to write the rendered AST Go source (default stdout)")
	astPackage     = pflag.String("ast-package", "ast", "Package name for the rendered AST source")
	buildSyntax    = pflag.Bool("syntax", false, "Synthesize the TextMate syntax-highlighting grammar")
	syntaxOut      = pflag.String("syntax-out", "", "Where to write the TextMate grammar JSON (default stdout)")
	language       = pflag.String("lang", "", "Target language name embedded in TextMate scope names")
	skipTokenVocab = pflag.Bool("skip-token-vocab", false, "Suppress following a tokenVocab option")
	diagOut        = pflag.String("diag-out", "", "Persist the run's diagnostics to a binary sidecar file")
	replMode       = pflag.BoolP("repl", "r", false, "Start an interactive single-rule regex session")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if *grammarFile == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --grammar is required")
		returnCode = ExitInitError
		return
	}

	cfg := config.Config{}
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}

	if *replMode {
		runRepl(*grammarFile, *skipTokenVocab)
		return
	}

	res, err := pipeline.Run(pipeline.Options{
		GrammarPath:             *grammarFile,
		SkipTokenVocab:          *skipTokenVocab,
		Config:                  cfg,
		Language:                *language,
		BuildAstModel:           *buildAst,
		BuildSyntaxHighlighting: *buildSyntax,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if res.Diags.Len() > 0 {
		fmt.Fprintln(os.Stderr, res.Diags.String())
	}

	if res.AstModel != nil {
		out := goemit.Render(res.AstModel, *astPackage)
		if err := writeOutput(*astOut, []byte(out)); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}

	if res.SyntaxHighlight != nil {
		out, err := json.MarshalIndent(res.SyntaxHighlight, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		if err := writeOutput(*syntaxOut, out); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}

	if *diagOut != "" {
		if err := pipeline.SaveDiagnostics(res.Diags, *diagOut); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}

	if res.Diags.HighestSeverity() == diag.Error {
		returnCode = ExitDiagError
	}
}

// writeOutput writes data to path, or to stdout if path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// runRepl loads grammarPath once, then re-synthesizes the TextMate regex
// for one lexer rule name at a time read from interactive input, so a
// grammar author can iterate on a single rule without rerunning the whole
// pipeline.
func runRepl(grammarPath string, skipTokenVocab bool) {
	g, diags, err := g4.Load(grammarPath, g4.LoadOptions{SkipTokenVocab: skipTokenVocab})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	if diags.Len() > 0 {
		fmt.Fprintln(os.Stderr, diags.String())
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt: "rule> ",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: create readline config: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer rl.Close()

	fmt.Println("grammarforge repl: enter a lexer rule name to see its synthesized regex, or Ctrl-D to quit")

	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		if line == "" {
			continue
		}

		d := diag.NewBag()
		regex, ok := textmate.SynthesizeRule(g, d, line)
		if !ok {
			fmt.Printf("no lexer rule named %q\n", line)
			continue
		}
		if d.Len() > 0 {
			fmt.Println(d.String())
		}
		fmt.Println(regex)
	}
}
