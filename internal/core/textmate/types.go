// Package textmate implements the regex synthesizer: it translates
// each lexer rule of an analyzed grammar.Grammar into a TextMate/Oniguruma
// regex pattern, then assembles the set of patterns into a TextMate
// grammar document.
//
// The synthesizer never executes the regexes it builds against source
// text; it only builds the regex strings and the document structure a
// TextMate-compatible editor consumes.
package textmate

import "github.com/dekarrin/grammarforge/internal/core/grammar"

// CharSetItem aliases grammar.CharSetItem so the rest of this package can
// refer to a charset range without importing grammar directly everywhere.
type CharSetItem = grammar.CharSetItem

// RuleSetting overrides the TextMate scope name the synthesizer would
// otherwise derive for a rule (or an implicit-literal token named by its
// quoted text).
type RuleSetting struct {
	TextMateScopeName string
}

// ConflictGroup declares a set of rule names that must be merged and
// ordered, most specific (longest/most priority) first, rather than left
// to the automatic literal-prefix collision detector.
type ConflictGroup struct {
	Rules []string
}

// Options configures the synthesizer, mirroring the
// SyntaxHighlighting.* configuration keys.
type Options struct {
	// Language names the TextMate document's source language, used to
	// build default scope names ("<category>.<rule>.<Language>").
	Language string

	RuleSettings  map[string]RuleSetting
	RuleConflicts []ConflictGroup
}

// Pattern is one synthesized lexer rule: its final regex and the scope
// name a highlighter should apply to a match.
type Pattern struct {
	RuleName string
	Scope    string
	Regex    string
	Keyword  bool
}

// Document is the root of a TextMate grammar: the repository entries that
// back it, and the top-level pattern references (by name) in match order.
type Document struct {
	ScopeName string
	FileTypes []string

	// Patterns is the effective match order: after longest-match
	// reordering and merging, this may have fewer entries than the
	// grammar had lexer rules (merged rules collapse to one entry; a rule
	// consumed entirely into a merge group does not get its own entry).
	Patterns []*Pattern

	// Repository indexes every Pattern by rule name, including ones an
	// inlined reference consumed but that still keep their own
	// repository entry for tooling that wants it.
	Repository map[string]*Pattern
}
