package diag

// Kind identifies the class of problem a Diagnostic reports, per the
// error-handling table: what raised it and how a caller is expected to
// react.
type Kind int

const (
	// KindInvalidGrammar means the loader could not parse the source, or the
	// grammar is the wrong kind for the requested operation (e.g. a
	// lexer-only grammar handed to the AST builder). Aborts the run.
	KindInvalidGrammar Kind = iota

	// KindUnknownReference means a RuleRef names a rule that does not exist.
	// The element is skipped and the run continues.
	KindUnknownReference

	// KindCycleInLexerRule means regex synthesis found a lexer rule that
	// inlines into itself. The recursive branch is emitted empty and the
	// run continues.
	KindCycleInLexerRule

	// KindAmbiguousIndex means the analyzer could not assign a deterministic
	// ElementIndex to an element the emitter wanted to address directly. Not
	// fatal; the emitter falls back to a list-valued or textual accessor.
	KindAmbiguousIndex

	// KindNamingCollision means automatic name resolution (abbreviation
	// expansion, Left/Right/numeric disambiguation) still produced a
	// duplicate property name. The numbered names are kept; not fatal.
	KindNamingCollision
)

func (k Kind) String() string {
	switch k {
	case KindInvalidGrammar:
		return "Invalid-grammar"
	case KindUnknownReference:
		return "Unknown-reference"
	case KindCycleInLexerRule:
		return "Cycle-in-lexer-rule"
	case KindAmbiguousIndex:
		return "Ambiguous-index"
	case KindNamingCollision:
		return "Naming-collision"
	default:
		return "Unknown-kind"
	}
}

// Fatal reports whether a Diagnostic of this Kind should abort the run that
// produced it, rather than merely being collected.
func (k Kind) Fatal() bool {
	return k == KindInvalidGrammar
}

// DefaultSeverity is the Severity a Diagnostic of this Kind carries unless a
// constructor is told otherwise.
func (k Kind) DefaultSeverity() Severity {
	switch k {
	case KindInvalidGrammar, KindUnknownReference:
		return Error
	case KindCycleInLexerRule:
		return Warning
	case KindAmbiguousIndex, KindNamingCollision:
		return Info
	default:
		return Error
	}
}
