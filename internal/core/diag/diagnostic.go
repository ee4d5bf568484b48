package diag

import "fmt"

// Position locates a Diagnostic in grammar source text. Col and Line are
// 1-indexed; Line of 0 means no position is known.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	if p.Col == 0 {
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Diagnostic is a single severity-tagged message collected during a run. It
// implements error so it can be returned directly for the Kinds that abort
// a run (KindInvalidGrammar), and wrapped so the low-level cause survives.
type Diagnostic struct {
	sev  Severity
	kind Kind
	msg  string
	pos  Position
	wrap error
}

func (d Diagnostic) Error() string {
	if d.pos.File == "" {
		return fmt.Sprintf("%s: %s", d.kind, d.msg)
	}
	return fmt.Sprintf("%s: %s: %s", d.pos, d.kind, d.msg)
}

// Unwrap gives the lower-level error this Diagnostic was constructed from,
// if any.
func (d Diagnostic) Unwrap() error {
	return d.wrap
}

func (d Diagnostic) Severity() Severity { return d.sev }
func (d Diagnostic) Kind() Kind         { return d.kind }
func (d Diagnostic) Message() string    { return d.msg }
func (d Diagnostic) Position() Position { return d.pos }

func newDiag(kind Kind, pos Position, wrap error, format string, a ...any) Diagnostic {
	return Diagnostic{
		sev:  kind.DefaultSeverity(),
		kind: kind,
		msg:  fmt.Sprintf(format, a...),
		pos:  pos,
		wrap: wrap,
	}
}

// InvalidGrammar reports that the grammar could not be loaded, or is the
// wrong kind for the requested operation. The run must abort.
func InvalidGrammar(pos Position, format string, a ...any) Diagnostic {
	return newDiag(KindInvalidGrammar, pos, nil, format, a...)
}

// WrapInvalidGrammar is InvalidGrammar, additionally wrapping a lower-level
// loader error.
func WrapInvalidGrammar(err error, pos Position, format string, a ...any) Diagnostic {
	return newDiag(KindInvalidGrammar, pos, err, format, a...)
}

// UnknownReference reports a RuleRef naming a rule that does not exist in
// the grammar. The referencing element is skipped; the run continues.
func UnknownReference(pos Position, ruleName string) Diagnostic {
	return newDiag(KindUnknownReference, pos, nil, "reference to undefined rule %q", ruleName)
}

// CycleInLexerRule reports that inlining lexer rule ruleName into itself was
// detected while synthesizing its regex. The recursive branch is emitted
// empty.
func CycleInLexerRule(pos Position, ruleName string) Diagnostic {
	return newDiag(KindCycleInLexerRule, pos, nil, "lexer rule %q recursively inlines itself; recursive branch emitted empty", ruleName)
}

// AmbiguousIndex reports that elementDescription could not be assigned a
// deterministic ElementIndex within ruleName.
func AmbiguousIndex(pos Position, ruleName, elementDescription string) Diagnostic {
	return newDiag(KindAmbiguousIndex, pos, nil, "%s in rule %q has an ambiguous index; falling back to enumeration", elementDescription, ruleName)
}

// NamingCollision reports that resolvedName is still shared by more than
// one property of className after Left/Right/numeric disambiguation.
func NamingCollision(pos Position, className, resolvedName string) Diagnostic {
	return newDiag(KindNamingCollision, pos, nil, "class %q has more than one property named %q after disambiguation", className, resolvedName)
}
