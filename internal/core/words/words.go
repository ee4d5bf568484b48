package words

import "strings"

// Options controls how ExpandName normalizes a rule/token/label name into
// a Go identifier component, mirroring the
// Ast.AutomaticAbbreviationExpansion configuration keys.
type Options struct {
	// Dictionary is consulted for each name component. A nil Dictionary
	// disables abbreviation expansion entirely (equivalent to
	// UseDefaultWordExpansions = false with no CustomWordExpansions).
	Dictionary *Dictionary

	// AsList pluralizes the final result, appending "List" instead when the
	// name is already plural (avoiding e.g. "FunctionsList" stutter vs.
	// "Functions" round-tripping as "FunctionsList").
	AsList bool
}

// ExpandName runs the full normalization pipeline: trim stray underscores,
// expand each dictionary-recognized component (preserving its original case
// pattern), convert to PascalCase, and pluralize if the property is
// list-valued.
func ExpandName(name string, opts Options) string {
	parts := SplitComponents(name)

	expanded := make([]string, 0, len(parts))
	for _, p := range parts {
		expanded = append(expanded, expandComponent(p, opts.Dictionary))
	}

	joined := strings.Join(expanded, "_")
	pascal := PascalCase(joined)

	if !opts.AsList {
		return pascal
	}

	if IsPlural(pascal) {
		return pascal + "List"
	}
	return Pluralize(pascal)
}

// expandComponent expands one name component against dict, preserving its
// case pattern. A component that doesn't match directly but ends in a
// plural "s" retries as its singular and re-pluralizes the expansion, so
// "stmts" comes out as "statements" rather than staying opaque.
func expandComponent(p string, dict *Dictionary) string {
	if dict == nil {
		return p
	}
	if full, ok := dict.Expand(p); ok {
		return PreserveCaseOf(p, full)
	}
	if len(p) > 1 && (strings.HasSuffix(p, "s") || strings.HasSuffix(p, "S")) {
		if full, ok := dict.Expand(p[:len(p)-1]); ok {
			return Pluralize(PreserveCaseOf(p, full))
		}
	}
	return p
}
