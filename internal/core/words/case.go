package words

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// SplitComponents breaks name into its constituent words: on underscores,
// on camelCase boundaries, and on ALL_CAPS runs treated as a single
// component (so IDENTIFIER stays one component, not I-D-E-N-T-I-F-I-E-R).
func SplitComponents(name string) []string {
	name = strings.Trim(name, "_")
	if name == "" {
		return nil
	}

	var parts []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_':
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			// camelCase boundary: "fooBar" -> "foo", "Bar"
			flush()
			cur.WriteRune(r)
		case unicode.IsUpper(r) && i > 0 && unicode.IsUpper(runes[i-1]) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			// "HTTPServer" -> "HTTP", "Server": the last upper of a run
			// starts a new component when followed by a lowercase letter.
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	return parts
}

// PascalCase normalizes name to PascalCase: split into components, then
// title-case each and concatenate. Unicode-aware via golang.org/x/text/cases
// so components outside ASCII still capitalize correctly, rather than the
// ASCII-only behavior of strings.Title.
func PascalCase(name string) string {
	parts := SplitComponents(name)
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(titleCaser.String(strings.ToLower(p)))
	}
	return b.String()
}

// PreserveCaseOf reapplies the capitalization pattern of original (fully
// upper, fully lower, or title case) to replacement, so that expanding
// the abbreviation "AGGR" in "AGGR_LEVEL" yields "AGGRESSIVITY" while
// expanding "aggr" in "aggrLevel" yields "aggressivity".
func PreserveCaseOf(original, replacement string) string {
	switch {
	case original == strings.ToUpper(original) && original != strings.ToLower(original):
		return strings.ToUpper(replacement)
	case original == strings.ToLower(original):
		return strings.ToLower(replacement)
	default:
		return titleCaser.String(strings.ToLower(replacement))
	}
}
