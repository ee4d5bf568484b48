package words

import "strings"

// irregularPlurals covers the handful of common grammar-vocabulary nouns
// that don't follow the regular suffix rules below.
var irregularPlurals = map[string]string{
	"child": "children",
	"index": "indices",
}

var sibilantSuffixes = []string{"s", "x", "z", "ch", "sh"}

// Pluralize returns the English plural of a singular noun. It is a
// deliberately small rule set (irregulars, -y -> -ies, sibilant -> -es,
// default -> -s) covering the vocabulary that shows up in grammar rule and
// token names; it is not a general-purpose pluralizer.
func Pluralize(word string) string {
	lower := strings.ToLower(word)
	if plural, ok := irregularPlurals[lower]; ok {
		return PreserveCaseOf(word, plural)
	}

	if IsPlural(word) {
		return word
	}

	if strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(rune(lower[len(lower)-2])) {
		return word[:len(word)-1] + "ies"
	}

	for _, suf := range sibilantSuffixes {
		if strings.HasSuffix(lower, suf) {
			return word + "es"
		}
	}

	return word + "s"
}

// IsPlural is a heuristic: true when word already ends in a
// plural-looking suffix. Used to decide whether a list-valued property
// name needs a trailing "List" to avoid round-trip stutter
// (`functions*` -> `FunctionsList` rather than `Functionses`).
func IsPlural(word string) bool {
	lower := strings.ToLower(word)
	if strings.HasSuffix(lower, "ies") && len(lower) > 3 {
		return true
	}
	for _, suf := range sibilantSuffixes {
		if strings.HasSuffix(lower, suf+"es") {
			return true
		}
	}
	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
		return true
	}
	return false
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	default:
		return false
	}
}
