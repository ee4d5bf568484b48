package textmate

import (
	"sort"
	"strings"
)

// reorderLongestFirst re-sorts a rule's alternation branches so the
// longest rendered candidate comes first, stable on ties so two
// equal-length branches keep their original (first-defined-wins) order.
// TextMate is a first-match engine, so longest-match only survives if
// longer candidates are listed earlier.
func reorderLongestFirst(branches []string) []string {
	out := make([]string, len(branches))
	copy(out, branches)
	sort.SliceStable(out, func(i, j int) bool {
		return candidateLength(out[i]) > candidateLength(out[j])
	})
	return out
}

// candidateLength estimates how much literal text a synthesized branch
// commits to matching, for ranking purposes: escape backslashes don't
// count twice, and this is explicitly a heuristic, not a proof of match
// length (undecidable in general for a regex with references/quantifiers).
func candidateLength(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		n++
	}
	return n
}

// detectLiteralPrefixCollisions finds pattern pairs where one rule's kept
// regex is exactly another's with extra trailing content appended (an
// `ID` vs `IF_KW`-style collision), and reorders so the longer
// one is tried first. Rules already covered by an explicit RuleConflicts
// group are left alone; that declaration takes precedence.
func detectLiteralPrefixCollisions(patterns []*Pattern, declared map[string]bool) []*Pattern {
	out := make([]*Pattern, len(patterns))
	copy(out, patterns)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if declared[a.RuleName] || declared[b.RuleName] {
			return false
		}
		if isLiteralPrefixOf(a.Regex, b.Regex) {
			return false // a is prefix of b: b (longer) must come first, so a doesn't sort before b
		}
		if isLiteralPrefixOf(b.Regex, a.Regex) {
			return true // b is a prefix of a: a (longer) must come first
		}
		return false
	})
	return out
}

// isLiteralPrefixOf reports whether prefix's raw regex text is a strict
// prefix of candidate's, a cheap syntactic proxy for "prefix would also
// match with less committed".
func isLiteralPrefixOf(prefix, candidate string) bool {
	return len(prefix) > 0 && len(prefix) < len(candidate) && strings.HasPrefix(candidate, prefix)
}

// mergeConflictGroup joins the named rules' patterns into a single merged
// Pattern with ordered alternation, in the declared priority order.
func mergeConflictGroup(group ConflictGroup, byName map[string]*Pattern) *Pattern {
	var parts []string
	var scope string
	for i, name := range group.Rules {
		p, ok := byName[name]
		if !ok {
			continue
		}
		parts = append(parts, p.Regex)
		if i == 0 {
			scope = p.Scope
		}
	}
	return &Pattern{
		RuleName: strings.Join(group.Rules, "|"),
		Scope:    scope,
		Regex:    "(?:" + strings.Join(parts, "|") + ")",
	}
}
