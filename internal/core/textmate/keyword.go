package textmate

import (
	"unicode"

	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/dekarrin/grammarforge/internal/util"
)

// maxKeywordCharSetSpan bounds how large a CharSet's span may be before
// it stops counting as a small single-character alternation set for
// keyword classification (e.g. `[tT]`, span 2, still is; a wide range
// like `[a-z]` is not).
const maxKeywordCharSetSpan = 4

// isKeywordLike classifies a keyword-like rule: every
// alternative of rule consists solely of literals, literal alternations,
// small single-character alternation sets, or references to other
// keyword-like rules. visited guards against infinite recursion through
// mutually-referencing rules.
func isKeywordLike(rule *grammar.Rule, g *grammar.Grammar, visited util.StringSet) bool {
	if rule == nil || rule.Body == nil {
		return false
	}
	if visited.Has(rule.Name) {
		return false
	}
	visited.Add(rule.Name)
	defer visited.Remove(rule.Name)

	for _, alt := range rule.Body.Alternatives {
		if !elementsAreKeywordLike(alt.Elements, g, visited) {
			return false
		}
	}
	return true
}

func elementsAreKeywordLike(elems []*grammar.SyntaxElement, g *grammar.Grammar, visited util.StringSet) bool {
	for _, e := range elems {
		if !elementIsKeywordLike(e, g, visited) {
			return false
		}
	}
	return true
}

func elementIsKeywordLike(e *grammar.SyntaxElement, g *grammar.Grammar, visited util.StringSet) bool {
	switch e.Kind {
	case grammar.KindLiteral:
		return !e.Not
	case grammar.KindCharSet:
		return !e.CharSetNegated && charSetSpan(e.CharSetItems) <= maxKeywordCharSetSpan
	case grammar.KindBlock:
		for _, alt := range e.Block.Alternatives {
			if !elementsAreKeywordLike(alt.Elements, g, visited) {
				return false
			}
		}
		return true
	case grammar.KindTokenRef, grammar.KindRuleRef:
		if e.Not || e.RefName == "EOF" {
			return false
		}
		ref := g.RuleByName(e.RefName)
		if ref == nil || ref.Kind != grammar.LexerRuleKind {
			return false
		}
		return isKeywordLike(ref, g, visited)
	default:
		return false
	}
}

func charSetSpan(items []CharSetItem) int {
	total := 0
	for _, it := range items {
		total += int(it.Hi-it.Lo) + 1
	}
	return total
}

// boundaryBounds reports whether rule's accepted text begins and/or ends
// with a word character, by sampling the first and last literal
// character reachable from each alternative. ok is false when
// alternatives disagree at either end (mixed word/non-word boundaries) or
// an alternative cannot be sampled, in which case no anchor is added at
// either end, even an end on which the alternatives agree.
func boundaryBounds(rule *grammar.Rule, g *grammar.Grammar) (startsWord, endsWord, ok bool) {
	first := true
	for _, alt := range rule.Body.Alternatives {
		fr, lr, sampleOK := sampleAltBounds(alt.Elements, g, util.StringSet{rule.Name: true})
		if !sampleOK {
			return false, false, false
		}
		sw, ew := isWordRune(fr), isWordRune(lr)
		if first {
			startsWord, endsWord = sw, ew
			first = false
			continue
		}
		if sw != startsWord || ew != endsWord {
			return false, false, false
		}
	}
	return startsWord, endsWord, !first
}

func sampleAltBounds(elems []*grammar.SyntaxElement, g *grammar.Grammar, visited util.StringSet) (first, last rune, ok bool) {
	if len(elems) == 0 {
		return 0, 0, false
	}
	first, ok = sampleLeadingRune(elems[0], g, visited)
	if !ok {
		return 0, 0, false
	}
	last, ok = sampleTrailingRune(elems[len(elems)-1], g, visited)
	return first, last, ok
}

func sampleLeadingRune(e *grammar.SyntaxElement, g *grammar.Grammar, visited util.StringSet) (rune, bool) {
	switch e.Kind {
	case grammar.KindLiteral:
		for _, r := range e.Literal {
			return r, true
		}
		return 0, false
	case grammar.KindCharSet:
		if len(e.CharSetItems) == 0 {
			return 0, false
		}
		return e.CharSetItems[0].Lo, true
	case grammar.KindBlock:
		if len(e.Block.Alternatives) == 0 {
			return 0, false
		}
		r, _, ok := sampleAltBounds(e.Block.Alternatives[0].Elements, g, visited)
		return r, ok
	case grammar.KindTokenRef, grammar.KindRuleRef:
		if visited.Has(e.RefName) {
			return 0, false
		}
		ref := g.RuleByName(e.RefName)
		if ref == nil || len(ref.Body.Alternatives) == 0 {
			return 0, false
		}
		next := util.StringSet{e.RefName: true}
		for k := range visited {
			next[k] = true
		}
		r, _, ok := sampleAltBounds(ref.Body.Alternatives[0].Elements, g, next)
		return r, ok
	default:
		return 0, false
	}
}

func sampleTrailingRune(e *grammar.SyntaxElement, g *grammar.Grammar, visited util.StringSet) (rune, bool) {
	switch e.Kind {
	case grammar.KindLiteral:
		var last rune
		found := false
		for _, r := range e.Literal {
			last = r
			found = true
		}
		return last, found
	case grammar.KindCharSet:
		if len(e.CharSetItems) == 0 {
			return 0, false
		}
		return e.CharSetItems[len(e.CharSetItems)-1].Hi, true
	case grammar.KindBlock:
		if len(e.Block.Alternatives) == 0 {
			return 0, false
		}
		last := e.Block.Alternatives[len(e.Block.Alternatives)-1]
		_, r, ok := sampleAltBounds(last.Elements, g, visited)
		return r, ok
	case grammar.KindTokenRef, grammar.KindRuleRef:
		if visited.Has(e.RefName) {
			return 0, false
		}
		ref := g.RuleByName(e.RefName)
		if ref == nil || len(ref.Body.Alternatives) == 0 {
			return 0, false
		}
		next := util.StringSet{e.RefName: true}
		for k := range visited {
			next[k] = true
		}
		last := ref.Body.Alternatives[len(ref.Body.Alternatives)-1]
		_, r, ok := sampleAltBounds(last.Elements, g, next)
		return r, ok
	default:
		return 0, false
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// addWordBoundaries wraps pattern with leading/trailing `\b` per the
// boundary classification for rule.
func addWordBoundaries(pattern string, rule *grammar.Rule, g *grammar.Grammar) string {
	startsWord, endsWord, ok := boundaryBounds(rule, g)
	if !ok {
		return pattern
	}
	if startsWord {
		pattern = `\b` + pattern
	}
	if endsWord {
		pattern = pattern + `\b`
	}
	return pattern
}
