package textmate

import (
	"strconv"
	"strings"

	"github.com/dekarrin/grammarforge/internal/core/diag"
	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/dekarrin/grammarforge/internal/util"
)

// synthesizer holds the per-run state the translation pass needs: the
// grammar being read from, the diagnostics it reports to, and the
// grammar-level caseInsensitive default every rule inherits unless it
// overrides the option itself.
type synthesizer struct {
	g         *grammar.Grammar
	diags     *diag.Bag
	grammarCI bool
}

// optBool reads a tri-state boolean option: present/value.
func optBool(opts map[string]string, key string) (bool, bool) {
	v, ok := opts[key]
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// effectiveCI resolves the caseInsensitive option for opts, falling back
// to parentCI (the enclosing scope's effective setting) when opts has no
// setting of its own: grammar -> rule -> fragment, inner-scope
// precedence.
func effectiveCI(opts map[string]string, parentCI bool) bool {
	if v, ok := optBool(opts, "caseInsensitive"); ok {
		return v
	}
	return parentCI
}

// synthesizeRule produces the full regex for one lexer rule. Unlike a
// nested alternation (synthesizeAlternatives, which only groups when
// there is more than one branch), the top-level rule pattern is always
// wrapped in exactly one (?:...), so a caller can safely append a
// quantifier or word-boundary anchor without it binding to only the last
// alternative, then in (?i:...) if the rule's own effective setting is
// case-insensitive.
func (s *synthesizer) synthesizeRule(rule *grammar.Rule) string {
	ruleCI := effectiveCI(rule.Options, s.grammarCI)
	parents := util.StringSet{rule.Name: true}

	branches := make([]string, len(rule.Body.Alternatives))
	for i, alt := range rule.Body.Alternatives {
		branches[i] = s.synthesizeElements(alt.Elements, ruleCI, parents)
	}
	branches = reorderLongestFirst(branches)

	body := "(?:" + strings.Join(branches, "|") + ")"
	if ruleCI {
		return "(?i:" + body + ")"
	}
	return body
}

// synthesizeAlternatives renders an AlternativeList under the given
// active case-sensitivity and parent-rule set (for cycle detection of
// inlined references), applying the longest-match-first reordering
// within the list.
func (s *synthesizer) synthesizeAlternatives(al *grammar.AlternativeList, activeCI bool, parents util.StringSet) string {
	if al == nil || len(al.Alternatives) == 0 {
		return ""
	}

	branches := make([]string, len(al.Alternatives))
	for i, alt := range al.Alternatives {
		branches[i] = s.synthesizeElements(alt.Elements, activeCI, parents)
	}
	branches = reorderLongestFirst(branches)

	if len(branches) == 1 {
		return branches[0]
	}
	return "(?:" + strings.Join(branches, "|") + ")"
}

func (s *synthesizer) synthesizeElements(elems []*grammar.SyntaxElement, activeCI bool, parents util.StringSet) string {
	var b strings.Builder
	for _, e := range elems {
		b.WriteString(s.synthesizeElement(e, activeCI, parents))
	}
	return b.String()
}

func (s *synthesizer) synthesizeElement(e *grammar.SyntaxElement, activeCI bool, parents util.StringSet) string {
	body := s.synthesizeElementBody(e, activeCI, parents)
	return body + e.Suffix.String()
}

func (s *synthesizer) synthesizeElementBody(e *grammar.SyntaxElement, activeCI bool, parents util.StringSet) string {
	switch e.Kind {
	case grammar.KindLiteral:
		if e.Not {
			return renderCharClass(charClassFromRunes(e.Literal), true)
		}
		escaped := escapeLiteral(e.Literal)
		if e.Suffix != grammar.SuffixNone && len([]rune(e.Literal)) > 1 {
			return "(?:" + escaped + ")"
		}
		return escaped

	case grammar.KindCharSet:
		return renderCharClass(e.CharSetItems, e.CharSetNegated)

	case grammar.KindDot:
		return "."

	case grammar.KindEmpty:
		return ""

	case grammar.KindBlock:
		return "(?:" + s.synthesizeAlternatives(e.Block, activeCI, parents) + ")"

	case grammar.KindTokenRef, grammar.KindRuleRef:
		if e.RefName == "EOF" {
			return `\z`
		}
		if e.Not {
			return s.synthesizeNegatedRef(e, activeCI, parents)
		}
		return s.inlineRule(e.RefName, activeCI, parents)

	default:
		return ""
	}
}

// synthesizeNegatedRef handles `~X` where X is a token/rule reference:
// it expands to a character class of X's characters' complements.
// For a reference whose own body is a simple literal or character set,
// that is a direct class negation; otherwise it falls back to a negative
// lookahead over any character, which is the general Oniguruma technique
// for "anything this pattern would not match".
func (s *synthesizer) synthesizeNegatedRef(e *grammar.SyntaxElement, activeCI bool, parents util.StringSet) string {
	target := s.g.RuleByName(e.RefName)
	if target == nil {
		s.diags.Add(diag.UnknownReference(diag.Position{File: s.g.Name, Line: e.Pos.Line, Col: e.Pos.Col}, e.RefName))
		return "."
	}
	if simple, ok := simpleCharClass(target); ok {
		return renderCharClass(simple.CharSetItems, !simple.CharSetNegated)
	}
	inner := s.inlineRule(e.RefName, activeCI, parents)
	return "(?!" + inner + ")."
}

// simpleCharClass reports whether rule's body is exactly one alternative
// consisting of a single CharSet or Literal element, returning that
// element (negation-normalized to a CharSet) if so.
func simpleCharClass(rule *grammar.Rule) (*grammar.SyntaxElement, bool) {
	if len(rule.Body.Alternatives) != 1 {
		return nil, false
	}
	elems := rule.Body.Alternatives[0].Elements
	if len(elems) != 1 {
		return nil, false
	}
	e := elems[0]
	switch e.Kind {
	case grammar.KindCharSet:
		return e, true
	case grammar.KindLiteral:
		return &grammar.SyntaxElement{Kind: grammar.KindCharSet, CharSetItems: charClassFromRunes(e.Literal)}, true
	default:
		return nil, false
	}
}

// inlineRule resolves name to a lexer rule and inlines its synthesized
// body, wrapping in (?i:...)/(?-i:...) when the target's effective
// case-sensitivity differs from activeCI, and detecting recursive
// inlining via the parents set.
func (s *synthesizer) inlineRule(name string, activeCI bool, parents util.StringSet) string {
	if parents[name] {
		s.diags.Add(diag.CycleInLexerRule(diag.Position{File: s.g.Name}, name))
		return "(?:)"
	}

	target := s.g.RuleByName(name)
	if target == nil || target.Kind != grammar.LexerRuleKind {
		s.diags.Add(diag.UnknownReference(diag.Position{File: s.g.Name}, name))
		return "."
	}

	nextParents := make(util.StringSet, len(parents)+1)
	for k := range parents {
		nextParents[k] = true
	}
	nextParents[name] = true

	targetCI := effectiveCI(target.Options, s.grammarCI)
	inner := s.synthesizeAlternatives(target.Body, targetCI, nextParents)

	if targetCI == activeCI {
		return "(?:" + inner + ")"
	}
	if targetCI {
		return "(?i:" + inner + ")"
	}
	return "(?-i:" + inner + ")"
}
