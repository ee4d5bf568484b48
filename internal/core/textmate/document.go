package textmate

import (
	"fmt"
	"strings"

	"github.com/dekarrin/grammarforge/internal/core/diag"
	"github.com/dekarrin/grammarforge/internal/core/grammar"
)

// Synthesize runs the full synthesis pipeline over g: per-rule translation,
// implicit-literal promotion, keyword/word-boundary classification,
// configuration-driven scope overrides, and cross-rule longest-match
// reordering/merging, producing the TextMate grammar Document.
func Synthesize(g *grammar.Grammar, diags *diag.Bag, opts Options) *Document {
	s := &synthesizer{g: g, diags: diags}
	s.grammarCI, _ = optBool(g.Options, "caseInsensitive")

	dedicated := dedicatedLiteralRules(g)
	implicitLiterals := collectImplicitLiterals(g, dedicated)

	var patterns []*Pattern
	repo := map[string]*Pattern{}

	for _, rule := range g.LexerRules {
		if rule.Fragment {
			continue
		}
		p := s.synthesizePattern(rule.Name, rule, opts)
		patterns = append(patterns, p)
		repo[rule.Name] = p
	}

	for _, lit := range implicitLiterals {
		name := quoteLiteral(lit)
		rule := syntheticLiteralRule(name, lit)
		p := s.synthesizePattern(name, rule, opts)
		patterns = append(patterns, p)
		repo[name] = p
	}

	patterns = applyConflictGroups(patterns, repo, opts.RuleConflicts)
	patterns = detectLiteralPrefixCollisions(patterns, declaredRuleSet(opts.RuleConflicts))
	for _, p := range patterns {
		repo[p.RuleName] = p
	}

	return &Document{
		ScopeName:  defaultScopeName(g.Name, opts.Language),
		FileTypes:  []string{},
		Patterns:   patterns,
		Repository: repo,
	}
}

// SynthesizeRule runs the per-rule translation for a single lexer rule
// of g, named by ruleName, without the cross-rule longest-match
// reordering/merging pass that only makes sense over a whole grammar. Intended for a REPL-style driver mode iterating on one
// rule's regex at a time (see cmd/grammarforge --repl); ok is false if
// ruleName does not name a lexer rule in g.
func SynthesizeRule(g *grammar.Grammar, diags *diag.Bag, ruleName string) (regex string, ok bool) {
	rule := g.RuleByName(ruleName)
	if rule == nil || rule.Kind != grammar.LexerRuleKind {
		return "", false
	}

	s := &synthesizer{g: g, diags: diags}
	s.grammarCI, _ = optBool(g.Options, "caseInsensitive")

	p := s.synthesizePattern(ruleName, rule, Options{})
	return p.Regex, true
}

func (s *synthesizer) synthesizePattern(name string, rule *grammar.Rule, opts Options) *Pattern {
	regex := s.synthesizeRule(rule)
	kw := isKeywordLike(rule, s.g, map[string]bool{})
	if kw {
		regex = addWordBoundaries(regex, rule, s.g)
	}
	return &Pattern{
		RuleName: name,
		Scope:    resolveScope(name, kw, opts, s.g.Name),
		Regex:    regex,
		Keyword:  kw,
	}
}

// dedicatedLiteralRules returns the set of literal texts that already
// have a lexer rule entirely devoted to matching them; such a literal
// does not need implicit-token promotion.
func dedicatedLiteralRules(g *grammar.Grammar) map[string]bool {
	out := map[string]bool{}
	for _, rule := range g.LexerRules {
		if rule.Fragment || len(rule.Body.Alternatives) != 1 {
			continue
		}
		elems := rule.Body.Alternatives[0].Elements
		if len(elems) == 1 && elems[0].Kind == grammar.KindLiteral && elems[0].Suffix == grammar.SuffixNone {
			out[elems[0].Literal] = true
		}
	}
	return out
}

// collectImplicitLiterals walks every parser rule's elements for bare
// literals with no dedicated lexer rule (ANTLR's implicit tokens),
// returning each distinct text once, in first-seen order.
func collectImplicitLiterals(g *grammar.Grammar, dedicated map[string]bool) []string {
	seen := map[string]bool{}
	var out []string
	for _, rule := range g.ParserRules {
		if rule.Body == nil {
			continue
		}
		collectImplicitLiteralsFromAlts(rule.Body, dedicated, seen, &out)
	}
	return out
}

func collectImplicitLiteralsFromAlts(al *grammar.AlternativeList, dedicated, seen map[string]bool, out *[]string) {
	for _, alt := range al.Alternatives {
		collectImplicitLiteralsFromElements(alt.Elements, dedicated, seen, out)
	}
}

func collectImplicitLiteralsFromElements(elems []*grammar.SyntaxElement, dedicated, seen map[string]bool, out *[]string) {
	for _, e := range elems {
		if e.Kind == grammar.KindBlock {
			collectImplicitLiteralsFromAlts(e.Block, dedicated, seen, out)
			continue
		}
		if e.Kind != grammar.KindLiteral || e.Not {
			continue
		}
		if dedicated[e.Literal] || seen[e.Literal] {
			continue
		}
		seen[e.Literal] = true
		*out = append(*out, e.Literal)
	}
}

func quoteLiteral(text string) string {
	return "'" + text + "'"
}

func syntheticLiteralRule(name, text string) *grammar.Rule {
	return &grammar.Rule{
		Name: name,
		Kind: grammar.LexerRuleKind,
		Body: &grammar.AlternativeList{Alternatives: []*grammar.Alternative{
			{Elements: []*grammar.SyntaxElement{{Kind: grammar.KindLiteral, Literal: text}}},
		}},
	}
}

func declaredRuleSet(groups []ConflictGroup) map[string]bool {
	out := map[string]bool{}
	for _, g := range groups {
		for _, name := range g.Rules {
			out[name] = true
		}
	}
	return out
}

// applyConflictGroups replaces each declared group's member patterns with
// a single merged pattern in declared priority order, at the position of
// the first group member found in patterns.
func applyConflictGroups(patterns []*Pattern, repo map[string]*Pattern, groups []ConflictGroup) []*Pattern {
	if len(groups) == 0 {
		return patterns
	}

	out := make([]*Pattern, 0, len(patterns))
	consumed := map[string]bool{}
	merged := map[int]*Pattern{} // index in `out` at which to splice a merge marker

	for _, group := range groups {
		m := mergeConflictGroup(group, repo)
		firstIdx := -1
		for i, p := range patterns {
			for _, name := range group.Rules {
				if p.RuleName == name {
					consumed[p.RuleName] = true
					if firstIdx == -1 {
						firstIdx = i
					}
				}
			}
		}
		if firstIdx >= 0 {
			merged[firstIdx] = m
		}
	}

	for i, p := range patterns {
		if m, ok := merged[i]; ok {
			out = append(out, m)
		}
		if consumed[p.RuleName] {
			continue
		}
		out = append(out, p)
	}
	return out
}

func resolveScope(ruleName string, keyword bool, opts Options, grammarName string) string {
	if rs, ok := opts.RuleSettings[ruleName]; ok && rs.TextMateScopeName != "" {
		return rs.TextMateScopeName
	}
	lang := opts.Language
	if lang == "" {
		lang = strings.ToLower(grammarName)
	}
	category := "constant.other"
	if keyword {
		category = "keyword.control"
	}
	return fmt.Sprintf("%s.%s.%s", category, sanitizeScopeSegment(ruleName), lang)
}

func sanitizeScopeSegment(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "literal"
	}
	return b.String()
}

func defaultScopeName(grammarName, language string) string {
	lang := language
	if lang == "" {
		lang = strings.ToLower(grammarName)
	}
	return "source." + lang
}
