package astmodel

import (
	"fmt"
	"strings"

	"github.com/dekarrin/grammarforge/internal/core/diag"
	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/dekarrin/grammarforge/internal/core/words"
)

// Options configures name derivation, mirroring the Ast.NodeClassNaming and
// Ast.AutomaticAbbreviationExpansion configuration keys. Package config
// constructs one of these from a loaded Config.
type Options struct {
	Dictionary *words.Dictionary
	NamePrefix string
	NameSuffix string
}

// Builder derives the AST model from one analyzed grammar.Grammar. It is
// single-use: the memoization map must not be shared across runs, so
// construct one Builder per run.
type Builder struct {
	g     *grammar.Grammar
	a     *grammar.Analysis
	diags *diag.Bag
	opts  Options

	// classes memoizes rule name -> NodeClass. A pointer is inserted before
	// populate() recurses into that rule's body, so a self- or
	// mutually-recursive RuleRef resolves to the same pointer that is later
	// populated in place: a sentinel that IS the eventual value, not a
	// placeholder swapped out afterward.
	classes map[string]*NodeClass

	// curRule is the rule whose properties are currently being derived,
	// for Ambiguous-index diagnostics.
	curRule *grammar.Rule
}

// NewBuilder creates a Builder for one run over g, using a's annotations
// and reporting problems to diags.
func NewBuilder(g *grammar.Grammar, a *grammar.Analysis, diags *diag.Bag, opts Options) *Builder {
	return &Builder{g: g, a: a, diags: diags, opts: opts, classes: make(map[string]*NodeClass)}
}

// Build derives the full AST Model: one NodeClass (with variants) per
// parser rule, in declaration order, plus the AstBuilder mapping list.
func (b *Builder) Build() *Model {
	m := &Model{GrammarName: b.g.Name, ParserClassName: b.g.Name + "Parser"}

	for _, rule := range b.g.ParserRules {
		nc := b.resolve(rule.Name)
		if nc == nil {
			continue
		}
		m.Classes = append(m.Classes, nc)
		m.Classes = append(m.Classes, nc.Variants...)

		if nc.IsAbstract() {
			for _, v := range nc.Variants {
				m.Mappings = append(m.Mappings, RuleMapping{Rule: rule, Alt: v.SourceAlt, Class: v})
			}
		} else {
			m.Mappings = append(m.Mappings, RuleMapping{Rule: rule, Alt: nc.SourceAlt, Class: nc})
		}
	}

	return m
}

// resolve returns the NodeClass for the named rule, building it on first
// visit and memoizing thereafter. Returns nil if name does not name a
// parser rule; reporting Unknown-reference is left to the caller, which
// knows the referencing element's position.
func (b *Builder) resolve(name string) *NodeClass {
	if nc, ok := b.classes[name]; ok {
		return nc
	}

	rule := b.g.RuleByName(name)
	if rule == nil || rule.Kind != grammar.ParserRuleKind {
		return nil
	}

	nc := &NodeClass{Rule: rule}
	b.classes[name] = nc
	b.populate(nc, rule)
	return nc
}

func (b *Builder) populate(nc *NodeClass, rule *grammar.Rule) {
	body := rule.Body
	baseName := b.className(rule.Name)
	nc.Name = baseName
	if body == nil {
		return
	}

	prevRule := b.curRule
	b.curRule = rule
	defer func() { b.curRule = prevRule }()

	switch {
	case len(body.Alternatives) == 0:
		// empty body; nothing to derive.

	case body.AllLabeled():
		for _, alt := range body.Alternatives {
			nc.Variants = append(nc.Variants, b.buildVariant(nc, rule, alt, b.className(alt.Label)))
		}

	case len(body.Alternatives) == 1:
		nc.SourceAlt = body.Alternatives[0]
		nc.Properties = b.finalizeProperties(nc.Name, b.deriveProperties(nc.SourceAlt.Elements, false))

	default:
		// Unlabeled multi-alt of any shape: abstract base with synthetic
		// <RuleName>_<i> variants.
		for i, alt := range body.Alternatives {
			variantName := fmt.Sprintf("%s_%d", baseName, i+1)
			nc.Variants = append(nc.Variants, b.buildVariant(nc, rule, alt, variantName))
		}
	}
}

func (b *Builder) buildVariant(base *NodeClass, rule *grammar.Rule, alt *grammar.Alternative, name string) *NodeClass {
	v := &NodeClass{Name: name, Rule: rule, SourceAlt: alt, Base: base}
	v.Properties = b.finalizeProperties(name, b.deriveProperties(alt.Elements, false))
	return v
}

// finalizeProperties applies the duplicate-name resolution pass and
// reports any collision auto-naming still could not settle.
func (b *Builder) finalizeProperties(className string, props []*Property) []*Property {
	resolved := resolveDuplicateNames(props)

	seen := map[string]bool{}
	for _, p := range resolved {
		if seen[p.Name] {
			b.diags.Add(diag.NamingCollision(diag.Position{File: b.g.Name}, className, p.Name))
		}
		seen[p.Name] = true
	}
	return resolved
}

func (b *Builder) className(name string) string {
	return b.opts.NamePrefix + words.ExpandName(name, words.Options{Dictionary: b.opts.Dictionary}) + b.opts.NameSuffix
}

func (b *Builder) propName(seed string, asList bool) string {
	return words.ExpandName(seed, words.Options{Dictionary: b.opts.Dictionary, AsList: asList})
}

var boolPrefixes = []string{"Is", "Has", "Does", "Can"}

func (b *Builder) boolPropName(seed string) string {
	base := b.propName(seed, false)
	for _, p := range boolPrefixes {
		if strings.HasPrefix(base, p) {
			return base
		}
	}
	return "Is" + base
}

func (b *Builder) reportUnknownRef(e *grammar.SyntaxElement) {
	b.diags.Add(diag.UnknownReference(diag.Position{File: b.g.Name, Line: e.Pos.Line, Col: e.Pos.Col}, e.RefName))
}

// mappingSource computes how the emitter reaches e's parse-tree child.
// asList suppresses the Ambiguous-index note: a list-valued property
// enumerates all children of its type by nature, so a missing index is not
// a fallback there, it is the normal access path.
func (b *Builder) mappingSource(e *grammar.SyntaxElement, asList bool) MappingSource {
	if e.Label != "" {
		return MappingSource{Kind: MappingByLabel, Label: e.Label, LabelKind: e.LabelKind}
	}
	idx := b.a.Index(e)
	src := MappingSource{Kind: MappingByGetter, GetterIndex: idx.IndexByType, Singleton: b.a.IsSingleton(e)}

	if src.GetterIndex == nil && !src.Singleton && !asList && b.curRule != nil {
		pos := diag.Position{File: b.g.Name, Line: e.Pos.Line, Col: e.Pos.Col}
		b.diags.Add(diag.AmbiguousIndex(pos, b.curRule.Name, describeForDiag(e)))
	}
	return src
}

func describeForDiag(e *grammar.SyntaxElement) string {
	if e.Kind == grammar.KindLiteral {
		return "'" + e.Literal + "'"
	}
	return e.RefName
}
