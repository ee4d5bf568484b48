package goemit

import (
	"strings"
	"testing"

	"github.com/dekarrin/grammarforge/internal/core/astmodel"
	"github.com/dekarrin/grammarforge/internal/core/diag"
	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/dekarrin/grammarforge/internal/core/words"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(name string, suffix grammar.Suffix) *grammar.SyntaxElement {
	return &grammar.SyntaxElement{Kind: grammar.KindTokenRef, RefName: name, Suffix: suffix}
}

func lit(text, label string) *grammar.SyntaxElement {
	return &grammar.SyntaxElement{Kind: grammar.KindLiteral, Literal: text, Label: label}
}

func buildModel(t *testing.T, g *grammar.Grammar) *astmodel.Model {
	t.Helper()
	a := grammar.Analyze(g)
	d := diag.NewBag()
	b := astmodel.NewBuilder(g, a, d, astmodel.Options{Dictionary: words.DefaultDictionary()})
	require.False(t, d.HasErrors())
	return b.Build()
}

func Test_Render_concreteClassEmitsStructWithFields(t *testing.T) {
	rule := &grammar.Rule{
		Name: "stat",
		Kind: grammar.ParserRuleKind,
		Body: &grammar.AlternativeList{Alternatives: []*grammar.Alternative{
			{Elements: []*grammar.SyntaxElement{lit("swap", ""), tok("ID", grammar.SuffixNone), lit("and", ""), tok("ID", grammar.SuffixNone)}},
		}},
	}
	g := &grammar.Grammar{Kind: grammar.ParserOnly, Name: "Test", ParserRules: []*grammar.Rule{rule}}
	m := buildModel(t, g)

	out := Render(m, "ast")
	assert.Contains(t, out, "package ast")
	assert.Contains(t, out, "type Statement struct {")
	assert.Contains(t, out, "LeftIdentifier string")
	assert.Contains(t, out, "RightIdentifier string")
}

func Test_Render_abstractBaseEmitsInterfaceAndVariantMethods(t *testing.T) {
	exprRule := &grammar.Rule{
		Name: "expr",
		Kind: grammar.ParserRuleKind,
		Body: &grammar.AlternativeList{Alternatives: []*grammar.Alternative{
			{Label: "varRefExpr", Elements: []*grammar.SyntaxElement{tok("ID", grammar.SuffixNone)}},
			{Label: "numericLiteralExpr", Elements: []*grammar.SyntaxElement{tok("NUMBER", grammar.SuffixNone)}},
		}},
	}
	g := &grammar.Grammar{Kind: grammar.ParserOnly, Name: "Test", ParserRules: []*grammar.Rule{exprRule}}
	m := buildModel(t, g)

	out := Render(m, "ast")
	assert.Contains(t, out, "type Expression interface {")
	assert.Contains(t, out, "isExpression()")
	assert.Contains(t, out, "func (*VariableReferenceExpression) isExpression() {}")
	assert.Contains(t, out, "func (*NumericLiteralExpression) isExpression() {}")
}

func Test_Render_astBuilderEmitsOneCasePerMapping(t *testing.T) {
	rule := &grammar.Rule{
		Name: "stat",
		Kind: grammar.ParserRuleKind,
		Body: &grammar.AlternativeList{Alternatives: []*grammar.Alternative{
			{Elements: []*grammar.SyntaxElement{tok("ID", grammar.SuffixNone)}},
		}},
	}
	g := &grammar.Grammar{Kind: grammar.ParserOnly, Name: "Test", ParserRules: []*grammar.Rule{rule}}
	m := buildModel(t, g)

	out := Render(m, "ast")
	assert.Contains(t, out, "func Build(ctx any) any {")
	assert.Contains(t, out, "case statContext:")
}

func Test_Render_isIdempotent(t *testing.T) {
	rule := &grammar.Rule{
		Name: "stat",
		Kind: grammar.ParserRuleKind,
		Body: &grammar.AlternativeList{Alternatives: []*grammar.Alternative{
			{Elements: []*grammar.SyntaxElement{lit("import", ""), tok("ID", grammar.SuffixNone)}},
		}},
	}
	g := &grammar.Grammar{Kind: grammar.ParserOnly, Name: "Test", ParserRules: []*grammar.Rule{rule}}
	m1 := buildModel(t, g)
	m2 := buildModel(t, g)

	out1 := Render(m1, "ast")
	out2 := Render(m2, "ast")
	assert.Equal(t, out1, out2)
	assert.True(t, strings.HasPrefix(out1, "// Package ast"))
}
