package astmodel

import (
	"testing"

	"github.com/dekarrin/grammarforge/internal/core/diag"
	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/dekarrin/grammarforge/internal/core/words"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(name string, suffix grammar.Suffix) *grammar.SyntaxElement {
	return &grammar.SyntaxElement{Kind: grammar.KindTokenRef, RefName: name, Suffix: suffix}
}

func lit(text string, label string) *grammar.SyntaxElement {
	return &grammar.SyntaxElement{Kind: grammar.KindLiteral, Literal: text, Label: label}
}

func labeledOptLit(text, label string) *grammar.SyntaxElement {
	return &grammar.SyntaxElement{Kind: grammar.KindLiteral, Literal: text, Label: label, Suffix: grammar.SuffixOptional}
}

func rref(name string, suffix grammar.Suffix) *grammar.SyntaxElement {
	return &grammar.SyntaxElement{Kind: grammar.KindRuleRef, RefName: name, Suffix: suffix}
}

func singleAltRule(name string, elems ...*grammar.SyntaxElement) *grammar.Rule {
	return &grammar.Rule{
		Name: name,
		Kind: grammar.ParserRuleKind,
		Body: &grammar.AlternativeList{Alternatives: []*grammar.Alternative{{Elements: elems}}},
	}
}

func buildModel(g *grammar.Grammar) (*Model, *diag.Bag) {
	a := grammar.Analyze(g)
	d := diag.NewBag()
	b := NewBuilder(g, a, d, Options{Dictionary: words.DefaultDictionary()})
	return b.Build(), d
}

func Test_Build_twoUnlabeledIDTokensGetLeftRightNames(t *testing.T) {
	rule := singleAltRule("stat", lit("swap", ""), tok("ID", grammar.SuffixNone), lit("and", ""), tok("ID", grammar.SuffixNone))
	// 'swap'/'and' are unlabeled literals: dropped. Both ID refs are
	// text-important and unlabeled, so they collide on name "Identifier"
	// and get Left/Right disambiguation.
	g := &grammar.Grammar{Kind: grammar.ParserOnly, Name: "Test", ParserRules: []*grammar.Rule{rule}}

	model, diags := buildModel(g)
	require.False(t, diags.HasErrors())

	require.Len(t, model.Classes, 1)
	stat := model.Classes[0]
	assert.Equal(t, "Statement", stat.Name)
	require.Len(t, stat.Properties, 2)
	assert.Equal(t, "LeftIdentifier", stat.Properties[0].Name)
	assert.Equal(t, "RightIdentifier", stat.Properties[1].Name)
	assert.Equal(t, ShapeTokenText, stat.Properties[0].Shape)
}

func Test_Build_labeledOptionalLiteralBecomesOptionalToken(t *testing.T) {
	rule := singleAltRule("fnDef",
		labeledOptLit("public", "isPublic"),
		lit("fn", ""), lit("foo", ""), lit("{", ""), lit("}", ""),
	)
	g := &grammar.Grammar{Kind: grammar.ParserOnly, Name: "Test", ParserRules: []*grammar.Rule{rule}}

	model, diags := buildModel(g)
	require.False(t, diags.HasErrors())

	fn := model.Classes[0]
	assert.Equal(t, "FunctionDefinition", fn.Name)
	require.Len(t, fn.Properties, 1)
	assert.Equal(t, "IsPublic", fn.Properties[0].Name)
	assert.Equal(t, ShapeOptionalToken, fn.Properties[0].Shape)
}

func Test_Build_delimitedListCollapsesToSingleProperty(t *testing.T) {
	// importStmt : 'import' ID (',' ID)* ;
	idElem := tok("ID", grammar.SuffixNone)
	delimBlock := &grammar.SyntaxElement{
		Kind:   grammar.KindBlock,
		Suffix: grammar.SuffixStar,
		Block: &grammar.AlternativeList{Alternatives: []*grammar.Alternative{
			{Elements: []*grammar.SyntaxElement{lit(",", ""), tok("ID", grammar.SuffixNone)}},
		}},
	}
	rule := singleAltRule("importStmt", lit("import", ""), idElem, delimBlock)
	g := &grammar.Grammar{Kind: grammar.ParserOnly, Name: "Test", ParserRules: []*grammar.Rule{rule}}

	model, diags := buildModel(g)
	require.False(t, diags.HasErrors())

	imp := model.Classes[0]
	require.Len(t, imp.Properties, 1)
	assert.Equal(t, "Identifiers", imp.Properties[0].Name)
	assert.Equal(t, ShapeTokenTextList, imp.Properties[0].Shape)
}

func Test_Build_selfReferenceTerminatesAndProducesNodeRef(t *testing.T) {
	// expr : 'not'? expr ;
	self := rref("expr", grammar.SuffixNone)
	notOpt := &grammar.SyntaxElement{Kind: grammar.KindLiteral, Literal: "not", Suffix: grammar.SuffixOptional}
	rule := singleAltRule("expr", notOpt, self)
	g := &grammar.Grammar{Kind: grammar.ParserOnly, Name: "Test", ParserRules: []*grammar.Rule{rule}}

	var model *Model
	var diags *diag.Bag
	assert.NotPanics(t, func() {
		model, diags = buildModel(g)
	})
	require.False(t, diags.HasErrors())

	exprClass := model.Classes[0]
	require.Len(t, exprClass.Properties, 1)
	p := exprClass.Properties[0]
	assert.Equal(t, ShapeNodeRef, p.Shape)
	assert.Equal(t, "Expression", p.Name)
	assert.Same(t, exprClass, p.RefNode)
}

func Test_Build_labeledAlternativesProduceAbstractBaseAndVariants(t *testing.T) {
	// cmd : 'print' expr ;
	// expr : expr '*' expr #multExpr | expr '+' expr #addExpr | atomicExpr #atomicExpr ;
	// atomicExpr : ID #varRefExpr | NUMBER #numericLiteralExpr | STR_LIT #strLitExpr ;
	atomicExprRule := &grammar.Rule{
		Name: "atomicExpr",
		Kind: grammar.ParserRuleKind,
		Body: &grammar.AlternativeList{Alternatives: []*grammar.Alternative{
			{Label: "varRefExpr", Elements: []*grammar.SyntaxElement{tok("ID", grammar.SuffixNone)}},
			{Label: "numericLiteralExpr", Elements: []*grammar.SyntaxElement{tok("NUMBER", grammar.SuffixNone)}},
			{Label: "strLitExpr", Elements: []*grammar.SyntaxElement{tok("STR_LIT", grammar.SuffixNone)}},
		}},
	}

	exprRule := &grammar.Rule{
		Name: "expr",
		Kind: grammar.ParserRuleKind,
		Body: &grammar.AlternativeList{Alternatives: []*grammar.Alternative{
			{Label: "multExpr", Elements: []*grammar.SyntaxElement{rref("expr", grammar.SuffixNone), lit("*", ""), rref("expr", grammar.SuffixNone)}},
			{Label: "addExpr", Elements: []*grammar.SyntaxElement{rref("expr", grammar.SuffixNone), lit("+", ""), rref("expr", grammar.SuffixNone)}},
			{Label: "atomicExpr", Elements: []*grammar.SyntaxElement{rref("atomicExpr", grammar.SuffixNone)}},
		}},
	}

	cmdRule := singleAltRule("cmd", lit("print", ""), rref("expr", grammar.SuffixNone))

	g := &grammar.Grammar{
		Kind:        grammar.ParserOnly,
		Name:        "Test",
		ParserRules: []*grammar.Rule{cmdRule, exprRule, atomicExprRule},
	}

	model, diags := buildModel(g)
	require.False(t, diags.HasErrors())

	var exprClass, atomicClass *NodeClass
	for _, c := range model.Classes {
		if c.Name == "Expression" && c.Rule.Name == "expr" {
			exprClass = c
		}
		if c.Name == "AtomicExpression" && c.Rule.Name == "atomicExpr" {
			atomicClass = c
		}
	}
	require.NotNil(t, exprClass)
	require.NotNil(t, atomicClass)

	assert.True(t, exprClass.IsAbstract())
	require.Len(t, exprClass.Variants, 3)
	assert.Equal(t, "MultiplyExpression", exprClass.Variants[0].Name)
	assert.Equal(t, "AddExpression", exprClass.Variants[1].Name)
	assert.Equal(t, "AtomicExpression", exprClass.Variants[2].Name)

	assert.True(t, atomicClass.IsAbstract())
	require.Len(t, atomicClass.Variants, 3)
	assert.Equal(t, "VariableReferenceExpression", atomicClass.Variants[0].Name)
	assert.Equal(t, "NumericLiteralExpression", atomicClass.Variants[1].Name)
	assert.Equal(t, "StringLiteralExpression", atomicClass.Variants[2].Name)
}
