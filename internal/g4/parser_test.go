package g4

import (
	"testing"

	"github.com/dekarrin/grammarforge/internal/core/diag"
	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/dekarrin/grammarforge/internal/g4lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) (*grammar.Grammar, *diag.Bag) {
	t.Helper()
	d := diag.NewBag()
	stream, err := g4lex.LexImmediately(newLexer(), []byte(src))
	require.NoError(t, err)

	var toks []g4lex.Token
	for stream.HasNext() {
		toks = append(toks, stream.Next())
	}

	p := newParser(toks, "test.g4", d)
	return p.parse(), d
}

func Test_parse_combinedGrammarHeader(t *testing.T) {
	g, d := parseSource(t, `grammar Test; stat : 'swap' ID 'and' ID ; ID : [a-z]+ ;`)
	require.Equal(t, 0, d.Len())
	assert.Equal(t, grammar.Combined, g.Kind)
	assert.Equal(t, "Test", g.Name)
	require.Len(t, g.ParserRules, 1)
	require.Len(t, g.LexerRules, 1)
}

func Test_parse_lexerOnlyGrammarHeader(t *testing.T) {
	g, d := parseSource(t, `lexer grammar TestLexer; ID : [a-z]+ ;`)
	require.Equal(t, 0, d.Len())
	assert.Equal(t, grammar.LexerOnly, g.Kind)
	require.Len(t, g.LexerRules, 1)
}

func Test_parse_parserOnlyGrammarHeader(t *testing.T) {
	g, d := parseSource(t, `parser grammar TestParser; stat : ID ;`)
	require.Equal(t, 0, d.Len())
	assert.Equal(t, grammar.ParserOnly, g.Kind)
	require.Len(t, g.ParserRules, 1)
}

func Test_parse_ruleAlternativesAndLabels(t *testing.T) {
	g, d := parseSource(t, `
grammar Test;
expr
	: expr '*' expr #MultiplyExpression
	| ID            #VariableReferenceExpression
	;
ID : [a-zA-Z]+ ;
`)
	require.Equal(t, 0, d.Len())
	rule := g.RuleByName("expr")
	require.NotNil(t, rule)
	require.Len(t, rule.Body.Alternatives, 2)
	assert.Equal(t, "MultiplyExpression", rule.Body.Alternatives[0].Label)
	assert.Equal(t, "VariableReferenceExpression", rule.Body.Alternatives[1].Label)
}

func Test_parse_elementLabelsAndSuffixes(t *testing.T) {
	g, d := parseSource(t, `
grammar Test;
importStmt : 'import' first=ID (',' rest+=ID)* ;
ID : [a-z]+ ;
`)
	require.Equal(t, 0, d.Len())
	rule := g.RuleByName("importStmt")
	require.NotNil(t, rule)
	elems := rule.Body.Alternatives[0].Elements
	require.Len(t, elems, 3)

	assert.Equal(t, "first", elems[1].Label)
	assert.Equal(t, grammar.LabelAssign, elems[1].LabelKind)

	require.Equal(t, grammar.KindBlock, elems[2].Kind)
	assert.Equal(t, grammar.SuffixStar, elems[2].Suffix)
	blockElems := elems[2].Block.Alternatives[0].Elements
	require.Len(t, blockElems, 2)
	assert.Equal(t, "rest", blockElems[1].Label)
	assert.Equal(t, grammar.LabelPlusAssign, blockElems[1].LabelKind)
}

func Test_parse_fragmentRule(t *testing.T) {
	g, d := parseSource(t, `
grammar Test;
ID : LETTER+ ;
fragment LETTER : [a-zA-Z] ;
`)
	require.Equal(t, 0, d.Len())
	rule := g.RuleByName("LETTER")
	require.NotNil(t, rule)
	assert.True(t, rule.Fragment)
}

func Test_parse_negatedCharSetAndLiteral(t *testing.T) {
	g, d := parseSource(t, `
grammar Test;
STR : '"' (~["\\])* '"' ;
NOT_A : ~'a' ;
`)
	require.Equal(t, 0, d.Len())

	str := g.RuleByName("STR")
	require.NotNil(t, str)
	block := str.Body.Alternatives[0].Elements[1]
	require.Equal(t, grammar.KindBlock, block.Kind)
	inner := block.Block.Alternatives[0].Elements[0]
	assert.Equal(t, grammar.KindCharSet, inner.Kind)
	assert.True(t, inner.CharSetNegated)

	notA := g.RuleByName("NOT_A")
	require.NotNil(t, notA)
	elem := notA.Body.Alternatives[0].Elements[0]
	assert.Equal(t, grammar.KindCharSet, elem.Kind)
	assert.True(t, elem.CharSetNegated)
	assert.Equal(t, []grammar.CharSetItem{{Lo: 'a', Hi: 'a'}}, elem.CharSetItems)
}

func Test_parse_negatedRuleRefIsNotFlagged(t *testing.T) {
	g, d := parseSource(t, `
grammar Test;
OVERRIDE : ~ID ;
ID : [a-z]+ ;
`)
	require.Equal(t, 0, d.Len())
	rule := g.RuleByName("OVERRIDE")
	require.NotNil(t, rule)
	elem := rule.Body.Alternatives[0].Elements[0]
	assert.Equal(t, grammar.KindTokenRef, elem.Kind)
	assert.True(t, elem.Not)
}

func Test_parse_optionsBlockAtGrammarLevel(t *testing.T) {
	g, d := parseSource(t, `
parser grammar TestParser;
options { tokenVocab=TestLexer; }
stat : ID ;
`)
	require.Equal(t, 0, d.Len())
	assert.Equal(t, "TestLexer", g.Options["tokenVocab"])
}

func Test_parse_tokensBlockRegistersVirtualTokens(t *testing.T) {
	g, d := parseSource(t, `
grammar Test;
tokens { VIRTUAL }
stat : VIRTUAL ;
`)
	require.Equal(t, 0, d.Len())
	rule := g.RuleByName("VIRTUAL")
	require.NotNil(t, rule)
	assert.Equal(t, grammar.LexerRuleKind, rule.Kind)
}

func Test_parse_lexerCommandIsDiscarded(t *testing.T) {
	g, d := parseSource(t, `
grammar Test;
WS : [ \t\r\n]+ -> skip ;
`)
	require.Equal(t, 0, d.Len())
	rule := g.RuleByName("WS")
	require.NotNil(t, rule)
	require.Len(t, rule.Body.Alternatives[0].Elements, 1)
}

func Test_parse_actionBlockWithNestedBracesIsDiscarded(t *testing.T) {
	g, d := parseSource(t, `
grammar Test;
stat : ID { foo(); { bar(); } } ;
ID : [a-z]+ ;
`)
	require.Equal(t, 0, d.Len())
	rule := g.RuleByName("stat")
	require.NotNil(t, rule)
	require.Len(t, rule.Body.Alternatives[0].Elements, 1)
}

func Test_parse_unexpectedTokenReportsInvalidGrammar(t *testing.T) {
	_, d := parseSource(t, `grammar Test; stat : ) ;`)
	found := false
	for _, diagnostic := range d.All() {
		if diagnostic.Kind() == diag.KindInvalidGrammar {
			found = true
		}
	}
	assert.True(t, found)
}

func Test_parse_mixedLabeledAndUnlabeledAlternativesReportsInvalidGrammar(t *testing.T) {
	_, d := parseSource(t, `
grammar Test;
expr : 'not'? expr #notExpr
     | expr '+' expr ;
`)
	found := false
	for _, diagnostic := range d.All() {
		if diagnostic.Kind() == diag.KindInvalidGrammar {
			found = true
		}
	}
	assert.True(t, found)
}

func Test_parse_dotAndEOF(t *testing.T) {
	g, d := parseSource(t, `
grammar Test;
anyChar : . EOF ;
`)
	require.Equal(t, 0, d.Len())
	rule := g.RuleByName("anyChar")
	require.NotNil(t, rule)
	elems := rule.Body.Alternatives[0].Elements
	require.Len(t, elems, 2)
	assert.Equal(t, grammar.KindDot, elems[0].Kind)
	assert.Equal(t, grammar.KindTokenRef, elems[1].Kind)
	assert.Equal(t, "EOF", elems[1].RefName)
}
