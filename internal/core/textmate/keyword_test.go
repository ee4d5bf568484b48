package textmate

import (
	"testing"

	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_isKeywordLike(t *testing.T) {
	smallSet := lexRule("BOOL_LIT", nil, false, []*grammar.SyntaxElement{
		{Kind: grammar.KindCharSet, CharSetItems: []CharSetItem{{Lo: 't', Hi: 't'}, {Lo: 'f', Hi: 'f'}}},
	})
	wideSet := lexRule("ID", nil, false, []*grammar.SyntaxElement{
		{Kind: grammar.KindCharSet, CharSetItems: []CharSetItem{{Lo: 'a', Hi: 'z'}}, Suffix: grammar.SuffixPlus},
	})
	literalOnly := lexRule("IF_KW", nil, false, []*grammar.SyntaxElement{lexLit("if")})
	referencesKeyword := lexRule("IF_OR_ELSE", nil, false,
		[]*grammar.SyntaxElement{lexRef("IF_KW", grammar.SuffixNone)},
		[]*grammar.SyntaxElement{lexLit("else")},
	)
	referencesWide := lexRule("ID_OR_KW", nil, false,
		[]*grammar.SyntaxElement{lexRef("ID", grammar.SuffixNone)},
	)

	g := &grammar.Grammar{Name: "Test", LexerRules: []*grammar.Rule{smallSet, wideSet, literalOnly, referencesKeyword, referencesWide}}

	assert.True(t, isKeywordLike(smallSet, g, map[string]bool{}))
	assert.False(t, isKeywordLike(wideSet, g, map[string]bool{}))
	assert.True(t, isKeywordLike(literalOnly, g, map[string]bool{}))
	assert.True(t, isKeywordLike(referencesKeyword, g, map[string]bool{}))
	assert.False(t, isKeywordLike(referencesWide, g, map[string]bool{}))
}

func Test_boundaryBounds_disagreementYieldsNoAnchor(t *testing.T) {
	// '@import' (nonword start) vs 'lock' (word start): mixed, no leading anchor meaningful.
	mixed := lexRule("MIXED_KW", nil, false,
		[]*grammar.SyntaxElement{lexLit("@import")},
		[]*grammar.SyntaxElement{lexLit("lock")},
	)
	g := &grammar.Grammar{Name: "Test", LexerRules: []*grammar.Rule{mixed}}

	_, _, ok := boundaryBounds(mixed, g)
	assert.False(t, ok)
}

func Test_boundaryBounds_agreement(t *testing.T) {
	kw := lexRule("FOR_KW", nil, false, []*grammar.SyntaxElement{lexLit("for")})
	g := &grammar.Grammar{Name: "Test", LexerRules: []*grammar.Rule{kw}}

	startsWord, endsWord, ok := boundaryBounds(kw, g)
	assert.True(t, ok)
	assert.True(t, startsWord)
	assert.True(t, endsWord)
}
