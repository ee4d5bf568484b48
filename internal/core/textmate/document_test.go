package textmate

import (
	"encoding/json"
	"testing"

	"github.com/dekarrin/grammarforge/internal/core/diag"
	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_resolveScope_default(t *testing.T) {
	assert.Equal(t, "constant.other.id.testlang", resolveScope("ID", false, Options{Language: "testlang"}, "Test"))
	assert.Equal(t, "keyword.control.for-kw.testlang", resolveScope("FOR_KW", true, Options{Language: "testlang"}, "Test"))
}

func Test_resolveScope_fallsBackToGrammarName(t *testing.T) {
	assert.Equal(t, "constant.other.id.test", resolveScope("ID", false, Options{}, "Test"))
}

func Test_defaultScopeName(t *testing.T) {
	assert.Equal(t, "source.mylang", defaultScopeName("Whatever", "mylang"))
	assert.Equal(t, "source.whatever", defaultScopeName("Whatever", ""))
}

func Test_Document_MarshalJSON(t *testing.T) {
	override := lexRule("OVERRIDE", nil, false, []*grammar.SyntaxElement{lexLit("@override")})
	g := &grammar.Grammar{Kind: grammar.LexerOnly, Name: "Test", LexerRules: []*grammar.Rule{override}}

	d := diag.NewBag()
	doc := Synthesize(g, d, Options{Language: "mylang"})
	require.False(t, d.HasErrors())

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "source.mylang", decoded["scopeName"])
	patterns, ok := decoded["patterns"].([]any)
	require.True(t, ok)
	require.Len(t, patterns, 1)
	assert.Equal(t, "#OVERRIDE", patterns[0].(map[string]any)["include"])

	repo, ok := decoded["repository"].(map[string]any)
	require.True(t, ok)
	entry := repo["OVERRIDE"].(map[string]any)
	assert.Equal(t, `(?:@override)\b`, entry["match"])
}

func Test_Document_String(t *testing.T) {
	override := lexRule("OVERRIDE", nil, false, []*grammar.SyntaxElement{lexLit("@override")})
	g := &grammar.Grammar{Kind: grammar.LexerOnly, Name: "Test", LexerRules: []*grammar.Rule{override}}

	d := diag.NewBag()
	doc := Synthesize(g, d, Options{})
	require.False(t, d.HasErrors())

	out := doc.String()
	assert.Contains(t, out, "OVERRIDE")
	assert.Contains(t, out, `@override`)
}
