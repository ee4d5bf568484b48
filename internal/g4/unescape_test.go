package g4

import (
	"testing"

	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_unescapeString(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `'swap'`, want: "swap"},
		{name: "escaped quote", in: `'it\'s'`, want: "it's"},
		{name: "escaped backslash", in: `'a\\b'`, want: `a\b`},
		{name: "newline escape", in: `'a\nb'`, want: "a\nb"},
		{name: "non-ascii passthrough", in: `'café'`, want: "café"},
		{name: "explicit unicode escape", in: "'\\u00e9'", want: "é"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := unescapeString(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_decodeCharSet_rangesAndSingles(t *testing.T) {
	items, negated, err := decodeCharSet(`[a-zA-Z0-9_]`)
	require.NoError(t, err)
	assert.False(t, negated)
	assert.Equal(t, []grammar.CharSetItem{
		{Lo: 'a', Hi: 'z'},
		{Lo: 'A', Hi: 'Z'},
		{Lo: '0', Hi: '9'},
		{Lo: '_', Hi: '_'},
	}, items)
}

func Test_decodeCharSet_negated(t *testing.T) {
	items, negated, err := decodeCharSet(`[^a-z]`)
	require.NoError(t, err)
	assert.True(t, negated)
	assert.Equal(t, []grammar.CharSetItem{{Lo: 'a', Hi: 'z'}}, items)
}

func Test_decodeCharSet_escapedBracketAndBackslash(t *testing.T) {
	items, negated, err := decodeCharSet(`["\\]`)
	require.NoError(t, err)
	assert.False(t, negated)
	assert.Equal(t, []grammar.CharSetItem{{Lo: '"', Hi: '"'}, {Lo: '\\', Hi: '\\'}}, items)
}

func Test_decodeCharSet_escapedHyphenIsLiteralNotRange(t *testing.T) {
	items, negated, err := decodeCharSet(`[a\-z]`)
	require.NoError(t, err)
	assert.False(t, negated)
	assert.Equal(t, []grammar.CharSetItem{
		{Lo: 'a', Hi: 'a'},
		{Lo: '-', Hi: '-'},
		{Lo: 'z', Hi: 'z'},
	}, items)
}

func Test_decodeCharSet_escapedBackslashBeforeRangeHyphenIsNotMistakenForEscapedHyphen(t *testing.T) {
	items, negated, err := decodeCharSet(`[\\-z]`)
	require.NoError(t, err)
	assert.False(t, negated)
	assert.Equal(t, []grammar.CharSetItem{{Lo: '\\', Hi: 'z'}}, items)
}
