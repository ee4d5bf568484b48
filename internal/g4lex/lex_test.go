package g4lex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LazyLex_singleStateLex(t *testing.T) {
	testCases := []struct {
		name       string
		classes    []string
		patterns   []string
		lexActions []Action
		input      string
		expect     []string // expected class IDs, in order
	}{
		{
			name:       "empty input produces no tokens",
			classes:    []string{"ID"},
			patterns:   []string{"[a-z]+"},
			lexActions: []Action{LexAs("id")},
			input:      "",
			expect:     nil,
		},
		{
			name:       "single token",
			classes:    []string{"ID"},
			patterns:   []string{"[a-z]+"},
			lexActions: []Action{LexAs("id")},
			input:      "foo",
			expect:     []string{"id"},
		},
		{
			name:       "whitespace discarded between tokens",
			classes:    []string{"ID"},
			patterns:   []string{"[a-z]+", "[ \t\n]+"},
			lexActions: []Action{LexAs("id"), Discard()},
			input:      "foo bar",
			expect:     []string{"id", "id"},
		},
		{
			name:       "longest match wins over earlier-defined shorter pattern",
			classes:    []string{"IF_KW", "ID"},
			patterns:   []string{"if", "[a-z]+"},
			lexActions: []Action{LexAs("if_kw"), LexAs("id")},
			input:      "iffy",
			expect:     []string{"id"},
		},
		{
			name:       "equal-length tie prefers first-defined pattern",
			classes:    []string{"IF_KW", "ID"},
			patterns:   []string{"if", "[a-z]+"},
			lexActions: []Action{LexAs("if_kw"), LexAs("id")},
			input:      "if",
			expect:     []string{"if_kw"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			lx := NewLexer()
			for i := range tc.classes {
				lx.RegisterClass(NewTokenClass(strings.ToLower(tc.classes[i]), tc.classes[i]), "")
			}
			for i := range tc.patterns {
				err := lx.AddPattern(tc.patterns[i], tc.lexActions[i], "")
				if !assert.NoErrorf(err, "adding pattern %d failed", i) {
					return
				}
			}

			stream, err := lx.Lex(strings.NewReader(tc.input))
			if !assert.NoError(err) {
				return
			}

			var got []string
			for stream.HasNext() {
				tok := stream.Next()
				if tok.Class().ID() == TokenEndOfText.ID() {
					break
				}
				got = append(got, tok.Class().ID())
			}

			assert.Equal(tc.expect, got)
		})
	}
}

func Test_LexImmediately_reportsErrorToken(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	lx.RegisterClass(NewTokenClass("id", "ID"), "")
	assert.NoError(lx.AddPattern("[a-z]+", LexAs("id"), ""))

	_, err := LexImmediately(lx, []byte("foo123"))
	assert.Error(err)

	var lexErr *LexError
	assert.ErrorAs(err, &lexErr)
}
