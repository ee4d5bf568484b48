package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ExpandName(t *testing.T) {
	dict := DefaultDictionary()

	testCases := []struct {
		name   string
		input  string
		opts   Options
		expect string
	}{
		{
			name:   "ID expands to Identifier",
			input:  "ID",
			opts:   Options{Dictionary: dict},
			expect: "Identifier",
		},
		{
			name:   "stmt expands to Statement",
			input:  "stmt",
			opts:   Options{Dictionary: dict},
			expect: "Statement",
		},
		{
			name:   "no dictionary leaves component untouched but still PascalCases",
			input:  "fooBar",
			opts:   Options{},
			expect: "FooBar",
		},
		{
			name:   "already-plural list gets List suffix instead of re-pluralizing",
			input:  "functions",
			opts:   Options{Dictionary: dict, AsList: true},
			expect: "FunctionsList",
		},
		{
			name:   "singular list-valued property pluralizes normally",
			input:  "identifier",
			opts:   Options{Dictionary: dict, AsList: true},
			expect: "Identifiers",
		},
		{
			name:   "ALL_CAPS splits on underscore and title-cases each part",
			input:  "STR_LIT",
			opts:   Options{Dictionary: dict},
			expect: "StringLiteral",
		},
		{
			name:   "plural abbreviation expands via its singular and re-pluralizes",
			input:  "stmts",
			opts:   Options{Dictionary: dict},
			expect: "Statements",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ExpandName(tc.input, tc.opts))
		})
	}
}

func Test_SplitComponents(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{"camelCase", "fooBar", []string{"foo", "Bar"}},
		{"snake_case", "foo_bar", []string{"foo", "bar"}},
		{"leading/trailing underscores trimmed", "_foo_", []string{"foo"}},
		{"HTTPServer keeps acronym run together", "HTTPServer", []string{"HTTP", "Server"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, SplitComponents(tc.input))
		})
	}
}

func Test_Pluralize(t *testing.T) {
	testCases := []struct {
		input  string
		expect string
	}{
		{"Function", "Functions"},
		{"Class", "Classes"},
		{"Identity", "Identities"},
		{"Child", "Children"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expect, Pluralize(tc.input))
		})
	}
}
