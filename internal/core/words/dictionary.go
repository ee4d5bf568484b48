// Package words implements the name-normalization pipeline the AST model
// builder runs every derived name through: abbreviation expansion,
// pluralization, and PascalCase normalization of rule, token, and label
// names.
package words

import "strings"

// entry is one row of the abbreviation dictionary: any of Patterns, matched
// case-insensitively against a whole name component, expands to Full.
type entry struct {
	Patterns []string
	Full     string
}

// Dictionary is an ordered abbreviation table. Later entries with the
// same pattern take priority, so a CustomWordExpansions config entry can
// override a built-in one just by being appended after it.
type Dictionary struct {
	entries []entry
	byWord  map[string]string
}

// NewDictionary creates an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{byWord: make(map[string]string)}
}

// Add registers patterns (each matched case-insensitively) as expanding to
// full.
func (d *Dictionary) Add(full string, patterns ...string) {
	d.entries = append(d.entries, entry{Patterns: patterns, Full: full})
	for _, p := range patterns {
		d.byWord[strings.ToLower(p)] = full
	}
}

// AddFromConfig merges a CustomWordExpansions-style map (pipe-separated
// alternate patterns to one full word) into the dictionary, after the
// existing entries, so custom entries win on conflict.
func (d *Dictionary) AddFromConfig(custom map[string]string) {
	for patternGroup, full := range custom {
		patterns := strings.Split(patternGroup, "|")
		d.Add(full, patterns...)
	}
}

// Expand returns the full word for word (case-insensitive lookup), and
// whether an entry matched. The caller is responsible for reapplying word's
// original case pattern to the result (see PreserveCaseOf).
func (d *Dictionary) Expand(word string) (string, bool) {
	full, ok := d.byWord[strings.ToLower(word)]
	return full, ok
}

// DefaultDictionary returns the built-in abbreviation table: the common
// grammar-writing vocabulary (stmt, expr, fn/func, id/ident, and a
// couple dozen more).
func DefaultDictionary() *Dictionary {
	d := NewDictionary()
	d.Add("statement", "stmt", "stat")
	d.Add("expression", "expr")
	d.Add("function", "fn", "fun", "func")
	d.Add("multiply", "mult")
	d.Add("identifier", "id", "ident")
	d.Add("declaration", "decl")
	d.Add("definition", "def", "defn")
	d.Add("argument", "arg")
	d.Add("parameter", "param")
	d.Add("variable", "var")
	d.Add("value", "val")
	d.Add("literal", "lit")
	d.Add("number", "num")
	d.Add("boolean", "bool")
	d.Add("condition", "cond")
	d.Add("return", "ret")
	d.Add("assignment", "assign")
	d.Add("operator", "op")
	d.Add("left", "lhs", "lft")
	d.Add("right", "rhs", "rgt")
	d.Add("reference", "ref")
	d.Add("expression", "exp")
	d.Add("type", "typ")
	d.Add("attribute", "attr")
	d.Add("modifier", "mod")
	d.Add("constant", "const")
	d.Add("message", "msg")
	d.Add("character", "char", "chr")
	d.Add("string", "str")
	d.Add("package", "pkg")
	d.Add("initialization", "init")
	d.Add("configuration", "config", "cfg")
	d.Add("specification", "spec")
	return d
}
