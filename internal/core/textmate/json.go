package textmate

import "encoding/json"

// The TextMate grammar JSON dialect (scopeName/patterns/repository/
// fileTypes, `include`-reference top-level patterns) is small enough
// that encoding/json over a private struct shape covers it.

type tmPatternRef struct {
	Include string `json:"include"`
}

type tmRule struct {
	Name  string `json:"name"`
	Match string `json:"match"`
}

type tmDocument struct {
	ScopeName  string            `json:"scopeName"`
	Patterns   []tmPatternRef    `json:"patterns"`
	Repository map[string]tmRule `json:"repository"`
	FileTypes  []string          `json:"fileTypes"`
}

// MarshalJSON renders the Document as a TextMate grammar JSON document:
// top-level patterns reference repository entries by name, and every
// kept Pattern gets a repository entry keyed by its rule name.
func (d *Document) MarshalJSON() ([]byte, error) {
	doc := tmDocument{
		ScopeName:  d.ScopeName,
		FileTypes:  d.FileTypes,
		Repository: make(map[string]tmRule, len(d.Repository)),
	}
	if doc.FileTypes == nil {
		doc.FileTypes = []string{}
	}

	for _, p := range d.Patterns {
		doc.Patterns = append(doc.Patterns, tmPatternRef{Include: "#" + p.RuleName})
	}
	for name, p := range d.Repository {
		doc.Repository[name] = tmRule{Name: p.Scope, Match: p.Regex}
	}

	return json.MarshalIndent(doc, "", "  ")
}
