package textmate

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// String renders a Document's pattern table for debugging: match order,
// scope, and the synthesized regex for each kept pattern.
func (d *Document) String() string {
	data := [][]string{{"RULE", "SCOPE", "KEYWORD", "REGEX"}}
	for _, p := range d.Patterns {
		data = append(data, []string{p.RuleName, p.Scope, fmt.Sprintf("%v", p.Keyword), p.Regex})
	}

	table := rosed.Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()

	return fmt.Sprintf("%s (%d patterns):\n%s", d.ScopeName, len(d.Patterns), table)
}
