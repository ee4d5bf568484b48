package grammar

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// String renders a human-readable summary of the grammar's rule list as
// a table.
func (g *Grammar) String() string {
	data := [][]string{{"RULE", "KIND", "ALTS"}}
	for _, r := range g.ParserRules {
		data = append(data, []string{r.Name, "parser", fmt.Sprintf("%d", len(r.Body.Alternatives))})
	}
	for _, r := range g.LexerRules {
		kind := "lexer"
		if r.Fragment {
			kind = "fragment"
		}
		data = append(data, []string{r.Name, kind, fmt.Sprintf("%d", len(r.Body.Alternatives))})
	}

	table := rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()

	return fmt.Sprintf("grammar %q (%s):\n%s", g.Name, g.Kind, table)
}

// DumpTable renders every indexed element of rule, one row per element,
// for debugging the analyzer's output against a grammar under development.
func (a *Analysis) DumpTable(rule *Rule) string {
	data := [][]string{{"ELEMENT", "CHILD IDX", "TYPE IDX", "SINGLETON"}}

	var walk func(elems []*SyntaxElement)
	walk = func(elems []*SyntaxElement) {
		for _, e := range elems {
			if _, ok := typeKey(e); ok {
				idx := a.Index(e)
				data = append(data, []string{
					describeElement(e),
					intPtrString(idx.ChildIndex),
					intPtrString(idx.IndexByType),
					fmt.Sprintf("%v", a.IsSingleton(e)),
				})
			}
			if e.Kind == KindBlock && e.Block != nil {
				for _, alt := range e.Block.Alternatives {
					walk(alt.Elements)
				}
			}
		}
	}
	for _, alt := range rule.Body.Alternatives {
		walk(alt.Elements)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func describeElement(e *SyntaxElement) string {
	switch e.Kind {
	case KindLiteral:
		return "'" + e.Literal + "'" + e.Suffix.String()
	default:
		return e.RefName + e.Suffix.String()
	}
}

func intPtrString(p *int) string {
	if p == nil {
		return "null"
	}
	return fmt.Sprintf("%d", *p)
}
