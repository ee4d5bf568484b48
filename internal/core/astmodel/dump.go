package astmodel

import (
	"fmt"

	"github.com/dekarrin/grammarforge/internal/util"
	"github.com/dekarrin/rosed"
)

// String renders a NodeClass and its properties as a table.
func (c *NodeClass) String() string {
	if c.IsAbstract() {
		names := make([]string, len(c.Variants))
		for i, v := range c.Variants {
			names[i] = v.Name
		}
		return fmt.Sprintf("%s (abstract, variants: %s)", c.Name, util.MakeTextList(names))
	}

	data := [][]string{{"PROPERTY", "SHAPE", "OPTIONAL", "SOURCE"}}
	for _, p := range c.Properties {
		data = append(data, []string{p.Name, p.Shape.String(), fmt.Sprintf("%v", p.Optional), p.Source.String()})
	}

	table := rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()

	return fmt.Sprintf("%s:\n%s", c.Name, table)
}

// String renders a MappingSource the way a diagnostic/debug table wants it:
// the label name followed by its `=`/`+=` kind, or "get(i)"/"get(?)" for an
// indexed/ambiguous getter ("getOnly()" for an unindexed singleton).
func (s MappingSource) String() string {
	if s.Kind == MappingByLabel {
		return s.Label + s.LabelKind.String()
	}
	if s.GetterIndex == nil {
		if s.Singleton {
			return "getOnly()"
		}
		return "get(?)"
	}
	return fmt.Sprintf("get(%d)", *s.GetterIndex)
}
