package astmodel

import (
	"fmt"

	"github.com/dekarrin/grammarforge/internal/core/grammar"
)

// deriveProperties walks one alternative's elements in document order,
// first checking each adjacent pair for the delimited-list sugar, then
// dispatching single elements, recursing into Blocks by
// flattening their inner alternatives' properties into the same list
// (their shared optionality is accounted for in blockOptional).
func (b *Builder) deriveProperties(elems []*grammar.SyntaxElement, ctxOptional bool) []*Property {
	var props []*Property

	for i := 0; i < len(elems); i++ {
		e := elems[i]

		if e.Kind == grammar.KindBlock {
			blockOptional := ctxOptional || e.Suffix.Optional() || len(e.Block.Alternatives) >= 2
			for _, alt := range e.Block.Alternatives {
				props = append(props, b.deriveProperties(alt.Elements, blockOptional)...)
			}
			continue
		}

		if i+1 < len(elems) && elems[i+1].Kind == grammar.KindBlock {
			if ok := matchesDelimitedList(e, elems[i+1]); ok {
				if p := b.sugarListProperty(e); p != nil {
					props = append(props, p)
				}
				i++
				continue
			}
		}

		if p := b.propertyForElement(e, ctxOptional); p != nil {
			props = append(props, p)
		}
	}

	return props
}

// matchesDelimitedList recognizes `X (delim X)+` / `X (delim X)*`: x is a bare RuleRef/TokenRef, block is a repeated Block whose
// sole alternative is exactly [delimiter, X'] with X' structurally equal to
// x.
func matchesDelimitedList(x, block *grammar.SyntaxElement) bool {
	if x.Kind != grammar.KindRuleRef && x.Kind != grammar.KindTokenRef {
		return false
	}
	if x.Suffix != grammar.SuffixNone {
		return false
	}
	if !(block.Suffix == grammar.SuffixStar || block.Suffix == grammar.SuffixPlus) {
		return false
	}
	if block.Block == nil || len(block.Block.Alternatives) != 1 {
		return false
	}
	inner := block.Block.Alternatives[0].Elements
	if len(inner) != 2 {
		return false
	}
	delim, x2 := inner[0], inner[1]
	return isDelimiterElement(delim) && structurallyEqual(x, x2)
}

func isDelimiterElement(e *grammar.SyntaxElement) bool {
	if e.Label != "" {
		return false
	}
	switch e.Kind {
	case grammar.KindLiteral:
		return true
	case grammar.KindTokenRef:
		return !grammar.IsTextImportant(e.RefName)
	default:
		return false
	}
}

func structurallyEqual(a, c *grammar.SyntaxElement) bool {
	return a.Kind == c.Kind &&
		a.RefName == c.RefName &&
		a.Literal == c.Literal &&
		a.Suffix == c.Suffix &&
		a.Not == c.Not &&
		a.Label == c.Label &&
		a.LabelKind == c.LabelKind
}

func (b *Builder) sugarListProperty(x *grammar.SyntaxElement) *Property {
	seed := x.Label
	if seed == "" {
		seed = nameSeed(x)
	}

	switch x.Kind {
	case grammar.KindRuleRef:
		ref := b.resolve(x.RefName)
		if ref == nil {
			b.reportUnknownRef(x)
			return nil
		}
		return &Property{
			Name:    b.propName(seed, true),
			Shape:   ShapeNodeRefList,
			Source:  b.mappingSource(x, true),
			RefNode: ref,
		}
	case grammar.KindTokenRef:
		if !grammar.IsTextImportant(x.RefName) && x.Label == "" {
			return nil
		}
		return &Property{
			Name:   b.propName(seed, true),
			Shape:  ShapeTokenTextList,
			Source: b.mappingSource(x, true),
		}
	default:
		return nil
	}
}

func nameSeed(e *grammar.SyntaxElement) string {
	if e.Label != "" {
		return e.Label
	}
	if e.Kind == grammar.KindLiteral {
		return e.Literal
	}
	return e.RefName
}

// propertyForElement dispatches a single non-sugar, non-Block element to
// its property shape.
func (b *Builder) propertyForElement(e *grammar.SyntaxElement, ctxOptional bool) *Property {
	optional := ctxOptional || e.Suffix.Optional()
	repeated := e.Suffix.Repeated()

	switch e.Kind {
	case grammar.KindRuleRef:
		ref := b.resolve(e.RefName)
		if ref == nil {
			b.reportUnknownRef(e)
			return nil
		}
		shape := ShapeNodeRef
		if repeated {
			shape = ShapeNodeRefList
		}
		return &Property{
			Name:     b.propName(nameSeed(e), repeated),
			Shape:    shape,
			Optional: optional && !repeated,
			Source:   b.mappingSource(e, repeated),
			RefNode:  ref,
		}

	case grammar.KindTokenRef:
		if e.Label != "" {
			if optional && !repeated {
				return &Property{Name: b.boolPropName(e.Label), Shape: ShapeOptionalToken, Source: b.mappingSource(e, false)}
			}
			shape := ShapeTokenText
			if repeated {
				shape = ShapeTokenTextList
			}
			return &Property{
				Name:     b.propName(e.Label, repeated),
				Shape:    shape,
				Optional: optional && !repeated,
				Source:   b.mappingSource(e, repeated),
			}
		}
		if !grammar.IsTextImportant(e.RefName) {
			return nil
		}
		shape := ShapeTokenText
		if repeated {
			shape = ShapeTokenTextList
		}
		return &Property{
			Name:     b.propName(e.RefName, repeated),
			Shape:    shape,
			Optional: optional && !repeated,
			Source:   b.mappingSource(e, repeated),
		}

	case grammar.KindLiteral:
		if e.Label == "" {
			return nil
		}
		if optional && !repeated {
			return &Property{Name: b.boolPropName(e.Label), Shape: ShapeOptionalToken, Source: b.mappingSource(e, false)}
		}
		shape := ShapeTokenText
		if repeated {
			shape = ShapeTokenTextList
		}
		return &Property{
			Name:     b.propName(e.Label, repeated),
			Shape:    shape,
			Optional: optional && !repeated,
			Source:   b.mappingSource(e, repeated),
		}

	default:
		// CharSet, Dot, Empty: no property (not addressable by name).
		return nil
	}
}

// resolveDuplicateNames resolves name collisions: after deriving all
// properties for one class, a name shared by exactly two properties picks
// up Left/Right prefixes; three or more get a numeric suffix; a group that
// all share the same ByLabel mapping source (the user wrote `x+=A x+=A`)
// collapses into the first property instead.
func resolveDuplicateNames(props []*Property) []*Property {
	groups := map[string][]int{}
	for i, p := range props {
		groups[p.Name] = append(groups[p.Name], i)
	}

	remove := map[int]bool{}
	for name, idxs := range groups {
		if len(idxs) < 2 {
			continue
		}

		if allSameLabelSource(props, idxs) {
			for _, idx := range idxs[1:] {
				remove[idx] = true
			}
			continue
		}

		if len(idxs) == 2 {
			props[idxs[0]].Name = "Left" + name
			props[idxs[1]].Name = "Right" + name
			continue
		}

		for n, idx := range idxs {
			props[idx].Name = fmt.Sprintf("%s%d", name, n+1)
		}
	}

	if len(remove) == 0 {
		return props
	}

	out := make([]*Property, 0, len(props)-len(remove))
	for i, p := range props {
		if !remove[i] {
			out = append(out, p)
		}
	}
	return out
}

func allSameLabelSource(props []*Property, idxs []int) bool {
	first := props[idxs[0]].Source
	if first.Kind != MappingByLabel || first.Label == "" {
		return false
	}
	for _, idx := range idxs[1:] {
		s := props[idx].Source
		if s.Kind != MappingByLabel || s.Label != first.Label {
			return false
		}
	}
	return true
}
