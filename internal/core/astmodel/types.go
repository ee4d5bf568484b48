// Package astmodel derives the AST code model from an analyzed
// grammar.Grammar: one NodeClass per parser rule (plus variants for labeled
// or unlabeled multi-alternative rules), each with a property list derived
// from its alternative's elements, plus the AstBuilder description the
// emitter renders a Visitor from.
package astmodel

import "github.com/dekarrin/grammarforge/internal/core/grammar"

// PropertyShape is the tagged-variant discriminant for Property: which of
// the five shapes this property carries.
type PropertyShape int

const (
	ShapeTokenText PropertyShape = iota
	ShapeTokenTextList
	ShapeOptionalToken
	ShapeNodeRef
	ShapeNodeRefList
)

func (s PropertyShape) String() string {
	switch s {
	case ShapeTokenText:
		return "TokenText"
	case ShapeTokenTextList:
		return "TokenTextList"
	case ShapeOptionalToken:
		return "OptionalToken"
	case ShapeNodeRef:
		return "NodeRef"
	case ShapeNodeRefList:
		return "NodeRefList"
	default:
		return "Unknown"
	}
}

// IsList reports whether the shape is one of the two list-valued ones.
func (s PropertyShape) IsList() bool {
	return s == ShapeTokenTextList || s == ShapeNodeRefList
}

// MappingSourceKind discriminates the two ways a Property can be read back
// off a parse-tree context at emit time.
type MappingSourceKind int

const (
	MappingByLabel MappingSourceKind = iota
	MappingByGetter
)

// MappingSource tells the emitter how to reach the parse-tree child backing
// a Property. ByLabel means the element carried an explicit `=`/`+=` label
// in the grammar, and the generated context exposes it by that name
// directly. ByGetter means the emitter must call an indexed or
// type-enumerating getter; GetterIndex is nil when the analyzer could not
// assign a deterministic index or the element is a
// singleton addressed without an index at all. Both cases the emitter
// handles by falling back to an unindexed/enumerating accessor, so the two
// are not distinguished here beyond the Singleton hint.
type MappingSource struct {
	Kind        MappingSourceKind
	Label       string
	LabelKind   grammar.LabelKind
	GetterIndex *int
	Singleton   bool
}

// Property is one named, typed accessor a NodeClass exposes. Optional is
// meaningful only for the non-list, non-boolean shapes (TokenText,
// NodeRef); it is always false for TokenTextList/NodeRefList (absence is
// expressed by an empty list) and for OptionalToken (absence/presence is
// the whole point of the shape).
type Property struct {
	Name     string
	Shape    PropertyShape
	Source   MappingSource
	Optional bool

	// RefNode is set for ShapeNodeRef/ShapeNodeRefList when the property is
	// derived; it may point at a class still under construction (a
	// recursive or mutually-recursive rule), whose memoized pointer is
	// populated in place before Build returns.
	RefNode *NodeClass
}

// NodeClass is one generated AST node type: a concrete class backing a
// single (possibly variant) alternative, or an abstract base with Variants
// and no Properties of its own.
type NodeClass struct {
	Name string
	Rule *grammar.Rule

	// SourceAlt is the Alternative this concrete class's properties were
	// derived from. Nil for an abstract base class (it has no properties
	// of its own).
	SourceAlt *grammar.Alternative

	Properties []*Property

	// Base is non-nil iff this NodeClass is a variant of another.
	Base *NodeClass

	// Variants lists this class's concrete variants in source order, if it
	// is an abstract base.
	Variants []*NodeClass
}

// IsAbstract reports whether c has variants (and therefore no properties or
// backing alternative of its own).
func (c *NodeClass) IsAbstract() bool {
	return len(c.Variants) > 0
}

// RuleMapping pairs a grammar rule (or one of its labeled/synthetic
// alternatives) with the NodeClass the AST builder constructs for it.
type RuleMapping struct {
	Rule  *grammar.Rule
	Alt   *grammar.Alternative // the alternative Class was derived from; nil only for a rule with no alternatives
	Class *NodeClass
}

// Model is the AstBuilder description: the grammar name, the parser
// class name ANTLR would have generated, and every (Rule[, Alternative]) ->
// NodeClass mapping the emitter needs to render a visit method for,
// including one entry per variant.
type Model struct {
	GrammarName     string
	ParserClassName string

	// Classes holds every NodeClass in the model: each root class in
	// rule-declaration order, immediately followed by its variants in
	// source order.
	Classes []*NodeClass

	Mappings []RuleMapping
}
