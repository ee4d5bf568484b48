// Package goemit is the reference implementation of emit.Emitter: it
// renders an astmodel.Model as Go source: one struct per NodeClass, an
// interface for each abstract base, and a Build dispatch function that
// routes a parsed rule context to the generated node type constructed
// for it.
package goemit

import (
	"fmt"

	"github.com/dekarrin/grammarforge/internal/core/astmodel"
	"github.com/dekarrin/grammarforge/internal/core/emit"
	"github.com/dekarrin/grammarforge/internal/core/words"
)

// Emitter renders an astmodel.Model as Go source text for the given
// package name.
type Emitter struct {
	PackageName string
}

// New creates an Emitter that writes into the given package.
func New(packageName string) *Emitter {
	return &Emitter{PackageName: packageName}
}

var _ emit.Emitter = (*Emitter)(nil)

func goType(p *astmodel.Property) string {
	switch p.Shape {
	case astmodel.ShapeTokenText:
		return "string"
	case astmodel.ShapeTokenTextList:
		return "[]string"
	case astmodel.ShapeOptionalToken:
		return "*string"
	case astmodel.ShapeNodeRef:
		if p.RefNode != nil {
			return "*" + p.RefNode.Name
		}
		return "any"
	case astmodel.ShapeNodeRefList:
		if p.RefNode != nil {
			return "[]*" + p.RefNode.Name
		}
		return "[]any"
	default:
		return "any"
	}
}

// VisitAstCodeModel emits the file header: package clause and a doc
// comment naming the grammar the model was derived from.
func (e *Emitter) VisitAstCodeModel(w *emit.IndentedWriter, m *astmodel.Model) {
	w.WriteLine(fmt.Sprintf("// Package %s contains AST node types generated from the %s grammar.", e.PackageName, m.GrammarName))
	w.WriteLine(fmt.Sprintf("package %s", e.PackageName))
	w.WriteLine("")
}

// VisitNodeClass emits either an interface (for an abstract base with
// Variants) or a struct type (for a concrete class), plus, for a variant,
// the is<Base>() marker method that makes it satisfy its base's
// interface.
func (e *Emitter) VisitNodeClass(w *emit.IndentedWriter, c *astmodel.NodeClass) {
	w.WriteLine("")
	if c.IsAbstract() {
		w.WriteLine(fmt.Sprintf("// %s is implemented by every variant of the %s rule.", c.Name, c.Rule.Name))
		w.WriteLine(fmt.Sprintf("type %s interface {", c.Name))
		w.Indent()
		w.WriteLine(fmt.Sprintf("is%s()", c.Name))
		w.Unindent()
		w.WriteLine("}")
		return
	}

	w.WriteLine(fmt.Sprintf("// %s is a node produced by the %s rule.", c.Name, c.Rule.Name))
	w.WriteLine(fmt.Sprintf("type %s struct {", c.Name))
	w.Indent()
	for _, p := range c.Properties {
		w.WriteLine(fmt.Sprintf("%s %s", p.Name, goType(p)))
	}
	w.Unindent()
	w.WriteLine("}")

	if c.Base != nil {
		w.WriteLine(fmt.Sprintf("func (*%s) is%s() {}", c.Name, c.Base.Name))
	}
}

func (e *Emitter) visitSimpleProperty(w *emit.IndentedWriter, p *astmodel.Property) {
	w.WriteLine(fmt.Sprintf("// %s: %s (%s)", p.Name, p.Shape, mappingComment(p.Source)))
}

// VisitNodeRefProperty, VisitNodeRefListProperty, VisitTokenTextProperty,
// VisitTokenTextListProperty, and VisitOptionalTokenProperty each emit a
// one-line doc comment recording where the property's value is read back
// from on the generated parse-tree context. The field declaration itself
// was already emitted by VisitNodeClass; these exist so an Emitter that
// wants per-shape behavior (a differently-named getter, a conversion
// helper) has a hook without needing its own type switch over p.Shape;
// that dispatch already happened in emit.DispatchProperty.
func (e *Emitter) VisitNodeRefProperty(w *emit.IndentedWriter, p *astmodel.Property) {
	e.visitSimpleProperty(w, p)
}

func (e *Emitter) VisitNodeRefListProperty(w *emit.IndentedWriter, p *astmodel.Property) {
	e.visitSimpleProperty(w, p)
}

func (e *Emitter) VisitTokenTextProperty(w *emit.IndentedWriter, p *astmodel.Property) {
	e.visitSimpleProperty(w, p)
}

func (e *Emitter) VisitTokenTextListProperty(w *emit.IndentedWriter, p *astmodel.Property) {
	e.visitSimpleProperty(w, p)
}

func (e *Emitter) VisitOptionalTokenProperty(w *emit.IndentedWriter, p *astmodel.Property) {
	e.visitSimpleProperty(w, p)
}

func mappingComment(s astmodel.MappingSource) string {
	switch s.Kind {
	case astmodel.MappingByLabel:
		return fmt.Sprintf("ctx.Get%s()", words.PascalCase(s.Label))
	case astmodel.MappingByGetter:
		if s.GetterIndex != nil {
			return fmt.Sprintf("ctx.Get(%d)", *s.GetterIndex)
		}
		return "ctx.GetAll()"
	default:
		return "?"
	}
}

// VisitAstBuilder emits a Build function walking a parse tree's rule
// contexts into the generated node types, one case per RuleMapping.
func (e *Emitter) VisitAstBuilder(w *emit.IndentedWriter, mappings []astmodel.RuleMapping) {
	w.WriteLine("")
	w.WriteLine("// Build converts a parsed rule context into its AST node.")
	w.WriteLine("func Build(ctx any) any {")
	w.Indent()
	w.WriteLine("switch c := ctx.(type) {")
	for _, rm := range mappings {
		label := rm.Class.Name
		if rm.Alt != nil {
			label = label + " (" + rm.Alt.Label + ")"
		}
		w.WriteLine(fmt.Sprintf("case %sContext: // %s", rm.Rule.Name, label))
		w.Indent()
		w.WriteLine(fmt.Sprintf("return build%s(c)", rm.Class.Name))
		w.Unindent()
	}
	w.WriteLine("default:")
	w.Indent()
	w.WriteLine("return nil")
	w.Unindent()
	w.WriteLine("}")
	w.Unindent()
	w.WriteLine("}")
}

// Render builds an astmodel.Model into a single Go source string using a
// 4-column indent.
func Render(m *astmodel.Model, packageName string) string {
	w := emit.NewIndentedWriter(4)
	e := New(packageName)
	emit.RenderModel(e, w, m)
	return w.String()
}
