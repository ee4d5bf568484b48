package emit

import "github.com/dekarrin/grammarforge/internal/core/astmodel"

// RenderModel drives an Emitter over the whole astmodel.Model: the
// AstCodeModel wrapper, one VisitNodeClass per class (each followed by a
// dispatch over its own properties), then the AstBuilder mapping list.
// This is the core's side of the visitor: which shape-specific visit
// method to call is decided here by switching on Property.Shape, never by
// the Emitter inspecting its argument's type.
func RenderModel(e Emitter, w *IndentedWriter, m *astmodel.Model) {
	e.VisitAstCodeModel(w, m)

	for _, class := range m.Classes {
		RenderNodeClass(e, w, class)
	}

	e.VisitAstBuilder(w, m.Mappings)
}

// RenderNodeClass visits one NodeClass, then every property belonging to
// it (abstract base classes have none).
func RenderNodeClass(e Emitter, w *IndentedWriter, c *astmodel.NodeClass) {
	e.VisitNodeClass(w, c)
	for _, p := range c.Properties {
		DispatchProperty(e, w, p)
	}
}

// DispatchProperty calls the Emitter method matching p's shape.
func DispatchProperty(e Emitter, w *IndentedWriter, p *astmodel.Property) {
	switch p.Shape {
	case astmodel.ShapeNodeRef:
		e.VisitNodeRefProperty(w, p)
	case astmodel.ShapeNodeRefList:
		e.VisitNodeRefListProperty(w, p)
	case astmodel.ShapeTokenText:
		e.VisitTokenTextProperty(w, p)
	case astmodel.ShapeTokenTextList:
		e.VisitTokenTextListProperty(w, p)
	case astmodel.ShapeOptionalToken:
		e.VisitOptionalTokenProperty(w, p)
	}
}
