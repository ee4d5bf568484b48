package emit

import "github.com/dekarrin/grammarforge/internal/core/astmodel"

// Emitter is the external, host-language-specific collaborator the core
// renders an astmodel.Model through. It owns every concern the core
// itself stays agnostic of: identifier escaping, nullable notation, and
// module/namespace headers.
//
// Property has one underlying Go type (astmodel.Property, a tagged
// variant), but the interface still exposes
// one visit method per shape: dispatch is pattern-matched by RenderModel,
// not by a type switch inside the Emitter, so an Emitter never needs to
// inspect p.Shape itself.
type Emitter interface {
	VisitNodeClass(w *IndentedWriter, c *astmodel.NodeClass)
	VisitNodeRefProperty(w *IndentedWriter, p *astmodel.Property)
	VisitNodeRefListProperty(w *IndentedWriter, p *astmodel.Property)
	VisitTokenTextProperty(w *IndentedWriter, p *astmodel.Property)
	VisitTokenTextListProperty(w *IndentedWriter, p *astmodel.Property)
	VisitOptionalTokenProperty(w *IndentedWriter, p *astmodel.Property)
	VisitAstCodeModel(w *IndentedWriter, m *astmodel.Model)
	VisitAstBuilder(w *IndentedWriter, mappings []astmodel.RuleMapping)
}
