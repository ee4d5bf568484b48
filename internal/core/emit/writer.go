// Package emit defines the Emitter interface the core renders an
// astmodel.Model through, and the IndentedWriter
// collaborator every concrete Emitter uses to produce its output.
package emit

import "strings"

// IndentedWriter accumulates emitted text with a tracked indentation
// level: any multi-line text handed to Write/WriteLine gets every
// continuation line padded to the writer's current indent, not just the
// first.
type IndentedWriter struct {
	b      strings.Builder
	indent int
	step   int

	// atLineStart is true when the next rune written would begin a new
	// line, the point at which indent padding must be emitted first.
	atLineStart bool
}

// NewIndentedWriter creates a writer whose indent step (spaces per
// indent/unindent level) is step. A step of 0 defaults to 4.
func NewIndentedWriter(step int) *IndentedWriter {
	if step <= 0 {
		step = 4
	}
	return &IndentedWriter{step: step, atLineStart: true}
}

// Indent increases the current indent level by one step.
func (w *IndentedWriter) Indent() { w.indent += w.step }

// Unindent decreases the current indent level by one step, floored at 0.
func (w *IndentedWriter) Unindent() {
	w.indent -= w.step
	if w.indent < 0 {
		w.indent = 0
	}
}

// Write appends text, auto-indenting every line after the first embedded
// newline to the writer's current indent level. It does not itself end
// on a newline; call WriteLine for that.
func (w *IndentedWriter) Write(text string) {
	for _, r := range text {
		w.writeRune(r)
	}
}

// WriteLine is Write followed by a newline.
func (w *IndentedWriter) WriteLine(text string) {
	w.Write(text)
	w.writeRune('\n')
}

func (w *IndentedWriter) writeRune(r rune) {
	if w.atLineStart && r != '\n' {
		w.b.WriteString(strings.Repeat(" ", w.indent))
		w.atLineStart = false
	}
	w.b.WriteRune(r)
	if r == '\n' {
		w.atLineStart = true
	}
}

// Interpolate writes prefix, then, only if fill writes anything to a
// scratch buffer, writes that buffer with every one of its lines
// indented to the writer's current level, then writes suffix. If fill
// writes nothing, prefix and suffix both collapse to nothing too, so an
// empty interpolation leaves no blank line or stray delimiter behind.
func (w *IndentedWriter) Interpolate(prefix string, fill func(*IndentedWriter), suffix string) {
	scratch := NewIndentedWriter(w.step)
	fill(scratch)
	body := scratch.String()
	if body == "" {
		return
	}

	w.Write(prefix)
	w.writeIndentedBlock(body)
	w.Write(suffix)
}

// writeIndentedBlock writes a pre-rendered block of text so every line
// of it (not just continuation lines after the first) is indented to the
// writer's current level; the callback's own lines are call-site
// content, not assumed-already-placed text.
func (w *IndentedWriter) writeIndentedBlock(body string) {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if i > 0 {
			w.writeRune('\n')
		}
		w.Write(line)
	}
}

// String returns everything written so far.
func (w *IndentedWriter) String() string {
	return w.b.String()
}
