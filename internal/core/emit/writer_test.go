package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IndentedWriter_writeAutoIndentsContinuationLines(t *testing.T) {
	w := NewIndentedWriter(2)
	w.Indent()
	w.Write("line one\nline two\nline three")
	assert.Equal(t, "  line one\n  line two\n  line three", w.String())
}

func Test_IndentedWriter_writeLineEndsWithNewline(t *testing.T) {
	w := NewIndentedWriter(2)
	w.WriteLine("a")
	w.WriteLine("b")
	assert.Equal(t, "a\nb\n", w.String())
}

func Test_IndentedWriter_indentUnindentTracksLevel(t *testing.T) {
	w := NewIndentedWriter(2)
	w.WriteLine("top")
	w.Indent()
	w.WriteLine("nested")
	w.Indent()
	w.WriteLine("deeper")
	w.Unindent()
	w.WriteLine("back to nested")
	w.Unindent()
	w.WriteLine("back to top")

	want := "top\n" + "  nested\n" + "    deeper\n" + "  back to nested\n" + "back to top\n"
	assert.Equal(t, want, w.String())
}

func Test_IndentedWriter_unindentFloorsAtZero(t *testing.T) {
	w := NewIndentedWriter(2)
	w.Unindent()
	w.Unindent()
	w.WriteLine("still at zero")
	assert.Equal(t, "still at zero\n", w.String())
}

func Test_IndentedWriter_interpolateEmptyCallbackElidesBlankLine(t *testing.T) {
	w := NewIndentedWriter(2)
	w.Write("before")
	w.Interpolate("[", func(*IndentedWriter) {}, "]")
	w.Write("after")
	assert.Equal(t, "beforeafter", w.String())
}

func Test_IndentedWriter_interpolateAppliesCallSiteIndentToEveryLine(t *testing.T) {
	w := NewIndentedWriter(2)
	w.Indent()
	w.Write("head: ")
	w.Interpolate("", func(scratch *IndentedWriter) {
		scratch.WriteLine("first")
		scratch.Write("second")
	}, "")
	assert.Equal(t, "  head: first\n  second", w.String())
}
