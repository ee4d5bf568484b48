package textmate

import (
	"fmt"
	"strings"
)

// regexMetaChars lists the Oniguruma/PCRE metacharacters that must be
// backslash-escaped wherever they appear as literal text outside a
// character class.
const regexMetaChars = `.^$*+?()[]{}|\`

// classMetaChars lists the characters that need escaping inside a `[...]`
// character class specifically (a narrower set than regexMetaChars: `.`,
// `*`, `+`, `(`, `)`, `|` etc. are not special there).
const classMetaChars = `]^\-`

// escapeLiteral renders s (already unescaped to real runes by the loader)
// as regex-literal text: metacharacters are backslash-escaped, and any
// non-printable or non-ASCII rune is rendered as `\uXXXX` (or `\u{X...}`
// for codepoints above the BMP).
func escapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		escapeLiteralRune(&b, r)
	}
	return b.String()
}

func escapeLiteralRune(b *strings.Builder, r rune) {
	switch {
	case strings.ContainsRune(regexMetaChars, r):
		b.WriteByte('\\')
		b.WriteRune(r)
	case r == ' ':
		b.WriteRune(r)
	case r < 0x20 || r > 0x7e:
		writeUnicodeEscape(b, r)
	default:
		b.WriteRune(r)
	}
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	if r > 0xffff {
		fmt.Fprintf(b, `\u{%x}`, r)
		return
	}
	fmt.Fprintf(b, `\u%04x`, r)
}

// escapeClassRune escapes r for use inside a `[...]`/`[^...]` character
// class, where only `]`, `^`, `\`, and `-` are structurally meaningful.
func escapeClassRune(r rune) string {
	var b strings.Builder
	if strings.ContainsRune(classMetaChars, r) {
		b.WriteByte('\\')
		b.WriteRune(r)
		return b.String()
	}
	if r < 0x20 || r > 0x7e {
		writeUnicodeEscape(&b, r)
		return b.String()
	}
	b.WriteRune(r)
	return b.String()
}

// renderCharClass builds a `[...]`/`[^...]` class body from items,
// negating if negated.
func renderCharClass(items []CharSetItem, negated bool) string {
	var b strings.Builder
	b.WriteByte('[')
	if negated {
		b.WriteByte('^')
	}
	for _, item := range items {
		b.WriteString(escapeClassRune(item.Lo))
		if item.Hi != item.Lo {
			b.WriteByte('-')
			b.WriteString(escapeClassRune(item.Hi))
		}
	}
	b.WriteByte(']')
	return b.String()
}

// charClassFromRunes builds items (each a single-rune range) for the
// distinct runes of s, in first-seen order, for `~'literal'` expansion.
func charClassFromRunes(s string) []CharSetItem {
	seen := map[rune]bool{}
	var items []CharSetItem
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		items = append(items, CharSetItem{Lo: r, Hi: r})
	}
	return items
}
