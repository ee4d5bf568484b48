package g4

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/grammarforge/internal/core/grammar"
)

// unescapeString strips the surrounding quotes from an ANTLR string literal
// and resolves its backslash escapes, returning the literal's raw text.
func unescapeString(raw string) (string, error) {
	if len(raw) < 2 {
		return "", fmt.Errorf("malformed string literal %q", raw)
	}
	return unescapeRunes(raw[1 : len(raw)-1])
}

// unescapeRunes resolves ANTLR's backslash escapes (\\, \', \], \-, \n, \t,
// \r, \uXXXX, \u{N}) within body, used for string literal contents.
func unescapeRunes(body string) (string, error) {
	return resolveEscapes(body, 0)
}

// escapedHyphenMark stands in for a `\-` escape when resolveEscapes is asked
// to mark it (see decodeCharSetRunes), so an escaped hyphen (meant as a
// literal character, e.g. `[a\-z]` = 'a', '-', 'z') survives unescaping
// distinguishable from the unescaped '-' range operator. A private-use-area
// codepoint: never a character a real `.g4` source contains, so it can't
// collide with input.
const escapedHyphenMark = '\uE000'

// resolveEscapes is the shared escape-resolution pass behind unescapeRunes
// and decodeCharSetRunes. When hyphenMark is non-zero, a `\-` escape is
// written as hyphenMark instead of '-', in the same single left-to-right
// pass that consumes the backslash and its escaped character together.
// Unlike a substring-replace pre-pass, this can't mistake the second
// backslash of an escaped backslash (`\\`) followed by a literal '-' for a
// `\-` escape, since each backslash already consumed its own escaped
// character before the next one is considered.
func resolveEscapes(body string, hyphenMark rune) (string, error) {
	var sb strings.Builder
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		i++
		if i >= len(runes) {
			return "", fmt.Errorf("trailing backslash in %q", body)
		}
		switch runes[i] {
		case 'n':
			sb.WriteRune('\n')
		case 't':
			sb.WriteRune('\t')
		case 'r':
			sb.WriteRune('\r')
		case '-':
			if hyphenMark != 0 {
				sb.WriteRune(hyphenMark)
			} else {
				sb.WriteRune('-')
			}
		case 'u':
			if i+1 < len(runes) && runes[i+1] == '{' {
				// extended form: \u{N}, 1..6 hex digits
				end := i + 2
				for end < len(runes) && runes[end] != '}' {
					end++
				}
				if end >= len(runes) {
					return "", fmt.Errorf("unterminated \\u{...} escape in %q", body)
				}
				hex := string(runes[i+2 : end])
				v, err := strconv.ParseInt(hex, 16, 32)
				if err != nil {
					return "", fmt.Errorf("invalid \\u{...} escape %q: %w", hex, err)
				}
				sb.WriteRune(rune(v))
				i = end
				break
			}
			if i+4 >= len(runes) {
				return "", fmt.Errorf("truncated \\u escape in %q", body)
			}
			hex := string(runes[i+1 : i+5])
			v, err := strconv.ParseInt(hex, 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid \\u escape %q: %w", hex, err)
			}
			sb.WriteRune(rune(v))
			i += 4
		default:
			sb.WriteRune(runes[i])
		}
	}
	return sb.String(), nil
}

// decodeCharSet parses the contents of a `[...]` charset token (brackets
// included) into the CharSetItem list and negation flag grammar.SyntaxElement
// expects.
func decodeCharSet(raw string) ([]grammar.CharSetItem, bool, error) {
	if len(raw) < 2 {
		return nil, false, fmt.Errorf("malformed charset %q", raw)
	}
	body := raw[1 : len(raw)-1]

	negated := false
	if strings.HasPrefix(body, "^") {
		negated = true
		body = body[1:]
	}

	runes, err := decodeCharSetRunes(body)
	if err != nil {
		return nil, false, err
	}

	var items []grammar.CharSetItem
	for i := 0; i < len(runes); i++ {
		if runes[i] == escapedHyphenMark {
			items = append(items, grammar.CharSetItem{Lo: '-', Hi: '-'})
			continue
		}
		if i+2 < len(runes) && runes[i+1] == '-' {
			items = append(items, grammar.CharSetItem{Lo: runes[i], Hi: runes[i+2]})
			i += 2
		} else {
			items = append(items, grammar.CharSetItem{Lo: runes[i], Hi: runes[i]})
		}
	}
	return items, negated, nil
}

// decodeCharSetRunes resolves escapes within a charset body, marking an
// escaped hyphen (see escapedHyphenMark) so decodeCharSet can tell it apart
// from the unescaped '-' range operator once escape resolution is done.
func decodeCharSetRunes(body string) ([]rune, error) {
	unescaped, err := resolveEscapes(body, escapedHyphenMark)
	if err != nil {
		return nil, err
	}
	return []rune(unescaped), nil
}
