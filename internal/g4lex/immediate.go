package g4lex

import (
	"bytes"
	"fmt"
)

// LexError reports a failure to tokenize, with enough position context to
// point an author at the offending source line.
type LexError struct {
	Message string
	Tok     Token
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Tok.Line(), e.Tok.LinePos(), e.Message)
}

type immediateTokenStream struct {
	tokens []Token
	cur    int
}

// LexImmediately runs the Lexer eagerly to completion and returns the full
// token stream, or the first LexError encountered. Grammar sources are small
// enough that eager lexing is simpler to reason about than the lazy
// streaming variant, and failing fast with full position info is what the
// loader wants.
func LexImmediately(lx Lexer, input []byte) (TokenStream, error) {
	stream, err := lx.Lex(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}

	var tokens []Token
	for stream.HasNext() {
		tok := stream.Next()
		if tok.Class().ID() == TokenError.ID() {
			return nil, &LexError{Message: tok.Lexeme(), Tok: tok}
		}
		if tok.Class().ID() == TokenEndOfText.ID() {
			break
		}
		tokens = append(tokens, tok)
	}
	return &immediateTokenStream{tokens: tokens}, nil
}

func (s *immediateTokenStream) Next() Token {
	if s.cur >= len(s.tokens) {
		return lexerToken{class: TokenEndOfText}
	}
	t := s.tokens[s.cur]
	s.cur++
	return t
}

func (s *immediateTokenStream) Peek() Token {
	if s.cur >= len(s.tokens) {
		return lexerToken{class: TokenEndOfText}
	}
	return s.tokens[s.cur]
}

func (s *immediateTokenStream) HasNext() bool {
	return s.cur < len(s.tokens)
}
