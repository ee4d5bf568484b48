package g4

import (
	"strings"

	"github.com/dekarrin/grammarforge/internal/core/diag"
	"github.com/dekarrin/grammarforge/internal/core/grammar"
	"github.com/dekarrin/grammarforge/internal/g4lex"
)

// parser is a hand-rolled recursive-descent reader over the full token
// slice for one `.g4` source. Unlike g4lex.TokenStream (one-token
// lookahead), element/label disambiguation needs two, so the whole token
// list is buffered up front; `.g4` sources are small, and LexImmediately
// already buffers eagerly for its own error-reporting reasons.
type parser struct {
	toks []g4lex.Token
	pos  int
	file string
	d    *diag.Bag
}

func newParser(toks []g4lex.Token, file string, d *diag.Bag) *parser {
	return &parser{toks: toks, file: file, d: d}
}

func (p *parser) cur() g4lex.Token {
	return p.peek(0)
}

func (p *parser) peek(offset int) g4lex.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return nil
	}
	return p.toks[idx]
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) advance() g4lex.Token {
	t := p.cur()
	p.pos++
	return t
}

func (p *parser) is(cl g4lex.TokenClass) bool {
	t := p.cur()
	return t != nil && t.Class().ID() == cl.ID()
}

func (p *parser) isAt(offset int, cl g4lex.TokenClass) bool {
	t := p.peek(offset)
	return t != nil && t.Class().ID() == cl.ID()
}

func (p *parser) pos1() grammar.Position {
	t := p.cur()
	if t == nil {
		return grammar.Position{}
	}
	return grammar.Position{Line: t.Line(), Col: t.LinePos()}
}

func (p *parser) diagPos() diag.Position {
	pos := p.pos1()
	return diag.Position{File: p.file, Line: pos.Line, Col: pos.Col}
}

// expect consumes the current token if it is of class cl, or reports an
// Invalid-grammar diagnostic and returns false without advancing.
func (p *parser) expect(cl g4lex.TokenClass) (g4lex.Token, bool) {
	if !p.is(cl) {
		p.errorf("expected %s, found %s", cl.Human(), p.curDescription())
		return nil, false
	}
	return p.advance(), true
}

func (p *parser) curDescription() string {
	t := p.cur()
	if t == nil {
		return "end of input"
	}
	return t.Class().Human() + " " + quoteForMsg(t.Lexeme())
}

func quoteForMsg(s string) string {
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

func (p *parser) errorf(format string, a ...any) {
	p.d.Add(diag.InvalidGrammar(p.diagPos(), format, a...))
}

// parse reads one whole `.g4` source: header, options/tokens/import
// preamble, then rules until end of input.
func (p *parser) parse() *grammar.Grammar {
	g := &grammar.Grammar{Options: map[string]string{}}

	switch {
	case p.is(clLexerKw):
		p.advance()
		g.Kind = grammar.LexerOnly
	case p.is(clParserKw):
		p.advance()
		g.Kind = grammar.ParserOnly
	default:
		g.Kind = grammar.Combined
	}

	if _, ok := p.expect(clGrammarKw); !ok {
		return g
	}
	if name, ok := p.expect(clIdent); ok {
		g.Name = name.Lexeme()
	}
	p.expect(clSemi)

	p.parsePreamble(g)

	for !p.atEnd() {
		p.parseRule(g)
	}

	return g
}

// parsePreamble consumes any leading import/options/tokens clauses, in
// whatever order and repetition the source presents them (ANTLR allows any
// of them to be omitted, and tolerates tokens{} before or after options{}).
func (p *parser) parsePreamble(g *grammar.Grammar) {
	for {
		switch {
		case p.is(clImportKw):
			p.parseImport(g)
		case p.is(clOptions):
			p.parseOptionsBlock(g.Options)
		case p.is(clTokensKw):
			p.parseTokensBlock(g)
		default:
			return
		}
	}
}

func (p *parser) parseImport(g *grammar.Grammar) {
	p.advance() // 'import'
	var names []string
	for {
		if name, ok := p.expect(clIdent); ok {
			names = append(names, name.Lexeme())
		} else {
			break
		}
		if p.is(clComma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(clSemi)
	if len(names) > 0 {
		g.Options["import"] = strings.Join(names, ",")
	}
}

func (p *parser) parseOptionsBlock(into map[string]string) {
	p.advance() // 'options'
	if _, ok := p.expect(clLBrace); !ok {
		return
	}
	for !p.is(clRBrace) && !p.atEnd() {
		key, ok := p.expect(clIdent)
		if !ok {
			break
		}
		if _, ok := p.expect(clAssign); !ok {
			break
		}
		var value string
		switch {
		case p.is(clIdent):
			value = p.advance().Lexeme()
		case p.is(clStrLit):
			s, err := unescapeString(p.advance().Lexeme())
			if err != nil {
				p.errorf("%s", err)
			}
			value = s
		default:
			p.errorf("expected option value, found %s", p.curDescription())
			p.advance()
		}
		into[key.Lexeme()] = value
		p.expect(clSemi)
	}
	p.expect(clRBrace)
}

// parseTokensBlock registers the names declared in a `tokens { ... }`
// block as lexer rules with an empty body, so references to them resolve
// instead of reporting Unknown-reference; they have no regex form of
// their own since ANTLR gives them none either.
func (p *parser) parseTokensBlock(g *grammar.Grammar) {
	p.advance() // 'tokens'
	if _, ok := p.expect(clLBrace); !ok {
		return
	}
	for !p.is(clRBrace) && !p.atEnd() {
		name, ok := p.expect(clIdent)
		if !ok {
			break
		}
		g.LexerRules = append(g.LexerRules, &grammar.Rule{
			Name: name.Lexeme(),
			Kind: grammar.LexerRuleKind,
			Body: &grammar.AlternativeList{Alternatives: []*grammar.Alternative{
				{Elements: []*grammar.SyntaxElement{{Kind: grammar.KindEmpty}}},
			}},
		})
		if p.is(clComma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(clRBrace)
}

func (p *parser) parseRule(g *grammar.Grammar) {
	fragment := false
	if p.is(clFragment) {
		p.advance()
		fragment = true
	}

	nameTok, ok := p.expect(clIdent)
	if !ok {
		p.recoverToNextRule()
		return
	}
	name := nameTok.Lexeme()

	rule := &grammar.Rule{
		Name:     name,
		Fragment: fragment,
		Options:  map[string]string{},
		Pos:      grammar.Position{Line: nameTok.Line(), Col: nameTok.LinePos()},
	}
	if isLexerRuleName(name) {
		rule.Kind = grammar.LexerRuleKind
	} else {
		rule.Kind = grammar.ParserRuleKind
	}

	if p.is(clOptions) {
		p.parseOptionsBlock(rule.Options)
	}

	if _, ok := p.expect(clColon); !ok {
		p.recoverToNextRule()
		return
	}

	rule.Body = p.parseAlternativeList()

	if rule.Body.HasAnyLabel() && !rule.Body.AllLabeled() {
		p.errorf("rule %s: mixes labeled and unlabeled alternatives, ANTLR requires all or none", name)
	}

	p.expect(clSemi)

	switch rule.Kind {
	case grammar.LexerRuleKind:
		g.LexerRules = append(g.LexerRules, rule)
	case grammar.ParserRuleKind:
		g.ParserRules = append(g.ParserRules, rule)
	}
}

// recoverToNextRule skips tokens until the next ';' so one malformed rule
// doesn't cascade into spurious diagnostics for the rest of the file.
func (p *parser) recoverToNextRule() {
	for !p.atEnd() && !p.is(clSemi) {
		p.advance()
	}
	if p.is(clSemi) {
		p.advance()
	}
}

// isLexerRuleName reports whether name's leading letter is uppercase, the
// ANTLR convention distinguishing a lexer rule (token-producing) from a
// parser rule.
func isLexerRuleName(name string) bool {
	for _, r := range name {
		return r >= 'A' && r <= 'Z'
	}
	return false
}

func (p *parser) parseAlternativeList() *grammar.AlternativeList {
	al := &grammar.AlternativeList{}
	for {
		al.Alternatives = append(al.Alternatives, p.parseAlternative())
		if p.is(clPipe) {
			p.advance()
			continue
		}
		break
	}
	return al
}

func (p *parser) isAlternativeTerminator() bool {
	return p.atEnd() || p.is(clSemi) || p.is(clPipe) || p.is(clRParen) || p.is(clHash)
}

func (p *parser) parseAlternative() *grammar.Alternative {
	alt := &grammar.Alternative{}
	for !p.isAlternativeTerminator() {
		if p.is(clLBrace) {
			p.skipBalancedBraces()
			continue
		}
		if p.is(clArrow) {
			p.skipLexerCommand()
			continue
		}
		elem := p.parseLabeledElement()
		if elem == nil {
			// parseLabeledElement already reported a diagnostic; advance
			// to avoid looping forever on an unparseable token.
			if !p.atEnd() {
				p.advance()
			}
			continue
		}
		alt.Elements = append(alt.Elements, elem)
	}

	if p.is(clHash) {
		p.advance()
		if label, ok := p.expect(clIdent); ok {
			alt.Label = label.Lexeme()
		}
	}

	return alt
}

// skipBalancedBraces discards an embedded action block, counting nested
// braces so an action containing its own '{'/'}' doesn't terminate early.
func (p *parser) skipBalancedBraces() {
	depth := 0
	for !p.atEnd() {
		switch {
		case p.is(clLBrace):
			depth++
			p.advance()
		case p.is(clRBrace):
			depth--
			p.advance()
			if depth <= 0 {
				return
			}
		default:
			p.advance()
		}
	}
}

// skipLexerCommand discards a `-> skip` / `-> channel(HIDDEN)` / `->
// type(X), mode(Y)` trailer: grammarforge does not act on lexer commands,
// since they affect a running ANTLR lexer's runtime behavior rather than
// anything the AST model or TextMate synthesis consumes.
func (p *parser) skipLexerCommand() {
	p.advance() // '->'
	depth := 0
	for !p.atEnd() {
		if depth == 0 && (p.is(clSemi) || p.is(clPipe) || p.is(clHash)) {
			return
		}
		switch {
		case p.is(clLParen):
			depth++
		case p.is(clRParen):
			depth--
		}
		p.advance()
	}
}

func (p *parser) parseLabeledElement() *grammar.SyntaxElement {
	pos := p.pos1()

	var label string
	var labelKind grammar.LabelKind
	if p.is(clIdent) && (p.isAt(1, clAssign) || p.isAt(1, clPlusAssign)) {
		label = p.advance().Lexeme()
		if p.is(clPlusAssign) {
			labelKind = grammar.LabelPlusAssign
		} else {
			labelKind = grammar.LabelAssign
		}
		p.advance()
	}

	not := false
	if p.is(clTilde) {
		p.advance()
		not = true
	}

	elem := p.parseAtom()
	if elem == nil {
		return nil
	}
	elem.Pos = pos
	elem.Label = label
	elem.LabelKind = labelKind

	if not {
		applyNegation(elem)
	}

	elem.Suffix = p.parseSuffix()

	return elem
}

// applyNegation folds a leading `~` into elem per the Grammar IR's
// convention: `~[...]`/`~'x'` pre-expand into a negated CharSet, while
// `~TOKEN`/`~ruleRef`/`~(...)` are left as-is with Not set, since their
// negation can only be resolved once the referenced body is known (see
// textmate.synthesizeNegatedRef).
func applyNegation(elem *grammar.SyntaxElement) {
	switch elem.Kind {
	case grammar.KindCharSet:
		elem.CharSetNegated = !elem.CharSetNegated
	case grammar.KindLiteral:
		elem.CharSetItems = charSetItemsFromLiteral(elem.Literal)
		elem.CharSetNegated = true
		elem.Kind = grammar.KindCharSet
		elem.Literal = ""
	default:
		elem.Not = true
	}
}

func charSetItemsFromLiteral(s string) []grammar.CharSetItem {
	seen := map[rune]bool{}
	var items []grammar.CharSetItem
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		items = append(items, grammar.CharSetItem{Lo: r, Hi: r})
	}
	return items
}

func (p *parser) parseAtom() *grammar.SyntaxElement {
	switch {
	case p.is(clStrLit):
		tok := p.advance()
		text, err := unescapeString(tok.Lexeme())
		if err != nil {
			p.errorf("%s", err)
			return &grammar.SyntaxElement{Kind: grammar.KindEmpty}
		}
		return &grammar.SyntaxElement{Kind: grammar.KindLiteral, Literal: text}
	case p.is(clCharSet):
		tok := p.advance()
		items, negated, err := decodeCharSet(tok.Lexeme())
		if err != nil {
			p.errorf("%s", err)
			return &grammar.SyntaxElement{Kind: grammar.KindEmpty}
		}
		return &grammar.SyntaxElement{Kind: grammar.KindCharSet, CharSetItems: items, CharSetNegated: negated}
	case p.is(clDot):
		p.advance()
		return &grammar.SyntaxElement{Kind: grammar.KindDot}
	case p.is(clIdent):
		tok := p.advance()
		name := tok.Lexeme()
		if isLexerRuleName(name) {
			return &grammar.SyntaxElement{Kind: grammar.KindTokenRef, RefName: name}
		}
		return &grammar.SyntaxElement{Kind: grammar.KindRuleRef, RefName: name}
	case p.is(clLParen):
		p.advance()
		block := p.parseAlternativeList()
		p.expect(clRParen)
		return &grammar.SyntaxElement{Kind: grammar.KindBlock, Block: block}
	default:
		p.errorf("expected grammar element, found %s", p.curDescription())
		return nil
	}
}

func (p *parser) parseSuffix() grammar.Suffix {
	switch {
	case p.is(clStarLazy):
		p.advance()
		return grammar.SuffixStarLazy
	case p.is(clPlusLazy):
		p.advance()
		return grammar.SuffixPlusLazy
	case p.is(clOptLazy):
		p.advance()
		return grammar.SuffixOptionalLazy
	case p.is(clStar):
		p.advance()
		return grammar.SuffixStar
	case p.is(clPlus):
		p.advance()
		return grammar.SuffixPlus
	case p.is(clQuestion):
		p.advance()
		return grammar.SuffixOptional
	default:
		return grammar.SuffixNone
	}
}
