package g4lex

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

type patAct struct {
	src string
	act Action
}

// Lexer accumulates per-state patterns and compiles them into a TokenStream
// factory. States let a single Lexer describe mode-switching lexers (this
// package does not need that for ANTLR grammar source, which only ever uses
// the "" default state, but the mechanism is kept since it costs nothing and
// matches how state-shifting lexer actions are expressed).
type Lexer interface {
	// Lex tokenizes input lazily: each call to TokenStream.Next() scans just
	// enough of input to produce the next token.
	Lex(input io.Reader) (TokenStream, error)

	// RegisterClass makes cl usable as the ClassID target of a pattern
	// registered for forState.
	RegisterClass(cl TokenClass, forState string)

	// AddPattern registers a regular expression (RE2 syntax) and the action
	// to take when it provides the longest match at the current input
	// position, while the lexer is in forState.
	AddPattern(pat string, action Action, forState string) error

	SetStartingState(s string)
	StartingState() string
}

type lexerTemplate struct {
	patterns   map[string][]patAct
	startState string
	classes    map[string]map[string]TokenClass
}

// NewLexer creates an empty Lexer whose starting state is the default ""
// state. Patterns are compiled when Lex is called.
func NewLexer() Lexer {
	return &lexerTemplate{
		patterns: map[string][]patAct{},
		classes:  map[string]map[string]TokenClass{},
	}
}

func (lx *lexerTemplate) SetStartingState(s string) { lx.startState = s }
func (lx *lexerTemplate) StartingState() string     { return lx.startState }

func (lx *lexerTemplate) RegisterClass(cl TokenClass, forState string) {
	stateClasses, ok := lx.classes[forState]
	if !ok {
		stateClasses = map[string]TokenClass{}
	}
	stateClasses[cl.ID()] = cl
	lx.classes[forState] = stateClasses
}

func (lx *lexerTemplate) AddPattern(pat string, action Action, forState string) error {
	stateClasses := lx.classes[forState]

	if action.Type == ActionScan || action.Type == ActionScanAndState {
		if _, ok := stateClasses[action.ClassID]; !ok {
			return fmt.Errorf("%q is not a registered token class in state %q; call RegisterClass first", action.ClassID, forState)
		}
	}
	if action.Type == ActionState || action.Type == ActionScanAndState {
		if action.State == "" {
			return fmt.Errorf("action shifts state but does not name a destination state")
		}
	}

	if _, err := regexp.Compile(pat); err != nil {
		return fmt.Errorf("cannot compile regex %q: %w", pat, err)
	}

	lx.patterns[forState] = append(lx.patterns[forState], patAct{src: pat, act: action})
	return nil
}

// lazyLex is the active TokenStream returned by Lex. Per state, every
// registered pattern is combined into one "super pattern" of the form
// ^(?:(p0)|(p1)|...); SearchAndAdvance then tells us which capture group(s)
// matched, and selectMatch applies GNU lex longest-match /
// first-defined-wins disambiguation between patterns that tie at the start
// of input.
type lazyLex struct {
	r *regexReader

	state string

	curLine     int
	curPos      int
	curFullLine string

	done      bool
	panicMode bool

	classes  map[string]map[string]TokenClass
	actions  map[string][]Action
	patterns map[string]*regexp.Regexp
}

func (lx *lexerTemplate) Lex(input io.Reader) (TokenStream, error) {
	active := &lazyLex{
		r:        newRegexReader(input),
		patterns: make(map[string]*regexp.Regexp),
		actions:  make(map[string][]Action),
		classes:  make(map[string]map[string]TokenClass),
		state:    lx.startState,
		curLine:  1,
		curPos:   1,
	}

	for state, statePats := range lx.patterns {
		var superRegex strings.Builder
		superRegex.WriteString("^(?:")
		acts := make([]Action, len(statePats))
		for i, pa := range statePats {
			superRegex.WriteString("(" + pa.src + ")")
			if i+1 < len(statePats) {
				superRegex.WriteRune('|')
			}
			acts[i] = pa.act
		}
		superRegex.WriteRune(')')

		compiled, err := regexp.Compile(superRegex.String())
		if err != nil {
			return nil, fmt.Errorf("composing token regexes for state %q: %w", state, err)
		}
		// Leftmost-longest: the longest pattern match wins, and among
		// equal-length matches the first-registered pattern's group is the
		// one filled.
		compiled.Longest()
		active.patterns[state] = compiled
		active.actions[state] = acts
	}

	for state, stateClasses := range lx.classes {
		cp := make(map[string]TokenClass, len(stateClasses))
		for id, cl := range stateClasses {
			cp[id] = cl
		}
		active.classes[state] = cp
	}

	return active, nil
}

func (lx *lazyLex) Next() Token {
	if lx.done {
		return lx.makeEOTToken()
	}

	pat := lx.patterns[lx.state]
	stateActions := lx.actions[lx.state]
	stateClasses := lx.classes[lx.state]

	var matches []string
	var readErr error
	for {
		if lx.panicMode {
			for lx.panicMode {
				ch, _, err := lx.r.ReadRune()
				if err != nil {
					return lx.tokenForIOError(err)
				}
				lx.trackChar(ch)

				matches, readErr = lx.r.SearchAndAdvance(pat)
				if readErr == io.EOF {
					lx.done = true
					return lx.makeEOTToken()
				} else if readErr != nil {
					return lx.tokenForIOError(readErr)
				}
				if len(matches) > 0 {
					lx.panicMode = false
				}
			}
		} else {
			matches, readErr = lx.r.SearchAndAdvance(pat)
			if readErr == io.EOF {
				lx.done = true
				return lx.makeEOTToken()
			} else if readErr != nil {
				return lx.tokenForIOError(readErr)
			}
			if len(matches) < 1 {
				lx.panicMode = true
				return lx.makeErrorTokenf("unrecognized input")
			}
		}

		actionIdx, lexeme := selectMatch(matches)
		for _, ch := range lexeme {
			lx.trackChar(ch)
		}

		action := stateActions[actionIdx]
		switch action.Type {
		case ActionNone:
			// discard lexeme, keep lexing
		case ActionScan:
			return lx.makeToken(stateClasses[action.ClassID], lexeme)
		case ActionState:
			lx.state = action.State
			pat = lx.patterns[lx.state]
			stateActions = lx.actions[lx.state]
			stateClasses = lx.classes[lx.state]
		case ActionScanAndState:
			tok := lx.makeToken(stateClasses[action.ClassID], lexeme)
			lx.state = action.State
			return tok
		}
	}
}

func (lx *lazyLex) trackChar(ch rune) {
	if ch == '\n' {
		lx.curLine++
		lx.curPos = 0
		lx.curFullLine = ""
		return
	}
	lx.curPos++
	lx.curFullLine += string(ch)
}

func (lx *lazyLex) Peek() Token {
	lx.r.Mark("peek")
	oldState, oldLine, oldPos, oldFull := lx.state, lx.curLine, lx.curPos, lx.curFullLine
	oldDone, oldPanic := lx.done, lx.panicMode

	tok := lx.Next()

	lx.r.Restore("peek")
	lx.state, lx.curLine, lx.curPos, lx.curFullLine = oldState, oldLine, oldPos, oldFull
	lx.done, lx.panicMode = oldDone, oldPanic
	return tok
}

func (lx *lazyLex) HasNext() bool {
	return !lx.done
}

func (lx *lazyLex) makeToken(class TokenClass, lexeme string) Token {
	return lexerToken{class: class, lexed: lexeme, lineNum: lx.curLine, linePos: lx.curPos, line: lx.curFullLine}
}

func (lx *lazyLex) makeEOTToken() Token {
	return lx.makeToken(TokenEndOfText, "")
}

func (lx *lazyLex) makeErrorTokenf(format string, args ...any) Token {
	return lx.makeToken(TokenError, fmt.Sprintf(format, args...))
}

func (lx *lazyLex) tokenForIOError(err error) Token {
	lx.done = true
	if err == io.EOF {
		lx.panicMode = false
		return lx.makeEOTToken()
	}
	return lx.makeErrorTokenf("I/O error: %s", err.Error())
}

// selectMatch picks which sub-expression of a composed alternation actually
// fired. candidates[0] is the whole match (ignored); non-empty entries at
// index i correspond to the pattern registered at position i-1. Ties are
// broken by longest match, then by definition order (GNU lex semantics).
func selectMatch(candidates []string) (int, string) {
	byIndex := map[int]string{}
	for i := 1; i < len(candidates); i++ {
		if candidates[i] != "" {
			byIndex[i-1] = candidates[i]
		}
	}

	if len(byIndex) > 1 {
		longest := 0
		for _, m := range byIndex {
			if n := utf8.RuneCountInString(m); n > longest {
				longest = n
			}
		}
		for i, m := range byIndex {
			if utf8.RuneCountInString(m) != longest {
				delete(byIndex, i)
			}
		}
		if len(byIndex) > 1 {
			lowest := math.MaxInt
			for i := range byIndex {
				if i < lowest {
					lowest = i
				}
			}
			byIndex = map[int]string{lowest: byIndex[lowest]}
		}
	}

	for i, m := range byIndex {
		return i, m
	}
	return 0, ""
}
