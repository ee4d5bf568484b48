package g4lex

// ActionType identifies what a matched pattern causes the lexer to do.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionScan
	ActionState
	ActionScanAndState
)

// Action is attached to a registered pattern and tells the lexer what to do
// when that pattern wins a match.
type Action struct {
	Type    ActionType
	ClassID string
	State   string
}

// Discard causes the matched lexeme to be dropped with no token produced
// (used for whitespace and comments).
func Discard() Action {
	return Action{Type: ActionNone}
}

// LexAs produces a token of the given class for the matched lexeme.
func LexAs(classID string) Action {
	return Action{Type: ActionScan, ClassID: classID}
}

// SwapState discards the matched lexeme but transitions the lexer to a new
// state.
func SwapState(toState string) Action {
	return Action{Type: ActionState, State: toState}
}

// LexAndSwapState produces a token of the given class and then transitions
// the lexer to a new state.
func LexAndSwapState(classID, newState string) Action {
	return Action{Type: ActionScanAndState, ClassID: classID, State: newState}
}
