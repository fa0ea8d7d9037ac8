package spec

import (
	"strings"
	"unicode"
)

type lexerState int

const (
	stateAwaitingNonterminal lexerState = iota
	stateAwaitingEquals
	stateAwaitingStartOfRule
	stateContinuingRule
	stateJustHadOption
	stateInsideNonterminal
	stateInsideLiteral
	stateInsideDBLookup
	stateEscaping
)

// nextState moves the lexer forward after a token closes in one of these
// states instead of returning to the exact state that opened the token.
// Closing the leading nonterminal must land on stateAwaitingEquals, and
// closing any element of the rule body must land on stateContinuingRule so
// that sequences like <A><B> concatenate.
var nextState = map[lexerState]lexerState{
	stateAwaitingNonterminal: stateAwaitingEquals,
	stateAwaitingStartOfRule: stateContinuingRule,
	stateJustHadOption:       stateContinuingRule,
}

var endChar = map[lexerState]rune{
	stateInsideNonterminal: '>',
	stateInsideLiteral:     '"',
	stateInsideDBLookup:    ']',
}

var tokenKindFor = map[lexerState]TokenKind{
	stateInsideNonterminal: TokenKindNonterminal,
	stateInsideLiteral:     TokenKindLiteral,
	stateInsideDBLookup:    TokenKindDBLookup,
}

func insideBody(state lexerState) bool {
	switch state {
	case stateInsideNonterminal, stateInsideLiteral, stateInsideDBLookup, stateEscaping:
		return true
	}
	return false
}

// ParseRule tokenizes one line of rule text. A blank or comment-only line
// yields no tokens. The '=' separating a nonterminal from its production is
// emitted as a control token; consuming it is the caller's concern.
func ParseRule(line string) ([]Token, error) {
	var tokens []Token
	state := stateAwaitingNonterminal
	var stack []lexerState
	var content strings.Builder

	push := func(next lexerState) {
		stack = append(stack, state)
		state = next
	}
	pop := func() {
		state = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}

scan:
	for _, c := range line {
		// Whitespace is insignificant outside of token bodies and escapes.
		if !insideBody(state) && unicode.IsSpace(c) {
			continue
		}

		switch state {
		case stateAwaitingNonterminal:
			switch c {
			case '<':
				push(stateInsideNonterminal)
			case '#':
				break scan
			default:
				return nil, newParseError(c, "a nonterminal")
			}

		case stateAwaitingEquals:
			if c != SymbolDefinition {
				return nil, newParseError(c, "a rule definition")
			}
			tokens = append(tokens, NewControlToken(c))
			stack = stack[:0]
			state = stateAwaitingStartOfRule

		case stateAwaitingStartOfRule, stateJustHadOption:
			switch {
			case c == '<':
				push(stateInsideNonterminal)
			case c == '"':
				push(stateInsideLiteral)
			case c == '[':
				push(stateInsideDBLookup)
			case c == SymbolOption && state != stateJustHadOption:
				tokens = append(tokens, NewControlToken(c))
				stack = stack[:0]
				state = stateJustHadOption
			default:
				return nil, newParseError(c, "a terminal or nonterminal")
			}

		case stateContinuingRule:
			switch c {
			case '<':
				push(stateInsideNonterminal)
			case '"':
				push(stateInsideLiteral)
			case '[':
				push(stateInsideDBLookup)
			case SymbolSelection:
				tokens = append(tokens, NewControlToken(c))
				stack = stack[:0]
				state = stateAwaitingStartOfRule
			case SymbolOption:
				tokens = append(tokens, NewControlToken(c))
				stack = stack[:0]
				state = stateJustHadOption
			case '#':
				break scan
			default:
				return nil, newParseError(c, "")
			}

		case stateInsideNonterminal, stateInsideLiteral, stateInsideDBLookup:
			switch c {
			case '\\':
				push(stateEscaping)
			case endChar[state]:
				tokens = append(tokens, Token{Kind: tokenKindFor[state], Text: content.String()})
				content.Reset()
				pop()
				if next, ok := nextState[state]; ok {
					state = next
				}
			default:
				content.WriteRune(c)
			}

		case stateEscaping:
			// The escaped character is taken verbatim, so \n is the letter n,
			// not a newline. A rule is one line; real newlines never occur.
			content.WriteRune(c)
			pop()
		}
	}

	switch state {
	case stateAwaitingNonterminal, stateContinuingRule, stateJustHadOption:
		return tokens, nil
	}
	return nil, synErrEOL
}
