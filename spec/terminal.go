package spec

import "strings"

// ParseTerminals decodes one terminal string, as emitted by the enumerator,
// back into a sequence of Literal and DBLookup tokens. The decoder starts
// inside a literal; an unescaped '[' closes the current literal (possibly
// empty) and opens a lookup, an unescaped ']' closes the lookup, and a
// backslash takes the next character verbatim. Runs of literal text between
// lookups come back as single Literal tokens, so the original token
// boundaries inside a run are not recovered.
func ParseTerminals(s string) ([]Token, error) {
	var tokens []Token
	state := stateInsideLiteral
	var stack []lexerState
	var content strings.Builder

	for _, c := range s {
		switch {
		case state == stateEscaping:
			content.WriteRune(c)
			state = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case c == '\\':
			stack = append(stack, state)
			state = stateEscaping
		case state == stateInsideLiteral:
			if c == '[' {
				tokens = append(tokens, NewLiteralToken(content.String()))
				content.Reset()
				state = stateInsideDBLookup
			} else {
				content.WriteRune(c)
			}
		case state == stateInsideDBLookup:
			if c == ']' {
				tokens = append(tokens, NewDBLookupToken(content.String()))
				content.Reset()
				state = stateInsideLiteral
			} else {
				content.WriteRune(c)
			}
		}
	}

	if state != stateInsideLiteral {
		return nil, synErrEOL
	}
	tokens = append(tokens, NewLiteralToken(content.String()))
	return tokens, nil
}
