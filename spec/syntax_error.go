package spec

import (
	"fmt"
	"strconv"
)

// ParseError reports an unexpected character (or end of input) together with
// what the lexer was prepared to accept at that point.
type ParseError struct {
	Got      string
	Expected string
}

func newParseError(got rune, expected string) *ParseError {
	return &ParseError{
		Got:      strconv.QuoteRune(got),
		Expected: expected,
	}
}

func (e *ParseError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("got unexpected %v", e.Got)
	}
	return fmt.Sprintf("got %v, expected %v", e.Got, e.Expected)
}

var synErrEOL = &ParseError{Got: "EOL"}
