package spec

import "strings"

type TokenKind string

const (
	TokenKindNonterminal = TokenKind("nonterminal")
	TokenKindLiteral     = TokenKind("literal")
	TokenKindDBLookup    = TokenKind("db lookup")
	TokenKindControl     = TokenKind("control")
)

// Control symbols that can appear in a production.
const (
	SymbolDefinition = '='
	SymbolSelection  = '|'
	SymbolOption     = '?'
)

// Token is one element of a production: a nonterminal reference, a string
// literal, a database lookup, or a control symbol. Text holds the body of a
// nonterminal/literal/lookup; Symbol holds the control character.
type Token struct {
	Kind   TokenKind
	Text   string
	Symbol rune
}

func NewNonterminalToken(text string) Token {
	return Token{
		Kind: TokenKindNonterminal,
		Text: text,
	}
}

func NewLiteralToken(text string) Token {
	return Token{
		Kind: TokenKindLiteral,
		Text: text,
	}
}

func NewDBLookupToken(text string) Token {
	return Token{
		Kind: TokenKindDBLookup,
		Text: text,
	}
}

func NewControlToken(symbol rune) Token {
	return Token{
		Kind:   TokenKindControl,
		Symbol: symbol,
	}
}

// IsControl reports whether the token is the control symbol sym.
func (t Token) IsControl(sym rune) bool {
	return t.Kind == TokenKindControl && t.Symbol == sym
}

// IsTerminal reports whether the token never expands further.
func (t Token) IsTerminal() bool {
	return t.Kind == TokenKindLiteral || t.Kind == TokenKindDBLookup
}

var literalEscaper = strings.NewReplacer(`"`, `\"`)

// String renders the token in rule-file source form.
func (t Token) String() string {
	switch t.Kind {
	case TokenKindNonterminal:
		return "<" + t.Text + ">"
	case TokenKindLiteral:
		return `"` + literalEscaper.Replace(t.Text) + `"`
	case TokenKindDBLookup:
		return "[" + t.Text + "]"
	default:
		return string(t.Symbol)
	}
}

var terminalEscaper = strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`)

// EscapeTerminalText backslash-escapes the characters ParseTerminals treats
// as significant (backslashes and square brackets) so literal text can be
// mixed with bracket-delimited lookups in one terminal string and still be
// decoded losslessly.
func EscapeTerminalText(s string) string {
	return terminalEscaper.Replace(s)
}

// FlattenTerminals renders a sequence of Literal/DBLookup tokens as one
// terminal string using the escaping convention. It is the inverse of
// ParseTerminals.
func FlattenTerminals(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenKindLiteral:
			b.WriteString(EscapeTerminalText(tok.Text))
		case TokenKindDBLookup:
			b.WriteString("[" + EscapeTerminalText(tok.Text) + "]")
		}
	}
	return b.String()
}
