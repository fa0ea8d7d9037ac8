package spec

import (
	"reflect"
	"testing"
)

func TestParseTerminals(t *testing.T) {
	lit := NewLiteralToken
	db := NewDBLookupToken

	tests := []struct {
		caption string
		src     string
		tokens  []Token
		err     error
	}{
		{
			caption: "a string with escaped brackets and a lookup decodes",
			src:     `Hello, \[friend\] [Name]!`,
			tokens: []Token{
				lit("Hello, [friend] "), db("Name"), lit("!"),
			},
		},
		{
			caption: "a pure literal decodes to a single token",
			src:     "just words",
			tokens: []Token{
				lit("just words"),
			},
		},
		{
			caption: "an empty string decodes to one empty literal",
			src:     "",
			tokens: []Token{
				lit(""),
			},
		},
		{
			caption: "adjacent lookups produce empty literals between them",
			src:     "[A][B]",
			tokens: []Token{
				lit(""), db("A"), lit(""), db("B"), lit(""),
			},
		},
		{
			caption: "an escaped backslash decodes to a single backslash",
			src:     `back\\slash`,
			tokens: []Token{
				lit(`back\slash`),
			},
		},
		{
			caption: "a backslash escapes inside a lookup body too",
			src:     `[we\]ird]`,
			tokens: []Token{
				lit(""), db("we]ird"), lit(""),
			},
		},
		{
			caption: "ending inside a lookup is an error",
			src:     "Hello [Name",
			err:     synErrEOL,
		},
		{
			caption: "ending mid-escape is an error",
			src:     `Hello \`,
			err:     synErrEOL,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tokens, err := ParseTerminals(tt.src)
			if tt.err != nil {
				if !reflect.DeepEqual(err, tt.err) {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(tokens, tt.tokens) {
				t.Fatalf("unexpected tokens; want: %v, got: %v", tt.tokens, tokens)
			}
		})
	}
}

func TestFlattenTerminals_RoundTrip(t *testing.T) {
	terminals := []string{
		`Hello, \[friend\] [Name]!`,
		`plain`,
		`[A][B]`,
		`\[\] on its own`,
		`back\\slash`,
		`[we\]ird]`,
		``,
	}
	for _, s := range terminals {
		tokens, err := ParseTerminals(s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := FlattenTerminals(tokens); got != s {
			t.Errorf("round trip broke; want: %q, got: %q", s, got)
		}
	}
}
