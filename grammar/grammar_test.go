package grammar

import (
	"errors"
	"strings"
	"testing"

	rerr "github.com/rulegen/rulegen/error"
	"github.com/rulegen/rulegen/spec"
)

func buildRuleSet(t *testing.T, src string) (RuleSet, error) {
	t.Helper()
	root, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	b := &RuleSetBuilder{
		AST: root,
	}
	return b.Build()
}

func TestRuleSetBuilder_Build(t *testing.T) {
	src := `
<RESULT> = <A> " " <B>
<A> = "Hello" | "Goodbye"
<B> = ?"[cruel] " "world"
`
	rules, err := buildRuleSet(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("unexpected rule count; want: 3, got: %v", len(rules))
	}
	want := Production{
		spec.NewNonterminalToken("A"),
		spec.NewLiteralToken(" "),
		spec.NewNonterminalToken("B"),
	}
	got := rules[InitialSymbol]
	if len(got) != len(want) {
		t.Fatalf("unexpected production; want: %v, got: %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected production; want: %v, got: %v", want, got)
		}
	}
}

func TestRuleSetBuilder_Build_Errors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		cause   error
		detail  string
		row     int
	}{
		{
			caption: "a redefined nonterminal is rejected",
			src: `<RESULT> = <A>
<A> = "x"
<A> = "y"`,
			cause:  semErrRedefinition,
			detail: `"A"`,
			row:    3,
		},
		{
			caption: "an undefined nonterminal is rejected",
			src:     `<RESULT> = <A>`,
			cause:   semErrUndefinedSym,
			detail:  `"A"`,
			row:     1,
		},
		{
			caption: "an unreachable definition is counted and rejected",
			src: `<RESULT> = "x"
<B> = "y"`,
			cause:  semErrUnreachable,
			detail: "1 definitions",
		},
		{
			caption: "several unreachable definitions are counted together",
			src: `<RESULT> = "x"
<B> = <C>
<C> = "y"
<D> = "z"`,
			cause:  semErrUnreachable,
			detail: "3 definitions",
		},
		{
			caption: "a direct cycle is rejected",
			src: `<RESULT> = <A>
<A> = <RESULT>`,
			cause: semErrRecursive,
		},
		{
			caption: "a self-referential rule is rejected",
			src:     `<RESULT> = "x" <RESULT>`,
			cause:   semErrRecursive,
		},
		{
			caption: "a longer cycle is rejected",
			src: `<RESULT> = <A>
<A> = <B>
<B> = <C>
<C> = <A>`,
			cause: semErrRecursive,
		},
		{
			caption: "the initial symbol is mandatory",
			src:     `<A> = "x"`,
			cause:   semErrUndefinedSym,
			detail:  `"RESULT"`,
		},
		{
			caption: "a trailing option marker is rejected",
			src:     `<RESULT> = "x" ?`,
			cause:   semErrDanglingOption,
			row:     1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := buildRuleSet(t, tt.src)
			if err == nil {
				t.Fatalf("an expected error didn't occur; want: %v", tt.cause)
			}
			if !errors.Is(err, tt.cause) {
				t.Fatalf("unexpected error; want: %v, got: %v", tt.cause, err)
			}
			var specErr *rerr.SpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("unexpected error type: %T", err)
			}
			if tt.detail != "" && specErr.Detail != tt.detail {
				t.Errorf("unexpected detail; want: %v, got: %v", tt.detail, specErr.Detail)
			}
			if tt.row != 0 && specErr.Row != tt.row {
				t.Errorf("unexpected row; want: %v, got: %v", tt.row, specErr.Row)
			}
		})
	}
}

func TestRuleSetBuilder_Build_NonconformantAST(t *testing.T) {
	// The line lexer cannot produce a rule that doesn't start with a
	// nonterminal and an equals sign, but a hand-built AST can.
	b := &RuleSetBuilder{
		AST: &spec.RuleFileNode{
			Rules: []*spec.RuleNode{
				{
					Tokens: []spec.Token{
						spec.NewLiteralToken("RESULT"),
						spec.NewControlToken('='),
						spec.NewLiteralToken("x"),
					},
					Row: 1,
				},
			},
		},
	}
	_, err := b.Build()
	if !errors.Is(err, semErrNonconformantRule) {
		t.Fatalf("unexpected error; want: %v, got: %v", semErrNonconformantRule, err)
	}
}
