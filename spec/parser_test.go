package spec

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	rerr "github.com/rulegen/rulegen/error"
)

func TestParse(t *testing.T) {
	src := `
# A greeting grammar.
<RESULT> = <A> " " <B>

<A> = "Hello" | "Goodbye"  # two moods
<B> = ?"[cruel] " "world"
`
	root, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantRows := []int{3, 5, 6}
	if len(root.Rules) != len(wantRows) {
		t.Fatalf("unexpected rule count; want: %v, got: %v", len(wantRows), len(root.Rules))
	}
	for i, rule := range root.Rules {
		if rule.Row != wantRows[i] {
			t.Errorf("unexpected row for rule #%v; want: %v, got: %v", i, wantRows[i], rule.Row)
		}
	}

	wantFirst := []Token{
		NewNonterminalToken("RESULT"),
		NewControlToken('='),
		NewNonterminalToken("A"),
		NewLiteralToken(" "),
		NewNonterminalToken("B"),
	}
	if !reflect.DeepEqual(root.Rules[0].Tokens, wantFirst) {
		t.Fatalf("unexpected tokens; want: %v, got: %v", wantFirst, root.Rules[0].Tokens)
	}
}

func TestParse_ErrorRow(t *testing.T) {
	src := `<RESULT> = <A>
<A> = "fine"
<B> = "unterminated
`
	_, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatal("an expected error didn't occur")
	}
	var specErr *rerr.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if specErr.Row != 3 {
		t.Fatalf("unexpected row; want: 3, got: %v", specErr.Row)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("the cause is not a ParseError: %v", err)
	}
}
