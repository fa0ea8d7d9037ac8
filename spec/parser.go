package spec

import (
	"bufio"
	"io"

	rerr "github.com/rulegen/rulegen/error"
)

// RuleFileNode is the raw result of parsing a rule file: one token sequence
// per non-empty line, in file order. No grammar semantics are checked here;
// that is the grammar package's concern.
type RuleFileNode struct {
	Rules []*RuleNode
}

type RuleNode struct {
	Tokens []Token
	Row    int
}

// Parse tokenizes a whole rule file. Blank and comment-only lines contribute
// no rule. A ParseError is returned wrapped in a SpecError carrying the
// 1-based row it occurred on.
func Parse(src io.Reader) (*RuleFileNode, error) {
	root := &RuleFileNode{}
	s := bufio.NewScanner(src)
	row := 0
	for s.Scan() {
		row++
		tokens, err := ParseRule(s.Text())
		if err != nil {
			return nil, &rerr.SpecError{
				Cause: err,
				Row:   row,
			}
		}
		if len(tokens) == 0 {
			continue
		}
		root.Rules = append(root.Rules, &RuleNode{
			Tokens: tokens,
			Row:    row,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return root, nil
}
