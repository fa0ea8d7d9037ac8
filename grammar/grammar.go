package grammar

import (
	"strconv"

	rerr "github.com/rulegen/rulegen/error"
	"github.com/rulegen/rulegen/spec"
)

// InitialSymbol is the mandatory root nonterminal every rule set expands from.
const InitialSymbol = "RESULT"

// Production is the ordered token sequence defining one nonterminal's body.
// The '=' that separated the nonterminal from its body is consumed during
// building and never stored.
type Production []spec.Token

// RuleSet maps each defined nonterminal to its production. A RuleSet returned
// by RuleSetBuilder.Build is validated: the initial symbol exists, every
// referenced nonterminal is defined, every defined nonterminal is reachable
// from the initial symbol, and the dependency graph is acyclic.
type RuleSet map[string]Production

type RuleSetBuilder struct {
	AST *spec.RuleFileNode
}

func (b *RuleSetBuilder) Build() (RuleSet, error) {
	rules := RuleSet{}
	rows := map[string]int{}
	for _, rule := range b.AST.Rules {
		if len(rule.Tokens) < 2 ||
			rule.Tokens[0].Kind != spec.TokenKindNonterminal ||
			!rule.Tokens[1].IsControl(spec.SymbolDefinition) {
			return nil, &rerr.SpecError{
				Cause: semErrNonconformantRule,
				Row:   rule.Row,
			}
		}
		name := rule.Tokens[0].Text
		if _, defined := rules[name]; defined {
			return nil, &rerr.SpecError{
				Cause:  semErrRedefinition,
				Detail: strconv.Quote(name),
				Row:    rule.Row,
			}
		}
		production := Production(rule.Tokens[2:])
		// The lexer accepts end of line right after a '?', but a '?' must
		// bind to the token that follows it.
		if len(production) > 0 && production[len(production)-1].IsControl(spec.SymbolOption) {
			return nil, &rerr.SpecError{
				Cause: semErrDanglingOption,
				Row:   rule.Row,
			}
		}
		rules[name] = production
		rows[name] = rule.Row
	}

	// Walk the references breadth-first from the initial symbol, building the
	// dependency graph as we go. The graph is only needed for the cycle check
	// below and is discarded afterwards.
	dependencies := Graph{}
	seen := map[string]struct{}{}
	unseen := map[string]struct{}{InitialSymbol: {}}
	refRows := map[string]int{}
	for len(unseen) > 0 {
		var next string
		for next = range unseen {
			break
		}
		delete(unseen, next)
		seen[next] = struct{}{}

		production, defined := rules[next]
		if !defined {
			return nil, &rerr.SpecError{
				Cause:  semErrUndefinedSym,
				Detail: strconv.Quote(next),
				Row:    refRows[next],
			}
		}

		for _, tok := range production {
			if tok.Kind != spec.TokenKindNonterminal {
				continue
			}
			dependencies[next] = append(dependencies[next], tok.Text)
			if _, ok := seen[tok.Text]; !ok {
				unseen[tok.Text] = struct{}{}
				if _, ok := refRows[tok.Text]; !ok {
					refRows[tok.Text] = rows[next]
				}
			}
		}
	}

	if len(seen) < len(rules) {
		return nil, &rerr.SpecError{
			Cause:  semErrUnreachable,
			Detail: strconv.Itoa(len(rules)-len(seen)) + " definitions",
		}
	}
	// More reached than defined cannot be caused by user input; every reached
	// name was either the initial symbol or checked for a definition above.
	if len(seen) > len(rules) {
		return nil, &rerr.SpecError{
			Cause: semErrTooManyReached,
		}
	}

	if _, err := Toposort(dependencies, map[string]struct{}{InitialSymbol: {}}); err != nil {
		return nil, &rerr.SpecError{
			Cause:  semErrRecursive,
			Detail: err.Error(),
		}
	}

	return rules, nil
}
