package derivation

import (
	"strings"

	"github.com/rulegen/rulegen/grammar"
	"github.com/rulegen/rulegen/spec"
)

// Enumerator produces every distinct terminal string a validated rule set can
// derive. The set is finite because the metalanguage forbids recursion and
// indefinite repetition. Strings are produced lazily, one per Next call, and
// are deduplicated: two derivations that render identical text count once.
//
// An Enumerator owns its derivation tree; independent Enumerators may run
// concurrently over the same rule set.
type Enumerator struct {
	rules   grammar.RuleSet
	tree    *tree
	root    int
	work    []workItem
	seen    map[string]struct{}
	started bool
}

type workItem struct {
	text  []string
	nodes []int
}

func NewEnumerator(rules grammar.RuleSet) *Enumerator {
	return &Enumerator{
		rules: rules,
		seen:  map[string]struct{}{},
	}
}

// start expands the derivation tree to its terminal fixpoint: breadth-first
// passes over the whole tree, expanding every expandable leaf, until a pass
// expands nothing.
func (e *Enumerator) start() {
	e.tree = &tree{}
	e.root = e.tree.addToken(spec.NewNonterminalToken(grammar.InitialSymbol), noParent)

	for {
		expanded := false
		queue := []int{e.root}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			if len(e.tree.nodes[id].children) == 0 && e.tree.expand(id, e.rules) {
				expanded = true
			}
			queue = append(queue, e.tree.nodes[id].children...)
		}
		if !expanded {
			break
		}
	}

	e.work = []workItem{{nodes: []int{e.root}}}
	e.started = true
}

// Next returns the next terminal string not yet produced, or ok=false when
// the rule set is exhausted.
func (e *Enumerator) Next() (string, bool) {
	if !e.started {
		e.start()
	}

	for len(e.work) > 0 {
		item := e.work[len(e.work)-1]
		e.work = e.work[:len(e.work)-1]

		text, nodes := item.text, item.nodes
		for len(nodes) > 0 {
			id := nodes[len(nodes)-1]
			nodes = nodes[:len(nodes)-1]
			n := e.tree.nodes[id]

			switch {
			case n.kind == contentToken && n.tok.Kind == spec.TokenKindLiteral:
				text = append(text, spec.EscapeTerminalText(n.tok.Text))
			case n.kind == contentToken && n.tok.Kind == spec.TokenKindDBLookup:
				text = append(text, "["+spec.EscapeTerminalText(n.tok.Text)+"]")
			case n.kind == contentToken && n.tok.Kind == spec.TokenKindControl:
				// A choice point. Continue down one alternative here and park
				// a copy of the current state pointed at the other; together
				// they realize the Cartesian product over all choice points.
				textCopy := append([]string(nil), text...)
				nodesCopy := append([]int(nil), nodes...)
				nodesCopy = append(nodesCopy, n.children[1])
				e.work = append(e.work, workItem{text: textCopy, nodes: nodesCopy})
				nodes = append(nodes, n.children[0])
			case n.kind == contentAbsent:
				// Renders as nothing.
			default:
				// Nonterminal and branch nodes contribute their children,
				// left to right.
				for i := len(n.children) - 1; i >= 0; i-- {
					nodes = append(nodes, n.children[i])
				}
			}
		}

		s := strings.Join(text, "")
		if _, dup := e.seen[s]; dup {
			continue
		}
		e.seen[s] = struct{}{}
		return s, true
	}

	return "", false
}

// Strings drains the enumerator and returns every remaining terminal string.
func (e *Enumerator) Strings() []string {
	var all []string
	for {
		s, ok := e.Next()
		if !ok {
			return all
		}
		all = append(all, s)
	}
}
