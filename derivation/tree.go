package derivation

import (
	"github.com/rulegen/rulegen/grammar"
	"github.com/rulegen/rulegen/spec"
)

type contentKind int

const (
	// contentToken nodes hold a production token. Terminal tokens never
	// expand; nonterminal tokens expand to their production; control tokens
	// expand to a binary choice.
	contentToken contentKind = iota
	// contentBranch nodes are the left/right holders created when a '|'
	// splits its production.
	contentBranch
	// contentAbsent nodes are the empty alternative of a '?'. They render as
	// nothing and never expand.
	contentAbsent
)

const noParent = -1

type treeNode struct {
	kind     contentKind
	tok      spec.Token
	parent   int
	children []int
}

// tree is an arena of derivation nodes addressed by index. Splice operations
// during expansion rewrite child-index lists in place; indices stay valid for
// the lifetime of the tree, so work lists can hold them across splices.
type tree struct {
	nodes []treeNode
}

func (t *tree) add(n treeNode) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *tree) addToken(tok spec.Token, parent int) int {
	return t.add(treeNode{kind: contentToken, tok: tok, parent: parent})
}

func (t *tree) childPos(parent, child int) int {
	for i, c := range t.nodes[parent].children {
		if c == child {
			return i
		}
	}
	return -1
}

// expand tries to grow the tree at a leaf. It reports whether it did.
func (t *tree) expand(id int, rules grammar.RuleSet) bool {
	n := &t.nodes[id]
	if n.kind != contentToken {
		return false
	}

	switch n.tok.Kind {
	case spec.TokenKindNonterminal:
		production := rules[n.tok.Text]
		if len(production) == 0 {
			// An empty production derives the empty string once and is done.
			t.nodes[id].kind = contentAbsent
			return true
		}
		children := make([]int, 0, len(production))
		for _, tok := range production {
			children = append(children, t.addToken(tok, id))
		}
		t.nodes[id].children = children
		return true

	case spec.TokenKindControl:
		pos := t.childPos(n.parent, id)
		parent := &t.nodes[n.parent]

		if n.tok.Symbol == spec.SymbolOption {
			// Pull the next sibling out of the parent and pair it with an
			// absence marker under this node.
			optional := parent.children[pos+1]
			parent.children = append(parent.children[:pos+1], parent.children[pos+2:]...)
			t.nodes[optional].parent = id
			absent := t.add(treeNode{kind: contentAbsent, parent: id})
			t.nodes[id].children = []int{optional, absent}
			return true
		}

		// '|': everything before this node goes under a left branch,
		// everything after under a right branch, and the parent is left with
		// just this node.
		prior := append([]int(nil), parent.children[:pos]...)
		following := append([]int(nil), parent.children[pos+1:]...)
		left := t.add(treeNode{kind: contentBranch, parent: id, children: prior})
		right := t.add(treeNode{kind: contentBranch, parent: id, children: following})
		for _, side := range []int{left, right} {
			for _, c := range t.nodes[side].children {
				t.nodes[c].parent = side
			}
		}
		t.nodes[t.nodes[id].parent].children = []int{id}
		t.nodes[id].children = []int{left, right}
		return true
	}

	return false
}
