package grammar

import (
	"errors"
	"testing"
)

func TestToposort(t *testing.T) {
	tests := []struct {
		caption string
		graph   Graph
		start   map[string]struct{}
		cyclic  bool
	}{
		{
			caption: "a chain sorts",
			graph:   Graph{"a": {"b"}, "b": {"c"}},
			start:   map[string]struct{}{"a": {}},
		},
		{
			caption: "a diamond sorts",
			graph:   Graph{"r": {"a", "b"}, "a": {"c"}, "b": {"c"}},
			start:   map[string]struct{}{"r": {}},
		},
		{
			caption: "the start set is found when omitted",
			graph:   Graph{"r": {"a", "b"}, "a": {"b"}},
		},
		{
			caption: "a two-cycle reachable from the start is detected",
			graph:   Graph{"r": {"a"}, "a": {"r"}},
			start:   map[string]struct{}{"r": {}},
			cyclic:  true,
		},
		{
			caption: "a self-loop is detected",
			graph:   Graph{"r": {"r"}},
			start:   map[string]struct{}{"r": {}},
			cyclic:  true,
		},
		{
			caption: "a cycle past the start is detected",
			graph:   Graph{"r": {"a"}, "a": {"b"}, "b": {"a"}},
			start:   map[string]struct{}{"r": {}},
			cyclic:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			sorted, err := Toposort(tt.graph, tt.start)
			if tt.cyclic {
				if !errors.Is(err, ErrCyclicGraph) {
					t.Fatalf("an expected cycle wasn't detected; got: %v, %v", sorted, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			pos := map[string]int{}
			for i, node := range sorted {
				if _, dup := pos[node]; dup {
					t.Fatalf("node %v appears twice in %v", node, sorted)
				}
				pos[node] = i
			}
			for node, dests := range tt.graph {
				for _, dest := range dests {
					di, ok := pos[dest]
					if !ok {
						// Leaf destinations with no outgoing edges are not
						// part of the order.
						continue
					}
					if pos[node] >= di {
						t.Errorf("edge %v->%v is not respected by %v", node, dest, sorted)
					}
				}
			}
		})
	}
}
