package grammar

import "errors"

// Graph is a directed graph represented as a mapping from each node to the
// list of nodes its outgoing edges point at.
type Graph map[string][]string

// ErrCyclicGraph is reported by Toposort when the graph contains a cycle.
var ErrCyclicGraph = errors.New("cannot sort graph: cycle exists")

func copyGraph(graph Graph) Graph {
	c := make(Graph, len(graph))
	for node, dests := range graph {
		c[node] = append([]string(nil), dests...)
	}
	return c
}

// unreachableNodes returns the nodes of the graph that no edge points at.
func unreachableNodes(graph Graph) map[string]struct{} {
	candidates := make(map[string]struct{}, len(graph))
	for node := range graph {
		candidates[node] = struct{}{}
	}
	for _, dests := range graph {
		for _, dest := range dests {
			delete(candidates, dest)
		}
	}
	return candidates
}

// Toposort orders the graph's nodes so that every edge points from an earlier
// node to a later one, using Kahn's algorithm. start is an optional set of
// nodes known to have no incoming edges; when nil, the graph is searched for
// them first. The unreachable set is recomputed from scratch after each
// removal, which is O(V+E) per step; grammars are small enough that the
// simpler code wins over an in-degree counter.
func Toposort(graph Graph, start map[string]struct{}) ([]string, error) {
	var sorted []string
	editable := copyGraph(graph)

	var pending map[string]struct{}
	if start == nil {
		pending = unreachableNodes(graph)
	} else {
		pending = make(map[string]struct{}, len(start))
		for node := range start {
			pending[node] = struct{}{}
		}
	}

	for len(pending) > 0 {
		var node string
		for node = range pending {
			break
		}
		delete(pending, node)
		// A claimed start node can still have incoming edges when the graph
		// is cyclic. Such a node must not be resolved; if the cycle never
		// breaks, its edges survive to the check below.
		if _, ok := unreachableNodes(editable)[node]; !ok {
			continue
		}
		sorted = append(sorted, node)

		dests := editable[node]
		editable[node] = nil
		unreachableNow := unreachableNodes(editable)
		for _, dest := range dests {
			if _, ok := unreachableNow[dest]; ok {
				pending[dest] = struct{}{}
			}
		}
	}

	for _, dests := range editable {
		if len(dests) > 0 {
			return nil, ErrCyclicGraph
		}
	}
	return sorted, nil
}
