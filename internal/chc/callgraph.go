package chc

import "solcheck/internal/ast"

// callGraph maps a caller scope (a function, or a contract for
// constructor-phase calls) to the set of callee functions it invokes
// directly, recorded as pairs of stable node ids rather than owning
// pointers (Design Notes ss9, "prevents cycles in ownership while
// preserving reachability queries").
type callGraph struct {
	edges map[ast.NodeID]map[ast.NodeID]bool
}

func newCallGraph() *callGraph {
	return &callGraph{edges: map[ast.NodeID]map[ast.NodeID]bool{}}
}

func (g *callGraph) addEdge(caller, callee ast.NodeID) {
	set, ok := g.edges[caller]
	if !ok {
		set = map[ast.NodeID]bool{}
		g.edges[caller] = set
	}
	set[callee] = true
}

func (g *callGraph) successors(n ast.NodeID) []ast.NodeID {
	set := g.edges[n]
	out := make([]ast.NodeID, 0, len(set))
	for callee := range set {
		out = append(out, callee)
	}
	return out
}

// transactionAssertions walks the call graph breadth-first from root,
// unioning the function-assertions of every reachable scope (spec.md
// ss4.7 step 1), grounded on
// _examples/other_examples/InPlusLab-go-mythril__cfg.go's worklist
// style graph walk.
func transactionAssertions(g *callGraph, assertions map[ast.NodeID]map[ast.NodeID]bool, root ast.NodeID) map[ast.NodeID]bool {
	seen := map[ast.NodeID]bool{root: true}
	result := map[ast.NodeID]bool{}
	queue := []ast.NodeID{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for a := range assertions[n] {
			result[a] = true
		}
		for _, succ := range g.successors(n) {
			if !seen[succ] {
				seen[succ] = true
				queue = append(queue, succ)
			}
		}
	}
	return result
}
