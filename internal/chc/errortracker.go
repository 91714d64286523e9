package chc

import (
	"fmt"

	"solcheck/internal/ast"
	"solcheck/internal/horn"
)

// errorTracker is the SSA index for the single integer variable
// `error` (spec.md ss3, "Error index"): 0 while nothing has failed,
// the AST id of the failing assert otherwise. It is kept separate
// from symbolic.SSATracker's ast.NodeID-keyed map because `error` has
// no VariableDeclaration of its own -- it is a bookkeeping variable
// the encoder introduces per scope, not a program variable.
type errorTracker struct {
	scope ast.NodeID
	idx   int
	cache map[int]horn.Term
}

func newErrorTracker(scope ast.NodeID) *errorTracker {
	return &errorTracker{scope: scope, cache: map[int]horn.Term{}}
}

func (e *errorTracker) at(k int) horn.Term {
	if t, ok := e.cache[k]; ok {
		return t
	}
	t := horn.Fresh(horn.SortInt, fmt.Sprintf("error_%d_%d", e.scope, k))
	e.cache[k] = t
	return t
}

func (e *errorTracker) current() horn.Term { return e.at(e.idx) }

// bump advances to a fresh index and returns its term.
func (e *errorTracker) bump() horn.Term {
	e.idx++
	return e.at(e.idx)
}

// restore rewinds the tracked index without minting a new term --
// used after an assert edge and after an internal-call failure edge,
// both of which need the live continuation to see `error` unchanged
// (spec.md ss4.5's "assert equal to previousError" step).
func (e *errorTracker) restore(k int) {
	e.idx = k
}

func (e *errorTracker) index() int { return e.idx }
