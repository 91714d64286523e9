// Package symbolic is the expression-encoding context the statement
// encoder in package chc delegates to for per-variable SSA and
// expression-to-term translation (spec.md ss4.2, Design Notes ss9's
// "narrow interface": visit, expr_term, path_conditions, havoc,
// declare, variable). It is a sibling of the encoder, not a base
// class: chc.Encoder holds a *Context and calls it explicitly.
package symbolic

import (
	"fmt"

	"solcheck/internal/ast"
	"solcheck/internal/horn"
)

// HornSort lowers an ast.Sort into the horn package's own sort
// vocabulary, the one place the two type systems meet.
func HornSort(s ast.Sort) horn.Sort {
	if arr, ok := ast.IsArray(s); ok {
		return horn.SortArray(HornSort(arr.Key), HornSort(arr.Value))
	}
	if s == ast.SortBool {
		return horn.SortBool
	}
	return horn.SortInt
}

// SSATracker keeps, for each declared variable, a monotonic version
// index and a cache of the term standing for "the variable's value at
// index k" so repeated lookups of the same index are referentially
// the same solver term (spec.md ss4.2).
type SSATracker struct {
	index map[ast.NodeID]int
	terms map[ssaKey]horn.Term
	sorts map[ast.NodeID]ast.Sort
}

type ssaKey struct {
	id    ast.NodeID
	index int
}

func NewSSATracker() *SSATracker {
	return &SSATracker{
		index: map[ast.NodeID]int{},
		terms: map[ssaKey]horn.Term{},
		sorts: map[ast.NodeID]ast.Sort{},
	}
}

// Declare registers v at SSA index 0 if it has not been seen before.
// Re-declaring an already-known variable is a no-op, matching the
// original's idempotent variable registration.
func (t *SSATracker) Declare(v *ast.VariableDeclaration) {
	if _, ok := t.index[v.ID]; ok {
		return
	}
	t.index[v.ID] = 0
	t.sorts[v.ID] = v.Type
}

// CurrentValue returns the term for v at its current SSA index.
func (t *SSATracker) CurrentValue(v *ast.VariableDeclaration) horn.Term {
	return t.ValueAt(v, t.index[v.ID])
}

// ValueAt returns the (cached, stable) term for v at SSA index k,
// creating a fresh uninterpreted term the first time k is requested.
func (t *SSATracker) ValueAt(v *ast.VariableDeclaration, k int) horn.Term {
	key := ssaKey{id: v.ID, index: k}
	if term, ok := t.terms[key]; ok {
		return term
	}
	sort, ok := t.sorts[v.ID]
	if !ok {
		sort = v.Type
		t.sorts[v.ID] = sort
	}
	term := horn.Fresh(HornSort(sort), fmt.Sprintf("%s_%d_%d", v.Name, v.ID, k))
	t.terms[key] = term
	return term
}

// Bump advances v to a fresh SSA index and returns it. Used on
// assignment, on havoc, and when clearing indices at function/contract
// scope boundaries.
func (t *SSATracker) Bump(v *ast.VariableDeclaration) int {
	t.Declare(v)
	t.index[v.ID]++
	return t.index[v.ID]
}

// Reset returns v to SSA index 0, reusing the existing index-0 term
// rather than minting a new one -- invariant 4 of spec.md ss3 ("SSA
// index 0... is reserved for value at the start of the current
// transaction").
func (t *SSATracker) Reset(v *ast.VariableDeclaration) {
	t.Declare(v)
	t.index[v.ID] = 0
}

// IndexOf reports v's current SSA index.
func (t *SSATracker) IndexOf(v *ast.VariableDeclaration) int {
	return t.index[v.ID]
}
