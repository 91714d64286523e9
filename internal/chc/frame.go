package chc

import (
	"solcheck/internal/ast"
	"solcheck/internal/horn"
	"solcheck/internal/symbolic"
)

// frame is the full argument tuple visible at a `block(n)` predicate
// (spec.md ss3): (errorId, initState, initParams, state, params,
// returns, localVars). initState/initParams are captured once, at
// function entry, and stay fixed for every block predicate emitted
// while encoding that function's body.
type frame struct {
	stateVars []*ast.VariableDeclaration
	params    []*ast.VariableDeclaration
	returns   []*ast.VariableDeclaration
	locals    []*ast.VariableDeclaration

	initState  []horn.Term
	initParams []horn.Term
}

func (f *frame) sorts() []horn.Sort {
	sorts := []horn.Sort{horn.SortInt}
	sorts = append(sorts, sortsOf(f.stateVars)...)
	sorts = append(sorts, sortsOf(f.params)...)
	sorts = append(sorts, sortsOf(f.stateVars)...)
	sorts = append(sorts, sortsOf(f.params)...)
	sorts = append(sorts, sortsOf(f.returns)...)
	sorts = append(sorts, sortsOf(f.locals)...)
	return sorts
}

func currentValues(ctx *symbolic.Context, vars []*ast.VariableDeclaration) []horn.Term {
	out := make([]horn.Term, len(vars))
	for i, v := range vars {
		out[i] = ctx.Variable(v)
	}
	return out
}

// args builds the live argument tuple for f, given the current
// scope's error term and the expression-encoding context to read
// current SSA values from.
func (f *frame) args(errorTerm horn.Term, ctx *symbolic.Context) []horn.Term {
	var out []horn.Term
	out = append(out, errorTerm)
	out = append(out, f.initState...)
	out = append(out, f.initParams...)
	out = append(out, currentValues(ctx, f.stateVars)...)
	out = append(out, currentValues(ctx, f.params)...)
	out = append(out, currentValues(ctx, f.returns)...)
	out = append(out, currentValues(ctx, f.locals)...)
	return out
}
