package symbolic

import (
	"fmt"

	"solcheck/internal/ast"
	"solcheck/internal/horn"
)

// Context is the expression-encoding sibling context Design Notes ss9
// describes: `visit(expr)`, `expr_term(expr) -> term`,
// `path_conditions() -> term`, `havoc(predicate)`, `declare(var)`,
// `variable(var) -> ssa-handle`. package chc's statement encoder
// composes with it explicitly; Context has no knowledge of blocks,
// predicates, or call graphs -- those stay in package chc.
type Context struct {
	tracker     *SSATracker
	constraints []horn.Term
	frames      []horn.Term
	fresh       int
}

func NewContext() *Context {
	return &Context{tracker: NewSSATracker()}
}

// Declare registers v with the SSA tracker at index 0.
func (c *Context) Declare(v *ast.VariableDeclaration) { c.tracker.Declare(v) }

// Variable returns v's current SSA term -- the "ssa-handle" of Design
// Notes ss9.
func (c *Context) Variable(v *ast.VariableDeclaration) horn.Term {
	return c.tracker.CurrentValue(v)
}

// Tracker exposes the underlying SSATracker for callers (package chc)
// that need ValueAt/Bump/Reset/IndexOf directly -- e.g. binding
// parameters to their SSA-0 snapshot, or reading a state variable's
// index for a predicate's sort vector.
func (c *Context) Tracker() *SSATracker { return c.tracker }

// Visit evaluates expr, threading side effects (assignments bump SSA
// and record an equality constraint) through the context, and returns
// the term standing for its value. FunctionCall expressions are
// intentionally NOT interpreted here: they carry control-flow and
// call-graph effects package chc alone understands (spec.md ss4.5),
// so Visit hands back a fresh, unconstrained placeholder of the call's
// sort and leaves it to the caller to layer in the real semantics.
func (c *Context) Visit(expr ast.Expression) horn.Term {
	switch e := expr.(type) {
	case *ast.Identifier:
		return c.Variable(e.Declaration)
	case *ast.Literal:
		if e.SortOf() == ast.SortBool {
			return horn.BoolLit(e.BoolValue)
		}
		return horn.IntLit(e.IntValue)
	case *ast.UnaryExpr:
		operand := c.Visit(e.Operand)
		switch e.Op {
		case ast.OpNot:
			return horn.Not(operand)
		case ast.OpNeg:
			return horn.Neg(operand)
		default:
			panic(fmt.Sprintf("symbolic: unhandled unary operator %v", e.Op))
		}
	case *ast.BinaryExpr:
		left := c.Visit(e.Left)
		right := c.Visit(e.Right)
		return applyBinary(e.Op, left, right)
	case *ast.Assignment:
		value := c.Visit(e.Value)
		idx := c.tracker.Bump(e.Target.Declaration)
		newTerm := c.tracker.ValueAt(e.Target.Declaration, idx)
		c.emit(horn.Eq(newTerm, value))
		return newTerm
	case *ast.IndexAssignment:
		key := c.Visit(e.Key)
		value := c.Visit(e.Value)
		base := c.tracker.CurrentValue(e.Target.Declaration)
		stored := horn.ArrayStore(base, key, value)
		idx := c.tracker.Bump(e.Target.Declaration)
		newTerm := c.tracker.ValueAt(e.Target.Declaration, idx)
		c.emit(horn.Eq(newTerm, stored))
		return newTerm
	case *ast.IndexAccess:
		base := c.Visit(e.Base)
		key := c.Visit(e.Key)
		return horn.ArraySelect(base, key)
	case *ast.FunctionCall:
		c.fresh++
		return horn.Fresh(HornSort(e.SortOf()), fmt.Sprintf("call_%d_%d", e.NodeID(), c.fresh))
	default:
		panic(fmt.Sprintf("symbolic: unhandled expression kind %T", expr))
	}
}

func applyBinary(op ast.BinaryOperator, left, right horn.Term) horn.Term {
	switch op {
	case ast.OpAdd:
		return horn.Add(left, right)
	case ast.OpSub:
		return horn.Sub(left, right)
	case ast.OpMul:
		return horn.Mul(left, right)
	case ast.OpEq:
		return horn.Eq(left, right)
	case ast.OpNotEq:
		return horn.Neq(left, right)
	case ast.OpLt:
		return horn.Lt(left, right)
	case ast.OpLtEq:
		return horn.Leq(left, right)
	case ast.OpGt:
		return horn.Gt(left, right)
	case ast.OpGtEq:
		return horn.Geq(left, right)
	case ast.OpAnd:
		return horn.And(left, right)
	case ast.OpOr:
		return horn.Or(left, right)
	default:
		panic(fmt.Sprintf("symbolic: unhandled binary operator %v", op))
	}
}

// emit records a side-effect constraint (an assignment's equality)
// produced while visiting the current statement.
func (c *Context) emit(constraint horn.Term) {
	c.constraints = append(c.constraints, constraint)
}

// Emit lets package chc fold a constraint it builds directly (binding
// a `return` value to its return parameter, restoring a saved SSA
// value after a call) into the same channel Visit's own assignment
// handling uses.
func (c *Context) Emit(constraint horn.Term) { c.emit(constraint) }

// TakeConstraints drains and ANDs every constraint accumulated since
// the last call, for package chc to fold into the guard of the edge
// leaving the statement just visited.
func (c *Context) TakeConstraints() horn.Term {
	constraint := horn.And(c.constraints...)
	c.constraints = nil
	return constraint
}

// PushFrame extends the accumulated path condition with cond -- used
// entering a branch or loop body (spec.md ss4.4 "Accumulation is
// per-scope; entering/leaving a block pushes/pops this stack").
func (c *Context) PushFrame(cond horn.Term) {
	c.frames = append(c.frames, cond)
}

// PopFrame removes the most recently pushed path condition. Panics if
// called without a matching PushFrame -- an encoder invariant
// violation (spec.md ss7.1), never a user-reportable error.
func (c *Context) PopFrame() {
	if len(c.frames) == 0 {
		panic("symbolic: PopFrame without matching PushFrame")
	}
	c.frames = c.frames[:len(c.frames)-1]
}

// PathCondition returns the conjunction of every currently pushed
// frame -- the `Γ` of spec.md ss4.4's `connect`.
func (c *Context) PathCondition() horn.Term {
	return horn.And(c.frames...)
}

// Havoc bumps the SSA index of every variable satisfying pred,
// erasing the solver's knowledge of its value (spec.md ss4.2, "used
// for reference/mapping-typed variables after unknown calls").
func (c *Context) Havoc(vars []*ast.VariableDeclaration, pred func(*ast.VariableDeclaration) bool) {
	for _, v := range vars {
		if pred == nil || pred(v) {
			c.tracker.Bump(v)
		}
	}
}
