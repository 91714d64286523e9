package chc

import (
	"solcheck/internal/ast"
	"solcheck/internal/horn"
	"solcheck/internal/symbolic"
)

// predicateForCall builds a function_summary application's argument
// tuple: (errorId, preState, inParams, postState, outParams) --
// spec.md ss3. preState/inParams are fr.initState/fr.initParams,
// captured once at function entry; postState/outParams are read live.
//
// For a library callee (see encodeInternalCall), preState/postState
// are the library's own state SSA terms at indices 0 and 1: the
// SSATracker's zero-value semantics hand back the index-0 term the
// first time a variable is ever touched, and a single Bump afterwards
// lands on index 1, so a library's pre/post pair is correct by
// construction on a call site's *first* reference to that library.
// This is unconditional, not re-verified per call: a second call to
// the same library within the same contract encoding (or one call
// nested inside another, on the same solver frame) would reuse the
// tracker's already-advanced index instead of restarting at 0/1.
// Library state is essentially always empty in practice (Solidity
// libraries cannot declare mutable state variables), which is what
// keeps this precondition from mattering in the common case.
func predicateForCall(fr *frame, errorTerm horn.Term, ctx *symbolic.Context) []horn.Term {
	var args []horn.Term
	args = append(args, errorTerm)
	args = append(args, fr.initState...)
	args = append(args, fr.initParams...)
	args = append(args, currentValues(ctx, fr.stateVars)...)
	args = append(args, currentValues(ctx, fr.returns)...)
	return args
}

func (e *Encoder) encodeCall(nodeID ast.NodeID, call *ast.FunctionCall, current horn.Term) horn.Term {
	switch call.Kind {
	case ast.CallAssert:
		return e.encodeAssert(nodeID, call, current)
	case ast.CallInternal:
		return e.encodeInternalCall(call, current)
	case ast.CallHash, ast.CallBlockIntrinsic:
		// Pure/read-only builtins: they produce an opaque value but do
		// not affect storage, so no havoc is needed -- unlike
		// CallExternal/CallLowLevel/CallCreation below.
		for _, arg := range call.Arguments {
			e.ctx.Visit(arg)
		}
		return current
	default: // CallExternal, CallLowLevel, CallCreation
		return e.encodeUnknownCall(call, current)
	}
}

// encodeAssert implements spec.md ss4.5's assert: the failure edge
// bumps `error` to the assert's own node id and reaches the enclosing
// scope's summary predicate; the fall-through path restores `error`
// to its pre-assert value via errorTracker.restore, a single rewind
// rather than the original's bump-assert-bump-assert double name
// (SPEC_FULL.md ss9 REDESIGN FLAG 1).
func (e *Encoder) encodeAssert(nodeID ast.NodeID, call *ast.FunctionCall, current horn.Term) horn.Term {
	e.recordAssertion(e.currentScope, nodeID)

	fr := e.currentFrame
	cond := e.ctx.Visit(call.Arguments[0])
	// Side-effect constraints pending from earlier statements belong on
	// both outgoing edges, so they are taken once here and passed to each.
	pending := e.ctx.TakeConstraints()
	saved := e.contractError.index()

	failTerm := e.contractError.bump()
	if e.currentSummary != nil {
		failGuard := horn.And(pending, horn.Eq(failTerm, horn.IntLit(int64(nodeID))), horn.Not(cond))
		e.connect(current, e.currentSummary.Apply(e.currentSummaryArgs()...), failGuard)
	}

	e.contractError.restore(saved)
	okEdge := e.snapshot(current, horn.And(pending, cond), fr)
	after := e.setCurrentBlock("after_assert", fr)
	e.bindEdge(okEdge, after, fr)
	return after.term
}

// encodeInternalCall implements spec.md ss4.5's internal-call rule:
// record the caller/callee edge in the call graph, apply the callee's
// already-registered summary over SSA-linked arguments, bind the
// call's own return values, and split into a failure edge (error > 0
// reaches the caller's own summary) and a fall-through edge (error
// restored to its pre-call value, single-bump per REDESIGN FLAG 1).
//
// If the callee belongs to a library, the summary edge additionally
// requires the library's own interface predicate over its pre-call
// state (spec.md ss4.5's "assert the library's interface, enforces
// construction") -- the same guard encodeFunction installs on entry
// to a library's own body, applied here at the call site instead.
func (e *Encoder) encodeInternalCall(call *ast.FunctionCall, current horn.Term) horn.Term {
	callee := call.Target
	e.callGraph.addEdge(e.currentScope, callee.ID)

	args := make([]horn.Term, len(call.Arguments))
	for i, a := range call.Arguments {
		args[i] = e.ctx.Visit(a)
	}

	calleeState := stateVarsOf(callee.Contract)
	preState := currentValues(e.ctx, calleeState)
	for _, v := range calleeState {
		e.ctx.Tracker().Bump(v)
	}
	postState := currentValues(e.ctx, calleeState)

	returns := make([]horn.Term, len(callee.ReturnParameters))
	for i := range callee.ReturnParameters {
		idx := e.ctx.Tracker().Bump(callee.ReturnParameters[i])
		returns[i] = e.ctx.Tracker().ValueAt(callee.ReturnParameters[i], idx)
	}

	saved := e.contractError.index()
	calleeError := e.contractError.bump()

	summaryArgs := []horn.Term{calleeError}
	summaryArgs = append(summaryArgs, preState...)
	summaryArgs = append(summaryArgs, args...)
	summaryArgs = append(summaryArgs, postState...)
	summaryArgs = append(summaryArgs, returns...)

	summary := e.summaries[callee.ID]
	guard := summary.Apply(summaryArgs...)
	if callee.Contract.IsLibrary {
		guard = horn.And(guard, e.interfaces[callee.Contract.ID].Apply(preState...))
	}
	fr := e.currentFrame
	callEdge := e.snapshot(current, guard, fr)
	afterCall := e.setCurrentBlock("after_call", fr)
	e.bindEdge(callEdge, afterCall, fr)

	if e.currentSummary != nil {
		e.connect(afterCall.term, e.currentSummary.Apply(e.currentSummaryArgs()...), horn.Gt(calleeError, horn.IntLit(0)))
	}

	e.contractError.restore(saved)
	okGuard := horn.And(horn.IsZero(calleeError), horn.Eq(e.contractError.at(saved), calleeError))
	fallThrough := e.setCurrentBlock("after_call_ok", fr)
	e.bindEdge(afterCall.edge(okGuard), fallThrough, fr)
	return fallThrough.term
}

// encodeUnknownCall implements spec.md ss4.5's External/low-level/
// creation call: erase the solver's knowledge of every
// reference/mapping-typed variable currently in scope. Value-typed
// state is deliberately left un-havocked -- spec.md ss9's documented
// under-approximation, kept verbatim rather than redesigned
// (SPEC_FULL.md ss9).
func (e *Encoder) encodeUnknownCall(call *ast.FunctionCall, current horn.Term) horn.Term {
	for _, arg := range call.Arguments {
		e.ctx.Visit(arg)
	}
	fr := e.currentFrame
	referenceOrMapping := func(v *ast.VariableDeclaration) bool { return v.ReferenceOrMapping }
	e.ctx.Havoc(fr.stateVars, referenceOrMapping)
	e.ctx.Havoc(fr.params, referenceOrMapping)
	e.ctx.Havoc(fr.locals, referenceOrMapping)
	return current
}
