package chc

import (
	"solcheck/internal/ast"
	"solcheck/internal/horn"
)

// encodeStatements threads `current` through a statement sequence,
// each statement either leaving it unchanged (plain expressions,
// declarations -- their SSA side effects are folded into the next
// connect's guard via symbolic.Context.TakeConstraints) or replacing
// it with a fresh block predicate (branches, loops, calls).
func (e *Encoder) encodeStatements(stmts []ast.Statement, current horn.Term) horn.Term {
	for _, s := range stmts {
		current = e.encodeStatement(s, current)
	}
	return current
}

func (e *Encoder) encodeStatement(s ast.Statement, current horn.Term) horn.Term {
	switch st := s.(type) {
	case *ast.Block:
		return e.encodeStatements(st.Statements, current)
	case *ast.ExpressionStatement:
		return e.encodeExpressionStatement(st, current)
	case *ast.VariableDeclarationStatement:
		return e.encodeVarDeclStatement(st, current)
	case *ast.IfStatement:
		return e.encodeIf(st, current)
	case *ast.WhileStatement:
		return e.encodeWhile(st, current)
	case *ast.ForStatement:
		return e.encodeFor(st, current)
	case *ast.Break:
		return e.encodeBreak(st, current)
	case *ast.Continue:
		return e.encodeContinue(st, current)
	case *ast.Return:
		return e.encodeReturn(st, current)
	default:
		fail("unhandled statement kind %T", s)
		return current
	}
}

func (e *Encoder) encodeExpressionStatement(st *ast.ExpressionStatement, current horn.Term) horn.Term {
	if call, ok := st.Expr.(*ast.FunctionCall); ok {
		return e.encodeCall(st.NodeID(), call, current)
	}
	e.ctx.Visit(st.Expr)
	return current
}

func (e *Encoder) encodeVarDeclStatement(st *ast.VariableDeclarationStatement, current horn.Term) horn.Term {
	for i, decl := range st.Declarations {
		e.ctx.Declare(decl)
		if i < len(st.InitialValue) && st.InitialValue[i] != nil {
			value := e.ctx.Visit(st.InitialValue[i])
			e.ctx.Emit(horn.Eq(e.ctx.Variable(decl), value))
		} else {
			e.ctx.Emit(horn.Eq(e.ctx.Variable(decl), zeroTerm(decl.Type)))
		}
	}
	return current
}

// encodeIf implements spec.md ss4.5's If: header/true/false/after
// blocks, each minted via setCurrentBlock so it owns its own fresh SSA
// generation (CHC.cpp's clearIndices-on-every-block discipline), with
// every edge into a block binding that block's frozen values to the
// edge's own live values independently. The branch condition is
// pushed as a path-condition frame while its body is encoded so nested
// assertions see it.
//
// The no-else path is the case this matters most for: `after` is a
// block in its own right, and the untaken-branch edge explicitly
// equates `after`'s fresh variables to `header`'s fresh variables (the
// values as of entering the if, unmodified) -- not to whatever the
// true branch happened to leave lying around.
func (e *Encoder) encodeIf(st *ast.IfStatement, current horn.Term) horn.Term {
	fr := e.currentFrame

	entryEdge := e.snapshot(current, horn.True(), fr)
	header := e.setCurrentBlock("if_header", fr)
	e.bindEdge(entryEdge, header, fr)

	cond := e.ctx.Visit(st.Condition)

	trueEntry := e.setCurrentBlock("if_true", fr)
	e.bindEdge(header.edge(cond), trueEntry, fr)
	e.ctx.PushFrame(cond)
	trueTerminal := e.encodeStatements(st.TrueBody.Statements, trueEntry.term)
	e.ctx.PopFrame()
	trueExit := e.snapshot(trueTerminal, horn.True(), fr)

	var falseExit edgeInto
	hasFalse := st.FalseBody != nil
	if hasFalse {
		falseEntry := e.setCurrentBlock("if_false", fr)
		e.bindEdge(header.edge(horn.Not(cond)), falseEntry, fr)
		e.ctx.PushFrame(horn.Not(cond))
		falseTerminal := e.encodeStatements(st.FalseBody.Statements, falseEntry.term)
		e.ctx.PopFrame()
		falseExit = e.snapshot(falseTerminal, horn.True(), fr)
	}

	after := e.setCurrentBlock("if_after", fr)
	e.bindEdge(trueExit, after, fr)
	if hasFalse {
		e.bindEdge(falseExit, after, fr)
	} else {
		e.bindEdge(header.edge(horn.Not(cond)), after, fr)
	}
	return after.term
}

// encodeWhile implements spec.md ss4.5's While/do-while: a do-while
// runs the body once unconditionally, landing on the same header a
// plain while enters directly, then joins the ordinary
// header/body/after loop shape. The header is minted once and reached
// by two edges over its lifetime -- the loop's entry edge(s) and the
// body's own back-edge -- each binding header's frozen fresh variables
// to its own live values, so the back-edge actually threads the body's
// mutations into what the header (and therefore the loop-exit test)
// sees on the next iteration.
func (e *Encoder) encodeWhile(st *ast.WhileStatement, current horn.Term) horn.Term {
	fr := e.currentFrame

	var header blockEntry
	if st.IsDoWhile {
		entryEdge := e.snapshot(current, horn.True(), fr)
		bodyEntry := e.setCurrentBlock("dowhile_body", fr)
		e.bindEdge(entryEdge, bodyEntry, fr)
		bodyTerminal := e.encodeStatements(st.Body.Statements, bodyEntry.term)
		firstEdge := e.snapshot(bodyTerminal, horn.True(), fr)
		header = e.setCurrentBlock("while_header", fr)
		e.bindEdge(firstEdge, header, fr)
	} else {
		entryEdge := e.snapshot(current, horn.True(), fr)
		header = e.setCurrentBlock("while_header", fr)
		e.bindEdge(entryEdge, header, fr)
	}

	cond := e.ctx.Visit(st.Condition)
	after := e.setCurrentBlock("while_after", fr)

	e.loopDests = append(e.loopDests, loopDestination{continueTo: header, breakTo: after})
	defer e.popLoopDest()

	bodyEntry := e.setCurrentBlock("while_body", fr)
	e.bindEdge(header.edge(cond), bodyEntry, fr)
	e.ctx.PushFrame(cond)
	bodyTerminal := e.encodeStatements(st.Body.Statements, bodyEntry.term)
	e.ctx.PopFrame()
	e.bindEdge(e.snapshot(bodyTerminal, horn.True(), fr), header, fr)

	e.bindEdge(header.edge(horn.Not(cond)), after, fr)
	return after.term
}

// encodeFor implements spec.md ss4.5's For: init runs once before the
// header, continue jumps to the post block (so the increment still
// runs before the condition is rechecked), break jumps to after. Like
// encodeWhile, header is a single blockEntry bound by two independent
// edges -- the loop's entry and the post block's fall-through -- so
// the increment genuinely reaches the next condition check and
// loop-exit test instead of being lost.
func (e *Encoder) encodeFor(st *ast.ForStatement, current horn.Term) horn.Term {
	fr := e.currentFrame
	if st.Init != nil {
		current = e.encodeStatement(st.Init, current)
	}

	entryEdge := e.snapshot(current, horn.True(), fr)
	header := e.setCurrentBlock("for_header", fr)
	e.bindEdge(entryEdge, header, fr)

	cond := horn.True()
	if st.Condition != nil {
		cond = e.ctx.Visit(st.Condition)
	}

	after := e.setCurrentBlock("for_after", fr)
	post := e.setCurrentBlock("for_post", fr)

	e.loopDests = append(e.loopDests, loopDestination{continueTo: post, breakTo: after})
	defer e.popLoopDest()

	bodyEntry := e.setCurrentBlock("for_body", fr)
	e.bindEdge(header.edge(cond), bodyEntry, fr)
	e.ctx.PushFrame(cond)
	bodyTerminal := e.encodeStatements(st.Body.Statements, bodyEntry.term)
	e.ctx.PopFrame()
	e.bindEdge(e.snapshot(bodyTerminal, horn.True(), fr), post, fr)

	if st.Post != nil {
		postTerminal := e.encodeStatement(st.Post, post.term)
		e.bindEdge(e.snapshot(postTerminal, horn.True(), fr), header, fr)
	} else {
		e.bindEdge(post.edge(horn.True()), header, fr)
	}

	e.bindEdge(header.edge(horn.Not(cond)), after, fr)
	return after.term
}

func (e *Encoder) popLoopDest() {
	e.loopDests = e.loopDests[:len(e.loopDests)-1]
}

// ghostBlock stands in for the (unreachable) continuation after a
// break, continue, or return -- the encoder still needs a term to
// hand back to encodeStatements, but nothing ever connects into it.
// It is minted through setCurrentBlock like any other block, matching
// clearIndices' every-block-entry discipline even for dead code, but
// receives no bindEdge, which is what actually leaves it unreachable
// in the solver.
func (e *Encoder) ghostBlock(prefix string) horn.Term {
	return e.setCurrentBlock(prefix, e.currentFrame).term
}

func (e *Encoder) encodeBreak(st *ast.Break, current horn.Term) horn.Term {
	if len(e.loopDests) == 0 {
		fail("break outside of a loop")
	}
	top := e.loopDests[len(e.loopDests)-1]
	fr := e.currentFrame
	e.bindEdge(e.snapshot(current, horn.True(), fr), top.breakTo, fr)
	return e.ghostBlock("unreachable_after_break")
}

func (e *Encoder) encodeContinue(st *ast.Continue, current horn.Term) horn.Term {
	if len(e.loopDests) == 0 {
		fail("continue outside of a loop")
	}
	top := e.loopDests[len(e.loopDests)-1]
	fr := e.currentFrame
	e.bindEdge(e.snapshot(current, horn.True(), fr), top.continueTo, fr)
	return e.ghostBlock("unreachable_after_continue")
}

// encodeReturn binds the return value (if any) to the function's
// first return parameter and jumps straight to the current summary
// predicate -- an early return skips the rest of the body exactly
// like break/continue skip the rest of a loop. This also covers
// early return inside a constructor: exitContract installs the
// shared constructor_summary as currentSummary for the whole chain
// (explicit constructor plus every inlined base constructor), so an
// early return partway through any of them still lands on the one
// predicate the rest of the chain and callers see.
func (e *Encoder) encodeReturn(st *ast.Return, current horn.Term) horn.Term {
	if st.Value != nil && len(e.currentFrame.returns) > 0 {
		value := e.ctx.Visit(st.Value)
		target := e.currentFrame.returns[0]
		idx := e.ctx.Tracker().Bump(target)
		newTerm := e.ctx.Tracker().ValueAt(target, idx)
		e.ctx.Emit(horn.Eq(newTerm, value))
	}
	if e.currentSummary == nil {
		return current
	}
	e.connect(current, e.currentSummary.Apply(e.currentSummaryArgs()...), horn.True())
	return e.ghostBlock("unreachable_after_return")
}
