package chc

import (
	"solcheck/internal/ast"
	"solcheck/internal/horn"
)

// blockEntry is a block predicate minted by setCurrentBlock: its own
// frame variables are frozen at the fresh SSA generation the mint
// bumped to, so every predecessor edge can bind them independently
// instead of all sharing whatever the encoder happens to have current
// at connect time.
type blockEntry struct {
	term  horn.Term
	fresh map[*ast.VariableDeclaration]horn.Term
}

// edge builds this block's contribution as an edge source: guard plus
// its own frozen values, for a later block reached FROM here (e.g.
// header.edge(cond) feeding the loop body, or header.edge(Not(cond))
// feeding the loop's exit).
func (b blockEntry) edge(guard horn.Term) edgeInto {
	return edgeInto{from: b.term, guard: guard, values: b.fresh}
}

// edgeInto is one predecessor's contribution to a not-yet-connected
// block: the predecessor's own term, any extra guard beyond the
// accumulated path condition, and the live value each of fr's
// variables carries along this specific edge. values is captured
// eagerly -- ctx's SSA tracker keeps moving forward as later blocks
// are minted, so a lazy read at connect time would see the wrong
// generation.
type edgeInto struct {
	from   horn.Term
	guard  horn.Term
	values map[*ast.VariableDeclaration]horn.Term
}

// frameVars is every variable clearIndices resets: state, params,
// returns and locals -- everything a block predicate's tuple carries
// besides the fixed initState/initParams and the error index (the
// error index has its own bump/restore discipline in errortracker.go
// and does not need a fresh generation per block).
func frameVars(fr *frame) []*ast.VariableDeclaration {
	vars := make([]*ast.VariableDeclaration, 0, len(fr.stateVars)+len(fr.params)+len(fr.returns)+len(fr.locals))
	vars = append(vars, fr.stateVars...)
	vars = append(vars, fr.params...)
	vars = append(vars, fr.returns...)
	vars = append(vars, fr.locals...)
	return vars
}

// setCurrentBlock mints a new block predicate over fr, first bumping
// every variable clearIndices would reset to a fresh SSA index
// (CHC.cpp:596-609's clearIndices, invoked from CHC.cpp:617-631's
// setCurrentBlock on every single block entry). The predicate's own
// tuple is therefore always a brand-new generation nothing has
// touched yet, so it can be handed to several predecessor edges (a
// join, a loop header re-entered by its own back-edge) and each one
// independently pins those same fresh variables to its own live
// values via bindEdge -- the phi-function a Horn-clause merge needs
// (spec.md ss4.2 "bumps indices... on entering a block", ss3
// invariant 4).
func (e *Encoder) setCurrentBlock(prefix string, fr *frame) blockEntry {
	vars := frameVars(fr)
	for _, v := range vars {
		e.ctx.Tracker().Bump(v)
	}
	fresh := make(map[*ast.VariableDeclaration]horn.Term, len(vars))
	for _, v := range vars {
		fresh[v] = e.ctx.Variable(v)
	}
	rel := e.newRelation(prefix, fr.sorts()...)
	return blockEntry{term: rel.Apply(e.blockArgs(fr)...), fresh: fresh}
}

// snapshot captures fr's live SSA values right now, pairing them with
// from/guard into an edgeInto. Call this immediately once `from`'s
// state is final -- a statement sequence's terminal, or the value the
// encoder was handed on entry -- before any further setCurrentBlock
// call moves the tracker on to a different generation.
func (e *Encoder) snapshot(from horn.Term, guard horn.Term, fr *frame) edgeInto {
	vars := frameVars(fr)
	values := make(map[*ast.VariableDeclaration]horn.Term, len(vars))
	for _, v := range vars {
		values[v] = e.ctx.Variable(v)
	}
	return edgeInto{from: from, guard: guard, values: values}
}

// bindEdge connects ed into dst, equating every one of dst's fresh
// frame variables to the value ed carries along its own edge -- this
// is what makes a merge sound: two different edges into the same dst
// each assert their own equalities against dst's one shared fresh
// generation, rather than one edge's term being silently reused (and
// its values silently assumed) for every other edge too.
func (e *Encoder) bindEdge(ed edgeInto, dst blockEntry, fr *frame) {
	eqs := make([]horn.Term, 0, len(fr.stateVars)+len(fr.params)+len(fr.returns)+len(fr.locals)+1)
	eqs = append(eqs, ed.guard)
	for _, v := range frameVars(fr) {
		eqs = append(eqs, horn.Eq(dst.fresh[v], ed.values[v]))
	}
	e.connect(ed.from, dst.term, horn.And(eqs...))
}
