package chc

import (
	"solcheck/internal/ast"
	"solcheck/internal/horn"
	"solcheck/internal/symbolic"
)

// zeroTerm is the default value of a state variable at genesis
// (spec.md ss4.5 "initialise every state variable to its zero
// value"). Arrays/mappings have no zero-element theory available
// without quantifiers, so their "zero" is an unconstrained fresh
// constant -- a documented under-approximation, the same flavour as
// the value-typed-havoc simplification (see DESIGN.md).
func zeroTerm(sort ast.Sort) horn.Term {
	if sort == ast.SortBool {
		return horn.False()
	}
	if _, ok := ast.IsArray(sort); ok {
		return horn.Fresh(symbolic.HornSort(sort), "zero_array")
	}
	return horn.IntLit(0)
}

func (e *Encoder) enterContract(c *ast.ContractDefinition) {
	e.contract = c
	e.ctx = symbolic.NewContext()
	e.contractError = newErrorTracker(c.ID)
	e.loopDests = nil
	for _, v := range stateVarsOf(c) {
		e.ctx.Declare(v)
	}
}

// encodeContract implements spec.md ss4.5's "Contract": every
// non-constructor function is encoded independently, its entry block
// reached from the contract's interface predicate over state at SSA
// index 0 (see encodeFunction), not from genesis; the constructor
// chain is encoded afterwards to link genesis to the interface's
// legal initial states.
func (e *Encoder) encodeContract(c *ast.ContractDefinition) error {
	e.enterContract(c)
	for _, f := range c.DefinedFunctions() {
		if f.IsConstructor() {
			continue
		}
		e.encodeFunction(f)
	}
	e.exitContract(c)
	return nil
}

// contractFrame builds the frame shape shared by every block in the
// constructor chain. It has no params/returns/locals of its own (each
// individual constructor in the chain gets those from its own call to
// encodeFunction); initState is pinned to the same values as the
// frame's live state, since there is no earlier snapshot to diverge
// from -- unlike a function's frame, nothing has executed yet at the
// point contractFrame is captured.
func (e *Encoder) contractFrame() *frame {
	vars := stateVarsOf(e.contract)
	return &frame{stateVars: vars, initState: currentValues(e.ctx, vars)}
}

func (e *Encoder) exitContract(c *ast.ContractDefinition) {
	fr := e.contractFrame()

	// Give the constructor chain its own fresh state indices, rather
	// than accidentally continuing from whatever index the
	// last-encoded regular function's clearIndices/Reset left the
	// tracker pointing at -- the two are unrelated executions.
	for _, v := range fr.stateVars {
		e.ctx.Tracker().Bump(v)
	}

	var initConstraints []horn.Term
	for _, v := range fr.stateVars {
		initConstraints = append(initConstraints, horn.Eq(e.ctx.Variable(v), zeroTerm(v.Type)))
	}

	implicitCtor := e.newRelation("implicit_ctor_"+c.Name, fr.sorts()...)
	implicitArgs := fr.args(e.contractError.current(), e.ctx)
	e.connect(e.genesis.Apply(), implicitCtor.Apply(implicitArgs...), horn.And(initConstraints...))

	var chain []*ast.FunctionDefinition
	if c.Constructor != nil {
		chain = []*ast.FunctionDefinition{c.Constructor}
	} else {
		bases := c.LinearizedBaseContracts
		for i := len(bases) - 1; i >= 0; i-- {
			if bases[i].ID == c.ID {
				continue
			}
			if bases[i].Constructor != nil {
				chain = append(chain, bases[i].Constructor)
			}
		}
	}

	ctorSummary := e.newRelation("constructor_summary_"+c.Name, constructorSummarySorts(c)...)
	summaryArgsFn := func() []horn.Term {
		return append([]horn.Term{e.contractError.current()}, currentValues(e.ctx, fr.stateVars)...)
	}

	e.current = implicitCtor.Apply(implicitArgs...)
	e.currentFrame = fr
	e.currentScope = c.ID
	e.currentSummary = ctorSummary
	e.currentSummaryArgs = summaryArgsFn
	e.insideConstructorChain = false
	for i, ctor := range chain {
		e.insideConstructorChain = i > 0
		e.encodeFunction(ctor)
	}
	terminal := e.current

	summaryArgs := summaryArgsFn()
	e.connect(terminal, ctorSummary.Apply(summaryArgs...), horn.True())
	e.currentSummary, e.currentSummaryArgs = nil, nil

	e.targets = append(e.targets, verificationTarget{
		scope:       c.ID,
		from:        ctorSummary.Apply(summaryArgs...),
		constraints: horn.True(),
		errorTerm:   e.contractError.current(),
	})

	iface := e.interfaces[c.ID]
	e.connect(ctorSummary.Apply(summaryArgs...), iface.Apply(currentValues(e.ctx, fr.stateVars)...), horn.IsZero(e.contractError.current()))
}
