package chc

import (
	"solcheck/internal/ast"
	"solcheck/internal/horn"
)

// encodeFunction implements spec.md ss4.5's "Function". A base
// constructor being inlined (encoder already inside another
// constructor) recurses into its body without a new entry predicate,
// continuing the running SSA/current-block state exactly where the
// previous constructor left off. Every other function -- including
// the first constructor in a chain -- gets its own entry predicate,
// an `error == 0` precondition, and params/locals bound fresh at
// SSA-0.
func (e *Encoder) encodeFunction(f *ast.FunctionDefinition) {
	for _, p := range f.Parameters {
		e.ctx.Declare(p)
	}
	for _, r := range f.ReturnParameters {
		e.ctx.Declare(r)
	}
	for _, l := range f.LocalVariables {
		e.ctx.Declare(l)
	}

	inlinedCtor := f.IsConstructor() && e.insideConstructorChain
	if inlinedCtor {
		e.currentFrame = &frame{
			stateVars:  e.currentFrame.stateVars,
			params:     f.Parameters,
			returns:    f.ReturnParameters,
			locals:     f.LocalVariables,
			initState:  e.currentFrame.initState,
			initParams: currentValues(e.ctx, f.Parameters),
		}
		e.current = e.encodeStatements(f.Body, e.current)
		return
	}

	// A constructor's frame always uses the contract currently being
	// verified (e.contract), not f.Contract -- for an inherited
	// constructor being chained in, f.Contract is the base contract
	// that declared it, but the frame must match the derived
	// contract's full state layout everything else in this chain uses.
	stateVars := stateVarsOf(f.Contract)
	if f.IsConstructor() {
		stateVars = stateVarsOf(e.contract)
	}
	if !f.IsConstructor() {
		// clearIndices(C, F): every non-inlined function starts its
		// own state view at SSA index 0, the entry snapshot shared by
		// every function of the contract (spec.md ss3 invariant 4).
		for _, v := range stateVars {
			e.ctx.Tracker().Reset(v)
		}
	}

	fr := &frame{
		stateVars:  stateVars,
		params:     f.Parameters,
		returns:    f.ReturnParameters,
		locals:     f.LocalVariables,
		initState:  currentValues(e.ctx, stateVars),
		initParams: currentValues(e.ctx, f.Parameters),
	}
	e.currentFrame = fr

	entry := e.newRelation(entryPrefix(f), fr.sorts()...)
	entryTerm := entry.Apply(fr.args(e.contractError.current(), e.ctx)...)

	// Non-constructor functions start from the interface predicate,
	// not bare genesis: their entry state is any state a prior
	// sequence of successful transactions could have left the
	// contract in, exactly what interface(state) proves reachable
	// (spec.md ss3, ss4.5). Constructors chain from whatever the
	// previous constructor (or the implicit-constructor block) left
	// current pointing at.
	from := e.interfaces[f.Contract.ID].Apply(currentValues(e.ctx, stateVars)...)
	if f.IsConstructor() {
		from = e.current
	}
	e.connect(from, entryTerm, horn.IsZero(e.contractError.current()))

	if !f.IsConstructor() {
		e.currentScope = f.ID
		summary := e.summaries[f.ID]
		e.currentSummary = summary
		e.currentSummaryArgs = func() []horn.Term { return predicateForCall(fr, e.contractError.current(), e.ctx) }
	}

	terminal := e.encodeStatements(f.Body, entryTerm)

	if f.IsConstructor() {
		e.current = terminal
		return
	}

	summary := e.summaries[f.ID]
	summaryArgs := predicateForCall(fr, e.contractError.current(), e.ctx)
	e.connect(terminal, summary.Apply(summaryArgs...), horn.True())

	if f.IsPublic() {
		e.targets = append(e.targets, verificationTarget{
			scope:       f.ID,
			from:        summary.Apply(summaryArgs...),
			constraints: horn.True(),
			errorTerm:   e.contractError.current(),
		})

		iface := e.interfaces[f.Contract.ID]
		e.connect(
			summary.Apply(summaryArgs...),
			iface.Apply(currentValues(e.ctx, stateVars)...),
			horn.IsZero(e.contractError.current()),
		)
	}
}

func entryPrefix(f *ast.FunctionDefinition) string {
	if f.IsConstructor() {
		return "ctor_entry_" + f.Contract.Name
	}
	return "entry_" + f.Contract.Name + "_" + f.Name
}
