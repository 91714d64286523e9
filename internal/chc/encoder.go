// Package chc is the core of the verifier: it walks a *ast.SourceUnit
// and emits a system of Horn clauses over internal/horn's Backend
// abstraction, then drives reachability queries to classify every
// user-written assertion as safe or unclaimed (spec.md ss4, ss6, ss7).
package chc

import (
	"fmt"

	"solcheck/internal/ast"
	"solcheck/internal/diagnostic"
	"solcheck/internal/horn"
	"solcheck/internal/symbolic"
)

// loopDestination is Design Notes ss9's "a stack, not two scalar
// fields": each entry names where `continue` and `break` jump to
// inside the loop currently being encoded. Both are blockEntry values
// (not bare relations) so a break/continue edge can bind the target's
// frozen fresh frame variables exactly like any other merge edge.
type loopDestination struct {
	continueTo blockEntry
	breakTo    blockEntry
}

// Encoder is the whole encoding pass, spec.md ss4's "global-ish
// encoder state... kept in one struct" (Design Notes ss9). It is used
// once per SourceUnit: construct with NewEncoder, call Analyze, then
// read SafeAssertions/UnhandledQueries.
type Encoder struct {
	backend  horn.Backend
	reporter diagnostic.Reporter

	blockCounter int
	genesis      *horn.Relation

	// predeclared per source unit, before any contract body is
	// encoded, so a call site can reference a not-yet-encoded callee's
	// summary (spec.md ss4.1 "predicates are declared before any rule
	// mentioning them is asserted").
	interfaces map[ast.NodeID]*horn.Relation
	summaries  map[ast.NodeID]*horn.Relation

	callGraph          *callGraph
	functionAssertions map[ast.NodeID]map[ast.NodeID]bool

	targets []verificationTarget
	safe    map[ast.NodeID]bool

	// per-contract scope, reset by enterContract.
	contract      *ast.ContractDefinition
	ctx           *symbolic.Context
	contractError *errorTracker

	// per-function scope: currentFrame is set by encodeFunction,
	// insideConstructorChain and the chain's starting current by
	// exitContract, loopDests pushed/popped by the loop encoders and
	// cleared by enterContract.
	currentFrame           *frame
	insideConstructorChain bool
	current                horn.Term
	loopDests              []loopDestination

	// currentSummary/currentSummaryArgs name the predicate an assert
	// failure or internal-call failure edge, or an early `return`,
	// jumps to (statements.go). For a normal function this is its own
	// function_summary; for every constructor in a chain (explicit or
	// inlined base) this is shared: the one contract-level
	// constructor_summary set up once by contract.go's exitContract.
	currentSummary     *horn.Relation
	currentSummaryArgs func() []horn.Term

	// currentScope is the ast.NodeID assertions and call-graph edges
	// are recorded against: a function's own id for a normal function,
	// the enclosing contract's id for every constructor (explicit or
	// inlined base) contributing to that contract's constructor chain.
	currentScope ast.NodeID
}

// blockArgs builds fr's live argument tuple against the contract's
// current error term and expression context -- the shared plumbing
// every block-creating statement (if/while/for) in statements.go uses.
func (e *Encoder) blockArgs(fr *frame) []horn.Term {
	return fr.args(e.contractError.current(), e.ctx)
}

func NewEncoder(backend horn.Backend, reporter diagnostic.Reporter) *Encoder {
	e := &Encoder{
		backend:            backend,
		reporter:           reporter,
		interfaces:         map[ast.NodeID]*horn.Relation{},
		summaries:          map[ast.NodeID]*horn.Relation{},
		callGraph:          newCallGraph(),
		functionAssertions: map[ast.NodeID]map[ast.NodeID]bool{},
		safe:               map[ast.NodeID]bool{},
	}
	e.genesis = e.newRelation("genesis")
	return e
}

// newRelation mints a globally-unique predicate name using
// blockCounter (original CHC::m_blockCounter, SPEC_FULL.md ss8) and
// registers it with the backend immediately.
func (e *Encoder) newRelation(prefix string, sorts ...horn.Sort) *horn.Relation {
	e.blockCounter++
	rel := horn.NewRelation(fmt.Sprintf("%s_%d", prefix, e.blockCounter), sorts...)
	if err := e.backend.RegisterRelation(rel); err != nil {
		fail("register relation %s: %v", rel.Name, err)
	}
	return rel
}

// connect emits the rule `from ∧ Γ ∧ constraint => to`, Γ being the
// symbolic context's accumulated path condition (spec.md ss4.4).
func (e *Encoder) connect(from, to, constraint horn.Term) {
	e.blockCounter++
	// TakeConstraints drains every SSA side-effect constraint recorded
	// by symbolic.Context.Visit since the block edge into `from` was
	// last closed -- exactly the "fold into the guard of the edge
	// leaving the statement just visited" contract Context.Visit
	// documents.
	guard := horn.And(from, e.ctx.PathCondition(), e.ctx.TakeConstraints(), constraint)
	if err := e.backend.AddRule(horn.Implies(guard, to), fmt.Sprintf("rule_%d", e.blockCounter)); err != nil {
		fail("add rule: %v", err)
	}
}

func (e *Encoder) recordAssertion(scope, assertID ast.NodeID) {
	set, ok := e.functionAssertions[scope]
	if !ok {
		set = map[ast.NodeID]bool{}
		e.functionAssertions[scope] = set
	}
	set[assertID] = true
}

// Analyze encodes every contract of unit and then runs the
// verification driver (spec.md ss4.7).
func (e *Encoder) Analyze(unit *ast.SourceUnit) error {
	for _, c := range unit.Contracts {
		e.predeclareContract(c)
	}
	for _, c := range unit.Contracts {
		e.encodeContract(c)
	}
	return e.runVerification()
}

// SafeAssertions returns the set of assert-statement node ids proved
// unreachable in every transaction that can call them.
func (e *Encoder) SafeAssertions() map[ast.NodeID]bool {
	out := make(map[ast.NodeID]bool, len(e.safe))
	for k := range e.safe {
		out[k] = true
	}
	return out
}

// UnhandledQueries forwards to the backend (nil for YicesBackend,
// rendered SMT-LIB2 blocks for SMTLib2Backend -- spec.md ss6).
func (e *Encoder) UnhandledQueries() []string {
	return e.backend.UnhandledQueries()
}
