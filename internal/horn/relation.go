package horn

import (
	"fmt"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

// Relation is a symbolic predicate: a named, uninterpreted relation
// over a fixed tuple of sorted arguments (spec.md ss3 "Symbolic
// predicate"). It is modelled as an uninterpreted function into bool
// -- yices2 has no native predicate/relation sort, so `P(args)` is
// represented as the atom `P_fn(args) = true`, the same trick
// _examples/Notation-gscanner/internal/smt/function.go uses to
// represent an uninterpreted EVM function as a bitvector-valued
// function term.
type Relation struct {
	Name     string
	ArgSorts []Sort

	raw        yices2.TermT
	registered bool
}

// NewRelation allocates a relation handle without registering it with
// any backend yet; Backend.RegisterRelation must be called before
// Apply.
func NewRelation(name string, argSorts ...Sort) *Relation {
	return &Relation{Name: name, ArgSorts: argSorts, raw: yices2.NullTerm}
}

func (r *Relation) Arity() int { return len(r.ArgSorts) }

// allocate builds r's underlying yices2 term: every Backend
// implementation shares this, since term representation (yices2) is
// orthogonal to how a backend answers Query -- YicesBackend feeds the
// term straight to CheckContext, SMTLib2Backend pretty-prints it,
// FakeBackend ignores it and only records the call.
func (r *Relation) allocate() {
	if r.Arity() == 0 {
		r.raw = yices2.NewUninterpretedTerm(yices2.BoolType())
	} else {
		dom := make([]yices2.TypeT, r.Arity())
		for i, s := range r.ArgSorts {
			dom[i] = s.yicesType()
		}
		r.raw = yices2.NewUninterpretedTerm(yices2.FunctionType(dom, yices2.BoolType()))
	}
	yices2.SetTermName(r.raw, r.Name)
	r.registered = true
}

// Apply builds the atom `r(args...)`. Panics if len(args) does not
// match r.ArgSorts, or if r has not yet been registered -- both are
// encoder bugs (spec.md ss7.1's "invariant violation of the encoder
// itself"), never user-reportable conditions.
func (r *Relation) Apply(args ...Term) Term {
	if !r.registered {
		panic(fmt.Sprintf("horn: relation %q applied before registration", r.Name))
	}
	if len(args) != len(r.ArgSorts) {
		panic(fmt.Sprintf("horn: relation %q arity mismatch: want %d args, got %d", r.Name, len(r.ArgSorts), len(args)))
	}
	if len(args) == 0 {
		return Term{raw: r.raw, sort: SortBool}
	}
	raws := make([]yices2.TermT, len(args))
	for i, a := range args {
		raws[i] = a.raw
	}
	applied := yices2.Application(r.raw, raws)
	return Term{raw: yices2.Eq(applied, yices2.True()), sort: SortBool}
}
