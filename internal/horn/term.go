package horn

import (
	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

// Term is a solver term paired with its sort, the way
// _examples/Notation-gscanner/internal/smt wraps a yices2.TermT inside
// Bool/BitVec: callers never touch a raw yices2.TermT directly.
type Term struct {
	raw  yices2.TermT
	sort Sort
}

func (t Term) Sort() Sort   { return t.sort }
func (t Term) IsNull() bool { return t.raw == yices2.NullTerm }

// True and False are the boolean constants.
func True() Term  { return Term{raw: yices2.True(), sort: SortBool} }
func False() Term { return Term{raw: yices2.False(), sort: SortBool} }

// IntLit builds a constant integer term.
func IntLit(v int64) Term {
	return Term{raw: yices2.Int64(v), sort: SortInt}
}

// BoolLit builds a constant boolean term.
func BoolLit(v bool) Term {
	if v {
		return True()
	}
	return False()
}

// Fresh returns a new uninterpreted (unconstrained) term of the given
// sort, optionally named for readability in model output and SMT-LIB2
// dumps. Used for SSA names and for the returns of an unmodelled call.
func Fresh(sort Sort, name string) Term {
	raw := yices2.NewUninterpretedTerm(sort.yicesType())
	if name != "" {
		yices2.SetTermName(raw, name)
	}
	return Term{raw: raw, sort: sort}
}

func Not(a Term) Term { return Term{raw: yices2.Not(a.raw), sort: SortBool} }

func And(terms ...Term) Term {
	switch len(terms) {
	case 0:
		return True()
	case 1:
		return terms[0]
	}
	raws := make([]yices2.TermT, len(terms))
	for i, t := range terms {
		raws[i] = t.raw
	}
	return Term{raw: yices2.And(raws), sort: SortBool}
}

func Or(terms ...Term) Term {
	switch len(terms) {
	case 0:
		return False()
	case 1:
		return terms[0]
	}
	raws := make([]yices2.TermT, len(terms))
	for i, t := range terms {
		raws[i] = t.raw
	}
	return Term{raw: yices2.Or(raws), sort: SortBool}
}

// Implies builds `a => b`, expressed as `not a or b` since yices2's
// term API exposes no direct implication constructor -- the same
// combinator the original solidity encoder falls back to when its own
// solver interface lacks one.
func Implies(a, b Term) Term {
	return Or(Not(a), b)
}

func Eq(a, b Term) Term {
	return Term{raw: yices2.Eq(a.raw, b.raw), sort: SortBool}
}

func Neq(a, b Term) Term {
	return Term{raw: yices2.Neq(a.raw, b.raw), sort: SortBool}
}

// Ite is a theory-level if-then-else; branches must share a sort.
func Ite(cond, ifTrue, ifFalse Term) Term {
	return Term{raw: yices2.Ite(cond.raw, ifTrue.raw, ifFalse.raw), sort: ifTrue.sort}
}

func Add(a, b Term) Term { return Term{raw: yices2.Add(a.raw, b.raw), sort: SortInt} }
func Sub(a, b Term) Term { return Term{raw: yices2.Sub(a.raw, b.raw), sort: SortInt} }
func Mul(a, b Term) Term { return Term{raw: yices2.Mul(a.raw, b.raw), sort: SortInt} }
func Neg(a Term) Term    { return Term{raw: yices2.Neg(a.raw), sort: SortInt} }

// Lt, Leq, Gt, Geq build integer-theory comparisons, expressed through
// the arithmetic-atom builders yices2 exposes (ArithGtAtom, ArithEq0Atom)
// the same way _examples/Notation-gscanner/internal/ethereum's exponent
// and keccak function managers build overflow/zero checks over
// bitvectors, one theory up (plain integers instead of machine words).
func Gt(a, b Term) Term {
	return Term{raw: yices2.ArithGtAtom(a.raw, b.raw), sort: SortBool}
}

func Lt(a, b Term) Term { return Gt(b, a) }

func Geq(a, b Term) Term {
	return Or(Gt(a, b), Eq(a, b))
}

func Leq(a, b Term) Term {
	return Or(Lt(a, b), Eq(a, b))
}

func IsZero(a Term) Term {
	return Term{raw: yices2.ArithEq0Atom(a.raw), sort: SortBool}
}

// ArraySelect reads arr[key], where arr is modelled as an
// uninterpreted function (see SortArray).
func ArraySelect(arr, key Term) Term {
	as, _ := arr.sort.(arraySort)
	return Term{raw: yices2.Application1(arr.raw, key.raw), sort: as.value}
}

// ArrayStore returns a new array term equal to arr except that key now
// maps to value -- yices2's Update1 builds a fresh function term, the
// pattern _examples/Notation-gscanner/internal/smt/array.go's Set
// mutates its receiver with, here kept purely functional to match SSA
// (each store gets its own fresh array-sorted SSA term).
func ArrayStore(arr, key, value Term) Term {
	return Term{raw: yices2.Update1(arr.raw, key.raw, value.raw), sort: arr.sort}
}
