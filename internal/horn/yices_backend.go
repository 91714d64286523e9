package horn

import (
	"fmt"

	"github.com/pkg/errors"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

// YicesBackend registers relations and rules directly against a yices2
// context, the way _examples/Notation-gscanner/internal/smt/solver.go's
// Solver wraps InitContext/AssertFormulas/CheckContext.
//
// yices2 has no native Datalog/PDR engine (unlike Z3's Spacer, which
// the original solidity encoder targets through Z3CHCInterface): a
// rule `body => head` is asserted directly as a quantifier-free
// formula rather than unfolded to a least fixed point. Every rule's
// head is a relation atom, and nothing constrains those atoms to be
// false, so interpreting every relation as constantly true satisfies
// all rules at once: a Query over a relation atom (such as the error
// predicates package chc checks) therefore never returns UNSAT, and
// this backend proves no assertion safe. UNSAT is returned only for
// queries whose atoms are constrained directly by the asserted
// formulas (e.g. plain arithmetic facts). This limitation is
// documented, not hidden: callers that need real CHC solving should
// use SMTLib2Backend against an external Spacer-capable solver.
type YicesBackend struct {
	ctx      yices2.ContextT
	relations map[string]*Relation
	closed   bool
}

// NewYicesBackend initialises a fresh yices2 context. Callers must
// call yices2.Init() once at process start (cmd/main.go's main does
// this) and Close the backend when done.
func NewYicesBackend() *YicesBackend {
	b := &YicesBackend{relations: map[string]*Relation{}}
	yices2.InitContext(yices2.ConfigT{}, &b.ctx)
	return b
}

func (b *YicesBackend) RegisterRelation(rel *Relation) error {
	if rel.registered {
		return errors.Errorf("relation %q already registered", rel.Name)
	}
	rel.allocate()
	b.relations[rel.Name] = rel
	return nil
}

func (b *YicesBackend) AddRule(rule Term, name string) error {
	if b.closed {
		return errors.New("horn: backend closed")
	}
	if errcode := yices2.AssertFormula(b.ctx, rule.raw); errcode < 0 {
		return errors.Errorf("horn: assert rule %s: %s", name, yices2.ErrorString())
	}
	return nil
}

func (b *YicesBackend) Query(q Term) (Result, Model, error) {
	if b.closed {
		return ERROR, nil, errors.New("horn: backend closed")
	}
	status, model, err := checkWithAssumption(b.ctx, q.raw)
	if err != nil {
		return ERROR, nil, err
	}
	switch status {
	case yices2.StatusUnsat:
		return UNSAT, nil, nil
	case yices2.StatusSat:
		return SAT, &yicesModel{model: model}, nil
	case yices2.StatusIdle, yices2.StatusSearching, yices2.StatusInterrupted:
		return UNKNOWN, nil, nil
	case yices2.StatusError:
		return ERROR, nil, fmt.Errorf("%s", yices2.ErrorString())
	default:
		return UNKNOWN, nil, nil
	}
}

// checkWithAssumption checks q against ctx's accumulated rules inside
// a scoped push/pop so the query term itself never pollutes rule
// accumulation across calls -- Encoder.freshErrorBlock relies on every
// query being independent (spec.md's "error predicates are re-created
// before each assertion query so queries are independent").
func checkWithAssumption(ctx yices2.ContextT, q yices2.TermT) (yices2.SmtStatusT, *yices2.ModelT, error) {
	if errcode := yices2.Push(ctx); errcode < 0 {
		return yices2.StatusError, nil, fmt.Errorf("push: %s", yices2.ErrorString())
	}
	defer yices2.Pop(ctx)
	if errcode := yices2.AssertFormula(ctx, q); errcode < 0 {
		return yices2.StatusError, nil, fmt.Errorf("assert query: %s", yices2.ErrorString())
	}
	status := yices2.CheckContext(ctx, yices2.ParamT{})
	if status == yices2.StatusSat {
		return status, yices2.GetModel(ctx, 1), nil
	}
	return status, nil, nil
}

func (b *YicesBackend) Push() error {
	if errcode := yices2.Push(b.ctx); errcode < 0 {
		return errors.Errorf("horn: push: %s", yices2.ErrorString())
	}
	return nil
}

func (b *YicesBackend) Pop() error {
	if errcode := yices2.Pop(b.ctx); errcode < 0 {
		return errors.Errorf("horn: pop: %s", yices2.ErrorString())
	}
	return nil
}

func (b *YicesBackend) UnhandledQueries() []string { return nil }

func (b *YicesBackend) Close() {
	if b.closed {
		return
	}
	b.closed = true
}

type yicesModel struct {
	model *yices2.ModelT
}

func (m *yicesModel) IntValue(t Term) (int64, bool) {
	var v int64
	if errcode := yices2.GetInt64Value(*m.model, t.raw, &v); errcode != 0 {
		return 0, false
	}
	return v, true
}

func (m *yicesModel) BoolValue(t Term) (bool, bool) {
	var v int32
	if errcode := yices2.GetBoolValue(*m.model, t.raw, &v); errcode != 0 {
		return false, false
	}
	return v != 0, true
}
