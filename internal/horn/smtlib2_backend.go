package horn

import (
	"fmt"
	"strings"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

// SMTLib2Backend renders relations and rules as Horn-clause text in
// the fixedpoint command style (`declare-rel`, `rule`, `query`, after
// a `(set-logic HORN)` header) instead of solving them itself. Every Query is appended verbatim to UnhandledQueries for an
// external, presumably Spacer-capable, solver to answer offline --
// this is exactly spec.md ss6's `unhandledQueries()` contract.
//
// Term rendering reuses yices2's own pretty-printer (TermToString)
// rather than hand-rolling an SMT-LIB2 emitter: yices2's printer
// defaults to its native syntax, so this backend asks it for the
// term's structure and does the S-expression wrapping itself. This
// keeps the backend honest about being a *text driver*, not a solver:
// it never calls CheckContext.
type SMTLib2Backend struct {
	relations map[string]*Relation
	decls     []string
	rules     []string
	queries   []string
}

func NewSMTLib2Backend() *SMTLib2Backend {
	return &SMTLib2Backend{relations: map[string]*Relation{}}
}

func (b *SMTLib2Backend) RegisterRelation(rel *Relation) error {
	if rel.registered {
		return fmt.Errorf("relation %q already registered", rel.Name)
	}
	rel.allocate()
	b.relations[rel.Name] = rel

	sorts := make([]string, rel.Arity())
	for i, s := range rel.ArgSorts {
		sorts[i] = s.String()
	}
	b.decls = append(b.decls, fmt.Sprintf("(declare-rel %s (%s))", rel.Name, strings.Join(sorts, " ")))
	return nil
}

func (b *SMTLib2Backend) AddRule(rule Term, name string) error {
	b.rules = append(b.rules, fmt.Sprintf("(rule %s) ; %s", yices2.TermToString(rule.raw, 1000000, 1, 0), name))
	return nil
}

// Query never solves anything: it renders the full accumulated
// program (declarations, rules, and the query itself) as one
// SMT-LIB2-flavoured block and records it. The classification
// returned is always UNKNOWN, matching spec.md ss7's "unhandled...
// sound but may yield UNKNOWN queries."
func (b *SMTLib2Backend) Query(q Term) (Result, Model, error) {
	var block strings.Builder
	block.WriteString("(set-logic HORN)\n")
	for _, d := range b.decls {
		block.WriteString(d)
		block.WriteByte('\n')
	}
	for _, r := range b.rules {
		block.WriteString(r)
		block.WriteByte('\n')
	}
	fmt.Fprintf(&block, "(query %s)\n", yices2.TermToString(q.raw, 1000000, 1, 0))
	b.queries = append(b.queries, block.String())
	return UNKNOWN, nil, nil
}

func (b *SMTLib2Backend) Push() error { return nil }
func (b *SMTLib2Backend) Pop() error  { return nil }

func (b *SMTLib2Backend) UnhandledQueries() []string {
	return append([]string(nil), b.queries...)
}

func (b *SMTLib2Backend) Close() {}
