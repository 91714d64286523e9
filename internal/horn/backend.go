package horn

// Result classifies the outcome of a reachability Query, matching
// spec.md ss6's closed set exactly.
type Result int

const (
	UNSAT Result = iota
	SAT
	UNKNOWN
	CONFLICTING
	ERROR
)

func (r Result) String() string {
	switch r {
	case UNSAT:
		return "UNSAT"
	case SAT:
		return "SAT"
	case UNKNOWN:
		return "UNKNOWN"
	case CONFLICTING:
		return "CONFLICTING"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Model is the minimal read-out the driver needs from a satisfying
// assignment -- diagnostics only, never consumed to build further
// rules (spec.md's Non-goals exclude counterexample traces, so this
// stays deliberately thin).
type Model interface {
	IntValue(t Term) (int64, bool)
	BoolValue(t Term) (bool, bool)
}

// Backend is the fixed interface the encoder in package chc is
// written against (spec.md ss6 "Horn backend"). Two implementations
// exist: YicesBackend (direct) and SMTLib2Backend (text driver).
type Backend interface {
	// RegisterRelation declares rel with the backend. Must be called
	// before rel.Apply or any rule mentioning rel.
	RegisterRelation(rel *Relation) error

	// AddRule records a Horn implication (already built with
	// Implies/And/Relation.Apply by the caller). name is used only for
	// diagnostics (SMT-LIB2 rule naming, solver-frame bookkeeping).
	AddRule(rule Term, name string) error

	// Query checks satisfiability of q conjoined with every rule
	// registered so far and returns the classification plus, when
	// satisfiable, a model.
	Query(q Term) (Result, Model, error)

	// Push/Pop scope rule accumulation the way
	// symbolic.Context.PushFrame/PopFrame scope path conditions --
	// spec.md ss5's "serialised handle... every push matched by a pop."
	Push() error
	Pop() error

	// UnhandledQueries returns, for backends that cannot answer
	// queries themselves (SMTLib2Backend), the list of rendered
	// SMT-LIB2 query blocks left for offline solving (spec.md ss6
	// "unhandledQueries()"). YicesBackend always returns nil.
	UnhandledQueries() []string

	// Close releases backend resources (the yices2 context, or the
	// open output writer).
	Close()
}
