package horn

// FakeBackend is an in-memory Backend double: it records every
// registered relation and rule and answers Query from a canned
// script, the way _examples/Notation-gscanner's own tests build
// fixtures by hand rather than reaching for a mocking library. It
// exists so internal/chc's encoder tests can assert on exactly which
// rules were emitted without needing a real yices2 context.
type FakeBackend struct {
	Relations []*Relation
	Rules     []RecordedRule
	pushDepth int

	// Script, if non-nil, is consulted in order: the i-th Query call
	// returns Script[i]. Once exhausted, Query returns UNSAT.
	Script []Result
	queries int
}

type RecordedRule struct {
	Term Term
	Name string
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{}
}

func (f *FakeBackend) RegisterRelation(rel *Relation) error {
	rel.allocate()
	f.Relations = append(f.Relations, rel)
	return nil
}

func (f *FakeBackend) AddRule(rule Term, name string) error {
	f.Rules = append(f.Rules, RecordedRule{Term: rule, Name: name})
	return nil
}

func (f *FakeBackend) Query(q Term) (Result, Model, error) {
	defer func() { f.queries++ }()
	if f.queries < len(f.Script) {
		return f.Script[f.queries], nil, nil
	}
	return UNSAT, nil, nil
}

func (f *FakeBackend) Push() error { f.pushDepth++; return nil }
func (f *FakeBackend) Pop() error {
	if f.pushDepth == 0 {
		panic("horn: FakeBackend.Pop without matching Push")
	}
	f.pushDepth--
	return nil
}

func (f *FakeBackend) UnhandledQueries() []string { return nil }
func (f *FakeBackend) Close()                     {}

// RuleNamed returns the first recorded rule with the given name, for
// assertions like "was the assert-guard rule for node 12 emitted".
func (f *FakeBackend) RuleNamed(name string) (RecordedRule, bool) {
	for _, r := range f.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return RecordedRule{}, false
}
