package horn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

func TestArithComparisons(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	backend := NewYicesBackend()
	defer backend.Close()

	x := Fresh(SortInt, "x")
	backend.AddRule(Gt(x, IntLit(0)), "x-positive")

	status, _, err := backend.Query(Leq(x, IntLit(0)))
	assert.NoError(t, err)
	assert.Equal(t, UNSAT, status)
}

func TestIteSharesBranchSort(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	ifTrue := IntLit(1)
	ifFalse := IntLit(2)
	term := Ite(True(), ifTrue, ifFalse)
	assert.Equal(t, SortInt, term.Sort())
}

func TestImpliesIsOrNot(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	backend := NewYicesBackend()
	defer backend.Close()

	a := Fresh(SortBool, "a")
	b := Fresh(SortBool, "b")
	backend.AddRule(a, "a-holds")
	backend.AddRule(Implies(a, b), "a-implies-b")

	status, _, err := backend.Query(Not(b))
	assert.NoError(t, err)
	assert.Equal(t, UNSAT, status)
}
