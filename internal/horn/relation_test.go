package horn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

func TestApplyBeforeRegistrationPanics(t *testing.T) {
	rel := NewRelation("unregistered", SortInt)
	assert.Panics(t, func() {
		rel.Apply(IntLit(1))
	})
}

func TestApplyArityMismatchPanics(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	backend := NewYicesBackend()
	defer backend.Close()

	rel := NewRelation("p", SortInt, SortInt)
	assert.NoError(t, backend.RegisterRelation(rel))
	assert.Panics(t, func() {
		rel.Apply(IntLit(1))
	})
}

func TestNullaryRelation(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	backend := NewYicesBackend()
	defer backend.Close()

	errorRel := NewRelation("error")
	assert.NoError(t, backend.RegisterRelation(errorRel))
	assert.Equal(t, 0, errorRel.Arity())

	atom := errorRel.Apply()
	assert.Equal(t, SortBool, atom.Sort())
}
