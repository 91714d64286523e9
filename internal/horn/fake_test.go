package horn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

func TestFakeBackendRecordsRulesAndFollowsScript(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	fake := NewFakeBackend()
	rel := NewRelation("block1", SortInt)
	assert.NoError(t, fake.RegisterRelation(rel))

	rule := rel.Apply(IntLit(0))
	assert.NoError(t, fake.AddRule(rule, "seed"))

	fake.Script = []Result{SAT, UNSAT}

	status, _, err := fake.Query(True())
	assert.NoError(t, err)
	assert.Equal(t, SAT, status)

	status, _, err = fake.Query(True())
	assert.NoError(t, err)
	assert.Equal(t, UNSAT, status)

	recorded, ok := fake.RuleNamed("seed")
	assert.True(t, ok)
	assert.Equal(t, rule, recorded.Term)
}

func TestFakeBackendPushPopBalance(t *testing.T) {
	fake := NewFakeBackend()
	assert.NoError(t, fake.Push())
	assert.NoError(t, fake.Pop())
	assert.Panics(t, func() { fake.Pop() })
}
