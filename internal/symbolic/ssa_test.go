package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"

	"solcheck/internal/ast"
)

func TestValueAtIsStable(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	b := ast.NewBuilder()
	v := b.StateVar("s", ast.SortInt)

	tracker := NewSSATracker()
	first := tracker.ValueAt(v, 0)
	second := tracker.ValueAt(v, 0)
	assert.Equal(t, first, second)
}

func TestBumpAdvancesIndexAndTermIdentity(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	b := ast.NewBuilder()
	v := b.StateVar("s", ast.SortInt)

	tracker := NewSSATracker()
	before := tracker.CurrentValue(v)
	idx := tracker.Bump(v)
	assert.Equal(t, 1, idx)
	after := tracker.CurrentValue(v)
	assert.NotEqual(t, before, after)
}

func TestResetReturnsToIndexZeroTerm(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	b := ast.NewBuilder()
	v := b.StateVar("s", ast.SortInt)

	tracker := NewSSATracker()
	zero := tracker.CurrentValue(v)
	tracker.Bump(v)
	tracker.Bump(v)
	tracker.Reset(v)
	assert.Equal(t, 0, tracker.IndexOf(v))
	assert.Equal(t, zero, tracker.CurrentValue(v))
}
