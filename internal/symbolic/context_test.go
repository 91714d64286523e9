package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"

	"solcheck/internal/ast"
	"solcheck/internal/horn"
)

func TestVisitIdentifierReturnsCurrentValue(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	b := ast.NewBuilder()
	v := b.StateVar("s", ast.SortInt)
	ctx := NewContext()
	ctx.Declare(v)

	term := ctx.Visit(b.Ident(v))
	assert.Equal(t, ctx.Variable(v), term)
}

func TestVisitAssignmentBumpsAndRecordsConstraint(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	b := ast.NewBuilder()
	v := b.StateVar("s", ast.SortInt)
	ctx := NewContext()
	ctx.Declare(v)

	before := ctx.Tracker().IndexOf(v)
	assign := b.Assign(b.Ident(v), b.IntLit(7))
	ctx.Visit(assign)
	after := ctx.Tracker().IndexOf(v)
	assert.Equal(t, before+1, after)

	constraint := ctx.TakeConstraints()
	assert.NotEqual(t, horn.True(), constraint)
}

func TestPathConditionAccumulatesPushedFrames(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	ctx := NewContext()
	assert.Equal(t, horn.True(), ctx.PathCondition())

	ctx.PushFrame(horn.BoolLit(true))
	ctx.PushFrame(horn.BoolLit(false))
	cond := ctx.PathCondition()
	assert.NotEqual(t, horn.True(), cond)

	ctx.PopFrame()
	ctx.PopFrame()
	assert.Panics(t, func() { ctx.PopFrame() })
}

func TestHavocOnlyBumpsMatchingVariables(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	b := ast.NewBuilder()
	ref := b.StateVar("m", ast.SortArray(ast.SortInt, ast.SortInt))
	val := b.StateVar("n", ast.SortInt)
	ctx := NewContext()
	ctx.Declare(ref)
	ctx.Declare(val)

	ctx.Havoc([]*ast.VariableDeclaration{ref, val}, func(v *ast.VariableDeclaration) bool {
		return v.ReferenceOrMapping
	})

	assert.Equal(t, 1, ctx.Tracker().IndexOf(ref))
	assert.Equal(t, 0, ctx.Tracker().IndexOf(val))
}
