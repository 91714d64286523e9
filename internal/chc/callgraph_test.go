package chc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"solcheck/internal/ast"
)

func TestTransactionAssertionsWalksCallGraph(t *testing.T) {
	g := newCallGraph()
	g.addEdge(1, 2)
	g.addEdge(2, 3)

	assertions := map[ast.NodeID]map[ast.NodeID]bool{
		1: {100: true},
		2: {200: true},
		3: {300: true},
	}

	got := transactionAssertions(g, assertions, 1)
	assert.True(t, got[100])
	assert.True(t, got[200])
	assert.True(t, got[300])
	assert.Len(t, got, 3)
}

func TestTransactionAssertionsIgnoresUnreachable(t *testing.T) {
	g := newCallGraph()
	g.addEdge(1, 2)

	assertions := map[ast.NodeID]map[ast.NodeID]bool{
		1: {100: true},
		2: {200: true},
		3: {300: true}, // unreachable from 1
	}

	got := transactionAssertions(g, assertions, 1)
	assert.True(t, got[100])
	assert.True(t, got[200])
	assert.False(t, got[300])
}

func TestTransactionAssertionsHandlesCycles(t *testing.T) {
	g := newCallGraph()
	g.addEdge(1, 2)
	g.addEdge(2, 1)

	assertions := map[ast.NodeID]map[ast.NodeID]bool{
		1: {100: true},
		2: {200: true},
	}

	got := transactionAssertions(g, assertions, 1)
	assert.Len(t, got, 2)
}
