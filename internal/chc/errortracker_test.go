package chc

import (
	"testing"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/stretchr/testify/assert"
)

func TestErrorTrackerRestoreReusesTerm(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	tr := newErrorTracker(7)
	assert.Equal(t, 0, tr.index())
	zero := tr.current()

	one := tr.bump()
	assert.NotEqual(t, zero, one)
	assert.Equal(t, 1, tr.index())

	tr.restore(0)
	assert.Equal(t, 0, tr.index())
	assert.Equal(t, zero, tr.current(), "restore must reuse the original index-0 term, not mint a new one")
}

func TestErrorTrackerAtIsCached(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	tr := newErrorTracker(1)
	a := tr.at(3)
	b := tr.at(3)
	assert.Equal(t, a, b)
}
