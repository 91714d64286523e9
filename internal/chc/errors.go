package chc

import "fmt"

// internalError marks an invariant violation of the encoder itself
// (spec.md ss7.1, class 1): visiting a function while already inside
// one, applying a predicate before it was registered, popping a path
// frame that was never pushed. These are encoder bugs, never
// user-reportable outcomes, so they panic rather than return an
// error -- the same posture the teacher's solAssert-derived checks
// take in _examples/Notation-gscanner/internal/gscanner/analyzer.go.
type internalError struct {
	msg string
}

func (e internalError) Error() string { return e.msg }

func fail(format string, args ...interface{}) {
	panic(internalError{msg: fmt.Sprintf(format, args...)})
}
