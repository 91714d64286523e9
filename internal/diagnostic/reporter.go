// Package diagnostic reports encoder warnings by source location,
// generalized from the teacher's fixed SWC-catalogue issue reporter
// (_examples/Notation-gscanner/internal/issuse/issue.go) into a
// free-form (location, message) sink, matching spec.md ss6's
// `warning(location, message)`.
package diagnostic

import (
	log "github.com/sirupsen/logrus"

	"solcheck/internal/ast"
)

// Reporter receives non-fatal warnings the encoder or driver want
// surfaced to the user without aborting the run -- soundness
// conflicts (spec.md ss7.2) and unsolvable queries fall in this
// category, distinct from the internalError panics of package chc's
// errors.go.
type Reporter interface {
	Warning(loc ast.SourceLocation, message string)
}

// LogReporter renders warnings through logrus, the way
// gscanner/analyzer.go logs phase progress.
type LogReporter struct{}

func NewLogReporter() *LogReporter { return &LogReporter{} }

func (r *LogReporter) Warning(loc ast.SourceLocation, message string) {
	log.WithFields(log.Fields{
		"file": loc.File,
		"line": loc.Line,
	}).Warn(message)
}
