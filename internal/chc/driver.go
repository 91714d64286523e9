package chc

import (
	"fmt"

	"solcheck/internal/ast"
	"solcheck/internal/horn"
)

// freshErrorBlock mints a fresh nullary predicate and a single rule
// deriving it from the target's reachable state guarded by `error ==
// assertID`, then queries it in isolation. This mirrors the
// original's createErrorBlock: re-declaring the error predicate
// before every single-assertion query keeps queries independent of
// one another (SPEC_FULL.md ss8), on top of the Push/Pop scoping
// YicesBackend.Query already does internally.
func (e *Encoder) freshErrorBlock(t verificationTarget, assertID ast.NodeID) (horn.Result, error) {
	check := e.newRelation(fmt.Sprintf("errcheck_%d", assertID))
	e.blockCounter++
	guard := horn.And(t.from, t.constraints, horn.Eq(t.errorTerm, horn.IntLit(int64(assertID))))
	if err := e.backend.AddRule(horn.Implies(guard, check.Apply()), fmt.Sprintf("errcheck_rule_%d", e.blockCounter)); err != nil {
		return horn.ERROR, err
	}
	result, _, err := e.backend.Query(check.Apply())
	return result, err
}

// runVerification implements spec.md ss4.7: every verification target
// walks the call graph to the transaction-level set of reachable
// assertions; those per-target sets are then inverted into, for each
// assertion, the full list of targets that can reach it. An assertion
// is safe only if EVERY one of those targets proves `error ==
// assertID` unreachable (UNSAT) -- one target's UNSAT does not by
// itself clear an assertion another transaction can still reach and
// fail from. SAT/UNKNOWN on any reaching target leaves it unclaimed;
// CONFLICTING/ERROR are reported as soundness or solver-invocation
// warnings rather than aborting the whole run.
func (e *Encoder) runVerification() error {
	reachingTargets := map[ast.NodeID][]verificationTarget{}
	for _, t := range e.targets {
		reachable := transactionAssertions(e.callGraph, e.functionAssertions, t.scope)
		for assertID := range reachable {
			reachingTargets[assertID] = append(reachingTargets[assertID], t)
		}
	}

	for assertID, targets := range reachingTargets {
		safe := true
		for _, t := range targets {
			result, err := e.freshErrorBlock(t, assertID)
			if err != nil {
				e.reporter.Warning(ast.SourceLocation{}, fmt.Sprintf("solver invocation failed for assertion %d: %v", assertID, err))
				safe = false
				continue
			}
			switch result {
			case horn.UNSAT:
				// this target cannot reach the failing state; keep
				// checking the assertion's other reaching targets.
			case horn.SAT, horn.UNKNOWN:
				// unclaimed: neither proved safe nor a confirmed
				// counterexample under this (approximate) encoding.
				safe = false
			case horn.CONFLICTING:
				e.reporter.Warning(ast.SourceLocation{}, fmt.Sprintf("conflicting result for assertion %d", assertID))
				safe = false
			case horn.ERROR:
				e.reporter.Warning(ast.SourceLocation{}, fmt.Sprintf("solver error for assertion %d", assertID))
				safe = false
			}
		}
		if safe {
			e.safe[assertID] = true
		}
	}
	return nil
}
