package chc

import (
	"solcheck/internal/ast"
	"solcheck/internal/horn"
)

// verificationTarget is spec.md ss3's record `(scope, from,
// constraints, errorId)`.
type verificationTarget struct {
	scope       ast.NodeID
	from        horn.Term
	constraints horn.Term
	errorTerm   horn.Term
}
