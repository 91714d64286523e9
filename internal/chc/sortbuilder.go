package chc

import (
	"solcheck/internal/ast"
	"solcheck/internal/horn"
	"solcheck/internal/symbolic"
)

// sortsOf lowers a variable list into its horn sort vector, in
// declaration order -- the sort builder of spec.md ss4.3.
func sortsOf(vars []*ast.VariableDeclaration) []horn.Sort {
	sorts := make([]horn.Sort, len(vars))
	for i, v := range vars {
		sorts[i] = symbolic.HornSort(v.Type)
	}
	return sorts
}

// stateSorts computes C's state-variable sort vector using the
// linearised base-contract list, respecting library status the way
// spec.md ss4.3 requires ("Library status is respected"): a library
// has no inherited state of its own contributed by callers, so its
// vector is simply its own declared state variables.
func stateSorts(c *ast.ContractDefinition) []horn.Sort {
	return sortsOf(stateVarsOf(c))
}

// stateVarsOf is stateSorts' variable-list counterpart, used wherever
// the encoder needs the declarations themselves rather than just
// their sorts (SSA declaration, zero-initialisation, frame building).
func stateVarsOf(c *ast.ContractDefinition) []*ast.VariableDeclaration {
	if c.IsLibrary {
		return c.StateVariables
	}
	return c.StateVariablesIncludingInheritedAndPrivate()
}

func interfaceSorts(c *ast.ContractDefinition) []horn.Sort {
	return stateSorts(c)
}

// constructorSummarySorts is (errorId, stateVars(C)) -- spec.md ss3.
func constructorSummarySorts(c *ast.ContractDefinition) []horn.Sort {
	sorts := []horn.Sort{horn.SortInt}
	return append(sorts, stateSorts(c)...)
}

// functionSummarySorts is (errorId, preState(C), inParams(F),
// postState(C), outParams(F)) -- spec.md ss3. For library functions,
// pre/postState use F's own declaring contract's state rather than
// any calling contract's, since summaries in this encoder are scoped
// to a function's declaring contract (a simplification:
// inherited-but-not-overridden functions are summarised
// once against their own declaring contract, not once per derived
// contract that might call them through a wider state frame).
func functionSummarySorts(f *ast.FunctionDefinition) []horn.Sort {
	state := stateSorts(f.Contract)
	sorts := []horn.Sort{horn.SortInt}
	sorts = append(sorts, state...)
	sorts = append(sorts, sortsOf(f.Parameters)...)
	sorts = append(sorts, state...)
	sorts = append(sorts, sortsOf(f.ReturnParameters)...)
	return sorts
}
