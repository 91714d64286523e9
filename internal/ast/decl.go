package ast

// VariableDeclaration is a state variable, function parameter, return
// parameter, or local variable. ReferenceOrMapping mirrors solidity's
// own hasReferenceOrMappingType(): it marks variables eraseKnowledge
// havocs on an unknown call (spec.md ss 4.5, "External/... call").
type VariableDeclaration struct {
	ID                 NodeID
	Name               string
	Type               Sort
	StateVariable      bool
	ReferenceOrMapping bool
}

// FunctionKind classifies a function the way the encoder needs to
// dispatch on: constructors get special inlining/chaining treatment,
// fallback/receive are treated as ordinary functions otherwise.
type FunctionKind int

const (
	Constructor FunctionKind = iota
	Function
	Fallback
	Receive
)

// Visibility controls whether a function gets an interface-level
// verification target (only Public and External functions do).
type Visibility int

const (
	Public Visibility = iota
	External
	Internal
	Private
)

// FunctionDefinition is a resolved, typed function or constructor.
// Contract is set once the function has been attached to a
// ContractDefinition (SourceUnit construction wires this up).
type FunctionDefinition struct {
	ID               NodeID
	Name             string
	Kind             FunctionKind
	Visibility       Visibility
	Contract         *ContractDefinition
	Parameters       []*VariableDeclaration
	ReturnParameters []*VariableDeclaration
	LocalVariables   []*VariableDeclaration
	Body             []Statement
	Implemented      bool
}

func (f *FunctionDefinition) IsConstructor() bool { return f.Kind == Constructor }
func (f *FunctionDefinition) IsPublic() bool {
	return f.Visibility == Public || f.Visibility == External
}

// ContractDefinition is a resolved contract or library. Base contracts
// are listed most-derived-first in LinearizedBaseContracts, matching
// solidity's own C3-linearisation convention (index 0 is the contract
// itself); the encoder walks it in reverse for constructor inlining.
type ContractDefinition struct {
	ID                      NodeID
	Name                    string
	IsLibrary               bool
	LinearizedBaseContracts []*ContractDefinition
	StateVariables          []*VariableDeclaration
	Functions               []*FunctionDefinition
	Constructor             *FunctionDefinition
}

// StateVariablesIncludingInheritedAndPrivate walks the linearisation
// base-most to most-derived is not required here: solc lists the
// linearisation most-derived-first, and CHC.cpp iterates it in that
// order when collecting state variables, so we do too.
func (c *ContractDefinition) StateVariablesIncludingInheritedAndPrivate() []*VariableDeclaration {
	var vars []*VariableDeclaration
	for _, base := range c.LinearizedBaseContracts {
		vars = append(vars, base.StateVariables...)
	}
	return vars
}

// DefinedFunctions returns every function declared directly on c
// (not inherited), matching solidity's ContractDefinition::definedFunctions.
func (c *ContractDefinition) DefinedFunctions() []*FunctionDefinition {
	return c.Functions
}

// SourceUnit is the root of one compiled input: every contract
// (including all bases pulled in transitively) that the encoder must
// visit.
type SourceUnit struct {
	Contracts []*ContractDefinition
}
