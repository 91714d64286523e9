package ast

// Builder assigns fresh, unique NodeIDs while assembling an AST by
// hand, the way _examples/Notation-gscanner's tests build fixture
// state without driving a real compiler. Used by internal/chc's own
// tests; FromSolc keeps the solc node ids instead.
type Builder struct {
	next NodeID
}

func NewBuilder() *Builder {
	return &Builder{next: 1}
}

func (b *Builder) id() NodeID {
	id := b.next
	b.next++
	return id
}

func (b *Builder) Var(name string, sort Sort) *VariableDeclaration {
	return &VariableDeclaration{
		ID:                 b.id(),
		Name:               name,
		Type:               sort,
		ReferenceOrMapping: isReferenceOrMapping(sort),
	}
}

func (b *Builder) StateVar(name string, sort Sort) *VariableDeclaration {
	v := b.Var(name, sort)
	v.StateVariable = true
	return v
}

func isReferenceOrMapping(s Sort) bool {
	_, ok := IsArray(s)
	return ok
}

func (b *Builder) Ident(v *VariableDeclaration) *Identifier {
	return &Identifier{exprBase: exprBase{ID: b.id(), Sort: v.Type}, Declaration: v}
}

func (b *Builder) BoolLit(value bool) *Literal {
	return &Literal{exprBase: exprBase{ID: b.id(), Sort: SortBool}, BoolValue: value}
}

func (b *Builder) IntLit(value int64) *Literal {
	return &Literal{exprBase: exprBase{ID: b.id(), Sort: SortInt}, IntValue: value}
}

func (b *Builder) Binary(op BinaryOperator, left, right Expression) *BinaryExpr {
	sort := Sort(SortBool)
	switch op {
	case OpAdd, OpSub, OpMul:
		sort = SortInt
	}
	return &BinaryExpr{exprBase: exprBase{ID: b.id(), Sort: sort}, Op: op, Left: left, Right: right}
}

func (b *Builder) Unary(op UnaryOperator, operand Expression) *UnaryExpr {
	return &UnaryExpr{exprBase: exprBase{ID: b.id(), Sort: operand.SortOf()}, Op: op, Operand: operand}
}

func (b *Builder) Assign(target *Identifier, value Expression) *Assignment {
	return &Assignment{exprBase: exprBase{ID: b.id(), Sort: target.SortOf()}, Target: target, Value: value}
}

func (b *Builder) IndexGet(base Expression, key Expression) *IndexAccess {
	arr, _ := IsArray(base.SortOf())
	return &IndexAccess{exprBase: exprBase{ID: b.id(), Sort: arr.Value}, Base: base, Key: key}
}

func (b *Builder) IndexSet(target *Identifier, key, value Expression) *IndexAssignment {
	return &IndexAssignment{exprBase: exprBase{ID: b.id(), Sort: target.SortOf()}, Target: target, Key: key, Value: value}
}

func (b *Builder) Assert(cond Expression) *FunctionCall {
	return &FunctionCall{exprBase: exprBase{ID: b.id(), Sort: SortBool}, Kind: CallAssert, Arguments: []Expression{cond}}
}

func (b *Builder) InternalCall(target *FunctionDefinition, args ...Expression) *FunctionCall {
	return &FunctionCall{exprBase: exprBase{ID: b.id(), Sort: SortBool}, Kind: CallInternal, Target: target, Arguments: args}
}

func (b *Builder) ExternalCall(args ...Expression) *FunctionCall {
	return &FunctionCall{exprBase: exprBase{ID: b.id(), Sort: SortBool}, Kind: CallExternal, Arguments: args}
}

func (b *Builder) ExprStmt(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{stmtBase: stmtBase{ID: b.id()}, Expr: expr}
}

func (b *Builder) VarDeclStmt(v *VariableDeclaration, init Expression) *VariableDeclarationStatement {
	return &VariableDeclarationStatement{
		stmtBase:     stmtBase{ID: b.id()},
		Declarations: []*VariableDeclaration{v},
		InitialValue: []Expression{init},
	}
}

func (b *Builder) Block(stmts ...Statement) *Block {
	return &Block{stmtBase: stmtBase{ID: b.id()}, Statements: stmts}
}

func (b *Builder) If(cond Expression, trueBody *Block, falseBody *Block) *IfStatement {
	return &IfStatement{stmtBase: stmtBase{ID: b.id()}, Condition: cond, TrueBody: trueBody, FalseBody: falseBody}
}

func (b *Builder) While(cond Expression, body *Block) *WhileStatement {
	return &WhileStatement{stmtBase: stmtBase{ID: b.id()}, Condition: cond, Body: body}
}

func (b *Builder) DoWhile(cond Expression, body *Block) *WhileStatement {
	return &WhileStatement{stmtBase: stmtBase{ID: b.id()}, Condition: cond, Body: body, IsDoWhile: true}
}

func (b *Builder) For(init Statement, cond Expression, post Statement, body *Block) *ForStatement {
	return &ForStatement{stmtBase: stmtBase{ID: b.id()}, Init: init, Condition: cond, Post: post, Body: body}
}

func (b *Builder) BreakStmt() *Break       { return &Break{stmtBase{ID: b.id()}} }
func (b *Builder) ContinueStmt() *Continue { return &Continue{stmtBase{ID: b.id()}} }

func (b *Builder) ReturnStmt(value Expression) *Return {
	return &Return{stmtBase: stmtBase{ID: b.id()}, Value: value}
}

func (b *Builder) Function(name string, kind FunctionKind, visibility Visibility, params, returns, locals []*VariableDeclaration, body ...Statement) *FunctionDefinition {
	return &FunctionDefinition{
		ID:               b.id(),
		Name:             name,
		Kind:             kind,
		Visibility:       visibility,
		Parameters:       params,
		ReturnParameters: returns,
		LocalVariables:   locals,
		Body:             body,
		Implemented:      true,
	}
}

// Contract wires functions to the contract and builds its (trivial,
// single-contract) linearisation. Use ContractWithBases for inheritance.
func (b *Builder) Contract(name string, stateVars []*VariableDeclaration, functions []*FunctionDefinition, constructor *FunctionDefinition) *ContractDefinition {
	return b.ContractWithBases(name, nil, stateVars, functions, constructor)
}

// ContractWithBases builds a contract whose linearisation is itself
// followed by bases, most-derived-first, matching solc's convention.
func (b *Builder) ContractWithBases(name string, bases []*ContractDefinition, stateVars []*VariableDeclaration, functions []*FunctionDefinition, constructor *FunctionDefinition) *ContractDefinition {
	c := &ContractDefinition{
		ID:             b.id(),
		Name:           name,
		StateVariables: stateVars,
		Functions:      functions,
		Constructor:    constructor,
	}
	c.LinearizedBaseContracts = append([]*ContractDefinition{c}, bases...)
	for _, f := range functions {
		f.Contract = c
	}
	if constructor != nil {
		constructor.Contract = c
	}
	return c
}

func (b *Builder) SourceUnit(contracts ...*ContractDefinition) *SourceUnit {
	return &SourceUnit{Contracts: contracts}
}
