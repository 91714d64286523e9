package chc

import "solcheck/internal/ast"

// predeclareContract registers c's interface predicate and every
// directly-declared function's summary predicate before any contract
// body is encoded (spec.md ss4.1), so a call site reached before its
// callee's own contract is visited can still apply the callee's
// summary relation.
func (e *Encoder) predeclareContract(c *ast.ContractDefinition) {
	if _, ok := e.interfaces[c.ID]; ok {
		return
	}
	e.interfaces[c.ID] = e.newRelation("interface_"+c.Name, interfaceSorts(c)...)
	for _, f := range c.DefinedFunctions() {
		if f.IsConstructor() {
			continue
		}
		e.summaries[f.ID] = e.newRelation("summary_"+c.Name+"_"+f.Name, functionSummarySorts(f)...)
	}
}
