package sema

import (
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/ast"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/ident"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
)

// identifierHintDistance is the edit-distance threshold for suggesting a
// misspelled identifier, wider than the parser's keyword-typo threshold
// (3) because spelling a variable or function name wrong can drift
// further before becoming implausible (§4.4).
const identifierHintDistance = 5

// BindVar resolves v.Name against the symbol table and fills in v.Bound
// (§4.4 "Binding"). It reports, in order of preference: a direct hit, a
// function-used-as-variable error, a unique spelling suggestion (bound
// silently, with a fix-it), or an unknown-identifier error.
func (a *Analyzer) BindVar(v *ast.VarExpr) bool {
	if info, ok := a.syms.LookupVariable(v.Name); ok {
		v.Bound = info
		return true
	}
	if a.syms.HasFunction(v.Name) {
		a.diags.Error(diag.KindErrFuncAsVar, v.Sp.Start, v.Sp.End).ArgString(v.Name).Finish()
		return false
	}
	if best, ok := ident.BestMatch(v.Name, a.syms.VariableNames(), identifierHintDistance); ok {
		a.diags.Error(diag.KindErrUnknownIdentifierWithHint, v.Sp.Start, v.Sp.End).
			ArgString(v.Name).ArgString(best).
			Replace(v.Sp.Start, v.Sp.End, best).Finish()
		info, _ := a.syms.LookupVariable(best)
		v.Bound = info
		v.Name = best
		return true
	}
	a.diags.Error(diag.KindErrUnknownIdentifier, v.Sp.Start, v.Sp.End).ArgString(v.Name).Finish()
	return false
}

// TryBindVariable looks up name without emitting any diagnostic, used by
// assignment to decide whether its LHS names an existing variable or
// introduces a new one (§4.4's "try-bind variant").
func (a *Analyzer) TryBindVariable(name string) (*symtab.VariableInfo, bool) {
	return a.syms.LookupVariable(name)
}
