// Package interp executes a parsed, analyzed statement list. It is a
// thin tree-walking layer over sema.Analyzer: every expression it needs
// evaluated, converted, or compared goes back through the analyzer, so
// a single set of semantic rules governs both static checking and
// runtime behavior (§4.5).
package interp

import (
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/ast"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/sema"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/token"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/types"
)

const plusOp = token.Plus

// Interp walks a program's statement list, executing each top-level
// statement independently: one statement's failure does not prevent the
// next from running (§7's per-statement recovery policy).
type Interp struct {
	syms  *symtab.Table
	diags *diag.Engine
	sema  *sema.Analyzer

	beforeStmt func()
	recordStmt func(kind string, start, end, diagDelta int)
}

func New(syms *symtab.Table, diags *diag.Engine) *Interp {
	return &Interp{syms: syms, diags: diags, sema: sema.New(syms, diags)}
}

// Analyzer exposes the underlying semantic analyzer, e.g. so a caller
// can pre-bind predefined names before running.
func (ip *Interp) Analyzer() *sema.Analyzer { return ip.sema }

// SetBeforeStmt installs a hook run before every statement (top-level
// or loop-body) executes — draw()'s polyline-reset wiring uses this to
// start a fresh "previous point" per statement (§4.6).
func (ip *Interp) SetBeforeStmt(f func()) { ip.beforeStmt = f }

// SetStmtRecorder installs a hook run after every statement executes,
// receiving its kind label, source range, and how many diagnostics it
// added — the basis for the run log's per-statement trace (§4.5/§4.9).
func (ip *Interp) SetStmtRecorder(f func(kind string, start, end, diagDelta int)) {
	ip.recordStmt = f
}

// Run executes every top-level statement in order.
func (ip *Interp) Run(stmts []ast.Stmt) {
	for _, s := range stmts {
		ip.execStmt(s)
	}
}

func (ip *Interp) execStmt(s ast.Stmt) {
	if ip.beforeStmt != nil {
		ip.beforeStmt()
	}
	before := ip.diags.ErrorCount() + ip.diags.WarningCount()

	var kind string
	switch n := s.(type) {
	case *ast.EmptyStmt:
		kind = "empty"
	case *ast.AssignStmt:
		kind = "assign"
		ip.execAssign(n)
	case *ast.ForStmt:
		kind = "for"
		ip.execFor(n)
	case *ast.ExprStmt:
		kind = "expr"
		ip.sema.Evaluate(n.X)
	}

	if ip.recordStmt != nil {
		after := ip.diags.ErrorCount() + ip.diags.WarningCount()
		sp := s.Span()
		ip.recordStmt(kind, sp.Start, sp.End, after-before)
	}
}

// execAssign implements §4.5's assignment rule: an unbound LHS
// introduces a new variable typed from its RHS; a bound LHS converts
// the RHS to its declared type (narrowing warns) and writes through
// VariableInfo.Set, which itself vetoes constants and value-filtered
// predefined variables.
func (ip *Interp) execAssign(as *ast.AssignStmt) {
	rhs, ok := ip.sema.Evaluate(as.Rhs)
	if !ok {
		return
	}

	if existing, found := ip.sema.TryBindVariable(as.Lhs.Name); found {
		as.Lhs.Bound = existing
		converted, cok := ip.sema.Convert(rhs.Value, existing.Type(), as.Rhs.Span())
		if !cok {
			ip.diags.Error(diag.KindErrIncompatibleAssign, as.Sp.Start, as.Sp.End).
				ArgString(rhs.Type().String()).ArgString(as.Lhs.Name).ArgString(existing.Type().String()).Finish()
			return
		}
		existing.Set(ip.diags, as.Sp, converted)
		return
	}

	if rhs.Type().Kind == types.Void {
		ip.diags.Error(diag.KindErrIncompatibleAssign, as.Sp.Start, as.Sp.End).
			ArgString("Void").ArgString(as.Lhs.Name).ArgString("Void").Finish()
		return
	}
	info := symtab.NewVariable(as.Lhs.Name, rhs.Type(), rhs.Value)
	ip.syms.DefineVariable(info)
	as.Lhs.Bound = info
}

// execFor implements §4.5's for loop: from defaults to the loop
// variable's current value (re-read on every execution of the
// statement, not cached once), to is required, step defaults to the
// Integer constant 1. The loop runs while the comparison of the loop
// variable against to is Less; any other ordering (including
// Incomparable) ends the loop, with Incomparable reported as an error.
func (ip *Interp) execFor(fs *ast.ForStmt) {
	if !ip.sema.BindVar(fs.Var) {
		return
	}

	var fromVal types.Value
	if fs.From != nil {
		tv, ok := ip.sema.Evaluate(fs.From)
		if !ok {
			return
		}
		fromVal = tv.Value
	} else {
		fromVal = fs.Var.Bound.Get()
	}
	start, ok := ip.sema.Convert(fromVal, fs.Var.Bound.Type(), fs.Var.Sp)
	if !ok {
		return
	}
	if !fs.Var.Bound.Set(ip.diags, fs.Var.Sp, start) {
		return
	}

	toTV, ok := ip.sema.Evaluate(fs.To)
	if !ok {
		return
	}

	var stepVal types.Value
	if fs.Step != nil {
		stv, ok := ip.sema.Evaluate(fs.Step)
		if !ok {
			return
		}
		stepVal = stv.Value
	} else {
		stepVal = types.NewInt(1)
	}

	for {
		cur := fs.Var.Bound.Get()
		ord := sema.Compare(cur, toTV.Value)
		if ord == sema.Incomparable {
			ip.diags.Error(diag.KindErrInvalidCompareType, fs.Sp.Start, fs.Sp.End).Finish()
			return
		}
		if ord != sema.Less {
			return
		}

		for _, bodyStmt := range fs.Body {
			ip.execStmt(bodyStmt)
		}

		next, ok := ip.sema.ApplyBinary(plusOp, types.NonConst(cur), types.NonConst(stepVal), fs.Var.Sp, fs.Sp, fs.Sp)
		if !ok {
			return
		}
		converted, ok := ip.sema.Convert(next.Value, fs.Var.Bound.Type(), fs.Sp)
		if !ok {
			return
		}
		if !fs.Var.Bound.Set(ip.diags, fs.Sp, converted) {
			return
		}
	}
}
