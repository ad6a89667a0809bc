package sema

import (
	"math"
	"strconv"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/ast"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/span"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/types"
)

// Evaluate recursively evaluates an expression, binding any unbound
// Var/Call node it encounters along the way (§4.4/§4.5 evaluate on
// demand). It returns ok=false once any sub-expression has already
// reported a diagnostic and failed; the caller must not use the zero
// TypedValue result in that case.
func (a *Analyzer) Evaluate(e ast.Expr) (types.TypedValue, bool) {
	switch n := e.(type) {
	case *ast.NumExpr:
		return a.evalNum(n)
	case *ast.StrExpr:
		return types.Const(types.NewString(n.Value)), true
	case *ast.VarExpr:
		return a.evalVar(n)
	case *ast.TupleExpr:
		return a.evalTuple(n)
	case *ast.CallExpr:
		return a.evalCall(n)
	case *ast.BinaryExpr:
		return a.evalBinary(n)
	case *ast.UnaryExpr:
		return a.evalUnary(n)
	case *ast.ErrorExpr:
		return types.TypedValue{}, false
	default:
		return types.TypedValue{}, false
	}
}

func (a *Analyzer) evalNum(n *ast.NumExpr) (types.TypedValue, bool) {
	if !n.HadDot {
		if iv, err := strconv.ParseInt(n.Text, 10, 64); err == nil && iv >= math.MinInt32 && iv <= math.MaxInt32 {
			return types.Const(types.NewInt(int32(iv))), true
		}
	}
	f, err := strconv.ParseFloat(n.Text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		// The parser already reported err_constant_too_large for an
		// out-of-range literal; fall back to 0 rather than propagating a
		// non-finite literal value.
		f = 0
	}
	return types.Const(types.NewDouble(f)), true
}

func (a *Analyzer) evalVar(n *ast.VarExpr) (types.TypedValue, bool) {
	if n.Bound == nil {
		if !a.BindVar(n) {
			return types.TypedValue{}, false
		}
	}
	return types.NonConst(n.Bound.Get()), true
}

func (a *Analyzer) evalTuple(n *ast.TupleExpr) (types.TypedValue, bool) {
	vals := make([]types.TypedValue, 0, len(n.Elems))
	ok := true
	for _, el := range n.Elems {
		tv, good := a.Evaluate(el)
		if !good {
			ok = false
			continue
		}
		vals = append(vals, tv)
	}
	if !ok || len(vals) == 0 {
		return types.TypedValue{}, false
	}

	common := vals[0].Type()
	for _, v := range vals[1:] {
		ct, okc := CommonType(common, v.Type())
		if !okc {
			a.diags.Error(diag.KindErrConflictTupleElemType, n.Sp.Start, n.Sp.End).Finish()
			return types.TypedValue{}, false
		}
		common = ct
	}

	elems := make([]types.Value, len(vals))
	constAll := true
	for i, v := range vals {
		cv, convOk := convertExact(v.Value, common)
		if !convOk {
			a.diags.Error(diag.KindErrConflictTupleElemType, n.Sp.Start, n.Sp.End).Finish()
			return types.TypedValue{}, false
		}
		elems[i] = cv
		if !v.Constant {
			constAll = false
		}
	}
	return types.TypedValue{Value: types.NewTuple(common, elems), Constant: constAll}, true
}

func (a *Analyzer) evalBinary(n *ast.BinaryExpr) (types.TypedValue, bool) {
	lhs, lok := a.Evaluate(n.Lhs)
	rhs, rok := a.Evaluate(n.Rhs)
	if !lok || !rok {
		return types.TypedValue{}, false
	}
	return a.applyBinary(n.Op, lhs, rhs, n.Lhs.Span(), n.Rhs.Span(), n.Sp)
}

func (a *Analyzer) evalUnary(n *ast.UnaryExpr) (types.TypedValue, bool) {
	operand, ok := a.Evaluate(n.Operand)
	if !ok {
		return types.TypedValue{}, false
	}
	t := operand.Type()
	switch {
	case isNumericType(t):
		return types.TypedValue{Value: unaryScalar(n.Op, operand.Value), Constant: operand.Constant}, true
	case t.Kind == types.Tuple && isNumericBase(t):
		return types.TypedValue{Value: unaryTuple(n.Op, operand.Value), Constant: operand.Constant}, true
	default:
		a.diags.Error(diag.KindErrInvalidOperandType, n.Sp.Start, n.Sp.End).ArgString(opSymbol(n.Op)).Finish()
		return types.TypedValue{}, false
	}
}

func (a *Analyzer) evalCall(n *ast.CallExpr) (types.TypedValue, bool) {
	argTVs := make([]types.TypedValue, len(n.Args))
	argSpans := make([]span.Span, len(n.Args))
	ok := true
	for i, arg := range n.Args {
		tv, good := a.Evaluate(arg)
		if !good {
			ok = false
			continue
		}
		argTVs[i] = tv
		argSpans[i] = arg.Span()
	}
	if !ok {
		return types.TypedValue{}, false
	}

	argTypes := make([]types.Type, len(argTVs))
	for i, tv := range argTVs {
		argTypes[i] = tv.Type()
	}
	fn, good := a.ResolveOverload(n.Name, argTypes, n.Sp)
	if !good {
		return types.TypedValue{}, false
	}
	n.Bound = fn

	converted := make([]types.Value, len(argTVs))
	for i, tv := range argTVs {
		cv, cok := a.Convert(tv.Value, fn.ParamTypes[i], argSpans[i])
		if !cok {
			return types.TypedValue{}, false
		}
		converted[i] = cv
	}

	ctx := &symtab.CallContext{Engine: a.diags, CallSpan: n.Sp, ArgSpans: argSpans}
	result, invokeOk := fn.Invoke(ctx, converted)
	if !invokeOk {
		return types.TypedValue{}, false
	}
	return types.NonConst(result), true
}
