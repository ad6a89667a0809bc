package sema

import (
	"math"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/span"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/token"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/types"
)

// ApplyBinary exposes applyBinary for callers outside the package (the
// interpreter's for-loop step, which advances the loop variable using
// the same rules as the '+' operator, per §4.5).
func (a *Analyzer) ApplyBinary(op token.Kind, lhs, rhs types.TypedValue, lhsSp, rhsSp, fullSp span.Span) (types.TypedValue, bool) {
	return a.applyBinary(op, lhs, rhs, lhsSp, rhsSp, fullSp)
}

func opSymbol(op token.Kind) string {
	switch op {
	case token.Plus:
		return "+"
	case token.Minus:
		return "-"
	case token.Star:
		return "*"
	case token.Slash:
		return "/"
	case token.StarStar:
		return "**"
	default:
		return op.String()
	}
}

// applyBinary dispatches a binary operator over two already-evaluated
// operands per §4.4's operand-shape table.
func (a *Analyzer) applyBinary(op token.Kind, lhs, rhs types.TypedValue, lhsSp, rhsSp, fullSp span.Span) (types.TypedValue, bool) {
	lt, rt := lhs.Type(), rhs.Type()

	switch op {
	case token.Plus:
		switch {
		case lt.Kind == types.String && rt.Kind == types.String:
			return types.TypedValue{Value: types.NewString(lhs.Value.Str() + rhs.Value.Str()), Constant: lhs.Constant && rhs.Constant}, true
		case lt.Kind == types.String && isNumericType(rt):
			return types.TypedValue{Value: types.NewString(lhs.Value.Str() + rhs.Value.String()), Constant: lhs.Constant && rhs.Constant}, true
		case rt.Kind == types.String && isNumericType(lt):
			return types.TypedValue{Value: types.NewString(lhs.Value.String() + rhs.Value.Str()), Constant: lhs.Constant && rhs.Constant}, true
		case lt.Kind == types.Tuple && rt.Kind == types.Tuple:
			return a.tupleConcat(lhs, rhs, fullSp)
		case lt.Kind == types.Tuple && isNumericType(rt):
			return a.tupleScalar(op, lhs, rhs, lhsSp, rhsSp, fullSp)
		case rt.Kind == types.Tuple && isNumericType(lt):
			return a.tupleScalar(op, rhs, lhs, rhsSp, lhsSp, fullSp)
		case isNumericType(lt) && isNumericType(rt):
			return a.numericOp(op, lhs, rhs, fullSp)
		}

	case token.Minus:
		switch {
		case isNumericType(lt) && isNumericType(rt):
			return a.numericOp(op, lhs, rhs, fullSp)
		case lt.Kind == types.Tuple && isNumericType(rt):
			return a.tupleScalar(op, lhs, rhs, lhsSp, rhsSp, fullSp)
		}

	case token.Star:
		switch {
		case isNumericType(lt) && isNumericType(rt):
			return a.numericOp(op, lhs, rhs, fullSp)
		case lt.Kind == types.String && rt.Kind == types.Integer:
			return a.stringRepeat(lhs.Value.Str(), rhs.Value.Int(), lhs.Constant, rhs.Constant, fullSp)
		case rt.Kind == types.String && lt.Kind == types.Integer:
			return a.stringRepeat(rhs.Value.Str(), lhs.Value.Int(), lhs.Constant, rhs.Constant, fullSp)
		case lt.Kind == types.Tuple && isNumericType(rt):
			return a.tupleScalar(op, lhs, rhs, lhsSp, rhsSp, fullSp)
		case rt.Kind == types.Tuple && isNumericType(lt):
			return a.tupleScalar(op, rhs, lhs, rhsSp, lhsSp, fullSp)
		}

	case token.Slash:
		switch {
		case isNumericType(lt) && isNumericType(rt):
			return a.numericOp(op, lhs, rhs, fullSp)
		case lt.Kind == types.Tuple && isNumericType(rt):
			return a.tupleScalar(op, lhs, rhs, lhsSp, rhsSp, fullSp)
		}

	case token.StarStar:
		switch {
		case isNumericType(lt) && isNumericType(rt):
			return a.numericOp(op, lhs, rhs, fullSp)
		case lt.Kind == types.Tuple && isNumericType(rt):
			return a.tupleScalar(op, lhs, rhs, lhsSp, rhsSp, fullSp)
		}
	}

	a.diags.Error(diag.KindErrInvalidOperandType, fullSp.Start, fullSp.End).ArgString(opSymbol(op)).Finish()
	return types.TypedValue{}, false
}

// numericOp implements §4.4's numeric evaluation rule: promote to
// Double, compute, then demote back to Integer only when the eligible
// operand(s) were Integer and the result is an exact in-range integer. A
// non-finite result is an error (§9's Open Question (b)).
func (a *Analyzer) numericOp(op token.Kind, lhs, rhs types.TypedValue, fullSp span.Span) (types.TypedValue, bool) {
	x, y := lhs.Value.AsDouble(), rhs.Value.AsDouble()
	var res float64
	switch op {
	case token.Plus:
		res = x + y
	case token.Minus:
		res = x - y
	case token.Star:
		res = x * y
	case token.Slash:
		if y == 0 {
			a.diags.Warning(diag.KindWarnDivisionByZero, fullSp.Start, fullSp.End).Finish()
		}
		res = x / y
	case token.StarStar:
		res = math.Pow(x, y)
	}
	if math.IsInf(res, 0) || math.IsNaN(res) {
		a.diags.Error(diag.KindErrInvalidBinaryResult, fullSp.Start, fullSp.End).ArgString(opSymbol(op)).Finish()
		return types.TypedValue{}, false
	}

	intEligible := lhs.Value.Type().Kind == types.Integer && rhs.Value.Type().Kind == types.Integer
	if op == token.StarStar {
		intEligible = lhs.Value.Type().Kind == types.Integer
	}
	constAll := lhs.Constant && rhs.Constant
	if intEligible && isExactInt32(res) {
		return types.TypedValue{Value: types.NewInt(int32(res)), Constant: constAll}, true
	}
	return types.TypedValue{Value: types.NewDouble(res), Constant: constAll}, true
}

// stringRepeat implements string × integer repetition; a negative count
// is the table's explicitly called-out error case.
func (a *Analyzer) stringRepeat(s string, n int32, lc, rc bool, fullSp span.Span) (types.TypedValue, bool) {
	if n < 0 {
		a.diags.Error(diag.KindErrInvalidOperandType, fullSp.Start, fullSp.End).ArgString("*").Finish()
		return types.TypedValue{}, false
	}
	out := make([]byte, 0, len(s)*int(n))
	for i := int32(0); i < n; i++ {
		out = append(out, s...)
	}
	return types.TypedValue{Value: types.NewString(string(out)), Constant: lc && rc}, true
}

// tupleScalar applies op element-wise between a tuple and a numeric
// scalar, recursing through nested tuples down to the numeric base
// (§4.4's "tuple(T)/scalar S (if T op S valid)").
func (a *Analyzer) tupleScalar(op token.Kind, tuple, scalar types.TypedValue, tupleSp, scalarSp, fullSp span.Span) (types.TypedValue, bool) {
	rv, _, ok := a.combineElementwise(op, tuple.Value, scalar.Value, tupleSp, scalarSp, fullSp)
	if !ok {
		return types.TypedValue{}, false
	}
	return types.TypedValue{Value: rv, Constant: tuple.Constant && scalar.Constant}, true
}

func (a *Analyzer) combineElementwise(op token.Kind, tup, scalar types.Value, tupleSp, scalarSp, fullSp span.Span) (types.Value, types.Type, bool) {
	if tup.Type().Kind != types.Tuple {
		res, ok := a.applyBinary(op, types.Const(tup), types.Const(scalar), tupleSp, scalarSp, fullSp)
		if !ok {
			return types.Value{}, types.Type{}, false
		}
		return res.Value, res.Value.Type(), true
	}
	src := tup.Elems()
	elems := make([]types.Value, len(src))
	var elemType types.Type
	for i, e := range src {
		rv, rt, ok := a.combineElementwise(op, e, scalar, tupleSp, scalarSp, fullSp)
		if !ok {
			return types.Value{}, types.Type{}, false
		}
		elems[i] = rv
		elemType = rt
	}
	return types.NewTuple(elemType, elems), types.TupleOf(elemType), true
}

// tupleConcat implements '+' over two tuples: concatenation after
// promoting both operand's elements to their common type (§4.4, boundary
// scenario 6).
func (a *Analyzer) tupleConcat(lhs, rhs types.TypedValue, fullSp span.Span) (types.TypedValue, bool) {
	le, re := *lhs.Value.Type().Elem, *rhs.Value.Type().Elem
	ct, ok := CommonType(le, re)
	if !ok {
		a.diags.Error(diag.KindErrConflictTupleElemType, fullSp.Start, fullSp.End).Finish()
		return types.TypedValue{}, false
	}
	elems := make([]types.Value, 0, len(lhs.Value.Elems())+len(rhs.Value.Elems()))
	for _, e := range lhs.Value.Elems() {
		ce, cok := convertExact(e, ct)
		if !cok {
			a.diags.Error(diag.KindErrConflictTupleElemType, fullSp.Start, fullSp.End).Finish()
			return types.TypedValue{}, false
		}
		elems = append(elems, ce)
	}
	for _, e := range rhs.Value.Elems() {
		ce, cok := convertExact(e, ct)
		if !cok {
			a.diags.Error(diag.KindErrConflictTupleElemType, fullSp.Start, fullSp.End).Finish()
			return types.TypedValue{}, false
		}
		elems = append(elems, ce)
	}
	return types.TypedValue{Value: types.NewTuple(ct, elems), Constant: lhs.Constant && rhs.Constant}, true
}

// unaryScalar applies a prefix +/- to a single numeric value, following
// the same Integer-retention rule as numericOp.
func unaryScalar(op token.Kind, v types.Value) types.Value {
	f := v.AsDouble()
	if op == token.Minus {
		f = -f
	}
	if v.Type().Kind == types.Integer && isExactInt32(f) {
		return types.NewInt(int32(f))
	}
	return types.NewDouble(f)
}

func unaryTuple(op token.Kind, v types.Value) types.Value {
	if v.Type().Kind != types.Tuple {
		return unaryScalar(op, v)
	}
	src := v.Elems()
	elems := make([]types.Value, len(src))
	var elemType types.Type
	for i, e := range src {
		elems[i] = unaryTuple(op, e)
		elemType = elems[i].Type()
	}
	return types.NewTuple(elemType, elems)
}

func isNumericBase(t types.Type) bool {
	return isNumericType(t.Base())
}
