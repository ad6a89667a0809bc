package sema

import (
	"math"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/span"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/types"
)

func isNumericType(t types.Type) bool {
	return t.Kind == types.Integer || t.Kind == types.Double
}

// CanConvert reports whether a value of type from can be implicitly
// converted to type to, and whether doing so is a narrowing conversion
// (§4.4 "Implicit conversions"). Nothing converts to or from String or
// Void; Tuple(A) converts to Tuple(B) iff A converts to B.
func CanConvert(from, to types.Type) (ok bool, narrowing bool) {
	if from.Equal(to) {
		return true, false
	}
	switch {
	case from.Kind == types.Integer && to.Kind == types.Double:
		return true, false
	case from.Kind == types.Double && to.Kind == types.Integer:
		return true, true
	case from.Kind == types.Tuple && to.Kind == types.Tuple:
		return CanConvert(*from.Elem, *to.Elem)
	default:
		return false, false
	}
}

// CommonType implements §4.4's "Common type": identical types are their
// own common type, Tuple meets Tuple element-wise, Integer and Double
// unify to Double, and anything involving String or Void has none.
func CommonType(a, b types.Type) (types.Type, bool) {
	if a.Equal(b) {
		return a, true
	}
	if a.Kind == types.Tuple && b.Kind == types.Tuple {
		ct, ok := CommonType(*a.Elem, *b.Elem)
		if !ok {
			return types.Type{}, false
		}
		return types.TupleOf(ct), true
	}
	if (a.Kind == types.Integer && b.Kind == types.Double) || (a.Kind == types.Double && b.Kind == types.Integer) {
		return types.TDouble, true
	}
	return types.Type{}, false
}

// convertExact performs a widening-only conversion (never narrows),
// used by tuple tidying and concatenation where "no narrowing may occur
// here by construction" (§4.4).
func convertExact(v types.Value, target types.Type) (types.Value, bool) {
	if v.Type().Equal(target) {
		return v, true
	}
	switch {
	case v.Type().Kind == types.Integer && target.Kind == types.Double:
		return types.NewDouble(float64(v.Int())), true
	case v.Type().Kind == types.Tuple && target.Kind == types.Tuple:
		elems := make([]types.Value, len(v.Elems()))
		for i, e := range v.Elems() {
			ce, ok := convertExact(e, *target.Elem)
			if !ok {
				return types.Value{}, false
			}
			elems[i] = ce
		}
		return types.NewTuple(*target.Elem, elems), true
	default:
		return types.Value{}, false
	}
}

func isExactInt32(f float64) bool {
	return f == math.Trunc(f) && f >= -math.MaxInt32-1 && f <= math.MaxInt32
}

// Convert performs a full implicit conversion (§4.4), reporting
// warn_narrow_conversion for a Double → Integer conversion that does not
// exactly represent an in-range integer. sp anchors the warning at the
// expression being converted, using its unconverted type for the "from"
// rendering.
func (a *Analyzer) Convert(v types.Value, target types.Type, sp span.Span) (types.Value, bool) {
	ok, narrowing := CanConvert(v.Type(), target)
	if !ok {
		return types.Value{}, false
	}
	if v.Type().Equal(target) {
		return v, true
	}
	switch {
	case v.Type().Kind == types.Integer && target.Kind == types.Double:
		return types.NewDouble(float64(v.Int())), true
	case v.Type().Kind == types.Double && target.Kind == types.Integer:
		f := v.Float()
		trunc := math.Trunc(f)
		exact := narrowing && f == trunc && trunc >= -math.MaxInt32-1 && trunc <= math.MaxInt32
		if !exact {
			a.diags.Warning(diag.KindWarnNarrowConversion, sp.Start, sp.End).
				ArgString(v.Type().String()).ArgString(target.String()).Finish()
		}
		clamped := trunc
		if clamped < -math.MaxInt32-1 {
			clamped = -math.MaxInt32 - 1
		}
		if clamped > math.MaxInt32 {
			clamped = math.MaxInt32
		}
		return types.NewInt(int32(clamped)), true
	case v.Type().Kind == types.Tuple && target.Kind == types.Tuple:
		elems := make([]types.Value, len(v.Elems()))
		for i, e := range v.Elems() {
			ce, cok := a.Convert(e, *target.Elem, sp)
			if !cok {
				return types.Value{}, false
			}
			elems[i] = ce
		}
		return types.NewTuple(*target.Elem, elems), true
	default:
		return types.Value{}, false
	}
}
