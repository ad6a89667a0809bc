package sema

import "github.com/Pluto-Zy/drawing-lang-interpreter/internal/types"

// Ordering is the result of comparing two values (§4.4 "Comparison").
type Ordering int

const (
	Less         Ordering = -1
	EqualOrder   Ordering = 0
	Greater      Ordering = 1
	Incomparable Ordering = 2
)

// Compare implements the for-loop's comparison rule: numeric operands
// compare via Double coercion, strings compare lexicographically, tuples
// compare lexicographically over elements (a shorter prefix compares
// less), and anything else — including any Void operand or mismatched
// shapes — is Incomparable.
func Compare(a, b types.Value) Ordering {
	ta, tb := a.Type(), b.Type()
	switch {
	case isNumericType(ta) && isNumericType(tb):
		x, y := a.AsDouble(), b.AsDouble()
		switch {
		case x < y:
			return Less
		case x > y:
			return Greater
		default:
			return EqualOrder
		}
	case ta.Kind == types.String && tb.Kind == types.String:
		switch {
		case a.Str() < b.Str():
			return Less
		case a.Str() > b.Str():
			return Greater
		default:
			return EqualOrder
		}
	case ta.Kind == types.Tuple && tb.Kind == types.Tuple:
		ae, be := a.Elems(), b.Elems()
		n := len(ae)
		if len(be) < n {
			n = len(be)
		}
		for i := 0; i < n; i++ {
			if c := Compare(ae[i], be[i]); c != EqualOrder {
				return c
			}
		}
		switch {
		case len(ae) < len(be):
			return Less
		case len(ae) > len(be):
			return Greater
		default:
			return EqualOrder
		}
	default:
		return Incomparable
	}
}
