package types

import "fmt"

// Value is a dynamically tagged value of some Type (§3).
type Value struct {
	typ Type
	i   int32
	f   float64
	s   string
	tup []Value
}

func (v Value) Type() Type { return v.typ }
func (v Value) Int() int32 { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) Str() string { return v.s }
func (v Value) Elems() []Value { return v.tup }

func NewInt(i int32) Value    { return Value{typ: TInteger, i: i} }
func NewDouble(f float64) Value { return Value{typ: TDouble, f: f} }
func NewString(s string) Value  { return Value{typ: TString, s: s} }
func NewVoid() Value             { return Value{typ: TVoid} }

// NewTuple builds a Tuple(elemType) value from already-typed elements. The
// caller is responsible for having converted every element to elemType
// beforehand (§4.4's "tuple tidying").
func NewTuple(elemType Type, elems []Value) Value {
	return Value{typ: TupleOf(elemType), tup: elems}
}

// AsDouble returns the value's numeric content widened to float64. It
// panics if v is not Integer or Double; callers must check Type() first.
func (v Value) AsDouble() float64 {
	switch v.typ.Kind {
	case Integer:
		return float64(v.i)
	case Double:
		return v.f
	default:
		panic(fmt.Sprintf("AsDouble: value is not numeric (%s)", v.typ))
	}
}

// String renders a value for diagnostics and the print() built-in.
func (v Value) String() string {
	switch v.typ.Kind {
	case Integer:
		return fmt.Sprintf("%d", v.i)
	case Double:
		return fmt.Sprintf("%g", v.f)
	case String:
		return v.s
	case Void:
		return "void"
	case Tuple:
		s := "("
		for i, e := range v.tup {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + ")"
	default:
		return "?"
	}
}
