package types

// TypedValue pairs a Value with an is-constant flag marking
// compile-time-constant expressions, for constant-folding propagation
// through the AST (§3).
type TypedValue struct {
	Value    Value
	Constant bool
}

func Const(v Value) TypedValue    { return TypedValue{Value: v, Constant: true} }
func NonConst(v Value) TypedValue { return TypedValue{Value: v, Constant: false} }

func (tv TypedValue) Type() Type { return tv.Value.Type() }
