// Package types implements the drawing language's value-typed algebra:
// Void, Integer, Double, String, and recursively nested Tuple(T) (§3).
package types

// Kind tags which alternative of the Type algebra a Type is.
type Kind int

const (
	Void Kind = iota
	Integer
	Double
	String
	Tuple
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Integer:
		return "Integer"
	case Double:
		return "Double"
	case String:
		return "String"
	case Tuple:
		return "Tuple"
	default:
		return "?"
	}
}

// Type is an algebraic value: Void | Integer | Double | String | Tuple(Type).
// Tuple is recursively nested via Elem; Elem is nil for every other kind.
type Type struct {
	Kind Kind
	Elem *Type
}

var (
	TVoid    = Type{Kind: Void}
	TInteger = Type{Kind: Integer}
	TDouble  = Type{Kind: Double}
	TString  = Type{Kind: String}
)

// TupleOf builds Tuple(elem).
func TupleOf(elem Type) Type {
	e := elem
	return Type{Kind: Tuple, Elem: &e}
}

// Equal implements the algebra's structural type equality (§3).
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind != Tuple {
		return true
	}
	return t.Elem.Equal(*other.Elem)
}

// Depth returns the tuple depth: the number of nested Tuple wrappers
// before the scalar element type (the GLOSSARY's "Tuple depth").
func (t Type) Depth() int {
	d := 0
	for t.Kind == Tuple {
		d++
		t = *t.Elem
	}
	return d
}

// Base returns the scalar type at the bottom of any Tuple nesting.
func (t Type) Base() Type {
	for t.Kind == Tuple {
		t = *t.Elem
	}
	return t
}

// IsNumeric reports whether t is Integer or Double.
func (t Type) IsNumeric() bool {
	return t.Kind == Integer || t.Kind == Double
}

func (t Type) String() string {
	if t.Kind != Tuple {
		return t.Kind.String()
	}
	return "Tuple(" + t.Elem.String() + ")"
}
