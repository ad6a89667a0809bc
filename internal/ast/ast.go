// Package ast defines the drawing language's statement and expression
// tree, grounded on the teacher's tagged-variant node shapes
// (pkg/compiler/ast.go) but generalized from the C-subset grammar to the
// drawing language's statements/expressions and extended with source
// spans and late-bound symbol references (§3).
package ast

import (
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/span"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/token"
)

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	Span() span.Span
}

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
	Span() span.Span
}

// EmptyStmt is a bare ';'.
type EmptyStmt struct {
	Sp span.Span
}

func (*EmptyStmt) stmtNode()        {}
func (s *EmptyStmt) Span() span.Span { return s.Sp }

// AssignStmt is `lhs is rhs;` (§3: Assignment(lhs_var, is_loc, rhs, semi_loc)).
type AssignStmt struct {
	Sp      span.Span
	Lhs     *VarExpr
	IsSpan  span.Span
	Rhs     Expr
	SemiSpan span.Span
}

func (*AssignStmt) stmtNode()        {}
func (s *AssignStmt) Span() span.Span { return s.Sp }

// ForStmt is `for var (from expr)? to expr (step expr)? body` (§3/§4.3).
type ForStmt struct {
	Sp   span.Span
	Var  *VarExpr
	From Expr // nil if omitted
	To   Expr
	Step Expr // nil if omitted
	Body []Stmt
}

func (*ForStmt) stmtNode()        {}
func (s *ForStmt) Span() span.Span { return s.Sp }

// ExprStmt is `expr;` (§3).
type ExprStmt struct {
	Sp       span.Span
	X        Expr
	SemiSpan span.Span
}

func (*ExprStmt) stmtNode()        {}
func (s *ExprStmt) Span() span.Span { return s.Sp }

// NumExpr is a numeric literal. HadDot records whether the lexeme
// contained a '.', distinguishing `2` (Integer) from `2.` (Double) at the
// syntax level before semantic evaluation assigns a Value (§3).
type NumExpr struct {
	Sp     span.Span
	Text   string
	HadDot bool
}

func (*NumExpr) exprNode()        {}
func (e *NumExpr) Span() span.Span { return e.Sp }

// StrExpr is a string literal, already escape-processed by the lexer.
type StrExpr struct {
	Sp    span.Span
	Value string
}

func (*StrExpr) exprNode()        {}
func (e *StrExpr) Span() span.Span { return e.Sp }

// VarExpr is a reference to a variable name. Bound is filled in by the
// semantic analyzer's binding pass (§4.4); it is nil until then, and
// non-nil for every Var node that survives binding (§3's invariant).
type VarExpr struct {
	Sp    span.Span
	Name  string
	Bound *symtab.VariableInfo
}

func (*VarExpr) exprNode()        {}
func (e *VarExpr) Span() span.Span { return e.Sp }

// TupleExpr is `(e1, e2, ...)`; a single-element parenthesized expression
// collapses to its inner expression during parsing rather than becoming a
// one-element TupleExpr (§4.3 grammar note).
type TupleExpr struct {
	Sp    span.Span
	Elems []Expr
}

func (*TupleExpr) exprNode()        {}
func (e *TupleExpr) Span() span.Span { return e.Sp }

// CallExpr is `name(arg, ...)`. Bound is filled in by overload resolution
// (§4.4) and is non-nil for every Call node that survives binding.
type CallExpr struct {
	Sp    span.Span
	Name  string
	Args  []Expr
	Bound *symtab.FunctionInfo
}

func (*CallExpr) exprNode()        {}
func (e *CallExpr) Span() span.Span { return e.Sp }

// BinaryExpr is `lhs Op rhs`.
type BinaryExpr struct {
	Sp  span.Span
	Op  token.Kind
	Lhs Expr
	Rhs Expr
}

func (*BinaryExpr) exprNode()        {}
func (e *BinaryExpr) Span() span.Span { return e.Sp }

// UnaryExpr is `Op operand` (prefix + or -).
type UnaryExpr struct {
	Sp      span.Span
	Op      token.Kind
	Operand Expr
}

func (*UnaryExpr) exprNode()        {}
func (e *UnaryExpr) Span() span.Span { return e.Sp }

// ErrorExpr is the parser's sentinel "error expression" (§4.3), returned
// when expression parsing cannot produce anything meaningful. The
// semantic analyzer treats it as already erroneous and does not emit
// further diagnostics about it.
type ErrorExpr struct {
	Sp span.Span
}

func (*ErrorExpr) exprNode()        {}
func (e *ErrorExpr) Span() span.Span { return e.Sp }
