package parser

import (
	"testing"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/ast"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/lexer"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/source"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/token"
)

func parseSrc(src string) ([]ast.Stmt, *diag.CollectingReporter) {
	buf := source.New("t.draw", []byte(src))
	rep := &diag.CollectingReporter{}
	eng := diag.NewEngine(buf, rep)
	lx := lexer.New(buf, eng)
	p := New(lx, eng)
	return p.ParseProgram(), rep
}

func TestParse_SimpleAssignment(t *testing.T) {
	stmts, rep := parseSrc("x is 1 + 2;")
	if len(rep.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	as, ok := stmts[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("stmt = %T, want *ast.AssignStmt", stmts[0])
	}
	if as.Lhs.Name != "x" {
		t.Errorf("lhs name = %q", as.Lhs.Name)
	}
	bin, ok := as.Rhs.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("rhs = %T, want *ast.BinaryExpr", as.Rhs)
	}
	if _, ok := bin.Lhs.(*ast.NumExpr); !ok {
		t.Errorf("binary lhs = %T", bin.Lhs)
	}
}

func TestParse_PredefinedVarAsAssignmentTarget(t *testing.T) {
	stmts, rep := parseSrc("origin is (1, 2);")
	if len(rep.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
	as := stmts[0].(*ast.AssignStmt)
	if as.Lhs.Name != "origin" {
		t.Errorf("lhs name = %q, want origin", as.Lhs.Name)
	}
	tup, ok := as.Rhs.(*ast.TupleExpr)
	if !ok || len(tup.Elems) != 2 {
		t.Fatalf("rhs = %#v, want 2-element tuple", as.Rhs)
	}
}

func TestParse_SingleParenCollapsesToInnerExpr(t *testing.T) {
	stmts, _ := parseSrc("x is (1 + 2);")
	as := stmts[0].(*ast.AssignStmt)
	if _, ok := as.Rhs.(*ast.TupleExpr); ok {
		t.Errorf("single-element parens should not produce a TupleExpr")
	}
	if _, ok := as.Rhs.(*ast.BinaryExpr); !ok {
		t.Errorf("rhs = %T, want *ast.BinaryExpr", as.Rhs)
	}
}

func TestParse_OperatorPrecedenceAndAssociativity(t *testing.T) {
	// 2 + 3 * 4  ->  2 + (3 * 4)
	stmts, _ := parseSrc("x is 2 + 3 * 4;")
	as := stmts[0].(*ast.AssignStmt)
	top := as.Rhs.(*ast.BinaryExpr)
	if top.Op != token.Plus {
		t.Fatalf("top op = %v, want Plus", top.Op)
	}
	if _, ok := top.Rhs.(*ast.BinaryExpr); !ok {
		t.Errorf("rhs of + should be the * subexpression, got %T", top.Rhs)
	}
	if _, ok := top.Lhs.(*ast.NumExpr); !ok {
		t.Errorf("lhs of + should be a literal, got %T", top.Lhs)
	}
}

func TestParse_PowerIsRightAssociative(t *testing.T) {
	// 2 ** 3 ** 2  ->  2 ** (3 ** 2)
	stmts, _ := parseSrc("x is 2 ** 3 ** 2;")
	as := stmts[0].(*ast.AssignStmt)
	top := as.Rhs.(*ast.BinaryExpr)
	if _, ok := top.Lhs.(*ast.NumExpr); !ok {
		t.Errorf("lhs should be the literal 2, got %T", top.Lhs)
	}
	inner, ok := top.Rhs.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("rhs should be nested power, got %T", top.Rhs)
	}
	if _, ok := inner.Lhs.(*ast.NumExpr); !ok {
		t.Errorf("inner lhs should be literal 3, got %T", inner.Lhs)
	}
}

func TestParse_UnaryBindsLooserThanPower(t *testing.T) {
	// -2 ** 2  ->  -(2 ** 2)
	stmts, _ := parseSrc("x is -2 ** 2;")
	as := stmts[0].(*ast.AssignStmt)
	un, ok := as.Rhs.(*ast.UnaryExpr)
	if !ok {
		t.Fatalf("rhs = %T, want *ast.UnaryExpr", as.Rhs)
	}
	if _, ok := un.Operand.(*ast.BinaryExpr); !ok {
		t.Errorf("unary operand = %T, want the ** subexpression", un.Operand)
	}
}

func TestParse_ForLoopWithFromToStep(t *testing.T) {
	stmts, rep := parseSrc("for i from 0 to 10 step 2 { draw(i); }")
	if len(rep.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
	fs, ok := stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("stmt = %T, want *ast.ForStmt", stmts[0])
	}
	if fs.Var.Name != "i" || fs.From == nil || fs.To == nil || fs.Step == nil {
		t.Fatalf("for stmt = %#v", fs)
	}
	if len(fs.Body) != 1 {
		t.Fatalf("body = %d statements, want 1", len(fs.Body))
	}
}

func TestParse_ForLoopWithoutFromOrStep(t *testing.T) {
	stmts, rep := parseSrc("for i to 10 draw(i);")
	if len(rep.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
	fs := stmts[0].(*ast.ForStmt)
	if fs.From != nil || fs.Step != nil {
		t.Errorf("expected omitted from/step, got from=%v step=%v", fs.From, fs.Step)
	}
}

func TestParse_CallWithMultipleArgs(t *testing.T) {
	stmts, rep := parseSrc(`print("hi", 1, x);`)
	if len(rep.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
	es := stmts[0].(*ast.ExprStmt)
	call, ok := es.X.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expr = %T, want *ast.CallExpr", es.X)
	}
	if call.Name != "print" || len(call.Args) != 3 {
		t.Fatalf("call = %#v", call)
	}
}

func TestParse_TypoForIsIsCorrected(t *testing.T) {
	stmts, rep := parseSrc("x it 1;")
	if len(rep.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want exactly 1", rep.Diagnostics)
	}
	d := rep.Diagnostics[0]
	if d.FixIt == nil || d.FixIt.Insertion != "is" {
		t.Errorf("fixit = %#v, want replacement with 'is'", d.FixIt)
	}
	as, ok := stmts[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("stmt = %T, want *ast.AssignStmt despite the typo", stmts[0])
	}
	if as.Lhs.Name != "x" {
		t.Errorf("lhs = %q", as.Lhs.Name)
	}
}

func TestParse_MissingSemicolonInsertsFixit(t *testing.T) {
	stmts, rep := parseSrc("x is 1\ny is 2;")
	if len(rep.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want exactly 1", rep.Diagnostics)
	}
	if rep.Diagnostics[0].FixIt == nil || rep.Diagnostics[0].FixIt.Insertion != ";" {
		t.Errorf("fixit = %#v, want an inserted ';'", rep.Diagnostics[0].FixIt)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2 (recovery should not drop 'y is 2;')", len(stmts))
	}
}

func TestParse_TypoPunctuationForSemicolon(t *testing.T) {
	stmts, rep := parseSrc("x is 1:\ny is 2;")
	if len(rep.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want exactly 1", rep.Diagnostics)
	}
	if rep.Diagnostics[0].FixIt == nil || rep.Diagnostics[0].FixIt.Insertion != ";" {
		t.Errorf("fixit = %#v", rep.Diagnostics[0].FixIt)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
}

func TestParse_UnmatchedParenEmitsNoteAtOpenLocation(t *testing.T) {
	_, rep := parseSrc("x is (2 + 3;")
	if len(rep.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %v, want 2 (error + note)", rep.Diagnostics)
	}
	if rep.Diagnostics[0].Severity != diag.Error {
		t.Errorf("first diagnostic severity = %v, want Error", rep.Diagnostics[0].Severity)
	}
	if rep.Diagnostics[1].Severity != diag.Note {
		t.Errorf("second diagnostic severity = %v, want Note", rep.Diagnostics[1].Severity)
	}
	if rep.Diagnostics[1].ColStart != 5 {
		t.Errorf("note column = %d, want 5 (the unmatched '(')", rep.Diagnostics[1].ColStart)
	}
}

func TestParse_EmptyStatement(t *testing.T) {
	stmts, rep := parseSrc(";;;")
	if len(rep.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3 empty statements", len(stmts))
	}
	for _, s := range stmts {
		if _, ok := s.(*ast.EmptyStmt); !ok {
			t.Errorf("stmt = %T, want *ast.EmptyStmt", s)
		}
	}
}
