package sema

import (
	"testing"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/ast"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/source"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/span"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/token"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/types"
)

func newAnalyzer() (*Analyzer, *diag.CollectingReporter) {
	buf := source.New("t.draw", []byte("x"))
	rep := &diag.CollectingReporter{}
	eng := diag.NewEngine(buf, rep)
	return New(symtab.New(), eng), rep
}

func num(text string, hadDot bool) *ast.NumExpr {
	return &ast.NumExpr{Sp: span.Of(0, len(text)), Text: text, HadDot: hadDot}
}

func TestEval_IntegerSumOverflowBecomesDouble(t *testing.T) {
	an, rep := newAnalyzer()
	expr := &ast.BinaryExpr{Sp: span.Of(0, 1), Op: token.Plus, Lhs: num("2147483647", false), Rhs: num("1", false)}
	tv, ok := an.Evaluate(expr)
	if !ok {
		t.Fatalf("evaluation failed: %v", rep.Diagnostics)
	}
	if tv.Type().Kind != types.Double {
		t.Fatalf("type = %v, want Double", tv.Type())
	}
	if tv.Value.Float() != 2147483648 {
		t.Errorf("value = %v, want 2147483648", tv.Value.Float())
	}
}

func TestEval_PowerWithIntegerBaseExactResultStaysInteger(t *testing.T) {
	an, rep := newAnalyzer()
	expr := &ast.BinaryExpr{Sp: span.Of(0, 1), Op: token.StarStar, Lhs: num("4", false), Rhs: num("0.5", true)}
	tv, ok := an.Evaluate(expr)
	if !ok {
		t.Fatalf("evaluation failed: %v", rep.Diagnostics)
	}
	if tv.Type().Kind != types.Integer || tv.Value.Int() != 2 {
		t.Errorf("value = %v, want Integer 2", tv.Value)
	}
}

func TestEval_DivisionByZeroWarnsThenFails(t *testing.T) {
	an, rep := newAnalyzer()
	expr := &ast.BinaryExpr{Sp: span.Of(0, 1), Op: token.Slash, Lhs: num("3", false), Rhs: num("0", false)}
	_, ok := an.Evaluate(expr)
	if ok {
		t.Fatalf("expected evaluation failure for division by zero")
	}
	if rep.WarningCount() != 1 || rep.ErrorCount() != 1 {
		t.Fatalf("diagnostics = %v, want 1 warning + 1 error", rep.Diagnostics)
	}
}

func tupleOfInts(vals ...string) *ast.TupleExpr {
	elems := make([]ast.Expr, len(vals))
	for i, v := range vals {
		elems[i] = num(v, false)
	}
	return &ast.TupleExpr{Sp: span.Of(0, 1), Elems: elems}
}

func TestEval_TupleConcatenation(t *testing.T) {
	an, rep := newAnalyzer()
	expr := &ast.BinaryExpr{Sp: span.Of(0, 1), Op: token.Plus, Lhs: tupleOfInts("1", "2", "3"), Rhs: tupleOfInts("4", "5")}
	tv, ok := an.Evaluate(expr)
	if !ok {
		t.Fatalf("evaluation failed: %v", rep.Diagnostics)
	}
	if tv.Type().Kind != types.Tuple || !tv.Type().Elem.Equal(types.TInteger) {
		t.Fatalf("type = %v, want Tuple(Integer)", tv.Type())
	}
	if len(tv.Value.Elems()) != 5 {
		t.Fatalf("length = %d, want 5", len(tv.Value.Elems()))
	}
}

func TestEval_TupleScalarElementwise(t *testing.T) {
	an, rep := newAnalyzer()
	expr := &ast.BinaryExpr{Sp: span.Of(0, 1), Op: token.Plus, Lhs: tupleOfInts("1", "2", "3"), Rhs: num("10", false)}
	tv, ok := an.Evaluate(expr)
	if !ok {
		t.Fatalf("evaluation failed: %v", rep.Diagnostics)
	}
	want := []int32{11, 12, 13}
	elems := tv.Value.Elems()
	if len(elems) != 3 {
		t.Fatalf("length = %d, want 3", len(elems))
	}
	for i, w := range want {
		if elems[i].Int() != w {
			t.Errorf("elem %d = %d, want %d", i, elems[i].Int(), w)
		}
	}
}

func TestEval_TupleConcatenationPromotesToDouble(t *testing.T) {
	an, rep := newAnalyzer()
	rhs := &ast.TupleExpr{Sp: span.Of(0, 1), Elems: []ast.Expr{num("4.0", true), num("5", false)}}
	expr := &ast.BinaryExpr{Sp: span.Of(0, 1), Op: token.Plus, Lhs: tupleOfInts("1", "2", "3"), Rhs: rhs}
	tv, ok := an.Evaluate(expr)
	if !ok {
		t.Fatalf("evaluation failed: %v", rep.Diagnostics)
	}
	if !tv.Type().Elem.Equal(types.TDouble) {
		t.Fatalf("elem type = %v, want Double", tv.Type().Elem)
	}
	if len(tv.Value.Elems()) != 5 {
		t.Fatalf("length = %d, want 5", len(tv.Value.Elems()))
	}
}

func TestConvert_NarrowingWarnsOnlyWhenInexact(t *testing.T) {
	an, rep := newAnalyzer()
	sp := span.Of(0, 1)
	if _, ok := an.Convert(types.NewDouble(2.0), types.TInteger, sp); !ok {
		t.Fatalf("conversion should succeed")
	}
	if rep.WarningCount() != 0 {
		t.Errorf("exact double->integer should not warn, got %d warnings", rep.WarningCount())
	}
	if _, ok := an.Convert(types.NewDouble(2.5), types.TInteger, sp); !ok {
		t.Fatalf("conversion should succeed")
	}
	if rep.WarningCount() != 1 {
		t.Errorf("inexact double->integer should warn once, got %d", rep.WarningCount())
	}
}

func TestResolveOverload_AmbiguousWhenNeitherDominates(t *testing.T) {
	an, rep := newAnalyzer()
	noop := func(ctx *symtab.CallContext, args []types.Value) (types.Value, bool) { return types.NewVoid(), true }
	an.Symbols().DefineFunction(&symtab.FunctionInfo{Name: "f", ReturnType: types.TVoid, ParamTypes: []types.Type{types.TInteger, types.TInteger, types.TInteger}, Invoke: noop})
	an.Symbols().DefineFunction(&symtab.FunctionInfo{Name: "f", ReturnType: types.TVoid, ParamTypes: []types.Type{types.TDouble, types.TDouble, types.TDouble}, Invoke: noop})

	_, ok := an.ResolveOverload("f", []types.Type{types.TInteger, types.TDouble, types.TInteger}, span.Of(0, 1))
	if ok {
		t.Fatalf("expected ambiguous resolution to fail")
	}
	if rep.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", rep.ErrorCount())
	}
	noteCount := 0
	for _, d := range rep.Diagnostics {
		if d.Severity == diag.Note {
			noteCount++
		}
	}
	if noteCount != 2 {
		t.Errorf("note count = %d, want 2 (one per tied candidate)", noteCount)
	}
}

func TestResolveOverload_SelectsSoleViableCandidate(t *testing.T) {
	an, rep := newAnalyzer()
	noop := func(ctx *symtab.CallContext, args []types.Value) (types.Value, bool) { return types.NewVoid(), true }
	an.Symbols().DefineFunction(&symtab.FunctionInfo{Name: "g", ReturnType: types.TVoid, ParamTypes: []types.Type{types.TInteger}, Invoke: noop})
	an.Symbols().DefineFunction(&symtab.FunctionInfo{Name: "g", ReturnType: types.TVoid, ParamTypes: []types.Type{types.TString}, Invoke: noop})

	fn, ok := an.ResolveOverload("g", []types.Type{types.TInteger}, span.Of(0, 1))
	if !ok {
		t.Fatalf("resolution failed: %v", rep.Diagnostics)
	}
	if !fn.ParamTypes[0].Equal(types.TInteger) {
		t.Errorf("selected overload params = %v, want Integer", fn.ParamTypes)
	}
}

func TestCompare_TupleShorterPrefixIsLess(t *testing.T) {
	short := types.NewTuple(types.TInteger, []types.Value{types.NewInt(1), types.NewInt(2)})
	long := types.NewTuple(types.TInteger, []types.Value{types.NewInt(1), types.NewInt(2), types.NewInt(3)})
	if Compare(short, long) != Less {
		t.Errorf("Compare(short, long) = %v, want Less", Compare(short, long))
	}
}

func TestCompare_MixedShapesIncomparable(t *testing.T) {
	if Compare(types.NewVoid(), types.NewInt(1)) != Incomparable {
		t.Errorf("Void vs Integer should be Incomparable")
	}
	if Compare(types.NewString("a"), types.NewInt(1)) != Incomparable {
		t.Errorf("String vs Integer should be Incomparable")
	}
}
