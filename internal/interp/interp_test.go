package interp

import (
	"testing"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/lexer"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/parser"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/source"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/types"
)

func runSrc(t *testing.T, src string) (*symtab.Table, *diag.CollectingReporter) {
	t.Helper()
	buf := source.New("t.draw", []byte(src))
	rep := &diag.CollectingReporter{}
	eng := diag.NewEngine(buf, rep)
	lx := lexer.New(buf, eng)
	stmts := parser.New(lx, eng).ParseProgram()

	syms := symtab.New()
	ip := New(syms, eng)
	ip.Run(stmts)
	return syms, rep
}

func TestInterp_AssignmentIntroducesNewVariable(t *testing.T) {
	syms, rep := runSrc(t, "x is 1 + 2;")
	if rep.ErrorCount() != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
	v, ok := syms.LookupVariable("x")
	if !ok {
		t.Fatalf("x was not introduced")
	}
	if v.Type().Kind != types.Integer || v.Get().Int() != 3 {
		t.Errorf("x = %v, want Integer 3", v.Get())
	}
}

func TestInterp_ReassignmentWithoutNarrowingKeepsDeclaredType(t *testing.T) {
	syms, rep := runSrc(t, "x is 1.5; x is 2;")
	if rep.ErrorCount() != 0 || rep.WarningCount() != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
	v, _ := syms.LookupVariable("x")
	if v.Type().Kind != types.Double || v.Get().Float() != 2 {
		t.Errorf("x = %v, want Double 2", v.Get())
	}
}

func TestInterp_NarrowingReassignmentWarnsWhenInexact(t *testing.T) {
	syms, rep := runSrc(t, "x is 2; x is 2.5;")
	if rep.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics)
	}
	if rep.WarningCount() != 1 {
		t.Fatalf("warning count = %d, want 1", rep.WarningCount())
	}
	v, _ := syms.LookupVariable("x")
	if v.Type().Kind != types.Integer {
		t.Errorf("x type = %v, want Integer (declared type preserved)", v.Type())
	}
}

func TestInterp_ForLoopRunsExpectedIterationCount(t *testing.T) {
	syms, rep := runSrc(t, "i is 1; count is 0; for i from 1 to 4 { count is count + 1; }")
	if rep.ErrorCount() != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
	count, _ := syms.LookupVariable("count")
	if count.Get().Int() != 3 {
		t.Errorf("count = %v, want 3 (i = 1, 2, 3)", count.Get())
	}
	i, _ := syms.LookupVariable("i")
	if i.Get().Int() != 4 {
		t.Errorf("i = %v, want 4 (stopped once >= to)", i.Get())
	}
}

func TestInterp_ForLoopDefaultStepIsOne(t *testing.T) {
	syms, rep := runSrc(t, "i is 0; for i to 3 { }")
	if rep.ErrorCount() != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
	i, _ := syms.LookupVariable("i")
	if i.Get().Int() != 3 {
		t.Errorf("i = %v, want 3", i.Get())
	}
}

func TestInterp_ForLoopDefaultFromIsCurrentValue(t *testing.T) {
	syms, rep := runSrc(t, "i is 5; for i to 8 { }")
	if rep.ErrorCount() != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
	i, _ := syms.LookupVariable("i")
	if i.Get().Int() != 8 {
		t.Errorf("i = %v, want 8 (started at its existing value 5)", i.Get())
	}
}

func TestInterp_ExprStatementEvaluatesForSideEffectAndDiscardsResult(t *testing.T) {
	_, rep := runSrc(t, "1 + 1;")
	if rep.ErrorCount() != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics)
	}
}

func TestInterp_AssignmentToUnknownForLoopVariableReportsUnknownIdentifier(t *testing.T) {
	_, rep := runSrc(t, "for missing to 3 { }")
	if rep.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1: %v", rep.ErrorCount(), rep.Diagnostics)
	}
}
