package builtins

import (
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/span"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/types"
)

// chain runs filters in order, stopping at the first rejection; each
// filter has already reported its own diagnostic by the time it
// returns false.
func chain(filters ...symtab.ValueFilter) symtab.ValueFilter {
	return func(eng *diag.Engine, sp span.Span, v types.Value) bool {
		for _, f := range filters {
			if !f(eng, sp, v) {
				return false
			}
		}
		return true
	}
}

// lockedAfterDraw rejects any write once the runtime's canvas has been
// created by the first draw() call (§4.6: background_size and
// background_color are "rejected after first draw").
func lockedAfterDraw(rt *Runtime, name string) symtab.ValueFilter {
	return func(eng *diag.Engine, sp span.Span, v types.Value) bool {
		if rt.frozen {
			eng.Error(diag.KindErrAssignAfterDraw, sp.Start, sp.End).ArgString(name).Finish()
			return false
		}
		return true
	}
}

func tupleSize(name string, size int) symtab.ValueFilter {
	return func(eng *diag.Engine, sp span.Span, v types.Value) bool {
		if v.Type().Kind != types.Tuple || len(v.Elems()) != size {
			eng.Error(diag.KindErrWrongTupleSize, sp.Start, sp.End).
				ArgString(name).ArgInt(int64(size)).ArgInt(int64(len(v.Elems()))).Finish()
			return false
		}
		return true
	}
}

func tupleSizeOneOf(name string, sizes ...int) symtab.ValueFilter {
	return func(eng *diag.Engine, sp span.Span, v types.Value) bool {
		if v.Type().Kind == types.Tuple {
			for _, s := range sizes {
				if len(v.Elems()) == s {
					return true
				}
			}
		}
		eng.Error(diag.KindErrWrongTupleSize, sp.Start, sp.End).
			ArgString(name).ArgInt(int64(sizes[0])).ArgInt(int64(len(v.Elems()))).Finish()
		return false
	}
}

// elementsInRange rejects a tuple if any element (as an int) falls
// outside [lo, hi] — the 0-255 color-channel gate and the "positive"
// background_size gate share this shape.
func elementsInRange(name string, lo, hi int) symtab.ValueFilter {
	return func(eng *diag.Engine, sp span.Span, v types.Value) bool {
		for _, e := range v.Elems() {
			n := int(e.Int())
			if e.Type().Kind == types.Double {
				n = int(e.Float())
			}
			if n < lo || n > hi {
				eng.Error(diag.KindErrValueOutOfRange, sp.Start, sp.End).ArgString(v.String()).ArgString(name).Finish()
				return false
			}
		}
		return true
	}
}

func scalarInRange(name string, lo, hi int64) symtab.ValueFilter {
	return func(eng *diag.Engine, sp span.Span, v types.Value) bool {
		n := int64(v.Int())
		if n < lo || n > hi {
			eng.Error(diag.KindErrValueOutOfRange, sp.Start, sp.End).ArgString(v.String()).ArgString(name).Finish()
			return false
		}
		return true
	}
}

func intPair(a, b int32) types.Value {
	return types.NewTuple(types.TInteger, []types.Value{types.NewInt(a), types.NewInt(b)})
}

func doublePair(a, b float64) types.Value {
	return types.NewTuple(types.TDouble, []types.Value{types.NewDouble(a), types.NewDouble(b)})
}

func intTriple(a, b, c int32) types.Value {
	return types.NewTuple(types.TInteger, []types.Value{types.NewInt(a), types.NewInt(b), types.NewInt(c)})
}

// registerVariables installs every predefined variable of §4.6 with its
// default value and value filter.
func registerVariables(syms *symtab.Table, rt *Runtime) {
	syms.DefineVariable(symtab.NewPredefined("origin", types.TupleOf(types.TInteger), intPair(0, 0),
		tupleSize("origin", 2)))
	syms.DefineVariable(symtab.NewPredefined("scale", types.TupleOf(types.TDouble), doublePair(1, 1),
		tupleSize("scale", 2)))
	syms.DefineVariable(symtab.NewPredefined("rot", types.TDouble, types.NewDouble(0), nil))
	syms.DefineVariable(symtab.NewPredefined("t", types.TDouble, types.NewDouble(0), nil))
	syms.DefineVariable(symtab.NewPredefined("P", types.TupleOf(types.TDouble),
		types.NewTuple(types.TDouble, []types.Value{types.NewDouble(0)}), nil))

	syms.DefineVariable(symtab.NewPredefined("background_size", types.TupleOf(types.TInteger), intPair(500, 500),
		chain(lockedAfterDraw(rt, "background_size"), tupleSize("background_size", 2), elementsInRange("background_size", 1, 1<<20))))
	syms.DefineVariable(symtab.NewPredefined("background_color", types.TupleOf(types.TInteger), intTriple(255, 255, 255),
		chain(lockedAfterDraw(rt, "background_color"), tupleSizeOneOf("background_color", 3, 4), elementsInRange("background_color", 0, 255))))

	syms.DefineVariable(symtab.NewPredefined("line_width", types.TInteger, types.NewInt(1),
		scalarInRange("line_width", 1, 10)))
	syms.DefineVariable(symtab.NewPredefined("line_color", types.TupleOf(types.TInteger), intTriple(0, 0, 0),
		chain(tupleSizeOneOf("line_color", 3, 4), elementsInRange("line_color", 0, 255))))
}

func registerConstants(syms *symtab.Table) {
	syms.DefineVariable(symtab.NewConstant("PI", types.TDouble, types.NewDouble(3.141592653589793)))
	syms.DefineVariable(symtab.NewConstant("E", types.TDouble, types.NewDouble(2.718281828459)))
}
