package builtins

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/outfile"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/render"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/types"
)

func (rt *Runtime) intPairVar(name string) [2]int {
	v, ok := rt.syms.LookupVariable(name)
	if !ok {
		return [2]int{}
	}
	elems := v.Get().Elems()
	if len(elems) != 2 {
		return [2]int{}
	}
	return [2]int{int(elems[0].Int()), int(elems[1].Int())}
}

func (rt *Runtime) doublePairVar(name string) [2]float64 {
	v, ok := rt.syms.LookupVariable(name)
	if !ok {
		return [2]float64{}
	}
	elems := v.Get().Elems()
	if len(elems) != 2 {
		return [2]float64{}
	}
	return [2]float64{elems[0].AsDouble(), elems[1].AsDouble()}
}

func (rt *Runtime) doubleVar(name string) float64 {
	v, ok := rt.syms.LookupVariable(name)
	if !ok {
		return 0
	}
	return v.Get().AsDouble()
}

func (rt *Runtime) intVar(name string) int {
	v, ok := rt.syms.LookupVariable(name)
	if !ok {
		return 0
	}
	return int(v.Get().Int())
}

func (rt *Runtime) colorVar(name string) color.RGBA {
	v, ok := rt.syms.LookupVariable(name)
	if !ok {
		return color.RGBA{A: 255}
	}
	elems := v.Get().Elems()
	c := color.RGBA{A: 255}
	if len(elems) >= 3 {
		c.R, c.G, c.B = uint8(elems[0].Int()), uint8(elems[1].Int()), uint8(elems[2].Int())
	}
	if len(elems) == 4 {
		c.A = uint8(elems[3].Int())
	}
	return c
}

// registerFunctions installs every predefined overloaded function of
// §4.6.
func registerFunctions(syms *symtab.Table, rt *Runtime) {
	define := syms.DefineFunction

	for _, t := range []types.Type{types.TInteger, types.TDouble, types.TString, types.TupleOf(types.TInteger), types.TupleOf(types.TDouble)} {
		t := t
		define(&symtab.FunctionInfo{Name: "print", ReturnType: types.TVoid, ParamTypes: []types.Type{t},
			Invoke: func(ctx *symtab.CallContext, args []types.Value) (types.Value, bool) {
				fmt.Fprintln(rt.out, args[0].String())
				return types.NewVoid(), true
			}})
	}

	define(&symtab.FunctionInfo{Name: "color", ReturnType: types.TupleOf(types.TInteger), ParamTypes: []types.Type{types.TString},
		Invoke: func(ctx *symtab.CallContext, args []types.Value) (types.Value, bool) {
			c, ok := parseColor(args[0].Str())
			if !ok {
				ctx.Engine.Error(diag.KindErrBadFunctionArgument, ctx.CallSpan.Start, ctx.CallSpan.End).
					ArgString("color").ArgString("unrecognized color " + args[0].Str()).Finish()
				return types.Value{}, false
			}
			return intTriple(int32(c.R), int32(c.G), int32(c.B)), true
		}})

	define(&symtab.FunctionInfo{Name: "abs", ReturnType: types.TInteger, ParamTypes: []types.Type{types.TInteger},
		Invoke: func(ctx *symtab.CallContext, args []types.Value) (types.Value, bool) {
			n := args[0].Int()
			if n < 0 {
				n = -n
			}
			return types.NewInt(n), true
		}})
	define(&symtab.FunctionInfo{Name: "abs", ReturnType: types.TDouble, ParamTypes: []types.Type{types.TDouble},
		Invoke: func(ctx *symtab.CallContext, args []types.Value) (types.Value, bool) {
			return types.NewDouble(math.Abs(args[0].Float())), true
		}})

	registerMathFn(define, "cos", math.Cos)
	registerMathFn(define, "sin", math.Sin)
	registerMathFn(define, "tan", math.Tan)
	registerLn(define)

	define(&symtab.FunctionInfo{Name: "rand_int", ReturnType: types.TInteger, ParamTypes: []types.Type{types.TInteger, types.TInteger},
		Invoke: func(ctx *symtab.CallContext, args []types.Value) (types.Value, bool) {
			lo, hi := args[0].Int(), args[1].Int()
			if lo > hi {
				ctx.Engine.Error(diag.KindErrBadFunctionArgument, ctx.CallSpan.Start, ctx.CallSpan.End).
					ArgString("rand_int").ArgString("lower bound exceeds upper bound").Finish()
				return types.Value{}, false
			}
			return types.NewInt(lo + int32(rt.rng.Intn(int(hi-lo+1)))), true
		}})

	define(&symtab.FunctionInfo{Name: "draw", ReturnType: types.TVoid, ParamTypes: []types.Type{types.TDouble, types.TDouble},
		Invoke: func(ctx *symtab.CallContext, args []types.Value) (types.Value, bool) {
			return rt.draw(args[0].Float(), args[1].Float())
		}})

	define(&symtab.FunctionInfo{Name: "save", ReturnType: types.TVoid, ParamTypes: []types.Type{types.TString},
		Invoke: func(ctx *symtab.CallContext, args []types.Value) (types.Value, bool) {
			return rt.save(ctx, args[0].Str())
		}})
}

func registerMathFn(define func(*symtab.FunctionInfo), name string, fn func(float64) float64) {
	define(&symtab.FunctionInfo{Name: name, ReturnType: types.TDouble, ParamTypes: []types.Type{types.TDouble},
		Invoke: func(ctx *symtab.CallContext, args []types.Value) (types.Value, bool) {
			res := fn(args[0].Float())
			if math.IsNaN(res) || math.IsInf(res, 0) {
				ctx.Engine.Error(diag.KindErrBadFunctionArgument, ctx.CallSpan.Start, ctx.CallSpan.End).
					ArgString(name).ArgString(fmt.Sprintf("%s(%g) is not finite", name, args[0].Float())).Finish()
				return types.Value{}, false
			}
			return types.NewDouble(res), true
		}})
}

func registerLn(define func(*symtab.FunctionInfo)) {
	define(&symtab.FunctionInfo{Name: "ln", ReturnType: types.TDouble, ParamTypes: []types.Type{types.TDouble},
		Invoke: func(ctx *symtab.CallContext, args []types.Value) (types.Value, bool) {
			x := args[0].Float()
			res := math.Log(x)
			if math.IsNaN(res) || math.IsInf(res, 0) {
				ctx.Engine.Error(diag.KindErrBadFunctionArgument, ctx.CallSpan.Start, ctx.CallSpan.End).
					ArgString("ln").ArgString("ln(x) requires x > 0").Finish()
				return types.Value{}, false
			}
			return types.NewDouble(res), true
		}})
}

// draw transforms (x, y) by origin/rot/scale, lazily creates the canvas
// from the current background_size/background_color (freezing both),
// and stamps a line from the previous point of the current statement's
// polyline (§4.6).
func (rt *Runtime) draw(x, y float64) (types.Value, bool) {
	if rt.canvas == nil {
		size := rt.intPairVar("background_size")
		bg := rt.colorVar("background_color")
		rt.canvas = render.New(size[0], size[1], bg)
		rt.frozen = true
	}

	origin := rt.intPairVar("origin")
	scale := rt.doublePairVar("scale")
	rot := rt.doubleVar("rot")
	width := rt.intVar("line_width")
	lineColor := rt.colorVar("line_color")

	p := rt.canvas.Transform(render.Point{X: x, Y: y}, origin, rot, scale)
	if rt.lastPt != nil {
		rt.canvas.StampLine(*rt.lastPt, p, width, lineColor)
	} else {
		rt.canvas.StampLine(p, p, width, lineColor)
	}
	rt.lastPt = &p
	return types.NewVoid(), true
}

// save flushes the canvas to a PNG or JPEG at a sandboxed path (§4.6).
func (rt *Runtime) save(ctx *symtab.CallContext, requested string) (types.Value, bool) {
	if rt.canvas == nil {
		ctx.Engine.Error(diag.KindErrBadFunctionArgument, ctx.CallSpan.Start, ctx.CallSpan.End).
			ArgString("save").ArgString("nothing has been drawn yet").Finish()
		return types.Value{}, false
	}
	resolved, err := outfile.Resolve(rt.baseDir, requested)
	if err != nil {
		ctx.Engine.Error(diag.KindErrInvalidSavePath, ctx.CallSpan.Start, ctx.CallSpan.End).
			ArgString(requested).ArgString(err.Error()).Finish()
		return types.Value{}, false
	}

	f, err := os.Create(resolved)
	if err != nil {
		ctx.Engine.Error(diag.KindErrIOFailure, ctx.CallSpan.Start, ctx.CallSpan.End).ArgString(err.Error()).Finish()
		return types.Value{}, false
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(resolved))
	if ext == ".jpg" || ext == ".jpeg" {
		err = rt.canvas.EncodeJPEG(f, 90)
	} else {
		err = rt.canvas.EncodePNG(f)
	}
	if err != nil {
		ctx.Engine.Error(diag.KindErrIOFailure, ctx.CallSpan.Start, ctx.CallSpan.End).ArgString(err.Error()).Finish()
		return types.Value{}, false
	}

	if rt.log != nil {
		rt.log.RecordSave(resolved)
	}
	return types.NewVoid(), true
}
