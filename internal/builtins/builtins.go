// Package builtins wires the drawing language's predefined variables,
// constants, and overloaded functions into a symtab.Table, and owns the
// runtime state those built-ins close over: the lazily created canvas,
// the current statement-level polyline's last point, the output
// sandbox, and the run log (§4.6).
package builtins

import (
	"io"
	"math/rand"
	"os"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/drawlog"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/render"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
)

// Runtime holds the state predefined functions and value filters need
// beyond the symbol table itself: it is the receiver every built-in
// Invoke closure captures.
type Runtime struct {
	syms *symtab.Table

	canvas  *render.Canvas
	frozen  bool
	lastPt  *render.Point

	baseDir string
	log     *drawlog.Log
	rng     *rand.Rand
	out     io.Writer
}

// NewRuntime constructs a Runtime rooted at baseDir (the sandbox for
// save()), writing print() output to out.
func NewRuntime(baseDir string, log *drawlog.Log, out io.Writer) *Runtime {
	if out == nil {
		out = os.Stdout
	}
	return &Runtime{
		baseDir: baseDir,
		log:     log,
		rng:     rand.New(rand.NewSource(1)),
		out:     out,
	}
}

// BeginStatement resets the "previous drawn point" so each new
// top-level or loop-body statement starts its own polyline (§4.6).
func (rt *Runtime) BeginStatement() { rt.lastPt = nil }

// Canvas exposes the current canvas (nil until the first draw()), e.g.
// for the CLI's -preview window.
func (rt *Runtime) Canvas() *render.Canvas { return rt.canvas }

// Register installs every predefined variable, constant, and function
// into syms, and remembers syms so draw()/save() can read the current
// origin/scale/rot/line_width/line_color/background_* values.
func Register(syms *symtab.Table, rt *Runtime) {
	rt.syms = syms
	registerVariables(syms, rt)
	registerConstants(syms)
	registerFunctions(syms, rt)
}
