// Command drawing interprets a .draw source file, producing a PNG/JPEG
// image via save() calls in the program and optionally previewing the
// result in a window.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/builtins"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/drawlog"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/interp"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/lexer"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/parser"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/render"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/source"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
	"github.com/Pluto-Zy/drawing-lang-interpreter/pkg/utils"
)

func main() {
	preview := flag.Bool("preview", false, "open a window previewing the final canvas")
	tracePath := flag.String("trace", "", "write a JSON run-log trace to this path")
	sandbox := flag.String("sandbox", "", "output sandbox directory for save() (default: the source file's directory)")
	flag.Parse()

	if flag.NArg() < 1 {
		eng := diag.NewEngine(nil, &diag.DefaultReporter{W: os.Stderr})
		eng.ErrorAt0(diag.KindErrNoInputFile).Finish()
		flag.Usage()
		os.Exit(1)
	}

	canvas, err := run(flag.Arg(0), *sandbox, *tracePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(0)
	}

	if *preview && canvas != nil {
		showPreview(canvas)
	}
}

// run reads and interprets the source file at path, writing diagnostics
// to stderr Clang-style, and returns the final canvas (nil if draw() was
// never called). Program-level errors are never fatal to the process —
// only a missing input file exits non-zero, per the CLI's contract.
func run(path, sandboxDir, tracePath string) (*render.Canvas, error) {
	abs, dir, err := utils.GetPathInfo(path)
	if err != nil {
		return nil, fmt.Errorf("drawing: %w", err)
	}
	contents, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("drawing: failed to read %q: %w", abs, err)
	}

	// Synthesize a trailing newline so the lexer's line-oriented recovery
	// always has a terminator to scan to.
	if len(contents) == 0 || contents[len(contents)-1] != '\n' {
		contents = append(contents, '\n')
	}

	if sandboxDir == "" {
		sandboxDir = dir
	}

	buf := source.New(abs, contents)
	collector := &diag.CollectingReporter{}
	reporter := &diag.MultiReporter{Reporters: []diag.Reporter{&diag.DefaultReporter{W: os.Stderr}, collector}}
	eng := diag.NewEngine(buf, reporter)

	lx := lexer.New(buf, eng)
	stmts := parser.New(lx, eng).ParseProgram()

	syms := symtab.New()
	log := drawlog.New()
	rt := builtins.NewRuntime(sandboxDir, log, os.Stdout)
	builtins.Register(syms, rt)

	ip := interp.New(syms, eng)
	ip.SetBeforeStmt(rt.BeginStatement)
	ip.SetStmtRecorder(func(kind string, start, end, diagDelta int) {
		log.Record(kind, start, end, diagDelta)
	})
	ip.Run(stmts)

	if tracePath != "" {
		if err := writeTrace(log, eng, tracePath); err != nil {
			fmt.Fprintf(os.Stderr, "drawing: failed to write trace %q: %v\n", tracePath, err)
		}
	}

	return rt.Canvas(), nil
}

func writeTrace(log *drawlog.Log, eng *diag.Engine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return log.WriteJSON(f, eng.ErrorCount(), eng.WarningCount())
}

// previewGame wraps the final canvas for an ebiten window, grounded on
// the teacher's Game.Draw/Layout loop but driving a static image instead
// of a live CPU framebuffer.
type previewGame struct {
	img *ebiten.Image
	w, h int
}

func (g *previewGame) Update() error { return nil }

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	screen.DrawImage(g.img, &ebiten.DrawImageOptions{})
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}

// maxPreviewDim bounds the window's longest side; canvases larger than
// this are downscaled with a high-quality resampler rather than shown
// at native size, since background_size is user-controlled and can be
// far larger than any reasonable desktop window.
const maxPreviewDim = 1200

func showPreview(canvas *render.Canvas) {
	src := canvas.Image()
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if longest := max(w, h); longest > maxPreviewDim {
		scale := float64(maxPreviewDim) / float64(longest)
		dw, dh := int(float64(w)*scale), int(float64(h)*scale)
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
		w, h = dw, dh
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("drawing preview")

	img := ebiten.NewImageFromImage(src)
	if err := ebiten.RunGame(&previewGame{img: img, w: w, h: h}); err != nil {
		fmt.Fprintln(os.Stderr, "drawing: preview window closed:", err)
	}
}
