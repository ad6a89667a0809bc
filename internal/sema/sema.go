// Package sema implements the drawing language's semantic layer: name
// binding with edit-distance typo hints, the implicit numeric conversion
// and common-type rules, tuple-element tidying, operator typing, value
// comparison, and C++-style overload resolution (§4.4). It is the
// component the interpreter calls on demand to turn AST expressions into
// typed values.
package sema

import (
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
)

// Analyzer threads a symbol table and a diagnostic engine through every
// binding, conversion, and evaluation operation.
type Analyzer struct {
	syms  *symtab.Table
	diags *diag.Engine
}

func New(syms *symtab.Table, diags *diag.Engine) *Analyzer {
	return &Analyzer{syms: syms, diags: diags}
}

func (a *Analyzer) Symbols() *symtab.Table { return a.syms }
func (a *Analyzer) Diags() *diag.Engine    { return a.diags }
