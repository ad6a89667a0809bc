package diag

import "github.com/Pluto-Zy/drawing-lang-interpreter/internal/source"

// Engine formats and delivers diagnostics against one source buffer.
type Engine struct {
	buf      *source.Buffer
	reporter Reporter

	errorCount   int
	warningCount int
}

// NewEngine returns an Engine reporting through r against buf. buf may be
// nil for tools that only emit positionless diagnostics (e.g. "no input
// file").
func NewEngine(buf *source.Buffer, r Reporter) *Engine {
	return &Engine{buf: buf, reporter: r}
}

func (e *Engine) ErrorCount() int   { return e.errorCount }
func (e *Engine) WarningCount() int { return e.warningCount }
func (e *Engine) HasErrors() bool   { return e.errorCount > 0 }

// Error starts building an Error-severity diagnostic of the given kind
// spanning [start, end). Pass end == start for a single-point diagnostic.
func (e *Engine) Error(kind Kind, start, end int) *Builder {
	return e.create(Error, kind, start, end, true)
}

// Warning starts building a Warning-severity diagnostic.
func (e *Engine) Warning(kind Kind, start, end int) *Builder {
	return e.create(Warning, kind, start, end, true)
}

// Note starts building a Note-severity diagnostic, normally chained after
// the error/warning it elaborates.
func (e *Engine) Note(kind Kind, start, end int) *Builder {
	return e.create(Note, kind, start, end, true)
}

// ErrorAt0 builds a positionless Error diagnostic (e.g. CLI-level
// failures that precede any source buffer, such as "no input file").
func (e *Engine) ErrorAt0(kind Kind) *Builder {
	return e.create(Error, kind, 0, 0, false)
}

func (e *Engine) create(sev Severity, kind Kind, start, end int, hasLoc bool) *Builder {
	return &Builder{
		engine:      e,
		severity:    sev,
		kind:        kind,
		startOffset: start,
		endOffset:   end,
		hasRange:    end > start+1,
		hasLoc:      hasLoc,
	}
}
