package diag

// Builder accumulates positional arguments and an optional fix-it hint for
// one diagnostic, then renders and delivers it on Finish.
type Builder struct {
	engine      *Engine
	severity    Severity
	kind        Kind
	startOffset int
	endOffset   int
	hasRange    bool
	hasLoc      bool
	args        []Arg
	fixit       *FixIt
}

// Arg appends one positional argument.
func (b *Builder) Arg(a Arg) *Builder {
	b.args = append(b.args, a)
	return b
}

func (b *Builder) ArgString(s string) *Builder  { return b.Arg(StringArg(s)) }
func (b *Builder) ArgInt(i int64) *Builder      { return b.Arg(IntArg(i)) }
func (b *Builder) ArgDouble(f float64) *Builder { return b.Arg(DoubleArg(f)) }
func (b *Builder) ArgChar(c rune) *Builder      { return b.Arg(CharArg(c)) }

// InsertAfter attaches a fix-it that inserts text immediately after loc,
// per §4.1's insert-after-location constructor: replace=[col+1,col+2).
func (b *Builder) InsertAfter(loc int, text string) *Builder {
	if b.engine.buf == nil {
		return b
	}
	line, col := b.engine.buf.LineCol(loc)
	b.fixit = &FixIt{Line: line, ColStart: col + 1, ColEnd: col + 2, Insertion: text}
	return b
}

// Replace attaches a fix-it that replaces [begLoc, endLoc) with text, per
// §4.1's replacement constructor. A reversed range (beg>end) disables the
// hint rather than rendering nonsense.
func (b *Builder) Replace(begLoc, endLoc int, text string) *Builder {
	if b.engine.buf == nil {
		return b
	}
	line, begCol := b.engine.buf.LineCol(begLoc)
	_, endCol := b.engine.buf.LineCol(endLoc)
	fx := &FixIt{Line: line, ColStart: begCol, ColEnd: endCol, Insertion: text}
	if begCol > endCol {
		fx.Disabled = true
	}
	b.fixit = fx
	return b
}

// Finish renders the message and delivers it to the engine's reporter.
func (b *Builder) Finish() {
	switch b.severity {
	case Error:
		b.engine.errorCount++
	case Warning:
		b.engine.warningCount++
	}

	template := templates[b.kind]
	rendered := formatTemplate(template, b.args)

	d := Diagnostic{
		Severity: b.severity,
		Kind:     b.kind,
		Rendered: rendered,
		FixIt:    b.fixit,
	}
	if b.engine.buf != nil {
		d.File = b.engine.buf.Name()
	}
	if b.hasLoc && b.engine.buf != nil {
		line, colStart, colEnd, srcLine, invalid := locate(b.engine.buf, b.startOffset, b.endOffset, b.hasRange)
		d.HasLoc = true
		d.Line = line
		d.ColStart = colStart
		d.ColEnd = colEnd
		d.HasRange = b.hasRange
		d.SourceLine = srcLine
		d.Invalid = invalid
	}

	if b.engine.reporter != nil {
		b.engine.reporter.Report(d)
	}
}
