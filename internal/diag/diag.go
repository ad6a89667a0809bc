// Package diag implements the interpreter's Clang-style diagnostic engine:
// positional message formatting, source-range resolution, fix-it hints, and
// a pluggable reporter.
package diag

import "github.com/Pluto-Zy/drawing-lang-interpreter/internal/source"

// Severity classifies a diagnostic.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// FixIt is a machine-actionable replacement anchored to a column range on
// a single line.
type FixIt struct {
	Line        int // zero-based
	ColStart    int // zero-based, inclusive
	ColEnd      int // zero-based, exclusive
	Insertion   string
	Disabled    bool
}

// Diagnostic is a single, fully-rendered message ready for a Reporter.
type Diagnostic struct {
	Severity  Severity
	File      string
	HasLoc    bool
	Line      int // zero-based
	ColStart  int // zero-based, inclusive
	ColEnd    int // zero-based, exclusive; ColEnd == ColStart+1 for a single-column caret
	HasRange  bool
	SourceLine string
	Kind      Kind
	Rendered  string
	FixIt     *FixIt
	Invalid   bool // the column range exceeded the line's length
}

// Reporter receives fully-rendered diagnostics. Implementations must not
// mutate the Diagnostic passed to Report.
type Reporter interface {
	Report(d Diagnostic)
}

// locate resolves a byte-offset range to line/column information against
// buf. A nil buf (used for synthetic, position-less diagnostics) yields a
// Diagnostic with HasLoc=false.
func locate(buf *source.Buffer, startOffset, endOffset int, hasRange bool) (line, colStart, colEnd int, srcLine string, invalid bool) {
	if buf == nil {
		return 0, 0, 0, "", false
	}
	line, colStart = buf.LineCol(startOffset)
	srcLine = buf.LineText(line)
	colEnd = colStart + 1
	if hasRange {
		_, endCol := buf.LineCol(endOffset)
		colEnd = endCol
		if colEnd <= colStart {
			colEnd = colStart + 1
		}
	}
	if colEnd > len(srcLine)+1 {
		invalid = true
	}
	return
}
