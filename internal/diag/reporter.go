package diag

import (
	"fmt"
	"io"
	"strings"
)

// DefaultReporter writes Clang-style diagnostics to an io.Writer (normally
// os.Stderr), mirroring the teacher's "line %d: %s\n  |> %s" source-line
// snippets but adding a caret/tilde underline and 1-based line/column
// numbers, per §6's external diagnostic-output contract.
type DefaultReporter struct {
	W io.Writer
}

func (r *DefaultReporter) Report(d Diagnostic) {
	if d.HasLoc {
		fmt.Fprintf(r.W, "%s:%d:%d: %s: %s\n", d.File, d.Line+1, d.ColStart+1, d.Severity, d.Rendered)
		fmt.Fprintln(r.W, d.SourceLine)
		fmt.Fprintln(r.W, underline(d.SourceLine, d.ColStart, d.ColEnd))
		if d.FixIt != nil && !d.FixIt.Disabled {
			fmt.Fprintln(r.W, fixitLine(d.FixIt))
		}
	} else {
		fmt.Fprintf(r.W, "%s: %s: %s\n", d.File, d.Severity, d.Rendered)
	}
}

// underline builds the "   ^~~~" caret/tilde line beneath the source text.
// colStart..colEnd is a half-open, zero-based column range; a single-column
// diagnostic (colEnd == colStart+1) renders as a lone caret.
func underline(line string, colStart, colEnd int) string {
	width := colEnd - colStart
	if width < 1 {
		width = 1
	}
	var b strings.Builder
	for i := 0; i < colStart; i++ {
		b.WriteByte(' ')
	}
	b.WriteByte('^')
	for i := 1; i < width; i++ {
		b.WriteByte('~')
	}
	return b.String()
}

func fixitLine(f *FixIt) string {
	var b strings.Builder
	for i := 0; i < f.ColStart; i++ {
		b.WriteByte(' ')
	}
	b.WriteString(f.Insertion)
	return b.String()
}

// CollectingReporter accumulates rendered diagnostics in memory, used by
// tests and by the run log (SPEC_FULL §4.9) instead of writing to stderr.
type CollectingReporter struct {
	Diagnostics []Diagnostic
}

func (r *CollectingReporter) Report(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

func (r *CollectingReporter) ErrorCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == Error {
			n++
		}
	}
	return n
}

func (r *CollectingReporter) WarningCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == Warning {
			n++
		}
	}
	return n
}

// MultiReporter fans a diagnostic out to several reporters, e.g. stderr
// plus a CollectingReporter feeding the run log.
type MultiReporter struct {
	Reporters []Reporter
}

func (r *MultiReporter) Report(d Diagnostic) {
	for _, sub := range r.Reporters {
		sub.Report(d)
	}
}
