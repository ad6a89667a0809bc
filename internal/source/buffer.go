// Package source owns the raw bytes of a drawing-language program and maps
// byte offsets to (line, column) pairs for diagnostics.
package source

import "strings"

// Buffer owns the bytes of one source file and a cached line-start index.
//
// A trailing newline is appended if the caller's bytes did not already end
// with one, so every offset (including end-of-file) has a defined line.
type Buffer struct {
	name       string
	bytes      []byte
	lineStarts []int // byte offset of the first character of each line
}

// New builds a Buffer from raw file contents, synthesizing a trailing
// newline when absent (§6: "A trailing newline is synthetically appended
// if absent").
func New(name string, contents []byte) *Buffer {
	b := make([]byte, len(contents))
	copy(b, contents)
	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	buf := &Buffer{name: name, bytes: b}
	buf.indexLines()
	return buf
}

func (b *Buffer) indexLines() {
	b.lineStarts = []int{0}
	for i, c := range b.bytes {
		if c == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	// Sentinel: one past the buffer. The entry before it is len(bytes),
	// the empty position after the trailing newline, so LineCol(len(bytes))
	// resolves to that entry and LineText can always read lineStarts[line+1].
	b.lineStarts = append(b.lineStarts, len(b.bytes)+1)
}

// Name returns the file name used in diagnostics.
func (b *Buffer) Name() string { return b.name }

// Bytes returns the full (newline-terminated) source bytes.
func (b *Buffer) Bytes() []byte { return b.bytes }

// Len returns the number of bytes in the buffer, including the
// synthesized trailing newline.
func (b *Buffer) Len() int { return len(b.bytes) }

// Slice returns the bytes in [start, end), clamped to the buffer's bounds.
func (b *Buffer) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(b.bytes) {
		end = len(b.bytes)
	}
	if start > end {
		start = end
	}
	return b.bytes[start:end]
}

// LineCol resolves a byte offset to a zero-based (line, column) pair.
// The line is the predecessor index in the line-start table; the column
// is the offset minus that line's start.
func (b *Buffer) LineCol(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	// Binary search for the last lineStarts[i] <= offset.
	lo, hi := 0, len(b.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, offset - b.lineStarts[lo]
}

// LineText returns the text of the given zero-based line, without its
// trailing newline.
func (b *Buffer) LineText(line int) string {
	if line < 0 || line >= len(b.lineStarts)-1 {
		return ""
	}
	start := b.lineStarts[line]
	end := b.lineStarts[line+1]
	if end > len(b.bytes) {
		end = len(b.bytes)
	}
	text := b.bytes[start:end]
	return strings.TrimRight(string(text), "\r\n")
}

// LineLen returns the displayed length (sans newline) of the given
// zero-based line.
func (b *Buffer) LineLen(line int) int {
	return len(b.LineText(line))
}

// LineCount returns the number of lines in the buffer. The empty
// position after the trailing newline is not counted as a line.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts) - 2
}
