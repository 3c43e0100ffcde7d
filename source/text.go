// Package source holds the immutable source buffer and the position
// machinery (byte spans, file positions, line/column lookup) shared by the
// lexer, the syntax tree, and every diagnostic-producing collaborator.
package source

import "sort"

// FileRef identifies the container a message came from (a translation file,
// a definition file, or "" for an in-memory/test message).
type FileRef string

// Text is an immutable UTF-8 byte buffer plus a lazily computed newline
// index, enabling O(log n) byte-offset -> (line, column) conversion.
type Text struct {
	file FileRef
	buf  string

	// newlines[i] is the byte offset of the i'th '\n' in buf. Built lazily
	// on first Position() call since many parses never need it (compiled
	// output only needs the raw bytes).
	newlines []int
	indexed  bool
}

// New wraps buf as a Text attributed to file.
func New(file FileRef, buf string) *Text {
	return &Text{file: file, buf: buf}
}

// Bytes returns the full underlying buffer. Callers must not mutate it.
func (t *Text) Bytes() string {
	return t.buf
}

// File returns the file this text is attributed to.
func (t *Text) File() FileRef {
	return t.file
}

// Len returns the byte length of the buffer.
func (t *Text) Len() int {
	return len(t.buf)
}

// Slice returns the substring covered by span. Panics if span is out of
// bounds, the same contract as Go string slicing.
func (t *Text) Slice(span Span) string {
	return t.buf[span.Start:span.End]
}

func (t *Text) ensureIndexed() {
	if t.indexed {
		return
	}
	for i := 0; i < len(t.buf); i++ {
		if t.buf[i] == '\n' {
			t.newlines = append(t.newlines, i)
		}
	}
	t.indexed = true
}

// Position converts a byte offset into a FilePosition. Line and Column are
// both 1-based, matching the teacher's Pos convention.
func (t *Text) Position(offset int) FilePosition {
	t.ensureIndexed()
	// line is the count of newlines strictly before offset.
	line := sort.Search(len(t.newlines), func(i int) bool {
		return t.newlines[i] >= offset
	})
	col := offset
	if line > 0 {
		col = offset - t.newlines[line-1] - 1
	}
	return FilePosition{
		File:       t.file,
		Line:       line + 1,
		Column:     col + 1,
		ByteOffset: offset,
	}
}

// Span is a half-open byte range [Start, End) into a Text.
type Span struct {
	Start, End int
}

// NewSpan constructs a Span, panicking on an inverted range since that
// always indicates a bug in the caller's bookkeeping.
func NewSpan(start, end int) Span {
	if end < start {
		panic("source: invalid span, end before start")
	}
	return Span{Start: start, End: end}
}

// Len returns the number of bytes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// FilePosition locates a byte offset within its container.
type FilePosition struct {
	File       FileRef
	Line       int
	Column     int
	ByteOffset int
}
