// Package blockscan implements the optional block-bound scanning phase
// (spec.md §4.2): a one-pass, line-oriented partition of the source into
// block spans tagged with a block kind, invoked only when a message opts in
// via include_blocks.
//
// Grounded on sqlparser.Scanner's line-oriented comment handling
// (scanSinglelineComment's "scan to the next \n" idiom), generalized from a
// single construct (line comments) to the small fixed set of Markdown block
// openers spec.md names.
package blockscan

import (
	"strings"

	"github.com/vippsas/icumark/source"
)

// Kind tags a block-level span.
type Kind int

const (
	Paragraph Kind = iota
	ATXHeading
	SetextHeading
	FencedCode
	IndentedCode
	ThematicBreak
)

// Block is one block-level span of the source, in document order.
type Block struct {
	Kind Kind
	Span source.Span

	// HeadingLevel is populated for ATXHeading (1-6, from the run of '#')
	// and SetextHeading (1 for '=', 2 for '-').
	HeadingLevel int

	// Content is the span of the block's inline-parseable content, with
	// block-level markers (ATX '#'s, fence lines, setext underline)
	// excluded. For IndentedCode/FencedCode it is the raw (non-inline)
	// body text.
	Content source.Span

	// Info is the fenced code block's info string (language tag), unused
	// for other kinds.
	Info string
}

type line struct {
	span source.Span // excludes the trailing newline
	text string
}

// Scan partitions src into a sequence of blocks. When the source is empty,
// it returns a single empty Paragraph spanning the whole (empty) buffer, so
// callers never need to special-case "no blocks".
func Scan(src *source.Text) []Block {
	lines := splitLines(src)
	if len(lines) == 0 {
		return []Block{{Kind: Paragraph, Span: source.NewSpan(0, 0), Content: source.NewSpan(0, 0)}}
	}

	var blocks []Block
	i := 0
	for i < len(lines) {
		l := lines[i]

		switch {
		case isThematicBreak(l.text):
			blocks = append(blocks, Block{Kind: ThematicBreak, Span: l.span, Content: l.span})
			i++

		case isATXHeading(l.text):
			level, content := parseATXHeading(l)
			blocks = append(blocks, Block{Kind: ATXHeading, Span: l.span, HeadingLevel: level, Content: content})
			i++

		case isFenceOpen(l.text):
			block, next := scanFencedCode(lines, i)
			blocks = append(blocks, block)
			i = next

		case isIndentedCode(l.text) && (len(blocks) == 0 || blocks[len(blocks)-1].Kind != Paragraph):
			block, next := scanIndentedCode(lines, i)
			blocks = append(blocks, block)
			i = next

		case strings.TrimSpace(l.text) == "":
			i++ // blank line: skip, terminates any open paragraph (there is none to track here)

		default:
			block, next := scanParagraphOrSetext(lines, i)
			blocks = append(blocks, block)
			i = next
		}
	}

	if len(blocks) == 0 {
		// Source was entirely blank lines; still return one empty span.
		blocks = append(blocks, Block{Kind: Paragraph, Span: source.NewSpan(0, 0), Content: source.NewSpan(0, 0)})
	}
	return blocks
}

func splitLines(src *source.Text) []line {
	buf := src.Bytes()
	var lines []line
	start := 0
	for i := 0; i < len(buf); i++ {
		if buf[i] == '\n' {
			end := i
			if end > start && buf[end-1] == '\r' {
				end--
			}
			lines = append(lines, line{span: source.NewSpan(start, end), text: buf[start:end]})
			start = i + 1
		}
	}
	if start < len(buf) {
		lines = append(lines, line{span: source.NewSpan(start, len(buf)), text: buf[start:]})
	}
	return lines
}

func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

func isThematicBreak(text string) bool {
	trimmed := strings.TrimLeft(text, " ")
	if leadingSpaces(text) >= 4 {
		return false
	}
	if len(trimmed) == 0 {
		return false
	}
	marker := trimmed[0]
	if marker != '*' && marker != '-' && marker != '_' {
		return false
	}
	count := 0
	for _, r := range trimmed {
		switch {
		case r == rune(marker):
			count++
		case r == ' ' || r == '\t':
		default:
			return false
		}
	}
	return count >= 3
}

func isATXHeading(text string) bool {
	trimmed := strings.TrimLeft(text, " ")
	if leadingSpaces(text) >= 4 {
		return false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	if n == len(trimmed) {
		return true // "### " with nothing after, or bare "###"
	}
	return trimmed[n] == ' ' || trimmed[n] == '\t'
}

func parseATXHeading(l line) (level int, content source.Span) {
	text := l.text
	indent := leadingSpaces(text)
	n := indent
	for n < len(text) && text[n] == '#' {
		n++
	}
	level = n - indent
	// Skip exactly one run of spaces/tabs after the hashes.
	contentStart := n
	for contentStart < len(text) && (text[contentStart] == ' ' || text[contentStart] == '\t') {
		contentStart++
	}
	// Strip optional trailing "#"s (closing sequence) and trailing spaces.
	end := len(text)
	for end > contentStart && (text[end-1] == ' ' || text[end-1] == '\t') {
		end--
	}
	trailingHashEnd := end
	for end > contentStart && text[end-1] == '#' {
		end--
	}
	if end < trailingHashEnd && (end == contentStart || text[end-1] == ' ' || text[end-1] == '\t') {
		for end > contentStart && (text[end-1] == ' ' || text[end-1] == '\t') {
			end--
		}
	} else {
		end = trailingHashEnd
	}
	if end < contentStart {
		end = contentStart
	}
	base := l.span.Start
	return level, source.NewSpan(base+contentStart, base+end)
}

func isFenceOpen(text string) bool {
	trimmed := strings.TrimLeft(text, " ")
	if leadingSpaces(text) >= 4 {
		return false
	}
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

func fenceRun(text string) (char byte, length int) {
	trimmed := strings.TrimLeft(text, " ")
	if len(trimmed) == 0 {
		return 0, 0
	}
	char = trimmed[0]
	for length < len(trimmed) && trimmed[length] == char {
		length++
	}
	return
}

func scanFencedCode(lines []line, start int) (Block, int) {
	open := lines[start]
	char, openLen := fenceRun(open.text)
	indent := leadingSpaces(open.text)
	info := strings.TrimSpace(open.text[indent+openLen:])

	contentStart := open.span.End
	if start+1 < len(lines) {
		contentStart = lines[start+1].span.Start
	}

	i := start + 1
	contentEnd := contentStart
	for i < len(lines) {
		l := lines[i]
		closeChar, closeLen := fenceRun(l.text)
		if leadingSpaces(l.text) < 4 && closeChar == char && closeLen >= openLen && strings.TrimSpace(l.text[leadingSpaces(l.text)+closeLen:]) == "" {
			break
		}
		contentEnd = l.span.End
		i++
	}

	blockEnd := contentEnd
	if i < len(lines) {
		blockEnd = lines[i].span.End
		i++ // consume the closing fence line
	}
	// Unclosed fenced code block extends to EOF (spec.md §7).

	return Block{
		Kind:    FencedCode,
		Span:    source.NewSpan(open.span.Start, blockEnd),
		Content: source.NewSpan(contentStart, contentEnd),
		Info:    info,
	}, i
}

func isIndentedCode(text string) bool {
	return leadingSpaces(text) >= 4 && strings.TrimSpace(text) != ""
}

func scanIndentedCode(lines []line, start int) (Block, int) {
	i := start
	for i < len(lines) && (isIndentedCode(lines[i].text) || strings.TrimSpace(lines[i].text) == "") {
		if strings.TrimSpace(lines[i].text) == "" && (i+1 >= len(lines) || !isIndentedCode(lines[i+1].text)) {
			break
		}
		i++
	}
	first := lines[start]
	last := lines[i-1]
	contentStart := first.span.Start + 4
	if contentStart > first.span.End {
		contentStart = first.span.End
	}
	return Block{
		Kind:    IndentedCode,
		Span:    source.NewSpan(first.span.Start, last.span.End),
		Content: source.NewSpan(contentStart, last.span.End),
	}, i
}

// scanParagraphOrSetext consumes consecutive non-blank lines as a paragraph,
// unless one of the lines after the first is a setext underline ("===" or
// "---"), in which case the lines before it become a SetextHeading instead
// (spec.md §4.2).
func scanParagraphOrSetext(lines []line, start int) (Block, int) {
	i := start
	for i < len(lines) && strings.TrimSpace(lines[i].text) != "" &&
		!isATXHeading(lines[i].text) && !isFenceOpen(lines[i].text) && !(i > start && isThematicBreak(lines[i].text)) {
		if i > start && isSetextUnderline(lines[i].text) {
			break
		}
		i++
	}
	if i < len(lines) && isSetextUnderline(lines[i].text) && i > start {
		level := 1
		if strings.TrimSpace(lines[i].text)[0] == '-' {
			level = 2
		}
		content := source.NewSpan(lines[start].span.Start, lines[i-1].span.End)
		return Block{Kind: SetextHeading, Span: source.NewSpan(lines[start].span.Start, lines[i].span.End), HeadingLevel: level, Content: content}, i + 1
	}
	return Block{
		Kind:    Paragraph,
		Span:    source.NewSpan(lines[start].span.Start, lines[i-1].span.End),
		Content: source.NewSpan(lines[start].span.Start, lines[i-1].span.End),
	}, i
}

func isSetextUnderline(text string) bool {
	trimmed := strings.TrimLeft(text, " ")
	if leadingSpaces(text) >= 4 || trimmed == "" {
		return false
	}
	marker := trimmed[0]
	if marker != '=' && marker != '-' {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != marker {
			return false
		}
	}
	return true
}
