// Package parser implements the two-phase block + inline parser (spec.md
// §4.2-§4.6): an optional block scan (package blockscan) partitions the
// source into block-level spans, and this package's recursive-descent
// inline parser lexes and resolves each span's content into a lossless CST
// (package syntax), including the CommonMark-style delimiter-run resolver
// for emphasis/strong/strikethrough and the ICU sub-grammar for
// `{name, type, ...}` placeholders.
//
// Grounded on sqlparser.Parser's cur/peek-token recursive-descent shape
// (parser.go), widened to a small lookahead queue since this grammar needs
// up to 3 tokens of lookahead (the "!!{" unsafe-variable bigram) where the
// teacher's SQL grammar only ever needed 1.
package parser

import (
	"github.com/vippsas/icumark/blockscan"
	"github.com/vippsas/icumark/lexer"
	"github.com/vippsas/icumark/source"
	"github.com/vippsas/icumark/syntax"
)

// Parser drives inline (and ICU sub-grammar) parsing over a single
// contiguous byte range of src, writing directly into a shared builder. One
// Parser is created per block-level content span (or once for the whole
// source, when block scanning is skipped); the delimiter stack and ICU/
// plural depth counters are per-instance, matching the document's
// block-level nesting boundaries (emphasis and ICU placeholders never span
// a block boundary).
type Parser struct {
	scanner *lexer.Scanner
	builder *syntax.Builder
	end     int

	queue []*syntax.Token

	delims      []delimEntry
	icuDepth    int
	pluralDepth int
}

func newParser(src *source.Text, b *syntax.Builder, start, end int) *Parser {
	sc := lexer.New(src)
	sc.SeekTo(start)
	return &Parser{scanner: sc, builder: b, end: end}
}

func (p *Parser) fill(n int) {
	for len(p.queue) <= n {
		p.queue = append(p.queue, p.nextRaw())
	}
}

func (p *Parser) nextRaw() *syntax.Token {
	if p.scanner.Offset() >= p.end {
		return syntax.NewToken(syntax.EOF, source.NewSpan(p.end, p.end), "")
	}
	return p.scanner.NextToken()
}

func (p *Parser) cur() *syntax.Token {
	p.fill(0)
	return p.queue[0]
}

func (p *Parser) peekAt(n int) *syntax.Token {
	p.fill(n)
	return p.queue[n]
}

func (p *Parser) bump() *syntax.Token {
	p.fill(0)
	t := p.queue[0]
	p.queue = p.queue[1:]
	return t
}

// emit appends the current token as a leaf event and advances past it,
// returning the checkpoint it was recorded at.
func (p *Parser) emit() syntax.Checkpoint {
	return p.builder.EmitToken(p.bump())
}

// adjacent reports whether token a is immediately followed by token b with
// no bytes (hence no token, not even trivia) between them — used for the
// hybrid extension syntax's "!!{" / "}!!" bigrams and hook "$[" opener,
// which are not valid if whitespace separates the characters.
func adjacent(a, b *syntax.Token) bool {
	return a.Span().End == b.Span().Start
}

// Parse runs the full pipeline spec.md §4.1 describes: an optional block
// scan, then inline parsing of every block's content (or of the whole
// source, when includeBlocks is false), producing one lossless DOCUMENT
// tree whose FullText() reproduces src exactly.
func Parse(src *source.Text, includeBlocks bool) *syntax.Node {
	b := syntax.NewBuilder()
	b.StartNode(syntax.DOCUMENT)
	if !includeBlocks {
		b.StartNode(syntax.INLINE_CONTENT)
		emitInlineRange(b, src, 0, src.Len())
		b.FinishNode()
	} else {
		// Bytes between blocks (blank lines, each block's line ending) are
		// emitted flat at document level so FullText() stays lossless.
		pos := 0
		for _, blk := range blockscan.Scan(src) {
			emitFlatRange(b, src, pos, blk.Span.Start)
			appendBlock(b, src, blk)
			pos = blk.Span.End
		}
		emitFlatRange(b, src, pos, src.Len())
	}
	b.FinishNode()
	return b.Finish()
}

func appendBlock(b *syntax.Builder, src *source.Text, blk blockscan.Block) {
	switch blk.Kind {
	case blockscan.ThematicBreak:
		emitFlatSpan(b, src, blk.Span, syntax.THEMATIC_BREAK)
	case blockscan.FencedCode:
		emitFlatSpan(b, src, blk.Span, syntax.FENCED_CODE_BLOCK)
	case blockscan.IndentedCode:
		emitFlatSpan(b, src, blk.Span, syntax.INDENTED_CODE_BLOCK)
	case blockscan.ATXHeading:
		emitHeading(b, src, blk, syntax.ATX_HEADING)
	case blockscan.SetextHeading:
		emitHeading(b, src, blk, syntax.SETEXT_HEADING)
	default:
		emitParagraph(b, src, blk)
	}
}

// emitFlatSpan lexes an entire block span token-by-token without any inline
// interpretation (used for code blocks and thematic breaks, whose bytes are
// never inline-parsed per spec.md §4.2) and wraps the result as kind.
func emitFlatSpan(b *syntax.Builder, src *source.Text, span source.Span, kind syntax.Kind) {
	if span.Len() == 0 {
		b.StartNode(kind)
		b.FinishNode()
		return
	}
	open := b.Checkpoint()
	emitFlatRange(b, src, span.Start, span.End)
	close := b.Checkpoint() - 1
	NewMarkerSpan(open, close).Complete(b, kind)
}

func emitFlatRange(b *syntax.Builder, src *source.Text, start, end int) {
	if start >= end {
		return
	}
	sc := lexer.New(src)
	sc.SeekTo(start)
	for sc.Offset() < end {
		b.EmitToken(sc.NextToken())
	}
}

// emitHeading wraps an ATX or setext heading: the leading hash run (or
// nothing, for setext) and trailing marker text are emitted flat, while the
// heading's content span is fully inline-parsed.
func emitHeading(b *syntax.Builder, src *source.Text, blk blockscan.Block, kind syntax.Kind) {
	open := b.Checkpoint()
	emitFlatRange(b, src, blk.Span.Start, blk.Content.Start)
	contentOpen := b.Checkpoint()
	emitInlineRange(b, src, blk.Content.Start, blk.Content.End)
	contentClose := b.Checkpoint() - 1
	wrapIfNonEmpty(b, syntax.INLINE_CONTENT, contentOpen, contentClose)
	emitFlatRange(b, src, blk.Content.End, blk.Span.End)
	close := b.Checkpoint() - 1
	if close < open {
		b.StartNode(kind)
		b.FinishNode()
		return
	}
	NewMarkerSpan(open, close).Complete(b, kind)
}

func emitParagraph(b *syntax.Builder, src *source.Text, blk blockscan.Block) {
	open := b.Checkpoint()
	contentOpen := b.Checkpoint()
	emitInlineRange(b, src, blk.Content.Start, blk.Content.End)
	contentClose := b.Checkpoint() - 1
	wrapIfNonEmpty(b, syntax.INLINE_CONTENT, contentOpen, contentClose)
	close := b.Checkpoint() - 1
	if close < open {
		b.StartNode(syntax.PARAGRAPH)
		b.FinishNode()
		return
	}
	NewMarkerSpan(open, close).Complete(b, syntax.PARAGRAPH)
}

func emitInlineRange(b *syntax.Builder, src *source.Text, start, end int) {
	if start >= end {
		return
	}
	p := newParser(src, b, start, end)
	p.parseInlineSpan()
}

func (p *Parser) parseInlineSpan() {
	for p.cur().Kind() != syntax.EOF {
		p.parseInlineOne()
	}
}

func (p *Parser) parseInlineOne() {
	switch p.cur().Kind() {
	case syntax.STAR, syntax.UNDERSCORE, syntax.TILDE:
		p.parseDelimiterRun()
	case syntax.LBRACKET:
		p.parseLink()
	case syntax.DOLLAR:
		p.parseHook()
	case syntax.BACKTICK:
		p.parseCodeSpan()
	case syntax.BANG:
		p.parseBang()
	case syntax.LCURLY:
		p.parseICU()
	case syntax.LANGLE:
		p.parseAutolink()
	case syntax.BACKSLASH:
		p.parseBackslashOrLiteral()
	case syntax.WHITESPACE:
		p.parseWhitespaceOrHardBreak()
	case syntax.HASH:
		p.parseHashOrPound()
	default:
		p.emit()
	}
}

func (p *Parser) parseDelimiterRun() {
	tok := p.cur()
	ch := tok.Text()[0]
	length := len(tok.Text())
	before := p.scanner.RuneBefore(tok.Span().Start)
	after := p.scanner.RuneAfter(tok.Span().End)
	flank := lexer.ComputeFlank(rune(ch), before, after)
	cp := p.emit()
	p.pushDelimiterRun(ch, cp, length, flank)
}

// parseWhitespaceOrHardBreak implements spec.md §4.4: two or more trailing
// spaces immediately before a newline become a hard line break instead of
// plain trivia.
func (p *Parser) parseWhitespaceOrHardBreak() {
	tok := p.cur()
	if len(tok.Text()) >= 2 && p.peekAt(1).Kind() == syntax.NEWLINE {
		open := p.emit()
		close := p.emit()
		NewMarkerSpan(open, close).Complete(p.builder, syntax.HARD_BREAK)
		return
	}
	p.emit()
}

func (p *Parser) parseBackslashOrLiteral() {
	if p.peekAt(1).Kind() == syntax.NEWLINE {
		open := p.emit()
		close := p.emit()
		NewMarkerSpan(open, close).Complete(p.builder, syntax.HARD_BREAK)
		return
	}
	p.emit()
}

// parseHashOrPound implements spec.md §4.5's `#` pound reference: valid
// only directly inside a plural/selectordinal arm, otherwise literal text.
func (p *Parser) parseHashOrPound() {
	if p.pluralDepth > 0 {
		cp := p.emit()
		NewMarker(cp).Complete(p.builder, syntax.ICU_POUND)
		return
	}
	p.emit()
}

// parseLink implements `[label](dest)` (spec.md §4.3), where dest may
// itself contain an ICU variable reference for a dynamically computed
// destination. Any failure to find the closing `]`, the following `(`, or
// the closing `)` degrades the whole construct to literal text (spec.md
// §7) — the tokens already emitted simply stay unwrapped.
func (p *Parser) parseLink() {
	open := p.emit() // '['
	labelOpen := p.builder.Checkpoint()
	for p.cur().Kind() != syntax.RBRACKET && p.cur().Kind() != syntax.EOF {
		p.parseInlineOne()
	}
	labelClose := p.builder.Checkpoint() - 1
	wrapIfNonEmpty(p.builder, syntax.INLINE_CONTENT, labelOpen, labelClose)
	if p.cur().Kind() != syntax.RBRACKET {
		return
	}
	p.emit() // ']'
	if p.cur().Kind() != syntax.LPAREN {
		return
	}
	p.emit() // '('
	destOpen := p.builder.Checkpoint()
	for p.cur().Kind() != syntax.RPAREN && p.cur().Kind() != syntax.EOF {
		if p.cur().Kind() == syntax.LCURLY {
			p.parseICU()
		} else {
			p.emit()
		}
	}
	destClose := p.builder.Checkpoint() - 1
	wrapIfNonEmpty(p.builder, syntax.INLINE_CONTENT, destOpen, destClose)
	if p.cur().Kind() != syntax.RPAREN {
		return
	}
	close := p.emit() // ')'
	NewMarkerSpan(open, close).Complete(p.builder, syntax.LINK)
}

// wrapIfNonEmpty wraps [open, close] as kind, unless the range is empty
// (close < open, meaning nothing was emitted in that span).
func wrapIfNonEmpty(b *syntax.Builder, kind syntax.Kind, open, close syntax.Checkpoint) {
	if close < open {
		return
	}
	NewMarkerSpan(open, close).Complete(b, kind)
}

// parseHook implements the hybrid extension's `$[content](name)` hook
// syntax (spec.md §4.3): a named wrapper whose content is arbitrary inline
// markup and whose target must be a literal identifier, never dynamic (a
// `{var}` destination degrades the whole hook to literal text).
func (p *Parser) parseHook() {
	dollar := p.cur()
	if p.peekAt(1).Kind() != syntax.LBRACKET || !adjacent(dollar, p.peekAt(1)) {
		p.emit()
		return
	}
	open := p.emit() // '$'
	p.emit()         // '['
	labelOpen := p.builder.Checkpoint()
	for p.cur().Kind() != syntax.RBRACKET && p.cur().Kind() != syntax.EOF {
		p.parseInlineOne()
	}
	labelClose := p.builder.Checkpoint() - 1
	wrapIfNonEmpty(p.builder, syntax.INLINE_CONTENT, labelOpen, labelClose)
	if p.cur().Kind() != syntax.RBRACKET {
		return
	}
	p.emit() // ']'
	if p.cur().Kind() != syntax.LPAREN {
		return
	}
	p.emit() // '('
	for p.cur().Kind() != syntax.RPAREN && p.cur().Kind() != syntax.EOF {
		if p.cur().Kind() != syntax.TEXT && p.cur().Kind() != syntax.UNDERSCORE {
			// A dynamic (non-literal) target is not allowed for a hook.
			return
		}
		p.emit()
	}
	if p.cur().Kind() != syntax.RPAREN {
		return
	}
	close := p.emit() // ')'
	NewMarkerSpan(open, close).Complete(p.builder, syntax.HOOK)
}

// parseCodeSpan matches a run of N backticks against the next run of
// exactly N backticks (CommonMark's code-span rule); content in between is
// emitted flat, never inline-parsed.
func (p *Parser) parseCodeSpan() {
	openLen := len(p.cur().Text())
	open := p.emit()
	for {
		switch p.cur().Kind() {
		case syntax.EOF:
			return
		case syntax.BACKTICK:
			if len(p.cur().Text()) == openLen {
				close := p.emit()
				NewMarkerSpan(open, close).Complete(p.builder, syntax.CODE_SPAN)
				return
			}
			p.emit()
		default:
			p.emit()
		}
	}
}

// parseAutolink matches `<scheme:rest>` (spec.md §4.3): a `<` is an
// autolink only if, scanning forward, a `>` is reached before whitespace,
// a newline, or another `<`.
func (p *Parser) parseAutolink() {
	i := 1
	valid := false
	for i < 64 {
		switch p.peekAt(i).Kind() {
		case syntax.RANGLE:
			valid = true
		case syntax.EOF, syntax.WHITESPACE, syntax.NEWLINE, syntax.LANGLE:
		default:
			i++
			continue
		}
		break
	}
	if !valid {
		p.emit()
		return
	}
	open := p.emit() // '<'
	for p.cur().Kind() != syntax.RANGLE {
		p.emit()
	}
	close := p.emit() // '>'
	NewMarkerSpan(open, close).Complete(p.builder, syntax.LINK)
}

// parseBang recognizes the unsafe-variable bigram `!!{name}!!` (spec.md
// §4.3): two adjacent '!' immediately followed by an ICU variable, itself
// immediately followed by a closing "!!". Anything short of the full
// pattern degrades to literal text (the ICU variable, if one was parsed,
// still stands on its own — only the ICU_UNSAFE wrapper is skipped).
func (p *Parser) parseBang() {
	bang1 := p.cur()
	bang2 := p.peekAt(1)
	brace := p.peekAt(2)
	if bang2.Kind() != syntax.BANG || brace.Kind() != syntax.LCURLY ||
		!adjacent(bang1, bang2) || !adjacent(bang2, brace) {
		p.emit()
		return
	}
	open := p.emit() // '!'
	p.emit()         // '!'
	p.parseICU()

	c1 := p.cur()
	c2 := p.peekAt(1)
	if c1.Kind() != syntax.BANG || c2.Kind() != syntax.BANG || !adjacent(c1, c2) {
		return
	}
	p.emit() // '!'
	close := p.emit()
	NewMarkerSpan(open, close).Complete(p.builder, syntax.ICU_UNSAFE)
}
