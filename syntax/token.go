package syntax

import "github.com/vippsas/icumark/source"

// Trivia is whitespace or a newline that is not semantically significant at
// the token site where it appears but is preserved verbatim so the CST can
// be reprinted losslessly (spec.md §3.2's lossless invariant).
type Trivia struct {
	Kind Kind
	Text string
}

// Token is a leaf of the CST: a single lexed unit plus the trivia
// surrounding it. Grounded on sqlparser.Scanner's (startIndex, curIndex,
// tokenType) triple, widened with explicit leading/trailing trivia slices
// since the scanner there discards whitespace rather than preserving it.
type Token struct {
	kind           Kind
	span           source.Span
	text           string
	decoded        string
	hasDecoded     bool
	leadingTrivia  []Trivia
	trailingTrivia []Trivia
}

// NewToken constructs a token. text is the token's own text (excluding
// trivia); it is sliced directly from the source buffer by the caller, so
// it shares that buffer's backing array rather than copying.
func NewToken(kind Kind, span source.Span, text string) *Token {
	return &Token{kind: kind, span: span, text: text}
}

func (t *Token) Kind() Kind           { return t.kind }
func (t *Token) Span() source.Span    { return t.span }
func (t *Token) Text() string         { return t.text }
func (t *Token) LeadingTrivia() []Trivia  { return t.leadingTrivia }
func (t *Token) TrailingTrivia() []Trivia { return t.trailingTrivia }

// SetDecoded records an out-of-band decoded form for this token (used for
// HTML_ENTITY tokens, where Text() keeps the raw "&amp;" span for
// losslessness but Decoded() returns "&").
func (t *Token) SetDecoded(decoded string) {
	t.decoded = decoded
	t.hasDecoded = true
}

// Decoded returns the out-of-band decoded form if one was set, otherwise
// the raw token text.
func (t *Token) Decoded() string {
	if t.hasDecoded {
		return t.decoded
	}
	return t.text
}

// SetLeadingTrivia attaches trivia collected before this token was lexed.
// The tree builder calls it only in SplitRunToken, to carry a split run's
// leading trivia onto the left piece.
func (t *Token) SetLeadingTrivia(trivia []Trivia) {
	t.leadingTrivia = trivia
}

// SetTrailingTrivia attaches trivia that follows this token but belongs to
// it rather than to whatever comes next. The tree builder calls it only in
// SplitRunToken, for the right piece of a split run; hard line breaks are
// HARD_BREAK nodes, not trailing trivia.
func (t *Token) SetTrailingTrivia(trivia []Trivia) {
	t.trailingTrivia = trivia
}

// FullText returns leading trivia + token text + trailing trivia, the unit
// that participates in the lossless round-trip invariant.
func (t *Token) FullText() string {
	var b []byte
	for _, tr := range t.leadingTrivia {
		b = append(b, tr.Text...)
	}
	b = append(b, t.text...)
	for _, tr := range t.trailingTrivia {
		b = append(b, tr.Text...)
	}
	return string(b)
}

func (t *Token) isElement() {}
