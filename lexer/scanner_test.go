package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/icumark/source"
	"github.com/vippsas/icumark/syntax"
)

func scanAll(t *testing.T, in string) []*syntax.Token {
	t.Helper()
	s := New(source.New("", in))
	var toks []*syntax.Token
	for {
		tok := s.NextToken()
		toks = append(toks, tok)
		if s.AtEOF() {
			break
		}
	}
	return toks
}

func TestScannerRunsDelimiters(t *testing.T) {
	toks := scanAll(t, "***")
	require.Len(t, toks, 2)
	assert.Equal(t, syntax.STAR, toks[0].Kind())
	assert.Equal(t, "***", toks[0].Text())
	assert.Equal(t, syntax.EOF, toks[1].Kind())
}

func TestScannerTextRun(t *testing.T) {
	toks := scanAll(t, "hello")
	require.Len(t, toks, 2)
	assert.Equal(t, syntax.TEXT, toks[0].Kind())
	assert.Equal(t, "hello", toks[0].Text())
}

func TestScannerPunctuation(t *testing.T) {
	toks := scanAll(t, "[](){}#!$,=<>")
	kinds := make([]syntax.Kind, 0, len(toks)-1)
	for _, tok := range toks[:len(toks)-1] {
		kinds = append(kinds, tok.Kind())
	}
	assert.Equal(t, []syntax.Kind{
		syntax.LBRACKET, syntax.RBRACKET, syntax.LPAREN, syntax.RPAREN,
		syntax.LCURLY, syntax.RCURLY, syntax.HASH, syntax.BANG,
		syntax.DOLLAR, syntax.COMMA, syntax.EQUALS, syntax.LANGLE, syntax.RANGLE,
	}, kinds)
}

func TestScannerEscapedPunctuationBecomesText(t *testing.T) {
	toks := scanAll(t, `\*not emphasis`)
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, syntax.TEXT, toks[0].Kind())
	assert.Equal(t, `\*`, toks[0].Text(), "raw text keeps both bytes for losslessness")
	assert.Equal(t, "*", toks[0].Decoded(), "decoded form drops the escaping backslash")
}

func TestScannerBackslashBeforeNewlineStaysBackslash(t *testing.T) {
	toks := scanAll(t, "a\\\nb")
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, syntax.BACKSLASH, toks[1].Kind())
}

func TestScannerNewlineVariants(t *testing.T) {
	for _, in := range []string{"\n", "\r\n", "\r"} {
		toks := scanAll(t, "a"+in+"b")
		require.Len(t, toks, 4, "input %q", in)
		assert.Equal(t, syntax.NEWLINE, toks[1].Kind(), "input %q", in)
		assert.Equal(t, in, toks[1].Text(), "input %q", in)
	}
}

func TestScannerHTMLEntityDecodes(t *testing.T) {
	toks := scanAll(t, "&amp;")
	require.Len(t, toks, 2)
	assert.Equal(t, syntax.HTML_ENTITY, toks[0].Kind())
	assert.Equal(t, "&amp;", toks[0].Text())
	assert.Equal(t, "&", toks[0].Decoded())
}

func TestScannerUnrecognizedAmpersandIsText(t *testing.T) {
	toks := scanAll(t, "A & B")
	assert.Equal(t, syntax.TEXT, toks[0].Kind())
	require.Len(t, toks, 6)
	assert.Equal(t, syntax.TEXT, toks[2].Kind())
	assert.Equal(t, "&", toks[2].Text())
	assert.Equal(t, "&", toks[2].Decoded())
}

func TestScannerInvalidUTF8BecomesSingleByteText(t *testing.T) {
	toks := scanAll(t, "a\xffb")
	require.Len(t, toks, 4)
	assert.Equal(t, syntax.TEXT, toks[1].Kind())
	assert.Equal(t, "\xff", toks[1].Text())
}

func TestScannerWhitespaceRunExcludesNewline(t *testing.T) {
	toks := scanAll(t, "a  \nb")
	require.Len(t, toks, 5)
	assert.Equal(t, syntax.WHITESPACE, toks[1].Kind())
	assert.Equal(t, "  ", toks[1].Text())
	assert.Equal(t, syntax.NEWLINE, toks[2].Kind())
}

func TestScannerCJKTextDoesNotSplitPerRune(t *testing.T) {
	toks := scanAll(t, "你好")
	require.Len(t, toks, 2)
	assert.Equal(t, syntax.TEXT, toks[0].Kind())
	assert.Equal(t, "你好", toks[0].Text())
}

func TestScannerSeekToRewinds(t *testing.T) {
	s := New(source.New("", "{abc}"))
	s.NextToken() // '{'
	mark := s.Offset()
	s.NextToken() // 'abc'
	s.SeekTo(mark)
	tok := s.NextToken()
	assert.Equal(t, "abc", tok.Text())
}

func TestScannerPeekAndRuneHelpers(t *testing.T) {
	s := New(source.New("", "a你b"))
	assert.Equal(t, byte('a'), s.PeekByteAt(0))
	assert.Equal(t, byte(0), s.PeekByteAt(100))
	assert.Equal(t, 'a', s.RuneBefore(1))
	r := s.RuneAfter(1)
	assert.Equal(t, '你', r)
}
