package blockscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/icumark/source"
)

func scanText(in string) (*source.Text, []Block) {
	src := source.New("", in)
	return src, Scan(src)
}

func TestScanEmptySourceYieldsOneEmptyParagraph(t *testing.T) {
	_, blocks := scanText("")
	require.Len(t, blocks, 1)
	assert.Equal(t, Paragraph, blocks[0].Kind)
	assert.Equal(t, 0, blocks[0].Span.Len())
}

func TestScanSingleParagraph(t *testing.T) {
	src, blocks := scanText("hello world")
	require.Len(t, blocks, 1)
	assert.Equal(t, Paragraph, blocks[0].Kind)
	assert.Equal(t, "hello world", src.Slice(blocks[0].Content))
}

func TestScanMultilineParagraphJoinedByBlankLine(t *testing.T) {
	src, blocks := scanText("first\nsecond\n\nthird")
	require.Len(t, blocks, 2)
	assert.Equal(t, Paragraph, blocks[0].Kind)
	assert.Equal(t, "first\nsecond", src.Slice(blocks[0].Content))
	assert.Equal(t, Paragraph, blocks[1].Kind)
	assert.Equal(t, "third", src.Slice(blocks[1].Content))
}

func TestScanATXHeading(t *testing.T) {
	src, blocks := scanText("## Title ##")
	require.Len(t, blocks, 1)
	assert.Equal(t, ATXHeading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].HeadingLevel)
	assert.Equal(t, "Title", src.Slice(blocks[0].Content))
}

func TestScanATXHeadingLevelClampedByHashCount(t *testing.T) {
	_, blocks := scanText("####### too many")
	require.Len(t, blocks, 1)
	assert.Equal(t, Paragraph, blocks[0].Kind, "7 hashes is not a valid ATX heading, falls back to paragraph")
}

func TestScanSetextHeading(t *testing.T) {
	src, blocks := scanText("Title\n=====")
	require.Len(t, blocks, 1)
	assert.Equal(t, SetextHeading, blocks[0].Kind)
	assert.Equal(t, 1, blocks[0].HeadingLevel)
	assert.Equal(t, "Title", src.Slice(blocks[0].Content))
}

func TestScanSetextHeadingLevel2(t *testing.T) {
	src, blocks := scanText("Title\n-----")
	require.Len(t, blocks, 1)
	assert.Equal(t, SetextHeading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].HeadingLevel)
	assert.Equal(t, "Title", src.Slice(blocks[0].Content))
}

func TestScanThematicBreak(t *testing.T) {
	for _, in := range []string{"***", "---", "___", "* * *"} {
		_, blocks := scanText(in)
		require.Len(t, blocks, 1, "input %q", in)
		assert.Equal(t, ThematicBreak, blocks[0].Kind, "input %q", in)
	}
}

func TestScanFencedCodeBlock(t *testing.T) {
	src, blocks := scanText("```go\nfmt.Println(1)\n```")
	require.Len(t, blocks, 1)
	assert.Equal(t, FencedCode, blocks[0].Kind)
	assert.Equal(t, "go", blocks[0].Info)
	assert.Equal(t, "fmt.Println(1)", src.Slice(blocks[0].Content))
}

func TestScanUnclosedFencedCodeExtendsToEOF(t *testing.T) {
	src, blocks := scanText("```\nline one\nline two")
	require.Len(t, blocks, 1)
	assert.Equal(t, FencedCode, blocks[0].Kind)
	assert.Equal(t, "line one\nline two", src.Slice(blocks[0].Content))
	assert.Equal(t, len(src.Bytes()), blocks[0].Span.End)
}

func TestScanIndentedCodeBlock(t *testing.T) {
	src, blocks := scanText("    code line one\n    code line two")
	require.Len(t, blocks, 1)
	assert.Equal(t, IndentedCode, blocks[0].Kind)
	assert.Equal(t, "code line one\n    code line two", src.Slice(blocks[0].Content))
}

func TestScanIndentedLineAfterParagraphIsNotCode(t *testing.T) {
	_, blocks := scanText("para\n    still part of para")
	require.Len(t, blocks, 1)
	assert.Equal(t, Paragraph, blocks[0].Kind)
}

func TestScanMixedBlocks(t *testing.T) {
	_, blocks := scanText("# Heading\n\nA paragraph.\n\n---\n")
	require.Len(t, blocks, 3)
	assert.Equal(t, ATXHeading, blocks[0].Kind)
	assert.Equal(t, Paragraph, blocks[1].Kind)
	assert.Equal(t, ThematicBreak, blocks[2].Kind)
}
