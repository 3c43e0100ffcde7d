package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/icumark/parser"
	"github.com/vippsas/icumark/source"
)

func compileInline(t *testing.T, in string) CompiledElement {
	t.Helper()
	root := parser.Parse(source.New("", in), false)
	return Compile(root, DefaultTagNames)
}

func compileBlocks(t *testing.T, in string) CompiledElement {
	t.Helper()
	root := parser.Parse(source.New("", in), true)
	return Compile(root, DefaultTagNames)
}

// soleNode asserts that el is a one-element List holding a NodeElement (the
// shape a message made of a single inline node compiles to; only a lone
// Literal is left unwrapped) and returns that node.
func soleNode(t *testing.T, el CompiledElement) NodeElement {
	t.Helper()
	list, ok := el.(List)
	require.True(t, ok)
	require.Len(t, list, 1)
	node, ok := list[0].(NodeElement)
	require.True(t, ok)
	return node
}

func TestCompilePlainLiteral(t *testing.T) {
	el := compileInline(t, "hello world")
	assert.Equal(t, Literal("hello world"), el)
}

func TestCompileEscapedPunctuationAndEntityMergeIntoSurroundingLiteral(t *testing.T) {
	el := compileInline(t, `a\*b&amp;c`)
	assert.Equal(t, Literal("a*b&c"), el)
}

func TestCompileEmphasisWrapsTag(t *testing.T) {
	el := compileInline(t, "*em*")
	node := soleNode(t, el)
	tag, ok := node.Node.(Tag)
	require.True(t, ok)
	assert.Equal(t, DefaultTagNames.Emphasis, tag.Name)
	assert.Equal(t, Literal("em"), tag.Children)
}

func TestCompileStrongWrapsTag(t *testing.T) {
	el := compileInline(t, "**b**")
	node := soleNode(t, el)
	tag := node.Node.(Tag)
	assert.Equal(t, DefaultTagNames.Strong, tag.Name)
}

func TestCompileLinkProducesDestAttribute(t *testing.T) {
	el := compileInline(t, "[click](https://example.com)")
	node := soleNode(t, el)
	tag := node.Node.(Tag)
	assert.Equal(t, DefaultTagNames.Link, tag.Name)
	assert.Equal(t, Literal("click"), tag.Children)
	require.Len(t, tag.Attributes, 1)
	assert.Equal(t, Literal("https://example.com"), tag.Attributes[0])
}

func TestCompileHookUsesLiteralTargetAsTagName(t *testing.T) {
	el := compileInline(t, "$[label](myHook)")
	node := soleNode(t, el)
	tag := node.Node.(Tag)
	assert.Equal(t, "myHook", tag.Name)
	assert.Equal(t, Literal("label"), tag.Children)
}

func TestCompileHookWithDynamicTargetDegradesToLiteralPieces(t *testing.T) {
	el := compileInline(t, "$[label]({var})")
	list, ok := el.(List)
	require.True(t, ok)
	require.Len(t, list, 3)
	assert.Equal(t, Literal("$[label]("), list[0])
	assert.Equal(t, Literal(")"), list[2])
	node := list[1].(NodeElement)
	icuNode := node.Node.(IcuCompiledNode)
	assert.Equal(t, Argument{Name: "var"}, icuNode.Icu)
}

func TestCompileICUPlainVariable(t *testing.T) {
	el := compileInline(t, "{name}")
	node := soleNode(t, el)
	icuNode := node.Node.(IcuCompiledNode)
	assert.Equal(t, Argument{Name: "name"}, icuNode.Icu)
}

func TestCompileICUDateWithStyle(t *testing.T) {
	el := compileInline(t, "{when, date, short}")
	node := soleNode(t, el)
	icuNode := node.Node.(IcuCompiledNode)
	assert.Equal(t, TypedArgument{Kind: DateArgument, Name: "when", Style: "short"}, icuNode.Icu)
}

func TestCompileICUPluralWithOffsetAndArms(t *testing.T) {
	el := compileInline(t, "{count, plural, offset:1 one {# item} other {# items}}")
	node := soleNode(t, el)
	icuNode := node.Node.(IcuCompiledNode)
	plural, ok := icuNode.Icu.(Plural)
	require.True(t, ok)
	assert.Equal(t, "count", plural.Name)
	assert.Equal(t, 1, plural.Offset)
	assert.False(t, plural.Ordinal)
	require.Len(t, plural.Arms, 2)
	assert.Equal(t, "one", plural.Arms[0].Selector)
	assert.Equal(t, "other", plural.Arms[1].Selector)
}

func TestCompileICUSelectOrdinalSetsOrdinalFlag(t *testing.T) {
	el := compileInline(t, "{rank, selectordinal, one {#st} other {#th}}")
	node := soleNode(t, el)
	icuNode := node.Node.(IcuCompiledNode)
	plural := icuNode.Icu.(Plural)
	assert.True(t, plural.Ordinal)
}

func TestCompileICUSelect(t *testing.T) {
	el := compileInline(t, "{gender, select, male {He} other {They}}")
	node := soleNode(t, el)
	icuNode := node.Node.(IcuCompiledNode)
	sel, ok := icuNode.Icu.(Select)
	require.True(t, ok)
	assert.Equal(t, "gender", sel.Name)
	require.Len(t, sel.Arms, 2)
}

func TestCompileUnsafeVariableCompilesIdenticallyToSafe(t *testing.T) {
	el := compileInline(t, "!!{name}!!")
	node := soleNode(t, el)
	icuNode := node.Node.(IcuCompiledNode)
	assert.Equal(t, Argument{Name: "name"}, icuNode.Icu)
}

func TestCompileCodeSpanDoesNotDecodeEscapes(t *testing.T) {
	el := compileInline(t, "`a\\*b`")
	node := soleNode(t, el)
	tag := node.Node.(Tag)
	assert.Equal(t, DefaultTagNames.Code, tag.Name)
	assert.Equal(t, Literal(`a\*b`), tag.Children)
}

func TestCompileHardBreakProducesLineBreakNode(t *testing.T) {
	el := compileInline(t, "a  \nb")
	list, ok := el.(List)
	require.True(t, ok)
	var sawBreak bool
	for _, p := range list {
		if node, ok := p.(NodeElement); ok {
			if _, ok := node.Node.(LineBreak); ok {
				sawBreak = true
			}
		}
	}
	assert.True(t, sawBreak)
}

func TestCompileParagraphBlockWrapsTag(t *testing.T) {
	el := compileBlocks(t, "hello")
	blocks, ok := el.(BlockList)
	require.True(t, ok)
	require.Len(t, blocks, 1)
	node := blocks[0].(NodeElement)
	tag := node.Node.(Tag)
	assert.Equal(t, DefaultTagNames.Paragraph, tag.Name)
	assert.Equal(t, Literal("hello"), tag.Children)
}

func TestCompileATXHeadingRecoversLevel(t *testing.T) {
	el := compileBlocks(t, "## Title")
	blocks := el.(BlockList)
	node := blocks[0].(NodeElement)
	tag := node.Node.(Tag)
	assert.Equal(t, DefaultTagNames.Heading(2), tag.Name)
	assert.Equal(t, Literal("Title"), tag.Children)
}

func TestCompileSetextHeadingLevel1(t *testing.T) {
	el := compileBlocks(t, "Title\n=====")
	blocks := el.(BlockList)
	node := blocks[0].(NodeElement)
	tag := node.Node.(Tag)
	assert.Equal(t, DefaultTagNames.Heading(1), tag.Name)
}

func TestCompileThematicBreakProducesHrTag(t *testing.T) {
	el := compileBlocks(t, "---")
	blocks := el.(BlockList)
	node := blocks[0].(NodeElement)
	tag := node.Node.(Tag)
	assert.Equal(t, DefaultTagNames.Hr, tag.Name)
}

func TestCompileFencedCodeBlockStripsFenceMarkersAndInfoString(t *testing.T) {
	el := compileBlocks(t, "```go\nx := 1\n```")
	blocks := el.(BlockList)
	node := blocks[0].(NodeElement)
	tag := node.Node.(Tag)
	assert.Equal(t, DefaultTagNames.CodeBlock, tag.Name)
	assert.Equal(t, Literal("x := 1"), tag.Children)
}

func TestCompileUnclosedTildeFencedBlockKeepsBacktickLookingContentLine(t *testing.T) {
	// The block opened with '~' and was never closed (no '~~~'-or-longer
	// line follows), so it extends to EOF per spec.md §7 — including its
	// last line, which happens to look like a backtick fence but isn't one
	// for *this* block since the characters don't match.
	el := compileBlocks(t, "~~~\nx := 1\n```")
	blocks := el.(BlockList)
	node := blocks[0].(NodeElement)
	tag := node.Node.(Tag)
	assert.Equal(t, DefaultTagNames.CodeBlock, tag.Name)
	assert.Equal(t, Literal("x := 1\n```"), tag.Children)
}

func TestCompileIndentedCodeBlockStripsIndent(t *testing.T) {
	el := compileBlocks(t, "    x := 1")
	blocks := el.(BlockList)
	node := blocks[0].(NodeElement)
	tag := node.Node.(Tag)
	assert.Equal(t, DefaultTagNames.CodeBlock, tag.Name)
	assert.Equal(t, Literal("x := 1"), tag.Children)
}
