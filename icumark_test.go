package icumark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/icumark/compiler"
)

func TestParseMessageLosslessness(t *testing.T) {
	inputs := []string{
		"hello **world**",
		"{count, plural, one {# item} other {# items}}",
		"$[click here](link) and !!{unsafeVar}!!",
		"# Heading\n\nA paragraph with `code`.",
		"unmatched {brace and *star",
	}
	for _, in := range inputs {
		doc := ParseMessage(in, true)
		assert.Equal(t, in, doc.CST.FullText(), "losslessness violated for %q", in)
	}
}

func TestParseMessagePlainVariable(t *testing.T) {
	doc := ParseMessage("hello {name}!", false)

	require.Len(t, doc.Variables.Occurrences, 1)
	assert.Equal(t, "name", doc.Variables.Occurrences[0].Name)

	html := ToHTML(doc.Compiled, compiler.DefaultTagNames)
	assert.Equal(t, "hello {name}!", html)
}

func TestParseMessageEmphasis(t *testing.T) {
	doc := ParseMessage("a *b* c", false)
	html := ToHTML(doc.Compiled, compiler.DefaultTagNames)
	assert.Equal(t, "a <em>b</em> c", html)
}

func TestParseMessagePluralHasOtherArm(t *testing.T) {
	doc := ParseMessage("{count, plural, one {# item} other {# items}}", false)
	require.Len(t, doc.Variables.Occurrences, 1)

	// A message made of one ICU node compiles to a one-element List.
	list, ok := doc.Compiled.(compiler.List)
	require.True(t, ok)
	require.Len(t, list, 1)
	plural, ok := compiler.AsIcuNode(list[0]).(compiler.Plural)
	require.True(t, ok)
	assert.Equal(t, "count", plural.Name)
	assert.False(t, plural.Ordinal)
	require.Len(t, plural.Arms, 2)
	assert.Equal(t, "one", plural.Arms[0].Selector)
	assert.Equal(t, "other", plural.Arms[1].Selector)
}

func TestParseMessageDynamicHookTargetDegrades(t *testing.T) {
	doc := ParseMessage("$[label]({var})", false)
	json := ToKeylessJSON(doc.Compiled)
	assert.Contains(t, json, `"$[label]("`)
}

func TestParseMessageBlockStructure(t *testing.T) {
	doc := ParseMessage("# Title\n\nSome *text*.", true)
	blocks, ok := doc.Compiled.(compiler.BlockList)
	require.True(t, ok)
	require.Len(t, blocks, 2)

	heading, ok := blocks[0].(compiler.NodeElement)
	require.True(t, ok)
	tag, ok := heading.Node.(compiler.Tag)
	require.True(t, ok)
	assert.Equal(t, compiler.DefaultTagNames.H1, tag.Name)
}

func TestCompileIdempotent(t *testing.T) {
	doc := ParseMessage("**bold** and {x, number}", false)
	recompiled := Compile(doc.CST, compiler.DefaultTagNames)
	assert.Equal(t, doc.Compiled, recompiled)
}
