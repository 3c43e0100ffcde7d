package variables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/icumark/intern"
	"github.com/vippsas/icumark/parser"
	"github.com/vippsas/icumark/source"
)

func collectFrom(in string) Inventory {
	cst := parser.Parse(source.New("", in), false)
	return Collect(cst)
}

func TestCollectPlainArgument(t *testing.T) {
	inv := collectFrom("hello {name}!")
	require.Len(t, inv.Occurrences, 1)
	assert.Equal(t, "name", inv.Occurrences[0].Name)
	assert.Equal(t, PlainArgument, inv.Occurrences[0].Kind)
}

func TestCollectTypedArguments(t *testing.T) {
	inv := collectFrom("{d, date, short} {t, time, short} {n, number}")
	require.Len(t, inv.Occurrences, 3)
	assert.Equal(t, DateArgument, inv.Occurrences[0].Kind)
	assert.Equal(t, TimeArgument, inv.Occurrences[1].Kind)
	assert.Equal(t, NumberArgument, inv.Occurrences[2].Kind)
}

func TestCollectPluralRecordsNameAndNestsIntoArms(t *testing.T) {
	inv := collectFrom("{count, plural, one {# item, by {owner}} other {# items}}")
	require.Len(t, inv.Occurrences, 2)
	assert.Equal(t, "count", inv.Occurrences[0].Name)
	assert.Equal(t, PluralArgument, inv.Occurrences[0].Kind)
	assert.Equal(t, "owner", inv.Occurrences[1].Name)
	assert.Equal(t, PlainArgument, inv.Occurrences[1].Kind)
}

func TestCollectSelectAndSelectOrdinal(t *testing.T) {
	inv := collectFrom("{gender, select, male {He} other {They}} {rank, selectordinal, one {#st} other {#th}}")
	require.Len(t, inv.Occurrences, 2)
	assert.Equal(t, SelectArgument, inv.Occurrences[0].Kind)
	assert.Equal(t, SelectOrdinalArgument, inv.Occurrences[1].Kind)
}

func TestCollectDuplicateNameRetainsBothOccurrences(t *testing.T) {
	inv := collectFrom("{name} and {name} again")
	require.Len(t, inv.Occurrences, 2)
	assert.Equal(t, "name", inv.Occurrences[0].Name)
	assert.Equal(t, "name", inv.Occurrences[1].Name)
}

func TestInventoryNamesDedupsInFirstOccurrenceOrder(t *testing.T) {
	inv := collectFrom("{b} {a} {b} {c}")
	assert.Equal(t, []string{"b", "a", "c"}, inv.Names())
}

func TestCollectNoVariablesYieldsEmptyInventory(t *testing.T) {
	inv := collectFrom("no variables here")
	assert.Empty(t, inv.Occurrences)
	assert.Empty(t, inv.Names())
}

func TestCollectUnsafeVariableRecordsUnsafeKindNotPlain(t *testing.T) {
	inv := collectFrom("!!{username}!!")
	require.Len(t, inv.Occurrences, 1)
	assert.Equal(t, "username", inv.Occurrences[0].Name)
	assert.Equal(t, UnsafeArgument, inv.Occurrences[0].Kind)
}

func TestCollectHookRecordsLiteralTargetAsHookKind(t *testing.T) {
	inv := collectFrom("$[label](myHook)")
	require.Len(t, inv.Occurrences, 1)
	assert.Equal(t, "myHook", inv.Occurrences[0].Name)
	assert.Equal(t, HookArgument, inv.Occurrences[0].Kind)
}

func TestCollectHookStillVisitsVariablesInsideLabel(t *testing.T) {
	inv := collectFrom("$[hi {name}](myHook)")
	require.Len(t, inv.Occurrences, 2)
	assert.Equal(t, "myHook", inv.Occurrences[0].Name)
	assert.Equal(t, HookArgument, inv.Occurrences[0].Kind)
	assert.Equal(t, "name", inv.Occurrences[1].Name)
	assert.Equal(t, PlainArgument, inv.Occurrences[1].Kind)
}

func TestCollectLinkWithStaticDestRecordsOnlyLabelVariables(t *testing.T) {
	inv := collectFrom("[hi {name}](https://example.com)")
	require.Len(t, inv.Occurrences, 1)
	assert.Equal(t, "name", inv.Occurrences[0].Name)
	assert.Equal(t, PlainArgument, inv.Occurrences[0].Kind)
}

func TestCollectLinkWithDynamicDestRecordsLinkKind(t *testing.T) {
	inv := collectFrom("[click]({url})")
	require.Len(t, inv.Occurrences, 1)
	assert.Equal(t, "url", inv.Occurrences[0].Name)
	assert.Equal(t, LinkArgument, inv.Occurrences[0].Kind)
}

func TestInternNamesSharesHandlesAcrossMessages(t *testing.T) {
	in := intern.New()
	InternNames(collectFrom("hello {name}"), in)
	InternNames(collectFrom("bye {name}"), in)
	assert.Equal(t, 1, in.Count())
}
