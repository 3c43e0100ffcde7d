package format

import (
	"encoding/json"
	"strings"

	"github.com/vippsas/icumark/compiler"
)

// Keyless shape codes, spec.md §6.3's closed set. There is no code for a
// literal, a List, or a BlockList: literals serialize as a bare JSON
// string, List/BlockList as a bare JSON array of their children.
const (
	shapeArgument      = 1
	shapeTypedArgument = 2
	shapeSelect        = 5
	shapePlural        = 6
	shapePound         = 7
	shapeTag           = 8
)

// ToKeylessJSON serializes a compiled tree to the positional wire format
// spec.md §6.3 defines. Downstream consumers are frozen against this
// layout, so the shapes below must stay byte-for-byte what the table
// describes.
func ToKeylessJSON(el compiler.CompiledElement) string {
	var b strings.Builder
	writeJSON(&b, el)
	return b.String()
}

func writeJSON(b *strings.Builder, el compiler.CompiledElement) {
	switch v := el.(type) {
	case compiler.Literal:
		writeJSONString(b, string(v))
	case compiler.List:
		writeJSONArray(b, len(v), func(i int) { writeJSON(b, v[i]) })
	case compiler.BlockList:
		writeJSONArray(b, len(v), func(i int) { writeJSON(b, v[i]) })
	case compiler.NodeElement:
		writeJSONNode(b, v.Node)
	default:
		b.WriteString("null")
	}
}

func writeJSONNode(b *strings.Builder, n compiler.CompiledNode) {
	switch v := n.(type) {
	case compiler.Pound:
		b.WriteByte('[')
		writeJSONInt(b, shapePound)
		b.WriteByte(']')
	case compiler.LineBreak:
		// Not part of §6.3's table; serialized as a bare tag-less pound-style
		// singleton so keyless consumers can distinguish it from literal "\n".
		b.WriteString(`["br"]`)
	case compiler.Tag:
		writeJSONTag(b, v)
	case compiler.IcuCompiledNode:
		writeJSONIcu(b, v.Icu)
	}
}

func writeJSONTag(b *strings.Builder, t compiler.Tag) {
	b.WriteByte('[')
	writeJSONInt(b, shapeTag)
	b.WriteByte(',')
	writeJSONString(b, t.Name)
	b.WriteByte(',')
	writeJSON(b, t.Children)
	for _, attr := range t.Attributes {
		b.WriteByte(',')
		writeJSON(b, attr)
	}
	b.WriteByte(']')
}

func writeJSONIcu(b *strings.Builder, n compiler.IcuNode) {
	switch v := n.(type) {
	case compiler.Argument:
		b.WriteByte('[')
		writeJSONInt(b, shapeArgument)
		b.WriteByte(',')
		writeJSONString(b, v.Name)
		b.WriteByte(']')
	case compiler.TypedArgument:
		b.WriteByte('[')
		writeJSONInt(b, shapeTypedArgument)
		b.WriteByte(',')
		writeJSONString(b, v.Name)
		b.WriteByte(',')
		writeJSONString(b, v.Style)
		b.WriteByte(']')
	case compiler.Plural:
		b.WriteByte('[')
		writeJSONInt(b, shapePlural)
		b.WriteByte(',')
		writeJSONString(b, v.Name)
		b.WriteByte(',')
		writeJSONInt(b, v.Offset)
		b.WriteByte(',')
		writeJSONArms(b, v.Arms)
		b.WriteByte(']')
	case compiler.Select:
		b.WriteByte('[')
		writeJSONInt(b, shapeSelect)
		b.WriteByte(',')
		writeJSONString(b, v.Name)
		b.WriteByte(',')
		writeJSONArms(b, v.Arms)
		b.WriteByte(']')
	}
}

func writeJSONArms(b *strings.Builder, arms []compiler.SelectorArm) {
	b.WriteByte('{')
	for i, arm := range arms {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJSONString(b, arm.Selector)
		b.WriteByte(':')
		writeJSON(b, arm.Element)
	}
	b.WriteByte('}')
}

func writeJSONArray(b *strings.Builder, n int, writeAt func(i int)) {
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		writeAt(i)
	}
	b.WriteByte(']')
}

func writeJSONString(b *strings.Builder, s string) {
	encoded, _ := json.Marshal(s)
	b.Write(encoded)
}

func writeJSONInt(b *strings.Builder, n int) {
	encoded, _ := json.Marshal(n)
	b.Write(encoded)
}
