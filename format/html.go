// Package format implements the two total serializers spec.md §4.9/§6.1
// describe over a compiled tree: HTML and keyless JSON.
package format

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/vippsas/icumark/compiler"
)

// ToHTML renders a compiled tree to an HTML string, mapping tag names back
// to their HTML equivalents via tags. ICU nodes are rendered back into
// canonical ICU syntax (single-spaced, no leading/trailing whitespace
// inside braces) rather than evaluated — this is a template formatter, not
// an ICU interpreter.
//
// Grounded on original_source's commonmark_html/mod.rs HtmlFormat shape,
// ported to a set of Go functions dispatching on compiler.CompiledElement/
// CompiledNode/IcuNode instead of a Rust trait per node type.
func ToHTML(el compiler.CompiledElement, tags compiler.TagNames) string {
	var b strings.Builder
	writeHTML(&b, el, tags)
	return b.String()
}

func writeHTML(b *strings.Builder, el compiler.CompiledElement, tags compiler.TagNames) {
	switch v := el.(type) {
	case compiler.Literal:
		b.WriteString(html.EscapeString(string(v)))
	case compiler.List:
		for _, child := range v {
			writeHTML(b, child, tags)
		}
	case compiler.BlockList:
		// spec.md §8.2 scenario 6: sibling blocks are newline-separated, not
		// concatenated. Grounded on original_source's commonmark_html/mod.rs
		// format_document, which tracks is_first and pushes '\n' between
		// non-first blocks.
		isFirst := true
		for _, child := range v {
			if isFirst {
				isFirst = false
			} else {
				b.WriteByte('\n')
			}
			writeHTML(b, child, tags)
		}
	case compiler.NodeElement:
		writeHTMLNode(b, v.Node, tags)
	}
}

func writeHTMLNode(b *strings.Builder, n compiler.CompiledNode, tags compiler.TagNames) {
	switch v := n.(type) {
	case compiler.Pound:
		b.WriteByte('#')
	case compiler.LineBreak:
		b.WriteString("<br/>")
	case compiler.IcuCompiledNode:
		writeICU(b, v.Icu, tags)
	case compiler.Tag:
		writeHTMLTag(b, v, tags)
	}
}

func writeHTMLTag(b *strings.Builder, t compiler.Tag, tags compiler.TagNames) {
	if t.Name == tags.CodeBlock {
		b.WriteString("<pre><code>")
		writeHTML(b, t.Children, tags)
		b.WriteString("</code></pre>")
		return
	}
	if t.Name == tags.Hr {
		b.WriteString("<hr/>")
		return
	}

	elementName, ok := htmlElementName(t.Name, tags)
	if !ok {
		// Not one of the recognized entries (spec.md §6.2): most likely a
		// hook, whose name is an opaque caller-defined component tag.
		elementName = t.Name
	}

	b.WriteByte('<')
	b.WriteString(elementName)
	if t.Name == tags.Link && len(t.Attributes) >= 1 {
		b.WriteString(` href="`)
		writeHTML(b, t.Attributes[0], tags)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	writeHTML(b, t.Children, tags)
	b.WriteString("</")
	b.WriteString(elementName)
	b.WriteByte('>')
}

func htmlElementName(name string, tags compiler.TagNames) (string, bool) {
	switch name {
	case tags.Strong:
		return "strong", true
	case tags.Emphasis:
		return "em", true
	case tags.StrikeThrough:
		return "del", true
	case tags.Paragraph:
		return "p", true
	case tags.Link:
		return "a", true
	case tags.Code:
		return "code", true
	case tags.H1:
		return "h1", true
	case tags.H2:
		return "h2", true
	case tags.H3:
		return "h3", true
	case tags.H4:
		return "h4", true
	case tags.H5:
		return "h5", true
	case tags.H6:
		return "h6", true
	default:
		return "", false
	}
}

// writeICU renders an IcuNode back to canonical ICU message syntax:
// single-spaced, no leading/trailing whitespace inside the braces.
func writeICU(b *strings.Builder, n compiler.IcuNode, tags compiler.TagNames) {
	switch v := n.(type) {
	case compiler.Argument:
		b.WriteByte('{')
		b.WriteString(v.Name)
		b.WriteByte('}')
	case compiler.TypedArgument:
		b.WriteByte('{')
		b.WriteString(v.Name)
		b.WriteString(", ")
		b.WriteString(typedArgumentKeyword(v.Kind))
		if v.Style != "" {
			b.WriteString(", ")
			b.WriteString(v.Style)
		}
		b.WriteByte('}')
	case compiler.Plural:
		b.WriteByte('{')
		b.WriteString(v.Name)
		if v.Ordinal {
			b.WriteString(", selectordinal, ")
		} else {
			b.WriteString(", plural, ")
		}
		if v.Offset != 0 {
			b.WriteString("offset:")
			b.WriteString(strconv.Itoa(v.Offset))
			b.WriteByte(' ')
		}
		writeArms(b, v.Arms, tags)
		b.WriteByte('}')
	case compiler.Select:
		b.WriteByte('{')
		b.WriteString(v.Name)
		b.WriteString(", select, ")
		writeArms(b, v.Arms, tags)
		b.WriteByte('}')
	}
}

func typedArgumentKeyword(kind compiler.TypedArgumentKind) string {
	switch kind {
	case compiler.DateArgument:
		return "date"
	case compiler.TimeArgument:
		return "time"
	case compiler.NumberArgument:
		return "number"
	default:
		return "number"
	}
}

func writeArms(b *strings.Builder, arms []compiler.SelectorArm, tags compiler.TagNames) {
	for i, arm := range arms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(arm.Selector)
		b.WriteString(" {")
		writeHTML(b, arm.Element, tags)
		b.WriteByte('}')
	}
}
